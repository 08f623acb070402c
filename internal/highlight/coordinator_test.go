package highlight

import (
	"context"
	"errors"
	"testing"

	"github.com/vburojevic/instapaper-console/internal/article"
)

type countingGateway struct {
	article.Gateway

	calls int
	id    int64
	text  string
	err   error
}

func (g *countingGateway) CreateHighlight(ctx context.Context, id int64, text string) error {
	g.calls++
	g.id = id
	g.text = text
	return g.err
}

func TestCreateTrimsAndCallsOnce(t *testing.T) {
	gw := &countingGateway{}
	c := New(gw)
	if err := c.Create(context.Background(), 7, "  Some sentence.  "); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gw.calls != 1 {
		t.Fatalf("gateway called %d times, want exactly 1", gw.calls)
	}
	if gw.id != 7 || gw.text != "Some sentence." {
		t.Fatalf("gateway saw id=%d text=%q", gw.id, gw.text)
	}
}

func TestCreateRejectsEmptyText(t *testing.T) {
	gw := &countingGateway{}
	c := New(gw)
	for _, in := range []string{"", "   ", "\n\t"} {
		if err := c.Create(context.Background(), 7, in); !errors.Is(err, article.ErrEmptyHighlight) {
			t.Errorf("Create(%q) = %v, want ErrEmptyHighlight", in, err)
		}
	}
	if gw.calls != 0 {
		t.Fatalf("empty text reached the gateway %d times", gw.calls)
	}
}

func TestCreatePassesGatewayErrorThrough(t *testing.T) {
	want := &article.RemoteError{Op: "create_highlight", Cause: article.CauseNetwork, Err: errors.New("down")}
	gw := &countingGateway{err: want}
	c := New(gw)
	err := c.Create(context.Background(), 7, "text")
	var re *article.RemoteError
	if !errors.As(err, &re) || re.Op != "create_highlight" {
		t.Fatalf("Create = %v, want the gateway's RemoteError", err)
	}
	if gw.calls != 1 {
		t.Fatalf("gateway called %d times, want exactly 1", gw.calls)
	}
}
