// Package highlight funnels every highlight request, whether from the
// plain highlight command or from speak mode, through one remote-write
// path so both callers get identical failure semantics.
package highlight

import (
	"context"
	"strings"

	"github.com/vburojevic/instapaper-console/internal/article"
)

type Coordinator struct {
	gw article.Gateway
}

func New(gw article.Gateway) *Coordinator {
	return &Coordinator{gw: gw}
}

// Create validates and records one highlight. The gateway is called
// exactly once per invocation; a retry here could double-write a
// highlight, so failures are returned to the caller instead.
func (c *Coordinator) Create(ctx context.Context, bookmarkID int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return article.ErrEmptyHighlight
	}
	return c.gw.CreateHighlight(ctx, bookmarkID, text)
}
