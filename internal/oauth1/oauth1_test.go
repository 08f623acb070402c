package oauth1

import (
	"net/url"
	"strings"
	"testing"
)

func TestAuthorizationHeaderShape(t *testing.T) {
	s := NewSigner("ck", "cs")
	form := url.Values{}
	form.Set("x_auth_username", "user@example.com")
	h, err := s.AuthorizationHeader("POST", "https://www.instapaper.com/api/1/oauth/access_token", form, nil)
	if err != nil {
		t.Fatalf("AuthorizationHeader: %v", err)
	}
	if !strings.HasPrefix(h, "OAuth ") {
		t.Fatalf("header=%q", h)
	}
	for _, want := range []string{`oauth_consumer_key="ck"`, `oauth_signature_method="HMAC-SHA1"`, `oauth_signature="`, `oauth_version="1.0"`} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %s: %q", want, h)
		}
	}
	if strings.Contains(h, "oauth_token=") {
		t.Errorf("nil token leaked into header: %q", h)
	}
}

func TestAuthorizationHeaderWithToken(t *testing.T) {
	s := NewSigner("ck", "cs")
	h, err := s.AuthorizationHeader("POST", "https://www.instapaper.com/api/1/bookmarks/list", url.Values{}, &Token{Key: "tok", Secret: "sec"})
	if err != nil {
		t.Fatalf("AuthorizationHeader: %v", err)
	}
	if !strings.Contains(h, `oauth_token="tok"`) {
		t.Fatalf("header=%q", h)
	}
}

func TestAuthorizationHeaderRequiresConsumer(t *testing.T) {
	s := NewSigner("", "")
	if _, err := s.AuthorizationHeader("POST", "https://example.com/", url.Values{}, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestBaseStringURL(t *testing.T) {
	got, err := baseStringURL("HTTPS://WWW.Instapaper.com/api/1/bookmarks/list?x=1#frag")
	if err != nil {
		t.Fatalf("baseStringURL: %v", err)
	}
	if got != "https://www.instapaper.com/api/1/bookmarks/list" {
		t.Fatalf("got %q", got)
	}
	if _, err := baseStringURL("not a url"); err == nil {
		t.Fatal("expected error")
	}
}

func TestEscape(t *testing.T) {
	if got := escape("a b+c~d/e"); got != "a%20b%2Bc~d%2Fe" {
		t.Fatalf("escape = %q", got)
	}
}
