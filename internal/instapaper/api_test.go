package instapaper

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vburojevic/instapaper-console/internal/oauth1"
)

func newTestClient(t *testing.T, baseURL string, token *oauth1.Token) *Client {
	t.Helper()
	c, err := NewClient(baseURL, "ck", "cs", token, 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func requireAuthHeader(t *testing.T, r *http.Request) {
	t.Helper()
	if r.Header.Get("Authorization") == "" {
		t.Fatalf("expected Authorization header")
	}
}

func readForm(t *testing.T, r *http.Request) url.Values {
	t.Helper()
	if err := r.ParseForm(); err != nil {
		t.Fatalf("ParseForm: %v", err)
	}
	return r.Form
}

func TestXAuthAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method=%s", r.Method)
		}
		if r.URL.Path != "/api/1/oauth/access_token" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		requireAuthHeader(t, r)
		form := readForm(t, r)
		if form.Get("x_auth_mode") != "client_auth" {
			t.Fatalf("x_auth_mode=%s", form.Get("x_auth_mode"))
		}
		io.WriteString(w, "oauth_token=tok&oauth_token_secret=sec")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)
	tok, sec, err := client.XAuthAccessToken(context.Background(), "user", "pass")
	if err != nil {
		t.Fatalf("XAuthAccessToken: %v", err)
	}
	if tok != "tok" || sec != "sec" {
		t.Fatalf("unexpected tokens: %s %s", tok, sec)
	}
}

func TestVerifyCredentials(t *testing.T) {
	resp := []map[string]any{{
		"type":     "user",
		"user_id":  123,
		"username": "vedran",
	}}
	body, _ := json.Marshal(resp)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/account/verify_credentials" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		requireAuthHeader(t, r)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	u, err := client.VerifyCredentials(context.Background())
	if err != nil {
		t.Fatalf("VerifyCredentials: %v", err)
	}
	if int64(u.UserID) != 123 || u.Username != "vedran" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestListBookmarksArrayResponse(t *testing.T) {
	resp := []map[string]any{
		{"type": "user", "user_id": 1, "username": "u"},
		{"type": "bookmark", "bookmark_id": 9, "url": "https://example.com", "title": "Example", "starred": "1"},
		{"type": "bookmark", "bookmark_id": 10, "url": "https://example.org", "title": "Other"},
	}
	body, _ := json.Marshal(resp)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/bookmarks/list" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		requireAuthHeader(t, r)
		form := readForm(t, r)
		if form.Get("limit") != "3" {
			t.Fatalf("limit=%s", form.Get("limit"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	marks, err := client.ListBookmarks(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("bookmarks=%+v", marks)
	}
	if int64(marks[0].BookmarkID) != 9 || !bool(marks[0].Starred) {
		t.Fatalf("first bookmark: %+v", marks[0])
	}
}

func TestListBookmarksObjectResponse(t *testing.T) {
	resp := map[string]any{
		"user": map[string]any{"user_id": 1, "username": "u"},
		"bookmarks": []map[string]any{{
			"type":        "bookmark",
			"bookmark_id": 10,
			"url":         "https://example.com",
			"title":       "Example",
		}},
	}
	body, _ := json.Marshal(resp)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireAuthHeader(t, r)
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	marks, err := client.ListBookmarks(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(marks) != 1 || int64(marks[0].BookmarkID) != 10 {
		t.Fatalf("bookmarks=%+v", marks)
	}
}

func TestListBookmarksAPIErrorArray(t *testing.T) {
	errBody := `[ { "type": "error", "error_code": 1240, "message": "Invalid" } ]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, errBody)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	_, err := client.ListBookmarks(context.Background(), 0)
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Code != 1240 {
		t.Fatalf("code=%d", apiErr.Code)
	}
}

func TestListBookmarksRetriesServerErrors(t *testing.T) {
	resp := []map[string]any{{"type": "bookmark", "bookmark_id": 9, "url": "https://example.com"}}
	body, _ := json.Marshal(resp)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	client.SetRetry(2, time.Millisecond)
	marks, err := client.ListBookmarks(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListBookmarks: %v", err)
	}
	if len(marks) != 1 {
		t.Fatalf("bookmarks=%+v", marks)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("server saw %d calls, want 2", got)
	}
}

func TestDeleteBookmarkNeverRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	client.SetRetry(2, time.Millisecond)
	if err := client.DeleteBookmark(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server saw %d calls, want exactly 1", got)
	}
}

func TestCreateHighlightNeverRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	client.SetRetry(2, time.Millisecond)
	if _, err := client.CreateHighlight(context.Background(), 9, "quote"); err == nil {
		t.Fatalf("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server saw %d calls, want exactly 1", got)
	}
}

func TestAddBookmark(t *testing.T) {
	resp := []map[string]any{{"type": "bookmark", "bookmark_id": 101, "url": "https://example.com", "title": "Example"}}
	body, _ := json.Marshal(resp)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/bookmarks/add" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		requireAuthHeader(t, r)
		form := readForm(t, r)
		if form.Get("url") != "https://example.com" {
			t.Fatalf("url=%s", form.Get("url"))
		}
		if form.Get("resolve_final_url") != "1" {
			t.Fatalf("resolve_final_url=%s", form.Get("resolve_final_url"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	bm, err := client.AddBookmark(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}
	if int64(bm.BookmarkID) != 101 {
		t.Fatalf("bookmark_id=%d", bm.BookmarkID)
	}
}

func TestSimpleBookmarkMutations(t *testing.T) {
	cases := []struct {
		name string
		path string
		fn   func(c *Client) error
	}{
		{
			name: "archive",
			path: "/api/1/bookmarks/archive",
			fn: func(c *Client) error {
				_, err := c.Archive(context.Background(), 1)
				return err
			},
		},
		{
			name: "star",
			path: "/api/1/bookmarks/star",
			fn: func(c *Client) error {
				_, err := c.Star(context.Background(), 1)
				return err
			},
		},
		{
			name: "unstar",
			path: "/api/1/bookmarks/unstar",
			fn: func(c *Client) error {
				_, err := c.Unstar(context.Background(), 1)
				return err
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := []map[string]any{{"type": "bookmark", "bookmark_id": 1}}
			body, _ := json.Marshal(resp)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tc.path {
					t.Fatalf("path=%s", r.URL.Path)
				}
				requireAuthHeader(t, r)
				form := readForm(t, r)
				if form.Get("bookmark_id") != "1" {
					t.Fatalf("bookmark_id=%s", form.Get("bookmark_id"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write(body)
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
			if err := tc.fn(client); err != nil {
				t.Fatalf("mutation failed: %v", err)
			}
		})
	}
}

func TestDeleteBookmark(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/bookmarks/delete" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		requireAuthHeader(t, r)
		form := readForm(t, r)
		if form.Get("bookmark_id") != "1" {
			t.Fatalf("bookmark_id=%s", form.Get("bookmark_id"))
		}
		io.WriteString(w, "[]")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	if err := client.DeleteBookmark(context.Background(), 1); err != nil {
		t.Fatalf("DeleteBookmark: %v", err)
	}
}

func TestGetTextHTML(t *testing.T) {
	content := "<html>ok</html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/bookmarks/get_text" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		requireAuthHeader(t, r)
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, content)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	b, err := client.GetTextHTML(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetTextHTML: %v", err)
	}
	if string(b) != content {
		t.Fatalf("body=%s", string(b))
	}
}

func TestGetTextHTMLErrorBody(t *testing.T) {
	errBody := `[ { "type": "error", "error_code": 1241, "message": "Invalid bookmark_id" } ]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, errBody)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	_, err := client.GetTextHTML(context.Background(), 1)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T (%v)", err, err)
	}
	if apiErr.Code != 1241 || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("apiErr=%+v", apiErr)
	}
}

func TestCreateHighlight(t *testing.T) {
	resp := []map[string]any{{"type": "highlight", "highlight_id": 2, "bookmark_id": 9, "text": "quote", "time": 0, "position": 0}}
	body, _ := json.Marshal(resp)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1.1/bookmarks/9/highlight" {
			t.Fatalf("path=%s", r.URL.Path)
		}
		requireAuthHeader(t, r)
		form := readForm(t, r)
		if form.Get("text") != "quote" {
			t.Fatalf("text=%s", form.Get("text"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL, &oauth1.Token{Key: "tok", Secret: "sec"})
	h, err := client.CreateHighlight(context.Background(), 9, "quote")
	if err != nil {
		t.Fatalf("CreateHighlight: %v", err)
	}
	if int64(h.HighlightID) != 2 || h.Text != "quote" {
		t.Fatalf("highlight=%+v", h)
	}
}

func TestDecodeArrayRejectsNonArray(t *testing.T) {
	if _, err := decodeArray([]byte(`{"type":"bookmark"}`)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEnsureOKPlainHTTPError(t *testing.T) {
	err := ensureOK(503, []byte("Service Unavailable"))
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.Status != 503 || apiErr.Code != 0 {
		t.Fatalf("apiErr=%+v", apiErr)
	}
}
