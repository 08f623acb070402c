package instapaper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// XAuthAccessToken exchanges Instapaper username/password for an OAuth
// access token. The password must not be stored; only the returned
// token+secret.
func (c *Client) XAuthAccessToken(ctx context.Context, username, password string) (token string, secret string, err error) {
	form := url.Values{}
	form.Set("x_auth_username", username)
	form.Set("x_auth_password", password)
	form.Set("x_auth_mode", "client_auth")

	// This endpoint returns query-string output: oauth_token=...&oauth_token_secret=...
	status, _, b, err := c.postForm(ctx, "/api/1/oauth/access_token", form, "text/plain")
	if err != nil {
		return "", "", err
	}
	if err := ensureOK(status, b); err != nil {
		return "", "", err
	}

	vals, err := url.ParseQuery(strings.TrimSpace(string(b)))
	if err != nil {
		return "", "", fmt.Errorf("parse access token response: %w", err)
	}
	token = vals.Get("oauth_token")
	secret = vals.Get("oauth_token_secret")
	if token == "" || secret == "" {
		return "", "", errors.New("missing oauth_token/oauth_token_secret in response")
	}
	return token, secret, nil
}

func (c *Client) VerifyCredentials(ctx context.Context) (User, error) {
	status, _, b, err := c.postForm(ctx, "/api/1/account/verify_credentials", url.Values{}, "application/json")
	if err != nil {
		return User{}, err
	}
	if err := ensureOK(status, b); err != nil {
		return User{}, err
	}
	items, err := decodeArray(b)
	if err != nil {
		return User{}, err
	}
	if len(items) == 0 {
		return User{}, errors.New("empty response")
	}
	var u User
	if err := json.Unmarshal(items[0], &u); err != nil {
		return User{}, err
	}
	return u, nil
}

// ListBookmarks fetches up to limit bookmarks from the unread folder in
// the order the service returns them (newest first).
func (c *Client) ListBookmarks(ctx context.Context, limit int) ([]Bookmark, error) {
	form := url.Values{}
	if limit > 0 {
		form.Set("limit", strconv.Itoa(limit))
	}
	status, _, b, err := c.postFormRetry(ctx, "/api/1/bookmarks/list", form, "application/json")
	if err != nil {
		return nil, err
	}
	if err := ensureOK(status, b); err != nil {
		return nil, err
	}
	// The endpoint serves either a bare array of typed elements or an
	// object with a "bookmarks" key, depending on API vintage.
	if trim := strings.TrimSpace(string(b)); strings.HasPrefix(trim, "{") {
		var resp struct {
			Bookmarks []Bookmark `json:"bookmarks"`
		}
		if err := json.Unmarshal([]byte(trim), &resp); err != nil {
			return nil, err
		}
		return resp.Bookmarks, nil
	}
	items, err := decodeArray(b)
	if err != nil {
		return nil, err
	}
	var marks []Bookmark
	for _, it := range items {
		var kind struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(it, &kind); err != nil {
			return nil, err
		}
		// Other element types (user, meta, highlight) are not needed here.
		if kind.Type != "bookmark" {
			continue
		}
		var bm Bookmark
		if err := json.Unmarshal(it, &bm); err != nil {
			return nil, err
		}
		marks = append(marks, bm)
	}
	return marks, nil
}

func (c *Client) AddBookmark(ctx context.Context, bookmarkURL string) (Bookmark, error) {
	form := url.Values{}
	form.Set("url", bookmarkURL)
	form.Set("resolve_final_url", "1")
	status, _, b, err := c.postForm(ctx, "/api/1/bookmarks/add", form, "application/json")
	if err != nil {
		return Bookmark{}, err
	}
	if err := ensureOK(status, b); err != nil {
		return Bookmark{}, err
	}
	return firstBookmark(b)
}

func (c *Client) DeleteBookmark(ctx context.Context, bookmarkID int64) error {
	form := url.Values{}
	form.Set("bookmark_id", strconv.FormatInt(bookmarkID, 10))
	status, _, b, err := c.postForm(ctx, "/api/1/bookmarks/delete", form, "application/json")
	if err != nil {
		return err
	}
	return ensureOK(status, b)
}

func (c *Client) Star(ctx context.Context, bookmarkID int64) (Bookmark, error) {
	return c.simpleBookmarkMutation(ctx, "/api/1/bookmarks/star", bookmarkID)
}

func (c *Client) Unstar(ctx context.Context, bookmarkID int64) (Bookmark, error) {
	return c.simpleBookmarkMutation(ctx, "/api/1/bookmarks/unstar", bookmarkID)
}

func (c *Client) Archive(ctx context.Context, bookmarkID int64) (Bookmark, error) {
	return c.simpleBookmarkMutation(ctx, "/api/1/bookmarks/archive", bookmarkID)
}

// GetTextHTML returns the article body as processed HTML.
func (c *Client) GetTextHTML(ctx context.Context, bookmarkID int64) ([]byte, error) {
	form := url.Values{}
	form.Set("bookmark_id", strconv.FormatInt(bookmarkID, 10))
	status, _, b, err := c.postFormRetry(ctx, "/api/1/bookmarks/get_text", form, "text/html")
	if err != nil {
		return nil, err
	}
	// On error the API responds with its JSON error structure and HTTP 400.
	if status < 200 || status > 299 {
		if apiErr := parseAPIError(b); apiErr != nil {
			apiErr.Status = status
			return nil, apiErr
		}
		return nil, &APIError{Status: status, Message: strings.TrimSpace(string(b))}
	}
	return b, nil
}

func (c *Client) CreateHighlight(ctx context.Context, bookmarkID int64, text string) (Highlight, error) {
	path := fmt.Sprintf("/api/1.1/bookmarks/%d/highlight", bookmarkID)
	form := url.Values{}
	form.Set("text", text)
	status, _, b, err := c.postForm(ctx, path, form, "application/json")
	if err != nil {
		return Highlight{}, err
	}
	if err := ensureOK(status, b); err != nil {
		return Highlight{}, err
	}
	items, err := decodeArray(b)
	if err != nil {
		return Highlight{}, err
	}
	if len(items) == 0 {
		return Highlight{}, errors.New("empty response")
	}
	var h Highlight
	if err := json.Unmarshal(items[0], &h); err != nil {
		return Highlight{}, err
	}
	return h, nil
}

func (c *Client) simpleBookmarkMutation(ctx context.Context, path string, bookmarkID int64) (Bookmark, error) {
	form := url.Values{}
	form.Set("bookmark_id", strconv.FormatInt(bookmarkID, 10))
	status, _, b, err := c.postForm(ctx, path, form, "application/json")
	if err != nil {
		return Bookmark{}, err
	}
	if err := ensureOK(status, b); err != nil {
		return Bookmark{}, err
	}
	return firstBookmark(b)
}

func firstBookmark(b []byte) (Bookmark, error) {
	items, err := decodeArray(b)
	if err != nil {
		return Bookmark{}, err
	}
	if len(items) == 0 {
		return Bookmark{}, errors.New("empty response")
	}
	var bm Bookmark
	if err := json.Unmarshal(items[0], &bm); err != nil {
		return Bookmark{}, err
	}
	return bm, nil
}

func decodeArray(b []byte) ([]json.RawMessage, error) {
	trim := strings.TrimSpace(string(b))
	if trim == "" {
		return nil, errors.New("empty body")
	}
	if !strings.HasPrefix(trim, "[") {
		return nil, errors.New("expected JSON array")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if apiErr := parseAPIError(b); apiErr != nil {
			return nil, apiErr
		}
	}
	return items, nil
}
