// Package gateway adapts the Instapaper API client to the capability
// interface the core consumes, translating API failures into the typed
// remote errors the console reports.
package gateway

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/vburojevic/instapaper-console/internal/article"
	"github.com/vburojevic/instapaper-console/internal/instapaper"
)

type Instapaper struct {
	client *instapaper.Client
	logger *log.Logger
}

func New(client *instapaper.Client, logger *log.Logger) *Instapaper {
	return &Instapaper{client: client, logger: logger}
}

func (g *Instapaper) ListBookmarks(ctx context.Context, limit int) ([]article.Bookmark, error) {
	marks, err := g.client.ListBookmarks(ctx, limit)
	if err != nil {
		g.logger.Error("list bookmarks", "error", err)
		return nil, err
	}
	out := make([]article.Bookmark, 0, len(marks))
	for _, m := range marks {
		out = append(out, article.Bookmark{
			ID:      int64(m.BookmarkID),
			URL:     m.URL,
			Title:   m.Title,
			Starred: bool(m.Starred),
		})
	}
	g.logger.Info("listed bookmarks", "count", len(out))
	return out, nil
}

func (g *Instapaper) FetchText(ctx context.Context, id int64) (string, error) {
	html, err := g.client.GetTextHTML(ctx, id)
	if err != nil {
		g.logger.Error("fetch text", "bookmark", id, "error", err)
		return "", err
	}
	text := ExtractText(html)
	g.logger.Info("fetched text", "bookmark", id, "bytes", len(text))
	return text, nil
}

func (g *Instapaper) AddBookmark(ctx context.Context, bookmarkURL string) (article.Bookmark, error) {
	bm, err := g.client.AddBookmark(ctx, bookmarkURL)
	if err != nil {
		return article.Bookmark{}, g.remoteErr("add", err)
	}
	g.logger.Info("added bookmark", "bookmark", int64(bm.BookmarkID))
	return article.Bookmark{
		ID:      int64(bm.BookmarkID),
		URL:     bm.URL,
		Title:   bm.Title,
		Starred: bool(bm.Starred),
	}, nil
}

func (g *Instapaper) Star(ctx context.Context, id int64) error {
	if _, err := g.client.Star(ctx, id); err != nil {
		return g.remoteErr("star", err)
	}
	g.logger.Info("starred", "bookmark", id)
	return nil
}

func (g *Instapaper) Unstar(ctx context.Context, id int64) error {
	if _, err := g.client.Unstar(ctx, id); err != nil {
		return g.remoteErr("unstar", err)
	}
	g.logger.Info("unstarred", "bookmark", id)
	return nil
}

func (g *Instapaper) Archive(ctx context.Context, id int64) error {
	if _, err := g.client.Archive(ctx, id); err != nil {
		return g.remoteErr("archive", err)
	}
	g.logger.Info("archived", "bookmark", id)
	return nil
}

func (g *Instapaper) Delete(ctx context.Context, id int64) error {
	if err := g.client.DeleteBookmark(ctx, id); err != nil {
		return g.remoteErr("delete", err)
	}
	g.logger.Info("deleted", "bookmark", id)
	return nil
}

func (g *Instapaper) CreateHighlight(ctx context.Context, id int64, text string) error {
	if _, err := g.client.CreateHighlight(ctx, id, text); err != nil {
		return g.remoteErr("highlight", err)
	}
	g.logger.Info("highlighted", "bookmark", id, "chars", len(text))
	return nil
}

func (g *Instapaper) remoteErr(op string, err error) *article.RemoteError {
	re := &article.RemoteError{Op: op, Cause: causeOf(err), Err: err}
	g.logger.Error(op+" failed", "cause", string(re.Cause), "error", err)
	return re
}

// causeOf classifies a client error into the cause taxonomy the console
// reports: auth, not-found, network, or unknown.
func causeOf(err error) article.RemoteCause {
	var apiErr *instapaper.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 1241:
			// invalid or inaccessible bookmark ID
			return article.CauseNotFound
		case apiErr.Status == 401 || apiErr.Status == 403:
			return article.CauseAuth
		case apiErr.Status == 404:
			return article.CauseNotFound
		default:
			return article.CauseUnknown
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return article.CauseNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return article.CauseNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return article.CauseNetwork
	}
	return article.CauseUnknown
}
