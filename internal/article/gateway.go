package article

import "context"

// Bookmark is one entry of the locally cached collection. Values are copied
// in and out of the cursor; the three flags and the text cache change only
// after a confirmed remote call.
type Bookmark struct {
	ID       int64
	URL      string
	Title    string
	Starred  bool
	Archived bool

	text    string
	hasText bool
}

// Text returns the cached article text, when fetched.
func (b Bookmark) Text() (string, bool) { return b.text, b.hasText }

// Gateway is the capability set the core needs from the remote bookmark
// service. All calls block; implementations map transport and API failures
// to *RemoteError (mutations) or plain errors (reads).
type Gateway interface {
	ListBookmarks(ctx context.Context, limit int) ([]Bookmark, error)
	FetchText(ctx context.Context, id int64) (string, error)
	AddBookmark(ctx context.Context, url string) (Bookmark, error)
	Star(ctx context.Context, id int64) error
	Unstar(ctx context.Context, id int64) error
	Archive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	CreateHighlight(ctx context.Context, id int64, text string) error
}
