package article

import (
	"context"
	"strings"
)

// DefaultLimit is the bookmark fetch limit used when the caller does not
// configure one.
const DefaultLimit = 25

// Cursor owns the locally cached bookmark collection and the single
// current-position pointer into it. All remote truth is pulled by Load and
// cached; mutations are applied locally only after the gateway confirms
// them, so a failed call leaves the collection exactly as it was.
//
// Cursor is not safe for concurrent use; the console drives it from one
// goroutine.
type Cursor struct {
	gw    Gateway
	limit int
	marks []Bookmark
	pos   int
}

func NewCursor(gw Gateway, limit int) *Cursor {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Cursor{gw: gw, limit: limit, pos: -1}
}

// Load replaces the collection with up to limit bookmarks from the gateway
// and anchors the cursor at the first element. On failure the prior
// collection and position are untouched.
func (c *Cursor) Load(ctx context.Context) error {
	marks, err := c.gw.ListBookmarks(ctx, c.limit)
	if err != nil {
		return &FetchError{Err: err}
	}
	seen := make(map[int64]bool, len(marks))
	fresh := marks[:0]
	for _, m := range marks {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		fresh = append(fresh, m)
	}
	if len(fresh) > c.limit {
		fresh = fresh[:c.limit]
	}
	c.marks = fresh
	if len(c.marks) == 0 {
		c.pos = -1
	} else {
		c.pos = 0
	}
	return nil
}

func (c *Cursor) Len() int { return len(c.marks) }

// Position returns the 0-based cursor position, or -1 when the collection
// is empty.
func (c *Cursor) Position() int { return c.pos }

// Current returns a copy of the bookmark under the cursor.
func (c *Cursor) Current() (Bookmark, error) {
	if len(c.marks) == 0 {
		return Bookmark{}, ErrEmptyCollection
	}
	return c.marks[c.pos], nil
}

// Bookmarks returns a copy of the collection in fetch order.
func (c *Cursor) Bookmarks() []Bookmark {
	out := make([]Bookmark, len(c.marks))
	copy(out, c.marks)
	return out
}

// Advance moves to the next bookmark. It reports false at the last
// element (or on an empty collection) and never wraps.
func (c *Cursor) Advance() bool {
	if c.pos < 0 || c.pos+1 >= len(c.marks) {
		return false
	}
	c.pos++
	return true
}

// Retreat moves to the previous bookmark, reporting false at the first.
func (c *Cursor) Retreat() bool {
	if c.pos <= 0 {
		return false
	}
	c.pos--
	return true
}

func (c *Cursor) First() bool {
	if len(c.marks) == 0 {
		return false
	}
	c.pos = 0
	return true
}

func (c *Cursor) Last() bool {
	if len(c.marks) == 0 {
		return false
	}
	c.pos = len(c.marks) - 1
	return true
}

// JumpToNumber moves the cursor to the 1-based bookmark number n.
func (c *Cursor) JumpToNumber(n int) error {
	if len(c.marks) == 0 {
		return ErrEmptyCollection
	}
	if n < 1 || n > len(c.marks) {
		return &OutOfRangeError{N: n, Len: len(c.marks)}
	}
	c.pos = n - 1
	return nil
}

// CurrentText returns the current article's full text, fetching it through
// the gateway on first use and caching it on the bookmark.
func (c *Cursor) CurrentText(ctx context.Context) (string, error) {
	if len(c.marks) == 0 {
		return "", ErrEmptyCollection
	}
	return c.textAt(ctx, c.pos)
}

// TextByNumber returns the text for the 1-based bookmark number n without
// moving the cursor.
func (c *Cursor) TextByNumber(ctx context.Context, n int) (string, error) {
	if len(c.marks) == 0 {
		return "", ErrEmptyCollection
	}
	if n < 1 || n > len(c.marks) {
		return "", &OutOfRangeError{N: n, Len: len(c.marks)}
	}
	return c.textAt(ctx, n-1)
}

func (c *Cursor) textAt(ctx context.Context, i int) (string, error) {
	if c.marks[i].hasText {
		return c.marks[i].text, nil
	}
	text, err := c.gw.FetchText(ctx, c.marks[i].ID)
	if err != nil {
		return "", err
	}
	c.marks[i].text = text
	c.marks[i].hasText = true
	return text, nil
}

// ToggleStar stars the current bookmark, or unstars it when it is already
// starred. The flag flips only after the gateway confirms the call.
func (c *Cursor) ToggleStar(ctx context.Context) (Bookmark, error) {
	if len(c.marks) == 0 {
		return Bookmark{}, ErrEmptyCollection
	}
	m := &c.marks[c.pos]
	var err error
	if m.Starred {
		err = c.gw.Unstar(ctx, m.ID)
	} else {
		err = c.gw.Star(ctx, m.ID)
	}
	if err != nil {
		return Bookmark{}, err
	}
	m.Starred = !m.Starred
	return *m, nil
}

// Archive archives the current bookmark, flipping the local flag after the
// gateway confirms.
func (c *Cursor) Archive(ctx context.Context) (Bookmark, error) {
	if len(c.marks) == 0 {
		return Bookmark{}, ErrEmptyCollection
	}
	m := &c.marks[c.pos]
	if err := c.gw.Archive(ctx, m.ID); err != nil {
		return Bookmark{}, err
	}
	m.Archived = true
	return *m, nil
}

// Delete removes the current bookmark after a confirmed remote delete and
// re-anchors the cursor: same numeric position when one remains, otherwise
// the new last element, otherwise the empty sentinel.
func (c *Cursor) Delete(ctx context.Context) (Bookmark, error) {
	if len(c.marks) == 0 {
		return Bookmark{}, ErrEmptyCollection
	}
	deleted := c.marks[c.pos]
	if err := c.gw.Delete(ctx, deleted.ID); err != nil {
		return Bookmark{}, err
	}
	c.marks = append(c.marks[:c.pos], c.marks[c.pos+1:]...)
	if len(c.marks) == 0 {
		c.pos = -1
	} else if c.pos >= len(c.marks) {
		c.pos = len(c.marks) - 1
	}
	return deleted, nil
}

// Add saves a new bookmark remotely and inserts it at the front of the
// collection (the service lists newest first), pointing the cursor at it.
// Re-adding a URL the service already knows updates the existing entry
// instead of duplicating it.
func (c *Cursor) Add(ctx context.Context, url string) (Bookmark, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return Bookmark{}, ErrEmptyURL
	}
	added, err := c.gw.AddBookmark(ctx, url)
	if err != nil {
		return Bookmark{}, err
	}
	for i := range c.marks {
		if c.marks[i].ID == added.ID {
			c.marks[i] = added
			c.pos = i
			return added, nil
		}
	}
	c.marks = append([]Bookmark{added}, c.marks...)
	if len(c.marks) > c.limit {
		c.marks = c.marks[:c.limit]
	}
	c.pos = 0
	return added, nil
}
