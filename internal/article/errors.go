package article

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCollection is returned by navigation and read operations when
	// no bookmarks are loaded. Load and Add remain valid.
	ErrEmptyCollection = errors.New("no bookmarks loaded")

	// ErrEmptyArticle is returned when speak mode is entered on an article
	// whose text yields zero sentences.
	ErrEmptyArticle = errors.New("article has no sentences")

	// ErrEmptyHighlight is returned when a highlight is requested with
	// blank text.
	ErrEmptyHighlight = errors.New("highlight text is empty")

	// ErrEmptyURL is returned by Add when the URL is blank.
	ErrEmptyURL = errors.New("no URL provided")
)

// FetchError wraps a failure to list bookmarks from the remote service.
// The previously loaded collection is left untouched when it occurs.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch bookmarks: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// OutOfRangeError reports a 1-based jump outside the loaded collection.
type OutOfRangeError struct {
	N   int
	Len int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("bookmark number %d out of range 1..%d", e.N, e.Len)
}

// RemoteCause classifies why a remote write failed.
type RemoteCause string

const (
	CauseNetwork  RemoteCause = "network"
	CauseAuth     RemoteCause = "auth"
	CauseNotFound RemoteCause = "not_found"
	CauseUnknown  RemoteCause = "unknown"
)

// RemoteError is a star/archive/delete/add/highlight call that the remote
// service rejected or that never completed. Local state is unchanged when
// one is returned.
type RemoteError struct {
	Op    string
	Cause RemoteCause
	Err   error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Cause, e.Err)
	}
	return fmt.Sprintf("%s failed (%s)", e.Op, e.Cause)
}

func (e *RemoteError) Unwrap() error { return e.Err }
