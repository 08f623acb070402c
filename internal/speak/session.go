// Package speak implements the sentence-by-sentence reading session over
// one segmented article.
package speak

import (
	"context"

	"github.com/vburojevic/instapaper-console/internal/article"
	"github.com/vburojevic/instapaper-console/internal/segment"
)

// Highlighter records a highlight for a bookmark on the remote service.
// It is satisfied by highlight.Coordinator.
type Highlighter interface {
	Create(ctx context.Context, bookmarkID int64, text string) error
}

// Session is a short-lived state machine over one article's sentence
// sequence. Every transition is total: boundary conditions are reported
// through return values, never as errors, and the index always stays in
// [0, Len()-1] until Quit.
type Session struct {
	bookmarkID int64
	sentences  []segment.Sentence
	idx        int
	last       int
	finished   bool
}

// New starts a session at the first sentence. It fails with
// article.ErrEmptyArticle when segmentation produced no sentences.
func New(bookmarkID int64, sentences []segment.Sentence) (*Session, error) {
	if len(sentences) == 0 {
		return nil, article.ErrEmptyArticle
	}
	return &Session{bookmarkID: bookmarkID, sentences: sentences, last: -1}, nil
}

func (s *Session) Len() int   { return len(s.sentences) }
func (s *Session) Index() int { return s.idx }

// Current returns the sentence under the session index.
func (s *Session) Current() segment.Sentence { return s.sentences[s.idx] }

// Next advances one sentence, reporting false when already at the last.
func (s *Session) Next() bool {
	if s.idx+1 >= len(s.sentences) {
		return false
	}
	s.idx++
	return true
}

// Back steps one sentence back, reporting false when already at the first.
func (s *Session) Back() bool {
	if s.idx == 0 {
		return false
	}
	s.idx--
	return true
}

// Highlight records the current sentence through h. The session index
// never moves; on success the index is remembered for feedback, on failure
// the session is left exactly as it was.
func (s *Session) Highlight(ctx context.Context, h Highlighter) error {
	if err := h.Create(ctx, s.bookmarkID, s.sentences[s.idx].Text); err != nil {
		return err
	}
	s.last = s.idx
	return nil
}

// LastHighlighted reports the most recently highlighted sentence index,
// if any highlight succeeded this session.
func (s *Session) LastHighlighted() (int, bool) {
	if s.last < 0 {
		return 0, false
	}
	return s.last, true
}

// Quit moves the session to its terminal state.
func (s *Session) Quit() { s.finished = true }

func (s *Session) Finished() bool { return s.finished }
