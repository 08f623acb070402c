package instapaper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Int64 is an int64 that can unmarshal from a JSON number (including the
// fractional timestamps the API sometimes emits) or a string.
type Int64 int64

func (i *Int64) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*i = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*i = 0
			return nil
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			*i = Int64(v)
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse int64 from %q: %w", s, err)
		}
		*i = Int64(f)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if v, err := n.Int64(); err == nil {
		*i = Int64(v)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("parse int64 from %q: %w", n.String(), err)
	}
	*i = Int64(f)
	return nil
}

// BoolInt is a bool that can unmarshal from JSON bool, number (0/1), or
// string ("0"/"1"). The API uses all three forms for the starred flag.
type BoolInt bool

func (bi *BoolInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*bi = false
		return nil
	}
	switch {
	case bytes.Equal(b, []byte("true")):
		*bi = true
		return nil
	case bytes.Equal(b, []byte("false")):
		*bi = false
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*bi = s == "1" || s == "true"
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		iv, err := n.Int64()
		if err != nil {
			return err
		}
		*bi = iv != 0
		return nil
	}
}

type User struct {
	Type     string `json:"type"`
	UserID   Int64  `json:"user_id"`
	Username string `json:"username"`
}

type Bookmark struct {
	Type        string  `json:"type"`
	BookmarkID  Int64   `json:"bookmark_id"`
	URL         string  `json:"url,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Starred     BoolInt `json:"starred,omitempty"`
	Time        Int64   `json:"time,omitempty"`
}

type Highlight struct {
	Type        string `json:"type"`
	HighlightID Int64  `json:"highlight_id"`
	BookmarkID  Int64  `json:"bookmark_id"`
	Text        string `json:"text"`
	Time        Int64  `json:"time"`
	Position    Int64  `json:"position"`
}
