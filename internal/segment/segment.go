// Package segment turns raw article text into an ordered sequence of
// sentence spans with stable byte offsets into the original text.
package segment

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
)

// Sentence is one addressable span of an article. Start and End are byte
// offsets into the text passed to Segment, so Text == article[Start:End]
// regardless of how the sentence is later rendered or wrapped.
type Sentence struct {
	Index int
	Text  string
	Start int
	End   int
}

// Segmenter decomposes text into sentences. Implementations must be pure:
// identical input yields an identical sequence, and empty or
// whitespace-only input yields an empty sequence rather than an error.
type Segmenter interface {
	Segment(text string) []Sentence
}

// Unicode segments on UAX #29 sentence boundaries, which handle
// abbreviations, embedded URLs and quotations far better than naive
// period splitting.
type Unicode struct{}

func NewUnicode() Unicode { return Unicode{} }

func (Unicode) Segment(text string) []Sentence {
	var out []Sentence
	iter := sentences.FromString(text)
	pos := 0
	for iter.Next() {
		raw := iter.Value()
		start := pos
		pos += len(raw)

		trimmed := strings.TrimFunc(raw, unicode.IsSpace)
		if trimmed == "" {
			continue
		}
		// Offsets account for the whitespace stripped from the front.
		lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
		end := start + lead + len(trimmed)

		// UAX #29 breaks after "Dr.", "e.g." and similar before a
		// capitalized word; glue the fragment back onto its sentence.
		if n := len(out); n > 0 && endsWithAbbreviation(out[n-1].Text) {
			prev := &out[n-1]
			prev.End = end
			prev.Text = text[prev.Start:prev.End]
			continue
		}
		out = append(out, Sentence{
			Index: len(out),
			Text:  trimmed,
			Start: start + lead,
			End:   end,
		})
	}
	return out
}

// Abbreviations the default sentence rules treat as terminators when the
// following word is capitalized.
var abbreviations = map[string]bool{
	"Mr.": true, "Mrs.": true, "Ms.": true, "Dr.": true, "Prof.": true,
	"St.": true, "Jr.": true, "Sr.": true, "vs.": true,
	"e.g.": true, "i.e.": true, "No.": true, "Fig.": true,
}

func endsWithAbbreviation(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	return abbreviations[fields[len(fields)-1]]
}
