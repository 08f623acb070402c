// Package output renders bookmark lists and article text for the console.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/wordwrap"

	"github.com/vburojevic/instapaper-console/internal/article"
)

// PrintBookmarks writes the numbered collection, marking the current
// cursor position, starred and archived entries.
func PrintBookmarks(w io.Writer, marks []article.Bookmark, pos int) error {
	if len(marks) == 0 {
		_, err := fmt.Fprintln(w, "No bookmarks loaded.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for i, m := range marks {
		cur := " "
		if i == pos {
			cur = ">"
		}
		flags := ""
		if m.Starred {
			flags += "*"
		}
		if m.Archived {
			flags += "a"
		}
		fmt.Fprintf(tw, "%s %d.\t%s\t%s\n", cur, i+1, flags, truncateOneLine(m.Title, 70))
	}
	return tw.Flush()
}

// PrintArticle writes the title and body, wrapped at width (0 = no wrap).
func PrintArticle(w io.Writer, title, text string, width int) {
	if title != "" {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, strings.Repeat("-", min(len(title), 70)))
	}
	fmt.Fprintln(w, Wrap(text, width))
}

// Wrap word-wraps s at width; width <= 0 returns s unchanged.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

func truncateOneLine(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if max <= 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "..."
}
