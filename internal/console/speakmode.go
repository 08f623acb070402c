package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/vburojevic/instapaper-console/internal/output"
	"github.com/vburojevic/instapaper-console/internal/speak"
)

// runSpeak segments the current article and walks it sentence by
// sentence. The sequence is rebuilt on every entry, so re-reading an
// article always reflects its latest fetched text.
func (c *Console) runSpeak(ctx context.Context) {
	m, err := c.cursor.Current()
	if err != nil {
		c.report(err)
		return
	}
	text, err := c.cursor.CurrentText(ctx)
	if err != nil {
		c.report(err)
		return
	}
	sess, err := speak.New(m.ID, c.seg.Segment(text))
	if err != nil {
		c.report(err)
		return
	}
	c.logger.Info("speak mode", "bookmark", m.ID, "sentences", sess.Len())
	fmt.Fprintf(c.out, "Speak mode: %s (%d sentences). Keys: n=next, b=back, h=highlight, q=quit.\n", m.Title, sess.Len())
	c.printSentence(sess)

	for !sess.Finished() {
		fmt.Fprint(c.out, "speak> ")
		line, ok := c.lines.Next()
		if !ok {
			sess.Quit()
			break
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "", "n", "next":
			if sess.Next() {
				c.printSentence(sess)
			} else {
				fmt.Fprintln(c.out, "Already at the last sentence.")
			}
		case "b", "back":
			if sess.Back() {
				c.printSentence(sess)
			} else {
				fmt.Fprintln(c.out, "Already at the first sentence.")
			}
		case "h", "highlight":
			if err := sess.Highlight(ctx, c.hl); err != nil {
				c.report(err)
			} else {
				fmt.Fprintf(c.out, "Highlighted sentence %d.\n", sess.Index()+1)
			}
		case "q", "quit":
			sess.Quit()
		default:
			fmt.Fprintln(c.out, "Keys: n=next, b=back, h=highlight, q=quit.")
		}
	}
	fmt.Fprintln(c.out, "Leaving speak mode.")
}

func (c *Console) printSentence(sess *speak.Session) {
	s := sess.Current()
	marker := ""
	if last, ok := sess.LastHighlighted(); ok && last == sess.Index() {
		marker = " [highlighted]"
	}
	fmt.Fprintf(c.out, "[%d/%d]%s %s\n", sess.Index()+1, sess.Len(), marker, output.Wrap(s.Text, c.wrap))
}
