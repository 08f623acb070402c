// Package console implements the interactive bookmark session: one
// command at a time over stdin/stdout, every command ending in a one-line
// confirmation or failure reason, never a crash.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vburojevic/instapaper-console/internal/article"
	"github.com/vburojevic/instapaper-console/internal/browser"
	"github.com/vburojevic/instapaper-console/internal/highlight"
	"github.com/vburojevic/instapaper-console/internal/output"
	"github.com/vburojevic/instapaper-console/internal/segment"
)

type Options struct {
	BookmarkLimit int
	WrapWidth     int
}

type Console struct {
	cursor *article.Cursor
	seg    segment.Segmenter
	hl     *highlight.Coordinator
	wrap   int
	logger *log.Logger

	lines *lineReader
	out   io.Writer

	openURL func(string) error
}

func New(gw article.Gateway, seg segment.Segmenter, opts Options, logger *log.Logger) *Console {
	return &Console{
		cursor:  article.NewCursor(gw, opts.BookmarkLimit),
		seg:     seg,
		hl:      highlight.New(gw),
		wrap:    opts.WrapWidth,
		logger:  logger,
		openURL: browser.Open,
	}
}

// Run loads the collection and serves commands until exit or EOF.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	c.lines = newLineReader(in)
	c.out = out

	if err := c.cursor.Load(ctx); err != nil {
		c.report(err)
	} else {
		fmt.Fprintf(out, "Loaded %d bookmarks. Type 'help' for commands.\n", c.cursor.Len())
	}

	for {
		fmt.Fprint(out, "> ")
		line, ok := c.lines.Next()
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		if !c.dispatch(ctx, strings.TrimSpace(line)) {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}
	}
}

// dispatch runs one command, reporting false when the session should end.
func (c *Console) dispatch(ctx context.Context, line string) bool {
	if line == "" {
		return true
	}
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])
	args := fields[1:]
	c.logger.Debug("command", "cmd", cmd)

	if n, err := strconv.Atoi(cmd); err == nil {
		c.cmdJump(n)
		return true
	}

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		fmt.Fprint(c.out, helpText)
	case "articles", "bookmarks", "list":
		if err := output.PrintBookmarks(c.out, c.cursor.Bookmarks(), c.cursor.Position()); err != nil {
			c.report(err)
		}
	case "refresh":
		if err := c.cursor.Load(ctx); err != nil {
			c.report(err)
		} else {
			fmt.Fprintf(c.out, "Reloaded %d bookmarks.\n", c.cursor.Len())
		}
	case "add":
		c.cmdAdd(ctx, args)
	case "delete":
		c.cmdDelete(ctx)
	case "star":
		c.cmdStar(ctx)
	case "archive":
		c.cmdArchive(ctx)
	case "highlight":
		c.cmdHighlight(ctx)
	case "speak":
		c.runSpeak(ctx)
	case "title":
		if m, err := c.cursor.Current(); err != nil {
			c.report(err)
		} else {
			fmt.Fprintln(c.out, m.Title)
		}
	case "info":
		c.cmdInfo()
	case "open":
		if m, err := c.cursor.Current(); err != nil {
			c.report(err)
		} else if err := c.openURL(m.URL); err != nil {
			c.report(err)
		} else {
			fmt.Fprintf(c.out, "Opened %s\n", m.URL)
		}
	case "next":
		if c.cursor.Advance() {
			c.printPosition()
		} else if c.cursor.Len() == 0 {
			c.report(article.ErrEmptyCollection)
		} else {
			fmt.Fprintln(c.out, "Already at the last bookmark.")
		}
	case "prev", "previous":
		if c.cursor.Retreat() {
			c.printPosition()
		} else if c.cursor.Len() == 0 {
			c.report(article.ErrEmptyCollection)
		} else {
			fmt.Fprintln(c.out, "Already at the first bookmark.")
		}
	case "first":
		if c.cursor.First() {
			c.printPosition()
		} else {
			c.report(article.ErrEmptyCollection)
		}
	case "last":
		if c.cursor.Last() {
			c.printPosition()
		} else {
			c.report(article.ErrEmptyCollection)
		}
	case "read":
		c.cmdRead(ctx, args)
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (try 'help')\n", cmd)
	}
	return true
}

func (c *Console) cmdJump(n int) {
	if err := c.cursor.JumpToNumber(n); err != nil {
		c.report(err)
		return
	}
	c.printPosition()
}

func (c *Console) cmdAdd(ctx context.Context, args []string) {
	var url string
	if len(args) > 0 {
		url = args[0]
	} else {
		fmt.Fprint(c.out, "URL: ")
		line, ok := c.lines.Next()
		if !ok {
			return
		}
		url = strings.TrimSpace(line)
	}
	m, err := c.cursor.Add(ctx, url)
	if err != nil {
		c.report(err)
		return
	}
	title := m.Title
	if title == "" {
		title = m.URL
	}
	fmt.Fprintf(c.out, "Added: %s\n", title)
}

func (c *Console) cmdDelete(ctx context.Context) {
	m, err := c.cursor.Current()
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Delete %q? (y/N): ", m.Title)
	line, ok := c.lines.Next()
	if !ok || !strings.EqualFold(strings.TrimSpace(line), "y") {
		fmt.Fprintln(c.out, "Not deleted.")
		return
	}
	deleted, err := c.cursor.Delete(ctx)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Deleted: %s\n", deleted.Title)
	if c.cursor.Len() == 0 {
		fmt.Fprintln(c.out, "No bookmarks left.")
	} else {
		c.printPosition()
	}
}

func (c *Console) cmdStar(ctx context.Context) {
	m, err := c.cursor.ToggleStar(ctx)
	if err != nil {
		c.report(err)
		return
	}
	if m.Starred {
		fmt.Fprintf(c.out, "Starred: %s\n", m.Title)
	} else {
		fmt.Fprintf(c.out, "Unstarred: %s\n", m.Title)
	}
}

func (c *Console) cmdArchive(ctx context.Context) {
	m, err := c.cursor.Archive(ctx)
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Archived: %s\n", m.Title)
}

// cmdHighlight reads a passage (finish with two consecutive blank lines)
// and records it against the current bookmark through the same coordinator
// speak mode uses.
func (c *Console) cmdHighlight(ctx context.Context) {
	m, err := c.cursor.Current()
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Enter highlight text (finish with two blank lines):")
	lines := c.lines.ReadUntil(blankPairTerminator())
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if err := c.hl.Create(ctx, m.ID, text); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Highlighted %d characters in %q.\n", len(text), m.Title)
}

func (c *Console) cmdInfo() {
	m, err := c.cursor.Current()
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "Title:    %s\n", m.Title)
	fmt.Fprintf(c.out, "URL:      %s\n", m.URL)
	fmt.Fprintf(c.out, "Position: %d of %d\n", c.cursor.Position()+1, c.cursor.Len())
	fmt.Fprintf(c.out, "Starred:  %t\n", m.Starred)
	fmt.Fprintf(c.out, "Archived: %t\n", m.Archived)
}

func (c *Console) cmdRead(ctx context.Context, args []string) {
	var (
		m    article.Bookmark
		text string
		err  error
	)
	if len(args) > 0 {
		n, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			fmt.Fprintln(c.out, "usage: read [<number>]")
			return
		}
		text, err = c.cursor.TextByNumber(ctx, n)
		if err == nil {
			marks := c.cursor.Bookmarks()
			m = marks[n-1]
		}
	} else {
		if m, err = c.cursor.Current(); err == nil {
			text, err = c.cursor.CurrentText(ctx)
		}
	}
	if err != nil {
		c.report(err)
		return
	}
	output.PrintArticle(c.out, m.Title, text, c.wrap)
}

func (c *Console) printPosition() {
	m, err := c.cursor.Current()
	if err != nil {
		c.report(err)
		return
	}
	fmt.Fprintf(c.out, "[%d/%d] %s\n", c.cursor.Position()+1, c.cursor.Len(), m.Title)
}

// report prints the one-line failure reason for any error a command can
// surface. Nothing here ends the session.
func (c *Console) report(err error) {
	var (
		fetchErr  *article.FetchError
		rangeErr  *article.OutOfRangeError
		remoteErr *article.RemoteError
	)
	switch {
	case errors.Is(err, article.ErrEmptyCollection):
		fmt.Fprintln(c.out, "No bookmarks loaded. Try 'refresh'.")
	case errors.Is(err, article.ErrEmptyArticle):
		fmt.Fprintln(c.out, "This article has no text to speak.")
	case errors.Is(err, article.ErrEmptyHighlight):
		fmt.Fprintln(c.out, "Nothing to highlight: text was empty.")
	case errors.Is(err, article.ErrEmptyURL):
		fmt.Fprintln(c.out, "No URL provided.")
	case errors.As(err, &rangeErr):
		fmt.Fprintf(c.out, "Bookmark number %d is out of range (1-%d).\n", rangeErr.N, rangeErr.Len)
	case errors.As(err, &fetchErr):
		fmt.Fprintf(c.out, "Could not fetch bookmarks: %v\n", fetchErr.Err)
	case errors.As(err, &remoteErr):
		fmt.Fprintf(c.out, "Remote %s failed (%s): %v\n", remoteErr.Op, remoteErr.Cause, remoteErr.Err)
	default:
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
	c.logger.Warn("command failed", "error", err)
}

const helpText = `Commands:
  articles | bookmarks   list the loaded bookmarks
  <number>               jump to bookmark by number
  next | prev | first | last
  title                  show the current bookmark's title
  info                   show title, URL and position
  read [<number>]        print the article text
  speak                  step through the article sentence by sentence
  add [<url>]            save a new bookmark
  star                   star/unstar the current bookmark
  archive                archive the current bookmark
  delete                 delete the current bookmark (asks first)
  highlight              highlight a passage of the current article
  open                   open the current bookmark in your browser
  refresh                reload the collection
  exit | quit
`
