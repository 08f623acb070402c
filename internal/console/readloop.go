package console

import (
	"bufio"
	"io"
	"strings"
)

// lineReader is the single blocking input source for the command loop,
// the multi-line highlight editor and the speak-mode key loop. Only one
// of them reads at a time, so no coordination is needed beyond sharing
// the reader.
type lineReader struct {
	sc *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{sc: sc}
}

// Next returns the next input line, reporting false on EOF.
func (r *lineReader) Next() (string, bool) {
	if !r.sc.Scan() {
		return "", false
	}
	return r.sc.Text(), true
}

// ReadUntil collects lines until stop reports the input is complete. The
// terminating line is not included. EOF also terminates.
func (r *lineReader) ReadUntil(stop func(line string) bool) []string {
	var lines []string
	for {
		line, ok := r.Next()
		if !ok || stop(line) {
			return lines
		}
		lines = append(lines, line)
	}
}

// blankPairTerminator ends input on two consecutive blank lines.
func blankPairTerminator() func(string) bool {
	prevBlank := false
	return func(line string) bool {
		blank := strings.TrimSpace(line) == ""
		done := blank && prevBlank
		prevBlank = blank
		return done
	}
}
