// Package prompt reads interactive input for the login flow.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func ReadLine(r io.Reader, w io.Writer, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(w, prompt)
	}
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		// EOF with a partial line is still usable input.
		if err == io.EOF {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ReadPassword reads a password from the controlling TTY with echo
// disabled where the platform supports it, falling back to a plain
// (echoing) read from r.
func ReadPassword(w io.Writer, prompt string, r io.Reader) (string, error) {
	if prompt != "" {
		fmt.Fprint(w, prompt)
	}
	pw, err := readPasswordFromTTY()
	if err == nil {
		fmt.Fprintln(w)
		return strings.TrimSpace(string(pw)), nil
	}
	line, err := ReadLine(r, w, "")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
