// Package logging builds the file logger the console and gateway share.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// New opens a dated log file under dir and returns a logger writing to
// it plus a close func. The log never receives credentials or article
// bodies.
func New(dir string, debug bool) (*log.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	name := fmt.Sprintf("ipcon-%s.log", time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
	return logger, func() { _ = f.Close() }, nil
}

// Nop returns a logger that discards everything; used in tests.
func Nop() *log.Logger {
	return log.New(io.Discard)
}
