package instapaper

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

type debugTransport struct {
	base   http.RoundTripper
	logger *log.Logger
}

func (t *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if err != nil {
		t.logger.Debug("http", "method", req.Method, "url", req.URL.Redacted(), "error", err, "duration", dur)
		return nil, err
	}
	t.logger.Debug("http", "method", req.Method, "url", req.URL.Redacted(), "status", resp.StatusCode, "duration", dur)
	return resp, nil
}

// EnableDebug logs every request's method, URL, status and duration
// through logger. Headers and bodies are never logged.
func (c *Client) EnableDebug(logger *log.Logger) {
	if c == nil || logger == nil {
		return
	}
	base := c.HTTP.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.HTTP.Transport = &debugTransport{base: base, logger: logger}
}
