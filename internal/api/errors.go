package api

import (
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is a non-2xx backend response. The body text is kept verbatim so
// callers can surface the server's own message.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("backend returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, body)
}

// NotFound reports whether err is a backend 404.
func (e *HTTPError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// DecodeError is a 2xx response whose body could not be parsed as the
// expected JSON. The task-creation endpoint has been observed returning
// malformed success bodies, so this is reported distinctly from an HTTP
// failure.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response as JSON: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
