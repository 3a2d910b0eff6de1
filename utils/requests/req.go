package requests

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const USER_AGENT = "Mozilla/5.0 (compatible; swnations/1.0)"

var client = http.Client{Timeout: 10 * time.Second}

// Returned when a request went through but the server answered with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %s for %s", e.Status, e.URL)
}

// Reads the response body all at once with [io.ReadAll], but only if the status code is a success (2xx).
// Any other status results in a [StatusError] and the body is discarded.
func ReadResponseBody(r *http.Response, url string) ([]byte, error) {
	defer r.Body.Close()

	if r.StatusCode < 200 || r.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: r.StatusCode, Status: r.Status}
	}

	return io.ReadAll(r.Body)
}
