package providers

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an expected structural element missing from a page.
	ErrNotFound = errors.New("not found")

	// ErrExtraction marks a present but malformed item.
	ErrExtraction = errors.New("extraction failed")

	ErrUnsupported = errors.New("not supported by source")
)

// TransportError is a non-success response from the source.
type TransportError struct {
	URL    string
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}

	return fmt.Sprintf("request %s: status %d: %s", e.URL, e.Status, body)
}
