package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound means the catalog has no answer for the request: an unknown
// movie id on a detail lookup, or a workflow whose title search came back
// empty. It is distinct from an upstream failure.
var ErrNotFound = errors.New("not found")

// UpstreamError is a non-success response from the catalog API. The body is
// kept for server-side logging and must never reach an HTTP response.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream catalog returned %d", e.StatusCode)
}
