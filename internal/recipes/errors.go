package recipes

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when the API has no recipe for an ID
var ErrNotFound = errors.New("recipe not found")

// StatusError reports a non-2xx response from the API
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recipe api: %s returned %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Temporary reports whether retrying the request later may succeed
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// Retryable reports whether err may go away when the request is sent again.
// Only status errors the API marks as permanent are not.
func Retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return err != nil && !errors.Is(err, ErrNotFound)
}
