package remote

import (
	"fmt"

	"github.com/mrlokans/quotebook/internal/quotes"
)

// StatusError represents a non-2xx answer from the remote quote source.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote quote source returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("remote quote source returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Unwrap lets callers match status failures with errors.Is(err, quotes.ErrNetworkFailure).
func (e *StatusError) Unwrap() error {
	return quotes.ErrNetworkFailure
}
