package remote

import "fmt"

// StatusError marks a remote call that completed with a non-2xx status.
// All such failures are transient from the caller's point of view: retried
// a bounded number of times, then replaced by a local fallback.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote endpoint returned HTTP %d", e.Code)
}
