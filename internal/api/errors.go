package api

import "errors"

// Sentinel errors for the failure classes the UI distinguishes. Wrap with
// fmt.Errorf("...: %w", err) so callers can errors.Is against them.
var (
	// ErrNotFound: 404 on an identifier-scoped operation.
	ErrNotFound = errors.New("draft not found")
	// ErrFetchFailed: any other non-2xx on a read.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrUpdateFailed: any other non-2xx on a partial update.
	ErrUpdateFailed = errors.New("update failed")
	// ErrTransitionFailed: any other non-2xx on reject/skip.
	ErrTransitionFailed = errors.New("transition failed")
	// ErrUnreachable: the request could not be sent or completed.
	ErrUnreachable = errors.New("server unreachable")
)

// SendError carries the server-provided failure text for POST /drafts/:id/send.
// Send failures (quota, invalid recipient) are actionable, so the message
// reaches the user unmodified.
type SendError struct {
	Message string
}

func (e *SendError) Error() string { return e.Message }
