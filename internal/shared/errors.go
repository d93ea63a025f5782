package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input rejected before any state change.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate occurs when an id is already present in a store.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidTransition occurs when a status change is not allowed from the current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrUpstream wraps failures of an external collaborator such as the PDF renderer.
	ErrUpstream = errors.New("upstream service failed")
)

// UserSafeMessage returns an error message that can be shown to API clients.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate):
		return err.Error()
	default:
		return "unexpected error"
	}
}
