package registry

import "errors"

// Tool is a single dashboard shortcut.
type Tool struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// entry is the stored form of a Tool; the name is the map key.
type entry struct {
	URL      string `json:"url"`
	Category string `json:"category"`
}

var (
	ErrMissingField  = errors.New("tool name and url are required")
	ErrDuplicateName = errors.New("tool name already in use")
	ErrEmptyURL      = errors.New("tool url is required")
	ErrNotFound      = errors.New("tool not found")
	// ErrPersist wraps a storage failure after the change was applied in memory.
	ErrPersist       = errors.New("persist tool registry")
)

// ValidationError rejects a mutation before any state changes. Alert is the
// message shown to the user.
type ValidationError struct {
	Err   error
	Alert string
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

// AlertOf returns the user-facing message of a validation error, if err is one.
func AlertOf(err error) (string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Alert, true
	}
	return "", false
}
