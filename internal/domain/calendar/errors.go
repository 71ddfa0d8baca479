package calendar

import "errors"

var (
	// ErrEntryNotFound indicates the calendar entry doesn't exist.
	ErrEntryNotFound = errors.New("calendar entry not found")
	// ErrInvalidKind indicates an unknown calendar kind.
	ErrInvalidKind = errors.New("invalid calendar kind")
	// ErrInvalidRange indicates an entry that ends before it starts.
	ErrInvalidRange = errors.New("calendar entry ends before it starts")
	// ErrInvalidInput indicates invalid calendar input.
	ErrInvalidInput = errors.New("invalid calendar input")
)
