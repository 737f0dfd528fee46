package service

import "errors"

// Sentinel errors for control flow. The HTTP layer maps these to status codes.
var (
	ErrMissingURL  = errors.New("url is required")
	ErrInvalidURL  = errors.New("invalid url")
	ErrInvalidCode = errors.New("code must be [A-Za-z0-9]{6,8}")
	ErrConflict    = errors.New("code already exists")
	ErrNotFound    = errors.New("not found")
	ErrReserved    = errors.New("reserved path")
)

// IsValidation reports whether err is a malformed-input condition (HTTP 400).
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingURL) || errors.Is(err, ErrInvalidURL) || errors.Is(err, ErrInvalidCode)
}

// IsConflict reports whether err indicates a code uniqueness conflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsNotFound reports whether err is a not-found condition. Reserved codes are
// surfaced as not-found too, since no Link can ever exist under them.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrReserved)
}
