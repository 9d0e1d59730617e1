package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	// ErrGenerationUnavailable means the text generator has no usable credentials.
	ErrGenerationUnavailable = errors.New("generation unavailable")
	// ErrGenerationFailed covers transport failures and unusable generator replies.
	ErrGenerationFailed = errors.New("generation failed")
)
