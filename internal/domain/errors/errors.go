package errors

import "errors"

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrMalformedPayload  = errors.New("malformed source payload")
	ErrNavigationTimeout = errors.New("navigation timeout")
	ErrInvalidInput      = errors.New("invalid input")
)
