package geo

import "errors"

var (
	// ErrUnexpectedStatus is returned for non-200 API responses.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrResponseTooLarge is returned when a response exceeds the configured size.
	ErrResponseTooLarge = errors.New("response too large")
)
