package stego

import "errors"

// Validation errors
var (
	ErrMissingKey = errors.New("stego: key required for a carrier with content")
)

// Transform errors
var (
	ErrInvalidImage     = errors.New("stego: image could not be decoded")
	ErrCapacityExceeded = errors.New("stego: payload exceeds carrier capacity")
	ErrMalformedFrame   = errors.New("stego: malformed frame")
)
