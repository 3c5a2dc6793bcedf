package hll

import "errors"

var (
	// ErrInvalidParameter is returned for construction parameters outside their domain.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrShapeMismatch is returned when sketches with different register counts are combined or compared.
	ErrShapeMismatch = errors.New("register counts differ")

	// ErrMalformedState is returned when sketch state supplied from outside cannot be used.
	ErrMalformedState = errors.New("malformed sketch state")

	// ErrRange is returned for query windows outside (0, window].
	ErrRange = errors.New("query window out of range")
)
