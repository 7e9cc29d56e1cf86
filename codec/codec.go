// Package codec converts between wire strings and Go domain values for the
// date-shaped validators.
package codec

import "errors"

// Codec converts a wire value A into a domain value B and back.
type Codec[A, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) (A, error)
}

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidDateTime = errors.New("invalid datetime")
	ErrInvalidTime     = errors.New("invalid time")
)
