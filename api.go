package vld

import (
	"fmt"
)

// Schema validates a Value and produces a typed result.
//
// Parse must be a pure function of the schema and its input: on success it
// returns a nil error, on failure a non-empty Issues value.
type Schema[T any] interface {
	Parse(v Value) (T, error)
}

// AnySchema is the type-erased form of a Schema: the typed output is
// re-encoded as a Value. Object fields, catch-alls, conditional rules and
// discriminated-union variants are stored behind this interface.
type AnySchema interface {
	ParseValue(v Value) (Value, error)
}

// Describer is implemented by schemas that expose their static
// configuration.
type Describer interface {
	Descriptor() Descriptor
}

// DescriptorOf returns the descriptor of s, or an "unknown" descriptor when s
// does not expose one.
func DescriptorOf(s any) Descriptor {
	if d, ok := s.(Describer); ok {
		return d.Descriptor()
	}
	return Descriptor{Type: TypeUnknown}
}

// Encode re-encodes a typed parse output as a Value. Encoding failures are
// reported as a single custom "serialize" issue.
func Encode(out any) (Value, error) {
	v, err := ValueOf(out)
	if err != nil {
		return Value{}, NewIssues(CustomCode(CustomSerialize), fmt.Sprintf("Failed to serialize validated value: %v", err))
	}
	return v, nil
}

// ParseAny runs a typed schema and re-encodes its output.
func ParseAny[T any](s Schema[T], v Value) (Value, error) {
	out, err := s.Parse(v)
	if err != nil {
		return Value{}, err
	}
	return Encode(out)
}

// Decode parses JSON bytes and validates the document with s. Malformed JSON
// yields a single parse_error issue.
func Decode[T any](s Schema[T], data []byte) (T, error) {
	v, err := ParseJSON(data)
	if err != nil {
		var zero T
		return zero, NewIssues(ParseErrorCode(), "Invalid JSON: "+err.Error())
	}
	return s.Parse(v)
}

// Validate encodes a Go value and validates it with s.
func Validate[T any](s Schema[T], x any) (T, error) {
	v, err := ValueOf(x)
	if err != nil {
		var zero T
		return zero, NewIssues(CustomCode(CustomSerialize), fmt.Sprintf("Failed to serialize input value: %v", err))
	}
	return s.Parse(v)
}

// IsValid reports whether s accepts v.
func IsValid[T any](s Schema[T], v Value) bool {
	_, err := s.Parse(v)
	return err == nil
}
