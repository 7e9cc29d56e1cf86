package dsl

import (
	"github.com/reoring/vld"
)

// AnyValueSchema accepts every value.
type AnyValueSchema struct{}

// Any returns a schema that accepts any value, including null, and returns
// it unchanged.
func Any() AnyValueSchema { return AnyValueSchema{} }

func (AnyValueSchema) Parse(v vld.Value) (vld.Value, error)      { return v, nil }
func (AnyValueSchema) ParseValue(v vld.Value) (vld.Value, error) { return v, nil }
func (AnyValueSchema) Descriptor() vld.Descriptor                { return vld.Descriptor{Type: vld.TypeAny} }

// CustomSchema runs a user function against the raw value.
type CustomSchema[T any] struct {
	fn   func(vld.Value) (T, error)
	desc string
}

// Custom builds a schema from fn. A returned error becomes a single custom
// issue whose message is the error text and whose snapshot is the input.
func Custom[T any](fn func(vld.Value) (T, error)) CustomSchema[T] {
	if fn == nil {
		panic("dsl: Custom with nil function")
	}
	return CustomSchema[T]{fn: fn}
}

func (s CustomSchema[T]) Describe(text string) CustomSchema[T] { s.desc = text; return s }

// Parse implements vld.Schema[T].
func (s CustomSchema[T]) Parse(v vld.Value) (T, error) {
	out, err := s.fn(v)
	if err != nil {
		var zero T
		return zero, vld.NewIssuesWithValue(vld.CustomCode(vld.CustomCustom), err.Error(), v)
	}
	return out, nil
}

// ParseValue implements vld.AnySchema.
func (s CustomSchema[T]) ParseValue(v vld.Value) (vld.Value, error) { return vld.ParseAny[T](s, v) }

// Descriptor implements vld.Describer.
func (s CustomSchema[T]) Descriptor() vld.Descriptor {
	return vld.Descriptor{Type: vld.TypeUnknown, Description: s.desc}
}
