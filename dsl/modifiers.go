package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

type optionalKind uint8

const (
	kindOptional optionalKind = iota
	kindNullable
	kindNullish
)

// OptionalSchema maps null (or a missing object field) to nil and delegates
// everything else. Optional, Nullable and Nullish behave the same at runtime
// and differ only in how they describe themselves.
type OptionalSchema[T any] struct {
	inner vld.Schema[T]
	kind  optionalKind
}

// Optional marks a value that may be missing.
func Optional[T any](s vld.Schema[T]) OptionalSchema[T] { return newOptional(s, kindOptional) }

// Nullable marks a value that may be null.
func Nullable[T any](s vld.Schema[T]) OptionalSchema[T] { return newOptional(s, kindNullable) }

// Nullish marks a value that may be missing or null.
func Nullish[T any](s vld.Schema[T]) OptionalSchema[T] { return newOptional(s, kindNullish) }

func newOptional[T any](s vld.Schema[T], k optionalKind) OptionalSchema[T] {
	if s == nil {
		panic("dsl: optional modifier of nil schema")
	}
	return OptionalSchema[T]{inner: s, kind: k}
}

// Unwrap returns the wrapped schema.
func (s OptionalSchema[T]) Unwrap() vld.Schema[T] { return s.inner }

// Parse implements vld.Schema[*T].
func (s OptionalSchema[T]) Parse(v vld.Value) (*T, error) {
	if v.IsNull() {
		return nil, nil
	}
	out, err := s.inner.Parse(v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseValue implements vld.AnySchema.
func (s OptionalSchema[T]) ParseValue(v vld.Value) (vld.Value, error) {
	if v.IsNull() {
		return vld.Null(), nil
	}
	return erase(s.inner, v)
}

// Descriptor implements vld.Describer.
func (s OptionalSchema[T]) Descriptor() vld.Descriptor {
	d := describe(s.inner)
	switch s.kind {
	case kindOptional:
		d.Optional = true
	case kindNullable:
		d.Nullable = true
	default:
		d.Optional, d.Nullable = true, true
	}
	return d
}

// DefaultSchema replaces null with a fallback. Non-null input is validated
// normally, so an invalid value still fails.
type DefaultSchema[T any] struct {
	inner    vld.Schema[T]
	fallback T
}

// Default returns s with a fallback for null or missing input. The fallback
// is returned by value; reference types inside it are shared between calls.
func Default[T any](s vld.Schema[T], fallback T) DefaultSchema[T] {
	if s == nil {
		panic("dsl: Default of nil schema")
	}
	return DefaultSchema[T]{inner: s, fallback: fallback}
}

// Parse implements vld.Schema[T].
func (s DefaultSchema[T]) Parse(v vld.Value) (T, error) {
	if v.IsNull() {
		return s.fallback, nil
	}
	return s.inner.Parse(v)
}

// ParseValue implements vld.AnySchema. The fallback is re-encoded on every
// call, so callers never share a Value.
func (s DefaultSchema[T]) ParseValue(v vld.Value) (vld.Value, error) {
	if v.IsNull() {
		return vld.Encode(s.fallback)
	}
	return erase(s.inner, v)
}

// Descriptor implements vld.Describer.
func (s DefaultSchema[T]) Descriptor() vld.Descriptor {
	d := describe(s.inner)
	if fv, err := vld.ValueOf(s.fallback); err == nil {
		d.Default = &fv
	}
	return d
}

// CatchSchema turns every failure of the inner schema into a fallback.
type CatchSchema[T any] struct {
	inner    vld.Schema[T]
	fallback T
	encoded  vld.Value
}

// Catch returns s with a fallback for any failure; the result never fails.
// Inner issues are dropped. It panics when fallback cannot be encoded as a
// Value.
func Catch[T any](s vld.Schema[T], fallback T) CatchSchema[T] {
	if s == nil {
		panic("dsl: Catch of nil schema")
	}
	fv, err := vld.ValueOf(fallback)
	if err != nil {
		panic(fmt.Sprintf("dsl: Catch fallback: %v", err))
	}
	return CatchSchema[T]{inner: s, fallback: fallback, encoded: fv}
}

// Parse implements vld.Schema[T].
func (s CatchSchema[T]) Parse(v vld.Value) (T, error) {
	out, err := s.inner.Parse(v)
	if err != nil {
		return s.fallback, nil
	}
	return out, nil
}

// ParseValue implements vld.AnySchema.
func (s CatchSchema[T]) ParseValue(v vld.Value) (vld.Value, error) {
	out, err := erase(s.inner, v)
	if err != nil {
		return s.encoded, nil
	}
	return out, nil
}

// Descriptor implements vld.Describer.
func (s CatchSchema[T]) Descriptor() vld.Descriptor {
	d := describe(s.inner)
	fv := s.encoded
	d.Default = &fv
	return d
}
