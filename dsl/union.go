package dsl

import (
	"github.com/reoring/vld"
)

const unionMsg = "Input did not match any variant of the union"

// unionIssue is the single issue of a union whose alternatives all failed.
// Branch issues are discarded; use DiscriminatedUnion when they matter.
func unionIssue(v vld.Value) vld.Issues {
	return vld.NewIssuesWithValue(vld.CustomCode(vld.CustomInvalidUnion), unionMsg, v)
}

// UnionSchema tries two alternatives in order.
type UnionSchema[A, B any] struct {
	a vld.Schema[A]
	b vld.Schema[B]
}

// Union returns a schema accepting whatever a or b accepts; the first
// alternative to succeed wins.
func Union[A, B any](a vld.Schema[A], b vld.Schema[B]) UnionSchema[A, B] {
	if a == nil || b == nil {
		panic("dsl: Union alternative is nil")
	}
	return UnionSchema[A, B]{a: a, b: b}
}

// Parse implements vld.Schema[vld.Either[A, B]].
func (s UnionSchema[A, B]) Parse(v vld.Value) (vld.Either[A, B], error) {
	if out, err := s.a.Parse(v); err == nil {
		return vld.Left[A, B](out), nil
	}
	if out, err := s.b.Parse(v); err == nil {
		return vld.Right[A](out), nil
	}
	return vld.Either[A, B]{}, unionIssue(v)
}

// ParseValue implements vld.AnySchema.
func (s UnionSchema[A, B]) ParseValue(v vld.Value) (vld.Value, error) {
	if out, err := erase(s.a, v); err == nil {
		return out, nil
	}
	if out, err := erase(s.b, v); err == nil {
		return out, nil
	}
	return vld.Value{}, unionIssue(v)
}

// Descriptor implements vld.Describer.
func (s UnionSchema[A, B]) Descriptor() vld.Descriptor {
	return vld.Descriptor{Type: vld.TypeUnion, AnyOf: []vld.Descriptor{describe(s.a), describe(s.b)}}
}

// Union3Schema tries three alternatives in order.
type Union3Schema[A, B, C any] struct {
	a vld.Schema[A]
	b vld.Schema[B]
	c vld.Schema[C]
}

// Union3 is Union with a third alternative.
func Union3[A, B, C any](a vld.Schema[A], b vld.Schema[B], c vld.Schema[C]) Union3Schema[A, B, C] {
	if a == nil || b == nil || c == nil {
		panic("dsl: Union3 alternative is nil")
	}
	return Union3Schema[A, B, C]{a: a, b: b, c: c}
}

// Parse implements vld.Schema[vld.Either3[A, B, C]].
func (s Union3Schema[A, B, C]) Parse(v vld.Value) (vld.Either3[A, B, C], error) {
	if out, err := s.a.Parse(v); err == nil {
		return vld.First[A, B, C](out), nil
	}
	if out, err := s.b.Parse(v); err == nil {
		return vld.Second[A, B, C](out), nil
	}
	if out, err := s.c.Parse(v); err == nil {
		return vld.Third[A, B](out), nil
	}
	return vld.Either3[A, B, C]{}, unionIssue(v)
}

// ParseValue implements vld.AnySchema.
func (s Union3Schema[A, B, C]) ParseValue(v vld.Value) (vld.Value, error) {
	if out, err := erase(s.a, v); err == nil {
		return out, nil
	}
	if out, err := erase(s.b, v); err == nil {
		return out, nil
	}
	if out, err := erase(s.c, v); err == nil {
		return out, nil
	}
	return vld.Value{}, unionIssue(v)
}

// Descriptor implements vld.Describer.
func (s Union3Schema[A, B, C]) Descriptor() vld.Descriptor {
	return vld.Descriptor{Type: vld.TypeUnion, AnyOf: []vld.Descriptor{describe(s.a), describe(s.b), describe(s.c)}}
}

// ---- intersection ----

// IntersectionSchema requires the input to satisfy two schemas.
type IntersectionSchema[A, B any] struct {
	a vld.Schema[A]
	b vld.Schema[B]
}

// Intersection parses the same input with a and b. Issues of both are
// reported, a's first, without any path prefix. The output is a's.
func Intersection[A, B any](a vld.Schema[A], b vld.Schema[B]) IntersectionSchema[A, B] {
	if a == nil || b == nil {
		panic("dsl: Intersection side is nil")
	}
	return IntersectionSchema[A, B]{a: a, b: b}
}

// Parse implements vld.Schema[A].
func (s IntersectionSchema[A, B]) Parse(v vld.Value) (A, error) {
	var iss vld.Issues
	out, err := s.a.Parse(v)
	if err != nil {
		iss = iss.Merge(issues(err))
	}
	if _, err := s.b.Parse(v); err != nil {
		iss = iss.Merge(issues(err))
	}
	if len(iss) > 0 {
		var zero A
		return zero, iss
	}
	return out, nil
}

// ParseValue implements vld.AnySchema.
func (s IntersectionSchema[A, B]) ParseValue(v vld.Value) (vld.Value, error) {
	var iss vld.Issues
	out, err := erase(s.a, v)
	if err != nil {
		iss = iss.Merge(issues(err))
	}
	if _, err := s.b.Parse(v); err != nil {
		iss = iss.Merge(issues(err))
	}
	if len(iss) > 0 {
		return vld.Value{}, iss
	}
	return out, nil
}

// Descriptor implements vld.Describer.
func (s IntersectionSchema[A, B]) Descriptor() vld.Descriptor {
	return vld.Descriptor{Type: vld.TypeIntersection, AllOf: []vld.Descriptor{describe(s.a), describe(s.b)}}
}

var (
	_ vld.Schema[vld.Either[string, float64]]        = UnionSchema[string, float64]{}
	_ vld.Schema[vld.Either3[string, float64, bool]] = Union3Schema[string, float64, bool]{}
	_ vld.Schema[vld.Value]                          = IntersectionSchema[vld.Value, vld.Value]{}
)
