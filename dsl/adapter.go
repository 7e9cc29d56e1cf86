package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

// AnyAdapter adapts a Schema[T] to the type-erased vld.AnySchema contract.
// It keeps the original schema for introspection.
type AnyAdapter struct {
	parse    func(vld.Value) (vld.Value, error)
	describe func() vld.Descriptor
	orig     any
}

var (
	_ vld.AnySchema         = AnyAdapter{}
	_ vld.Schema[vld.Value] = AnyAdapter{}
)

// Erase wraps s as an AnyAdapter. The typed output is re-encoded with
// vld.ValueOf; an encoding failure becomes a custom "serialize" issue.
func Erase[T any](s vld.Schema[T]) AnyAdapter {
	if s == nil {
		panic("dsl: Erase of nil schema")
	}
	if ad, ok := any(s).(AnyAdapter); ok {
		return ad
	}
	ad := AnyAdapter{orig: s}
	if as, ok := any(s).(vld.AnySchema); ok {
		ad.parse = as.ParseValue
	} else {
		ad.parse = func(v vld.Value) (vld.Value, error) { return vld.ParseAny(s, v) }
	}
	if d, ok := any(s).(vld.Describer); ok {
		ad.describe = d.Descriptor
	}
	return ad
}

// FromFunc builds an AnyAdapter from a parse function.
func FromFunc(fn func(vld.Value) (vld.Value, error)) AnyAdapter {
	return AnyAdapter{parse: fn}
}

// ParseValue implements vld.AnySchema.
func (ad AnyAdapter) ParseValue(v vld.Value) (vld.Value, error) {
	if ad.parse == nil {
		return v, nil
	}
	return ad.parse(v)
}

// Parse implements vld.Schema[vld.Value].
func (ad AnyAdapter) Parse(v vld.Value) (vld.Value, error) { return ad.ParseValue(v) }

// Descriptor implements vld.Describer.
func (ad AnyAdapter) Descriptor() vld.Descriptor {
	if ad.describe == nil {
		return vld.Descriptor{Type: vld.TypeUnknown}
	}
	return ad.describe()
}

// Orig returns the schema this adapter was created from, or nil.
func (ad AnyAdapter) Orig() any { return ad.orig }

// ---- helpers shared by the validators ----

// erase runs a typed schema through the erased contract. Schemas that are
// already erased skip the re-encoding round trip.
func erase[T any](s vld.Schema[T], v vld.Value) (vld.Value, error) {
	if as, ok := any(s).(vld.AnySchema); ok {
		return as.ParseValue(v)
	}
	return vld.ParseAny(s, v)
}

// describe returns the descriptor of s, or an unknown descriptor.
func describe(s any) vld.Descriptor { return vld.DescriptorOf(s) }

// issues converts a child error into Issues.
func issues(err error) vld.Issues { return vld.IssuesOf(err) }

// typeIssue builds the "Expected X, received Y" invalid_type issue. A non-empty
// override replaces the message.
func typeIssue(expected string, v vld.Value, override string) vld.Issues {
	msg := override
	if msg == "" {
		msg = fmt.Sprintf("Expected %s, received %s", expected, vld.TypeName(v))
	}
	return vld.NewIssuesWithValue(vld.InvalidTypeCode(expected, vld.TypeName(v)), msg, v)
}

// cloneAppend returns a copy of s with items appended; the receiver's backing
// array is never shared with the result.
func cloneAppend[E any](s []E, items ...E) []E {
	out := make([]E, 0, len(s)+len(items))
	out = append(out, s...)
	return append(out, items...)
}
