package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

// RecordSchema validates objects whose values all match one schema and whose
// keys are arbitrary strings.
type RecordSchema[V any] struct {
	value    vld.Schema[V]
	min, max *int
	desc     string
}

// Record returns a schema for string-keyed objects of value.
func Record[V any](value vld.Schema[V]) RecordSchema[V] {
	if value == nil {
		panic("dsl: Record of nil schema")
	}
	return RecordSchema[V]{value: value}
}

// MinKeys requires at least n keys.
func (s RecordSchema[V]) MinKeys(n int) RecordSchema[V] { s.min = &n; return s }

// MaxKeys allows at most n keys.
func (s RecordSchema[V]) MaxKeys(n int) RecordSchema[V] { s.max = &n; return s }

func (s RecordSchema[V]) Describe(text string) RecordSchema[V] { s.desc = text; return s }

func (s RecordSchema[V]) sizeIssues(n int) vld.Issues {
	var iss vld.Issues
	if s.min != nil && n < *s.min {
		iss.Add(vld.TooSmallCode(float64(*s.min), true), fmt.Sprintf("Record must have at least %d keys", *s.min))
	}
	if s.max != nil && n > *s.max {
		iss.Add(vld.TooBigCode(float64(*s.max), true), fmt.Sprintf("Record must have at most %d keys", *s.max))
	}
	return iss
}

// Parse implements vld.Schema[map[string]V]. Key count issues come first,
// followed by value issues in member order.
func (s RecordSchema[V]) Parse(v vld.Value) (map[string]V, error) {
	if v.Kind() != vld.KindObject {
		return nil, typeIssue("object", v, "")
	}
	members := v.Members()
	iss := s.sizeIssues(len(members))
	out := make(map[string]V, len(members))
	for _, m := range members {
		e, err := s.value.Parse(m.Value)
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.FieldSeg(m.Key)))
			continue
		}
		out[m.Key] = e
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// ParseValue implements vld.AnySchema; members keep their input order.
func (s RecordSchema[V]) ParseValue(v vld.Value) (vld.Value, error) {
	if v.Kind() != vld.KindObject {
		return vld.Value{}, typeIssue("object", v, "")
	}
	members := v.Members()
	iss := s.sizeIssues(len(members))
	b := vld.NewObjectBuilder(len(members))
	for _, m := range members {
		e, err := erase(s.value, m.Value)
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.FieldSeg(m.Key)))
			continue
		}
		b.Set(m.Key, e)
	}
	if len(iss) > 0 {
		return vld.Value{}, iss
	}
	return b.Build(), nil
}

// Descriptor implements vld.Describer.
func (s RecordSchema[V]) Descriptor() vld.Descriptor {
	values := describe(s.value)
	return vld.Descriptor{
		Type:                 vld.TypeRecord,
		Description:          s.desc,
		AdditionalProperties: &values,
		MinLength:            s.min,
		MaxLength:            s.max,
	}
}
