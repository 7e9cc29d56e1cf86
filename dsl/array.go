package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

// ArraySchema validates arrays whose elements all match one schema.
type ArraySchema[E any] struct {
	elem           vld.Schema[E]
	min, max, size *int
	desc           string
}

// Array returns a schema for arrays of elem.
func Array[E any](elem vld.Schema[E]) ArraySchema[E] {
	if elem == nil {
		panic("dsl: Array of nil schema")
	}
	return ArraySchema[E]{elem: elem}
}

// Min requires at least n elements.
func (s ArraySchema[E]) Min(n int) ArraySchema[E] { s.min = &n; return s }

// Max allows at most n elements.
func (s ArraySchema[E]) Max(n int) ArraySchema[E] { s.max = &n; return s }

// Length requires exactly n elements.
func (s ArraySchema[E]) Length(n int) ArraySchema[E] { s.size = &n; return s }

// NonEmpty is Min(1).
func (s ArraySchema[E]) NonEmpty() ArraySchema[E] { return s.Min(1) }

func (s ArraySchema[E]) Describe(text string) ArraySchema[E] { s.desc = text; return s }

// lengthIssues reports the length constraints; they never stop element
// validation.
func (s ArraySchema[E]) lengthIssues(n int) vld.Issues {
	var iss vld.Issues
	if s.min != nil && n < *s.min {
		iss.Add(vld.TooSmallCode(float64(*s.min), true), fmt.Sprintf("Array must have at least %d elements", *s.min))
	}
	if s.max != nil && n > *s.max {
		iss.Add(vld.TooBigCode(float64(*s.max), true), fmt.Sprintf("Array must have at most %d elements", *s.max))
	}
	if s.size != nil && n != *s.size {
		iss.Add(vld.CustomCode(vld.CustomInvalidLength), fmt.Sprintf("Array must have exactly %d elements", *s.size))
	}
	return iss
}

// Parse implements vld.Schema[[]E].
func (s ArraySchema[E]) Parse(v vld.Value) ([]E, error) {
	if v.Kind() != vld.KindArray {
		return nil, typeIssue("array", v, "")
	}
	n := v.Len()
	iss := s.lengthIssues(n)
	out := make([]E, 0, n)
	for i := 0; i < n; i++ {
		e, err := s.elem.Parse(v.Index(i))
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.IndexSeg(i)))
			continue
		}
		out = append(out, e)
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// ParseValue implements vld.AnySchema. Elements keep their erased form, so
// an array of objects stays in member order.
func (s ArraySchema[E]) ParseValue(v vld.Value) (vld.Value, error) {
	if v.Kind() != vld.KindArray {
		return vld.Value{}, typeIssue("array", v, "")
	}
	n := v.Len()
	iss := s.lengthIssues(n)
	out := make([]vld.Value, 0, n)
	for i := 0; i < n; i++ {
		e, err := erase(s.elem, v.Index(i))
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.IndexSeg(i)))
			continue
		}
		out = append(out, e)
	}
	if len(iss) > 0 {
		return vld.Value{}, iss
	}
	return vld.Array(out...), nil
}

// Descriptor implements vld.Describer.
func (s ArraySchema[E]) Descriptor() vld.Descriptor {
	items := describe(s.elem)
	d := vld.Descriptor{Type: vld.TypeArray, Description: s.desc, Items: &items, MinLength: s.min, MaxLength: s.max}
	if s.size != nil {
		d.MinLength, d.MaxLength = s.size, s.size
	}
	return d
}

// ---- set ----

// SetSchema validates arrays as sets: elements are parsed, then duplicates
// (by structural equality of the encoded outputs) are dropped keeping the
// first occurrence. Size bounds apply to the unique elements that parsed.
type SetSchema[E any] struct {
	elem     vld.Schema[E]
	min, max *int
	desc     string
}

// Set returns a set schema over elem.
func Set[E any](elem vld.Schema[E]) SetSchema[E] {
	if elem == nil {
		panic("dsl: Set of nil schema")
	}
	return SetSchema[E]{elem: elem}
}

// Min requires at least n unique elements.
func (s SetSchema[E]) Min(n int) SetSchema[E] { s.min = &n; return s }

// Max allows at most n unique elements.
func (s SetSchema[E]) Max(n int) SetSchema[E] { s.max = &n; return s }

func (s SetSchema[E]) Describe(text string) SetSchema[E] { s.desc = text; return s }

// Parse implements vld.Schema[[]E].
func (s SetSchema[E]) Parse(v vld.Value) ([]E, error) {
	out, _, err := s.parse(v)
	return out, err
}

// ParseValue implements vld.AnySchema.
func (s SetSchema[E]) ParseValue(v vld.Value) (vld.Value, error) {
	_, keys, err := s.parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.Array(keys...), nil
}

func (s SetSchema[E]) parse(v vld.Value) ([]E, []vld.Value, error) {
	if v.Kind() != vld.KindArray {
		return nil, nil, typeIssue("array", v, "")
	}
	var iss vld.Issues
	var out []E
	var seen []vld.Value
	for i := 0; i < v.Len(); i++ {
		e, err := s.elem.Parse(v.Index(i))
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.IndexSeg(i)))
			continue
		}
		key, err := vld.Encode(e)
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.IndexSeg(i)))
			continue
		}
		if containsValue(seen, key) {
			continue
		}
		seen = append(seen, key)
		out = append(out, e)
	}
	if s.min != nil && len(out) < *s.min {
		iss.Add(vld.TooSmallCode(float64(*s.min), true), fmt.Sprintf("Set must have at least %d unique elements", *s.min))
	}
	if s.max != nil && len(out) > *s.max {
		iss.Add(vld.TooBigCode(float64(*s.max), true), fmt.Sprintf("Set must have at most %d unique elements", *s.max))
	}
	if len(iss) > 0 {
		return nil, nil, iss
	}
	if out == nil {
		out = []E{}
	}
	return out, seen, nil
}

func containsValue(vs []vld.Value, v vld.Value) bool {
	for _, x := range vs {
		if vld.Equal(x, v) {
			return true
		}
	}
	return false
}

// Descriptor implements vld.Describer.
func (s SetSchema[E]) Descriptor() vld.Descriptor {
	items := describe(s.elem)
	return vld.Descriptor{Type: vld.TypeSet, Description: s.desc, Items: &items, MinLength: s.min, MaxLength: s.max}
}
