package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

// TupleSchema validates fixed-length arrays with one schema per position.
type TupleSchema struct {
	items []vld.AnySchema
	desc  string
}

// Tuple returns a tuple schema over the given positions.
func Tuple(items ...vld.AnySchema) TupleSchema {
	for _, it := range items {
		if it == nil {
			panic("dsl: Tuple item is nil")
		}
	}
	return TupleSchema{items: cloneAppend[vld.AnySchema](nil, items...)}
}

func (s TupleSchema) Describe(text string) TupleSchema { s.desc = text; return s }

// Parse implements vld.Schema[[]vld.Value].
func (s TupleSchema) Parse(v vld.Value) ([]vld.Value, error) {
	return parseTuple(v, len(s.items), func(i int, e vld.Value) (vld.Value, error) {
		return s.items[i].ParseValue(e)
	})
}

// ParseValue implements vld.AnySchema.
func (s TupleSchema) ParseValue(v vld.Value) (vld.Value, error) {
	out, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.Array(out...), nil
}

// Descriptor implements vld.Describer.
func (s TupleSchema) Descriptor() vld.Descriptor {
	items := make([]any, len(s.items))
	for i, it := range s.items {
		items[i] = it
	}
	return tupleDescriptor(s.desc, items...)
}

// parseTuple checks shape and length, then parses every position with each.
// A length mismatch is reported alone.
func parseTuple(v vld.Value, n int, each func(int, vld.Value) (vld.Value, error)) ([]vld.Value, error) {
	if v.Kind() != vld.KindArray {
		return nil, typeIssue("array", v, "Expected array (tuple), received "+vld.TypeName(v))
	}
	if v.Len() != n {
		return nil, vld.NewIssues(vld.CustomCode(vld.CustomInvalidTupleLength),
			fmt.Sprintf("Expected tuple of %d elements, received %d", n, v.Len()))
	}
	var iss vld.Issues
	out := make([]vld.Value, n)
	for i := 0; i < n; i++ {
		e, err := each(i, v.Index(i))
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.IndexSeg(i)))
			continue
		}
		out[i] = e
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

func tupleDescriptor(desc string, items ...any) vld.Descriptor {
	d := vld.Descriptor{Type: vld.TypeTuple, Description: desc}
	for _, it := range items {
		d.PrefixItems = append(d.PrefixItems, describe(it))
	}
	n := len(items)
	d.MinLength, d.MaxLength = &n, &n
	return d
}

// ---- typed tuples ----

// Tuple2Schema validates a two-element array into a vld.Pair.
type Tuple2Schema[A, B any] struct {
	a vld.Schema[A]
	b vld.Schema[B]
}

// Tuple2 returns a typed pair schema.
func Tuple2[A, B any](a vld.Schema[A], b vld.Schema[B]) Tuple2Schema[A, B] {
	if a == nil || b == nil {
		panic("dsl: Tuple2 item is nil")
	}
	return Tuple2Schema[A, B]{a: a, b: b}
}

// Parse implements vld.Schema[vld.Pair[A, B]].
func (s Tuple2Schema[A, B]) Parse(v vld.Value) (vld.Pair[A, B], error) {
	var out vld.Pair[A, B]
	_, err := parseTuple(v, 2, func(i int, e vld.Value) (vld.Value, error) {
		var err error
		switch i {
		case 0:
			out.First, err = s.a.Parse(e)
		default:
			out.Second, err = s.b.Parse(e)
		}
		return vld.Value{}, err
	})
	if err != nil {
		return vld.Pair[A, B]{}, err
	}
	return out, nil
}

// ParseValue implements vld.AnySchema.
func (s Tuple2Schema[A, B]) ParseValue(v vld.Value) (vld.Value, error) {
	out, err := parseTuple(v, 2, func(i int, e vld.Value) (vld.Value, error) {
		if i == 0 {
			return erase(s.a, e)
		}
		return erase(s.b, e)
	})
	if err != nil {
		return vld.Value{}, err
	}
	return vld.Array(out...), nil
}

func (s Tuple2Schema[A, B]) Descriptor() vld.Descriptor { return tupleDescriptor("", s.a, s.b) }

// Tuple3Schema validates a three-element array into a vld.Triple.
type Tuple3Schema[A, B, C any] struct {
	a vld.Schema[A]
	b vld.Schema[B]
	c vld.Schema[C]
}

// Tuple3 returns a typed triple schema.
func Tuple3[A, B, C any](a vld.Schema[A], b vld.Schema[B], c vld.Schema[C]) Tuple3Schema[A, B, C] {
	if a == nil || b == nil || c == nil {
		panic("dsl: Tuple3 item is nil")
	}
	return Tuple3Schema[A, B, C]{a: a, b: b, c: c}
}

// Parse implements vld.Schema[vld.Triple[A, B, C]].
func (s Tuple3Schema[A, B, C]) Parse(v vld.Value) (vld.Triple[A, B, C], error) {
	var out vld.Triple[A, B, C]
	_, err := parseTuple(v, 3, func(i int, e vld.Value) (vld.Value, error) {
		var err error
		switch i {
		case 0:
			out.First, err = s.a.Parse(e)
		case 1:
			out.Second, err = s.b.Parse(e)
		default:
			out.Third, err = s.c.Parse(e)
		}
		return vld.Value{}, err
	})
	if err != nil {
		return vld.Triple[A, B, C]{}, err
	}
	return out, nil
}

// ParseValue implements vld.AnySchema.
func (s Tuple3Schema[A, B, C]) ParseValue(v vld.Value) (vld.Value, error) {
	out, err := parseTuple(v, 3, func(i int, e vld.Value) (vld.Value, error) {
		switch i {
		case 0:
			return erase(s.a, e)
		case 1:
			return erase(s.b, e)
		}
		return erase(s.c, e)
	})
	if err != nil {
		return vld.Value{}, err
	}
	return vld.Array(out...), nil
}

func (s Tuple3Schema[A, B, C]) Descriptor() vld.Descriptor {
	return tupleDescriptor("", s.a, s.b, s.c)
}

var (
	_ vld.Schema[[]vld.Value]               = TupleSchema{}
	_ vld.Schema[vld.Pair[string, float64]] = Tuple2Schema[string, float64]{}
	_ vld.AnySchema                         = Tuple3Schema[string, float64, bool]{}
	_ vld.Schema[map[string]float64]        = RecordSchema[float64]{}
	_ vld.Schema[map[string]float64]        = MapSchema[string, float64]{}
	_ vld.Schema[[]string]                  = ArraySchema[string]{}
	_ vld.Schema[[]string]                  = SetSchema[string]{}
)
