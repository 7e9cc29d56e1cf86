package dsl

import (
	"fmt"
	"strconv"

	"github.com/reoring/vld"
)

// LiteralType lists the Go types a literal can be built from.
type LiteralType interface {
	~string | ~int64 | ~float64 | ~bool
}

// LiteralSchema accepts exactly one value.
type LiteralSchema[T LiteralType] struct {
	want    T
	expect  vld.Value
	display string
	desc    string
}

// Literal returns a schema accepting only want, compared structurally.
func Literal[T LiteralType](want T) LiteralSchema[T] {
	var expect vld.Value
	var display string
	switch x := any(want).(type) {
	case string:
		expect, display = vld.String(x), strconv.Quote(x)
	case int64:
		expect, display = vld.Int(x), strconv.FormatInt(x, 10)
	case float64:
		expect, display = vld.Number(x), vld.FormatNumber(x)
	case bool:
		expect, display = vld.Bool(x), strconv.FormatBool(x)
	default:
		// named types with a literal underlying type
		v := vld.MustValueOf(want)
		expect, display = v, v.JSON()
	}
	return LiteralSchema[T]{want: want, expect: expect, display: display}
}

func (s LiteralSchema[T]) Describe(text string) LiteralSchema[T] { s.desc = text; return s }

// Parse implements vld.Schema[T].
func (s LiteralSchema[T]) Parse(v vld.Value) (T, error) {
	if !vld.Equal(v, s.expect) {
		var zero T
		return zero, vld.NewIssuesWithValue(vld.CustomCode(vld.CustomInvalidLiteral),
			fmt.Sprintf("Expected literal %s, received %s", s.display, vld.FormatShort(v)), v)
	}
	return s.want, nil
}

// ParseValue implements vld.AnySchema.
func (s LiteralSchema[T]) ParseValue(v vld.Value) (vld.Value, error) {
	if _, err := s.Parse(v); err != nil {
		return vld.Value{}, err
	}
	return s.expect, nil
}

// Descriptor implements vld.Describer.
func (s LiteralSchema[T]) Descriptor() vld.Descriptor {
	c := s.expect
	return vld.Descriptor{Type: vld.TypeLiteral, Description: s.desc, Const: &c}
}
