package dsl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/reoring/vld"
)

// EnumSchema accepts one of a fixed set of strings.
type EnumSchema struct {
	values []string
	desc   string
}

var (
	_ vld.Schema[string] = EnumSchema{}
	_ vld.AnySchema      = EnumSchema{}
)

// Enum returns a schema accepting exactly the given strings.
func Enum(values ...string) EnumSchema {
	if len(values) == 0 {
		panic("dsl: Enum requires at least one value")
	}
	return EnumSchema{values: slices.Clone(values)}
}

func (s EnumSchema) Describe(text string) EnumSchema { s.desc = text; return s }

// Options returns the accepted values in declaration order.
func (s EnumSchema) Options() []string { return slices.Clone(s.values) }

// Parse implements vld.Schema[string].
func (s EnumSchema) Parse(v vld.Value) (string, error) {
	str, ok := v.Str()
	if !ok {
		return "", typeIssue("string", v, "")
	}
	if slices.Contains(s.values, str) {
		return str, nil
	}
	quoted := make([]string, len(s.values))
	for i, o := range s.values {
		quoted[i] = strconv.Quote(o)
	}
	return "", vld.NewIssuesWithValue(vld.CustomCode(vld.CustomInvalidEnumValue),
		fmt.Sprintf("Invalid enum value: %q. Expected one of: %s", str, strings.Join(quoted, ", ")), v)
}

// ParseValue implements vld.AnySchema.
func (s EnumSchema) ParseValue(v vld.Value) (vld.Value, error) {
	str, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.String(str), nil
}

// Descriptor implements vld.Describer.
func (s EnumSchema) Descriptor() vld.Descriptor {
	d := vld.Descriptor{Type: vld.TypeEnum, Description: s.desc}
	for _, o := range s.values {
		d.Enum = append(d.Enum, vld.String(o))
	}
	return d
}
