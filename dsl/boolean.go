package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

// BooleanSchema validates JSON booleans.
type BooleanSchema struct {
	coerce  bool
	typeMsg string
	desc    string
}

var (
	_ vld.Schema[bool] = BooleanSchema{}
	_ vld.AnySchema    = BooleanSchema{}
)

// Boolean returns a boolean schema.
func Boolean() BooleanSchema { return BooleanSchema{} }

// Bool is an alias of Boolean.
func Bool() BooleanSchema { return BooleanSchema{} }

// Coerce accepts "true"/"1", "false"/"0" and numbers (0 is false).
func (s BooleanSchema) Coerce() BooleanSchema { s.coerce = true; return s }

func (s BooleanSchema) TypeError(msg string) BooleanSchema { s.typeMsg = msg; return s }

func (s BooleanSchema) Describe(text string) BooleanSchema { s.desc = text; return s }

// Parse implements vld.Schema[bool].
func (s BooleanSchema) Parse(v vld.Value) (bool, error) {
	if b, ok := v.Bool(); ok {
		return b, nil
	}
	if s.coerce {
		switch v.Kind() {
		case vld.KindString:
			str, _ := v.Str()
			switch str {
			case "true", "1":
				return true, nil
			case "false", "0":
				return false, nil
			}
			msg := s.typeMsg
			if msg == "" {
				msg = fmt.Sprintf("Cannot coerce %q to boolean", str)
			}
			return false, vld.NewIssuesWithValue(vld.InvalidTypeCode("boolean", "string"), msg, v)
		case vld.KindNumber:
			n, _ := v.Number()
			return n != 0, nil
		}
	}
	return false, typeIssue("boolean", v, s.typeMsg)
}

// ParseValue implements vld.AnySchema.
func (s BooleanSchema) ParseValue(v vld.Value) (vld.Value, error) {
	b, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.Bool(b), nil
}

// Descriptor implements vld.Describer.
func (s BooleanSchema) Descriptor() vld.Descriptor {
	return vld.Descriptor{Type: vld.TypeBoolean, Description: s.desc}
}
