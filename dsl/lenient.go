package dsl

import (
	"fmt"
	"strings"

	"github.com/reoring/vld"
)

// FieldResult is the outcome of one declared field in a lenient parse.
type FieldResult struct {
	Name   string
	Input  vld.Value
	Output vld.Value
	Issues vld.Issues
}

// OK reports whether the field passed.
func (f FieldResult) OK() bool { return len(f.Issues) == 0 }

// String renders "✔ name: value" for a valid field and one
// "✖ name: message (received: X)" line per issue otherwise.
func (f FieldResult) String() string {
	if f.OK() {
		return fmt.Sprintf("✔ %s: %s", f.Name, vld.FormatShort(f.Output))
	}
	received := vld.FormatShort(f.Input)
	lines := make([]string, len(f.Issues))
	for i, it := range f.Issues {
		lines[i] = fmt.Sprintf("✖ %s: %s (received: %s)", f.Name, it.Message, received)
	}
	return strings.Join(lines, "\n")
}

// LenientResult holds per-field diagnostics and the object assembled from
// the fields that passed.
type LenientResult struct {
	fields []FieldResult
	value  vld.Value
	// Issues is set when the input was not an object at all.
	Issues vld.Issues
}

// ParseLenient validates every declared field independently and never fails:
// invalid fields are left out of Value and reported in Fields. Unknown keys
// and conditional rules are not evaluated.
func (s ObjectSchema) ParseLenient(v vld.Value) LenientResult {
	if v.Kind() != vld.KindObject {
		return LenientResult{value: vld.Object(), Issues: typeIssue("object", v, "")}
	}
	res := LenientResult{fields: make([]FieldResult, 0, len(s.fields))}
	b := vld.NewObjectBuilder(len(s.fields))
	for _, f := range s.fields {
		in := v.Lookup(f.name)
		fr := FieldResult{Name: f.name, Input: in}
		out, err := f.schema.ParseValue(in)
		if err != nil {
			fr.Issues = issues(err)
		} else {
			fr.Output = out
			b.Set(f.name, out)
		}
		res.fields = append(res.fields, fr)
	}
	res.value = b.Build()
	return res
}

// Fields returns every field result in declaration order.
func (r LenientResult) Fields() []FieldResult { return r.fields }

// Field looks up the result of one field.
func (r LenientResult) Field(name string) (FieldResult, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldResult{}, false
}

func (r LenientResult) ValidFields() []FieldResult { return r.collect(true) }
func (r LenientResult) ErrorFields() []FieldResult { return r.collect(false) }

func (r LenientResult) collect(ok bool) []FieldResult {
	var out []FieldResult
	for _, f := range r.fields {
		if f.OK() == ok {
			out = append(out, f)
		}
	}
	return out
}

// IsValid reports whether the input was an object and every field passed.
func (r LenientResult) IsValid() bool { return len(r.Issues) == 0 && r.ErrorCount() == 0 }

func (r LenientResult) ValidCount() int { return len(r.collect(true)) }
func (r LenientResult) ErrorCount() int { return len(r.collect(false)) }

// Value is the object built from the valid fields.
func (r LenientResult) Value() vld.Value { return r.value }

// String renders one line per field result.
func (r LenientResult) String() string {
	if len(r.Issues) > 0 {
		return r.Issues.Error()
	}
	lines := make([]string, len(r.fields))
	for i, f := range r.fields {
		lines[i] = f.String()
	}
	return strings.Join(lines, "\n")
}
