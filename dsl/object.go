package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

type objectField struct {
	name   string
	schema vld.AnySchema
}

type whenRule struct {
	cond   string
	equals vld.Value
	target string
	schema vld.AnySchema
}

// ShapeField is one declared field as reported by ObjectSchema.Shape.
type ShapeField struct {
	Name   string
	Schema vld.AnySchema
}

// ObjectSchema validates JSON objects field by field. It is immutable: every
// builder method returns a new schema and leaves the receiver untouched, so a
// base schema can be shared and specialised freely.
//
// Parsing never stops at the first failure. Declared fields are checked in
// declaration order, then unknown keys, then conditional rules, and all
// issues are returned together.
type ObjectSchema struct {
	fields   []objectField
	mode     vld.UnknownMode
	catchAll vld.AnySchema
	rules    []whenRule
	desc     string
}

var (
	_ vld.Schema[vld.Value] = ObjectSchema{}
	_ vld.AnySchema         = ObjectSchema{}
	_ vld.Describer         = ObjectSchema{}
)

// Object returns an empty object schema in strip mode.
func Object() ObjectSchema { return ObjectSchema{} }

// Field declares a field. A missing field is read as null, so the schema
// decides whether absence is an error. Declaring a name twice panics.
func (s ObjectSchema) Field(name string, schema vld.AnySchema) ObjectSchema {
	if schema == nil {
		panic(fmt.Sprintf("dsl: field %q has a nil schema", name))
	}
	if s.index(name) >= 0 {
		panic(fmt.Sprintf("dsl: duplicate field %q", name))
	}
	s.fields = cloneAppend(s.fields, objectField{name: name, schema: schema})
	return s
}

// FieldOptional declares a field whose null or missing value yields null.
func (s ObjectSchema) FieldOptional(name string, schema vld.AnySchema) ObjectSchema {
	if schema == nil {
		panic(fmt.Sprintf("dsl: field %q has a nil schema", name))
	}
	return s.Field(name, optionalField{inner: schema})
}

// Strict reports every unknown key as unrecognized_field.
func (s ObjectSchema) Strict() ObjectSchema { s.mode = vld.UnknownStrict; return s }

// Strip drops unknown keys. This is the default.
func (s ObjectSchema) Strip() ObjectSchema { s.mode = vld.UnknownStrip; return s }

// Passthrough copies unknown keys into the result unchanged.
func (s ObjectSchema) Passthrough() ObjectSchema { s.mode = vld.UnknownPassthrough; return s }

// CatchAll validates every unknown key with schema. While set, the unknown
// key mode is ignored.
func (s ObjectSchema) CatchAll(schema vld.AnySchema) ObjectSchema {
	if schema == nil {
		panic("dsl: CatchAll of nil schema")
	}
	s.catchAll = schema
	return s
}

// When adds a conditional rule: if the raw value of cond equals equals, the
// raw value of target must also satisfy schema. The rule only adds issues;
// the output of target is still the one produced by its declared field.
// equals may be a vld.Value or any Go value vld.ValueOf accepts.
func (s ObjectSchema) When(cond string, equals any, target string, schema vld.AnySchema) ObjectSchema {
	if schema == nil {
		panic("dsl: When requires a schema")
	}
	want, err := vld.ValueOf(equals)
	if err != nil {
		panic(fmt.Sprintf("dsl: When condition value: %v", err))
	}
	s.rules = cloneAppend(s.rules, whenRule{cond: cond, equals: want, target: target, schema: schema})
	return s
}

func (s ObjectSchema) Describe(text string) ObjectSchema { s.desc = text; return s }

// ---- parse ----

// Parse implements vld.Schema[vld.Value]. The result is an object whose
// members follow declaration order, then unknown keys in input order.
func (s ObjectSchema) Parse(v vld.Value) (vld.Value, error) {
	if v.Kind() != vld.KindObject {
		return vld.Value{}, typeIssue("object", v, "")
	}
	var iss vld.Issues
	b := vld.NewObjectBuilder(len(s.fields))

	for _, f := range s.fields {
		out, err := f.schema.ParseValue(v.Lookup(f.name))
		if err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.FieldSeg(f.name)))
			continue
		}
		b.Set(f.name, out)
	}

	for _, m := range v.Members() {
		if s.index(m.Key) >= 0 {
			continue
		}
		switch {
		case s.catchAll != nil:
			out, err := s.catchAll.ParseValue(m.Value)
			if err != nil {
				iss = iss.Merge(issues(err).WithPrefix(vld.FieldSeg(m.Key)))
				continue
			}
			b.Set(m.Key, out)
		case s.mode == vld.UnknownStrict:
			one := vld.NewIssuesWithValue(vld.UnrecognizedFieldCode(), fmt.Sprintf("Unrecognized field: %q", m.Key), m.Value)
			iss = iss.Merge(one.WithPrefix(vld.FieldSeg(m.Key)))
		case s.mode == vld.UnknownPassthrough:
			b.Set(m.Key, m.Value)
		}
	}

	for _, r := range s.rules {
		if !vld.Equal(v.Lookup(r.cond), r.equals) {
			continue
		}
		if _, err := r.schema.ParseValue(v.Lookup(r.target)); err != nil {
			iss = iss.Merge(issues(err).WithPrefix(vld.FieldSeg(r.target)))
		}
	}

	if len(iss) > 0 {
		return vld.Value{}, iss
	}
	return b.Build(), nil
}

// ParseValue implements vld.AnySchema.
func (s ObjectSchema) ParseValue(v vld.Value) (vld.Value, error) { return s.Parse(v) }

// ParseMap is Parse with the result flattened into a map.
func (s ObjectSchema) ParseMap(v vld.Value) (map[string]vld.Value, error) {
	out, err := s.Parse(v)
	if err != nil {
		return nil, err
	}
	members := out.Members()
	m := make(map[string]vld.Value, len(members))
	for _, mem := range members {
		m[mem.Key] = mem.Value
	}
	return m, nil
}

// ---- shape transforms ----

// Partial makes every declared field accept null or absence, which then
// yields null.
func (s ObjectSchema) Partial() ObjectSchema {
	return s.mapFields(func(f objectField) vld.AnySchema { return optionalField{inner: f.schema} })
}

// DeepPartial is Partial. Nested object schemas are not rewritten; apply
// Partial to them explicitly.
func (s ObjectSchema) DeepPartial() ObjectSchema { return s.Partial() }

// Required makes every declared field reject null or absence with
// missing_field, including fields that were optional.
func (s ObjectSchema) Required() ObjectSchema {
	return s.mapFields(func(f objectField) vld.AnySchema { return requiredField{inner: f.schema} })
}

// Pick keeps only the named fields, in their declared order. Unknown names
// are ignored.
func (s ObjectSchema) Pick(names ...string) ObjectSchema {
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	return s.filter(func(f objectField) bool { return keep[f.name] })
}

// Omit drops the named fields.
func (s ObjectSchema) Omit(names ...string) ObjectSchema {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	return s.filter(func(f objectField) bool { return !drop[f.name] })
}

// Extend adds the fields of other. A field that already exists is removed
// and the incoming one appended, so overriding a field moves it to the end
// of the declaration order. The receiver keeps its own mode, catch-all and
// rules.
func (s ObjectSchema) Extend(other ObjectSchema) ObjectSchema {
	fields := cloneAppend[objectField](nil, s.fields...)
	for _, in := range other.fields {
		for i, f := range fields {
			if f.name == in.name {
				fields = append(fields[:i:i], fields[i+1:]...)
				break
			}
		}
		fields = append(fields, in)
	}
	s.fields = fields
	return s
}

// Merge is Extend.
func (s ObjectSchema) Merge(other ObjectSchema) ObjectSchema { return s.Extend(other) }

// KeyOf lists the declared field names in order.
func (s ObjectSchema) KeyOf() []string {
	keys := make([]string, len(s.fields))
	for i, f := range s.fields {
		keys[i] = f.name
	}
	return keys
}

// Shape lists the declared fields with their schemas, in order.
func (s ObjectSchema) Shape() []ShapeField {
	out := make([]ShapeField, len(s.fields))
	for i, f := range s.fields {
		out[i] = ShapeField{Name: f.name, Schema: f.schema}
	}
	return out
}

// UnknownMode reports how unknown keys are handled when no catch-all is set.
func (s ObjectSchema) UnknownMode() vld.UnknownMode { return s.mode }

func (s ObjectSchema) index(name string) int {
	for i, f := range s.fields {
		if f.name == name {
			return i
		}
	}
	return -1
}

func (s ObjectSchema) mapFields(fn func(objectField) vld.AnySchema) ObjectSchema {
	fields := make([]objectField, len(s.fields))
	for i, f := range s.fields {
		fields[i] = objectField{name: f.name, schema: fn(f)}
	}
	s.fields = fields
	return s
}

func (s ObjectSchema) filter(keep func(objectField) bool) ObjectSchema {
	var fields []objectField
	for _, f := range s.fields {
		if keep(f) {
			fields = append(fields, f)
		}
	}
	s.fields = fields
	return s
}

// Descriptor implements vld.Describer. A property is required unless its
// schema is optional, nullable or has a default.
func (s ObjectSchema) Descriptor() vld.Descriptor {
	d := vld.Descriptor{Type: vld.TypeObject, Description: s.desc, UnknownKeys: s.mode.String()}
	for _, f := range s.fields {
		fd := describe(f.schema)
		d.Properties = append(d.Properties, vld.Property{
			Name:     f.name,
			Required: !fd.Optional && !fd.Nullable && fd.Default == nil,
			Schema:   fd,
		})
	}
	if s.catchAll != nil {
		extra := describe(s.catchAll)
		d.AdditionalProperties = &extra
	}
	for _, r := range s.rules {
		d.Rules = append(d.Rules, vld.RuleInfo{When: r.cond, Equals: r.equals, Target: r.target, Schema: describe(r.schema)})
	}
	return d
}

// ---- erased field wrappers ----

// optionalField maps null to null and delegates everything else.
type optionalField struct{ inner vld.AnySchema }

func (f optionalField) ParseValue(v vld.Value) (vld.Value, error) {
	if v.IsNull() {
		return vld.Null(), nil
	}
	return f.inner.ParseValue(v)
}

func (f optionalField) Descriptor() vld.Descriptor {
	d := describe(f.inner)
	d.Optional = true
	return d
}

// requiredField rejects null before delegating.
type requiredField struct{ inner vld.AnySchema }

func (f requiredField) ParseValue(v vld.Value) (vld.Value, error) {
	if v.IsNull() {
		return vld.Value{}, vld.NewIssues(vld.MissingFieldCode(), "Required field is missing or null")
	}
	return f.inner.ParseValue(v)
}

func (f requiredField) Descriptor() vld.Descriptor {
	d := describe(f.inner)
	d.Optional, d.Nullable, d.Default = false, false, nil
	return d
}
