package dsl

import (
	"fmt"
	"strings"

	"github.com/reoring/vld"
)

// VariantCase pairs a discriminator tag with the schema of its variant.
type VariantCase struct {
	tag    vld.Value
	schema vld.AnySchema
}

// Variant builds a case for DiscriminatedUnion. tag may be a vld.Value or
// any Go value vld.ValueOf accepts.
func Variant(tag any, schema vld.AnySchema) VariantCase {
	if schema == nil {
		panic("dsl: Variant of nil schema")
	}
	tv, err := vld.ValueOf(tag)
	if err != nil {
		panic(fmt.Sprintf("dsl: Variant tag: %v", err))
	}
	return VariantCase{tag: tv, schema: schema}
}

// VariantOf is Variant for the common string tag.
func VariantOf(tag string, schema vld.AnySchema) VariantCase {
	return Variant(vld.String(tag), schema)
}

// Tag returns the discriminator value of the case.
func (c VariantCase) Tag() vld.Value { return c.tag }

// DiscriminatedUnionSchema dispatches on the value of one object key.
type DiscriminatedUnionSchema struct {
	key      string
	variants []VariantCase
	desc     string
}

var (
	_ vld.Schema[vld.Value] = DiscriminatedUnionSchema{}
	_ vld.AnySchema         = DiscriminatedUnionSchema{}
)

// DiscriminatedUnion returns a schema that reads key from the input object
// and parses the whole object with the first variant whose tag equals it.
// Unlike Union, issues of the selected variant are reported unchanged.
func DiscriminatedUnion(key string, variants ...VariantCase) DiscriminatedUnionSchema {
	if len(variants) == 0 {
		panic("dsl: DiscriminatedUnion requires at least one variant")
	}
	return DiscriminatedUnionSchema{key: key, variants: cloneAppend[VariantCase](nil, variants...)}
}

func (s DiscriminatedUnionSchema) Describe(text string) DiscriminatedUnionSchema {
	s.desc = text
	return s
}

// Key returns the discriminator key.
func (s DiscriminatedUnionSchema) Key() string { return s.key }

// Parse implements vld.Schema[vld.Value].
func (s DiscriminatedUnionSchema) Parse(v vld.Value) (vld.Value, error) {
	if v.Kind() != vld.KindObject {
		return vld.Value{}, typeIssue("object", v, "")
	}
	tag, ok := v.Get(s.key)
	if !ok {
		return vld.Value{}, vld.NewIssues(vld.MissingFieldCode(), fmt.Sprintf("Missing discriminator field %q", s.key))
	}
	for _, c := range s.variants {
		if vld.Equal(tag, c.tag) {
			return c.schema.ParseValue(v)
		}
	}
	known := make([]string, len(s.variants))
	for i, c := range s.variants {
		known[i] = tagString(c.tag)
	}
	return vld.Value{}, vld.NewIssuesWithValue(vld.CustomCode(vld.CustomInvalidDiscrim),
		fmt.Sprintf("Invalid discriminator value %s. Expected one of: %s", tag.JSON(), strings.Join(known, ", ")), tag)
}

// tagString prints string tags bare and everything else as JSON.
func tagString(v vld.Value) string {
	if s, ok := v.Str(); ok {
		return s
	}
	return v.JSON()
}

// ParseValue implements vld.AnySchema.
func (s DiscriminatedUnionSchema) ParseValue(v vld.Value) (vld.Value, error) { return s.Parse(v) }

// Descriptor implements vld.Describer.
func (s DiscriminatedUnionSchema) Descriptor() vld.Descriptor {
	d := vld.Descriptor{Type: vld.TypeDiscriminated, Description: s.desc, Discriminator: s.key}
	for _, c := range s.variants {
		d.Variants = append(d.Variants, vld.VariantInfo{Tag: c.tag, Schema: describe(c.schema)})
	}
	return d
}
