package vld

// Descriptor type names.
const (
	TypeUnknown       = "unknown"
	TypeAny           = "any"
	TypeString        = "string"
	TypeNumber        = "number"
	TypeInteger       = "integer"
	TypeBoolean       = "boolean"
	TypeNull          = "null"
	TypeLiteral       = "literal"
	TypeEnum          = "enum"
	TypeArray         = "array"
	TypeSet           = "set"
	TypeTuple         = "tuple"
	TypeRecord        = "record"
	TypeMap           = "map"
	TypeObject        = "object"
	TypeUnion         = "union"
	TypeDiscriminated = "discriminated_union"
	TypeIntersection  = "intersection"
	TypeLazy          = "lazy"
)

// Descriptor is static schema configuration for introspection tools
// (documentation, schema export, diffing). Parsing never reads it.
//
// Only the fields relevant to Type are set.
type Descriptor struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`

	// Number / Integer
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// String / Array / Set / Record lengths
	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty"`
	Checks    []string `json:"checks,omitempty"`

	// Literal / Enum
	Const *Value  `json:"const,omitempty"`
	Enum  []Value `json:"enum,omitempty"`

	// Object
	Properties           []Property  `json:"properties,omitempty"`
	UnknownKeys          string      `json:"unknownKeys,omitempty"`
	AdditionalProperties *Descriptor `json:"additionalProperties,omitempty"`
	Rules                []RuleInfo  `json:"rules,omitempty"`

	// Array / Set / Map / Tuple
	Items       *Descriptor  `json:"items,omitempty"`
	PrefixItems []Descriptor `json:"prefixItems,omitempty"`
	Keys        *Descriptor  `json:"keys,omitempty"`

	// Union / Intersection
	AnyOf []Descriptor `json:"anyOf,omitempty"`
	AllOf []Descriptor `json:"allOf,omitempty"`

	// Discriminated union
	Discriminator string        `json:"discriminator,omitempty"`
	Variants      []VariantInfo `json:"variants,omitempty"`

	// Modifiers
	Nullable bool   `json:"nullable,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Default  *Value `json:"default,omitempty"`
}

// Property describes one declared object field.
type Property struct {
	Name     string     `json:"name"`
	Required bool       `json:"required"`
	Schema   Descriptor `json:"schema"`
}

// RuleInfo describes one conditional object rule.
type RuleInfo struct {
	When   string     `json:"when"`
	Equals Value      `json:"equals"`
	Target string     `json:"target"`
	Schema Descriptor `json:"schema"`
}

// VariantInfo describes one discriminated-union variant.
type VariantInfo struct {
	Tag    Value      `json:"tag"`
	Schema Descriptor `json:"schema"`
}

// Property returns the declared property name, if present.
func (d Descriptor) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// RequiredNames lists the required property names in declaration order.
func (d Descriptor) RequiredNames() []string {
	var out []string
	for _, p := range d.Properties {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}

// IntPtr and FloatPtr are small helpers for populating bounds.
func IntPtr(n int) *int           { return &n }
func FloatPtr(f float64) *float64 { return &f }
