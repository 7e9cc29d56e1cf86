package vld

import (
	"slices"
)

// Kind enumerates the JSON data model kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the type name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "null"
	}
}

// Value is an immutable JSON value. The zero Value is null.
//
// Objects keep member insertion order and unique keys. Accessors returning
// slices hand out copies so a Value can be shared freely.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *object
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

type object struct {
	members []Member
	index   map[string]int
}

// ---- constructors ----

func Null() Value                      { return Value{} }
func Bool(b bool) Value                { return Value{kind: KindBool, b: b} }
func Number(f float64) Value           { return Value{kind: KindNumber, n: f} }
func Int(i int64) Value                { return Value{kind: KindNumber, n: float64(i)} }
func String(s string) Value            { return Value{kind: KindString, s: s} }
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// Array builds an array value from items. The slice is copied.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: slices.Clone(items)}
}

// Object builds an object from members. A repeated key keeps the position of
// its first occurrence and the value of its last.
func Object(members ...Member) Value {
	o := &object{
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		o.set(m.Key, m.Value)
	}
	return Value{kind: KindObject, obj: o}
}

func (o *object) set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = v
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: v})
}

// ObjectBuilder accumulates members and produces an object Value. It is not
// safe for concurrent use; the Value it builds is.
type ObjectBuilder struct {
	o *object
}

// NewObjectBuilder returns a builder with room for n members.
func NewObjectBuilder(n int) *ObjectBuilder {
	return &ObjectBuilder{o: &object{members: make([]Member, 0, n), index: make(map[string]int, n)}}
}

// Set inserts or replaces key.
func (b *ObjectBuilder) Set(key string, v Value) *ObjectBuilder {
	b.o.set(key, v)
	return b
}

// Has reports whether key was set.
func (b *ObjectBuilder) Has(key string) bool {
	_, ok := b.o.index[key]
	return ok
}

// Build returns the object and detaches the builder from it.
func (b *ObjectBuilder) Build() Value {
	v := Value{kind: KindObject, obj: b.o}
	b.o = &object{index: map[string]int{}}
	return v
}

// ---- accessors ----

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Number returns the numeric payload.
func (v Value) Number() (float64, bool) { return v.n, v.kind == KindNumber }

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.s, v.kind == KindString }

// Items returns a copy of the array elements, or nil for non-arrays.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return slices.Clone(v.arr)
}

// Len returns the element count of an array, the member count of an object,
// and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj.members)
	}
	return 0
}

// Index returns the i-th array element, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return Value{}
	}
	return v.arr[i]
}

// Get returns the member value for key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	i, ok := v.obj.index[key]
	if !ok {
		return Value{}, false
	}
	return v.obj.members[i].Value, true
}

// Lookup returns the member value for key, or null when absent.
func (v Value) Lookup(key string) Value {
	out, _ := v.Get(key)
	return out
}

// Has reports whether the object has key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Keys returns object keys in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.obj.members))
	for i, m := range v.obj.members {
		keys[i] = m.Key
	}
	return keys
}

// Members returns a copy of the object members in insertion order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return slices.Clone(v.obj.members)
}

// ---- equality ----

// Equal reports structural equality. Object member order is not significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.obj.members) != len(b.obj.members) {
			return false
		}
		for _, m := range a.obj.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// Equal is the method form of Equal.
func (v Value) Equal(other Value) bool { return Equal(v, other) }
