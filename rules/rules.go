// Package rules builds cross-field checks for dsl.SuperRefine over object
// outputs. Fields are addressed with JSON Pointers such as "/status" or
// "/items/0/sku"; a leading slash is optional.
package rules

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/vld"
)

// Rule inspects a parsed value and appends issues.
type Rule = func(vld.Value, *vld.Issues)

// Op is a comparison operator for If.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Condition is a predicate over a parsed value.
type Condition struct {
	path string
	op   Op
	want vld.Value
	all  []Condition // composite AND
	any  []Condition // composite OR
}

// If compares the value at path with want. want may be a vld.Value or any Go
// value vld.ValueOf accepts; it panics otherwise. Numbers compare
// numerically and strings lexically; Eq and Ne use structural equality. A
// missing path never satisfies the condition.
func If(path string, op Op, want any) Condition {
	w, err := vld.ValueOf(want)
	if err != nil {
		panic(fmt.Sprintf("rules: If %s: %v", path, err))
	}
	return Condition{path: normalizePath(path), op: op, want: w}
}

// IfAll holds when every condition holds.
func IfAll(conds ...Condition) Condition { return Condition{all: conds} }

// IfAny holds when at least one condition holds.
func IfAny(conds ...Condition) Condition { return Condition{any: conds} }

// And combines the receiver with others using logical AND.
func (c Condition) And(others ...Condition) Condition {
	return IfAll(append([]Condition{c}, others...)...)
}

// Or combines the receiver with others using logical OR.
func (c Condition) Or(others ...Condition) Condition {
	return IfAny(append([]Condition{c}, others...)...)
}

// Holds evaluates the condition against v.
func (c Condition) Holds(v vld.Value) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !it.Holds(v) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if it.Holds(v) {
				return true
			}
		}
		return false
	}
	cur, _, ok := lookup(v, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// Then runs rules when the condition holds.
func (c Condition) Then(rules ...Rule) Rule {
	return func(v vld.Value, iss *vld.Issues) {
		if c.Holds(v) {
			And(rules...)(v, iss)
		}
	}
}

// And runs every rule.
func And(rules ...Rule) Rule {
	return func(v vld.Value, iss *vld.Issues) {
		for _, r := range rules {
			if r != nil {
				r(v, iss)
			}
		}
	}
}

// Or passes when any rule adds no issue. When all fail, the issues of the
// branch that reported the fewest are kept.
func Or(rules ...Rule) Rule {
	return func(v vld.Value, iss *vld.Issues) {
		var best vld.Issues
		tried := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			var branch vld.Issues
			r(v, &branch)
			if len(branch) == 0 {
				return
			}
			if !tried || len(branch) < len(best) {
				best = branch
				tried = true
			}
		}
		*iss = iss.Merge(best)
	}
}

// AtLeastOne requires the array at path to be non-empty. A missing path or a
// value that is not an array is left to the schema.
func AtLeastOne(path string) Rule {
	p := normalizePath(path)
	return func(v vld.Value, iss *vld.Issues) {
		cur, at, ok := lookup(v, p)
		if !ok || cur.Kind() != vld.KindArray || cur.Len() > 0 {
			return
		}
		iss.AddAt(at, vld.TooSmallCode(1, true), "At least 1 item is required")
	}
}

// UniqueBy requires the elements of the array at collectionPath to have
// distinct values at keyPath, a pointer relative to each element. Every
// repeat is reported at its own key with custom code "duplicate". Elements
// without the key are skipped.
func UniqueBy(collectionPath, keyPath string) Rule {
	cp := normalizePath(collectionPath)
	kp := normalizePath(keyPath)
	return func(v vld.Value, iss *vld.Issues) {
		coll, at, ok := lookup(v, cp)
		if !ok || coll.Kind() != vld.KindArray {
			return
		}
		var seen []vld.Value
		var first []int
		for i, elem := range coll.Items() {
			key, rel, ok := lookup(elem, kp)
			if !ok {
				continue
			}
			j := indexOf(seen, key)
			if j < 0 {
				seen = append(seen, key)
				first = append(first, i)
				continue
			}
			path := append(at.Index(i), rel...)
			iss.AddAt(path, vld.CustomCode("duplicate"),
				fmt.Sprintf("Duplicate value %s (first at index %d)", vld.FormatShort(key), first[j]))
		}
	}
}

// RequiredWith requires every field in others to be present and non-null
// whenever field is.
func RequiredWith(field string, others ...string) Rule {
	fp := normalizePath(field)
	return func(v vld.Value, iss *vld.Issues) {
		if cur, _, ok := lookup(v, fp); !ok || cur.IsNull() {
			return
		}
		for _, o := range others {
			op := normalizePath(o)
			if cur, _, ok := lookup(v, op); ok && !cur.IsNull() {
				continue
			}
			iss.AddAt(pointerPath(op), vld.MissingFieldCode(),
				fmt.Sprintf("Required when %s is set", strings.TrimPrefix(fp, "/")))
		}
	}
}

// ------- helpers -------

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

func segments(pointer string) []string {
	rel := strings.TrimPrefix(pointer, "/")
	if rel == "" {
		return nil
	}
	parts := strings.Split(rel, "/")
	for i, s := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return parts
}

// lookup resolves pointer against v and returns the value with its issue
// path. Array segments must be indexes.
func lookup(v vld.Value, pointer string) (vld.Value, vld.Path, bool) {
	var path vld.Path
	cur := v
	for _, seg := range segments(pointer) {
		switch cur.Kind() {
		case vld.KindObject:
			next, ok := cur.Get(seg)
			if !ok {
				return vld.Value{}, nil, false
			}
			cur, path = next, path.Field(seg)
		case vld.KindArray:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= cur.Len() {
				return vld.Value{}, nil, false
			}
			cur, path = cur.Index(i), path.Index(i)
		default:
			return vld.Value{}, nil, false
		}
	}
	return cur, path, true
}

// pointerPath turns a pointer into field segments without a value to guide
// index detection.
func pointerPath(pointer string) vld.Path {
	var p vld.Path
	for _, seg := range segments(pointer) {
		p = p.Field(seg)
	}
	return p
}

func indexOf(vs []vld.Value, v vld.Value) int {
	for i, x := range vs {
		if vld.Equal(x, v) {
			return i
		}
	}
	return -1
}

func compare(cur vld.Value, op Op, want vld.Value) bool {
	switch op {
	case Eq:
		return vld.Equal(cur, want)
	case Ne:
		return !vld.Equal(cur, want)
	}
	var c int
	if a, ok := cur.Number(); ok {
		b, ok := want.Number()
		if !ok {
			return false
		}
		c = cmp.Compare(a, b)
	} else if a, ok := cur.Str(); ok {
		b, ok := want.Str()
		if !ok {
			return false
		}
		c = strings.Compare(a, b)
	} else {
		return false
	}
	switch op {
	case Lt:
		return c < 0
	case Le:
		return c <= 0
	case Gt:
		return c > 0
	case Ge:
		return c >= 0
	}
	return false
}
