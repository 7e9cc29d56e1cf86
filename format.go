package vld

import (
	"strings"
)

// ---- flatten ----

// FlatError groups messages for form-style display: root issues go to
// FormErrors, all others under the name of their first path segment.
type FlatError struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}

// Flatten groups issue messages by top-level field. Index segments are keyed
// by their bracket form, e.g. "[0]".
func Flatten(iss Issues) FlatError {
	out := FlatError{FormErrors: []string{}, FieldErrors: map[string][]string{}}
	for _, it := range iss {
		if it.Path.Root() {
			out.FormErrors = append(out.FormErrors, it.Message)
			continue
		}
		key := strings.TrimPrefix(it.Path[0].String(), ".")
		out.FieldErrors[key] = append(out.FieldErrors[key], it.Message)
	}
	return out
}

// ---- treeify ----

// ErrorTree mirrors the shape of the validated value. Items is indexed by
// array position; positions without issues hold nil.
type ErrorTree struct {
	Errors     []string              `json:"errors"`
	Properties map[string]*ErrorTree `json:"properties,omitempty"`
	Items      []*ErrorTree          `json:"items,omitempty"`
}

// Treeify builds an ErrorTree from iss.
func Treeify(iss Issues) *ErrorTree {
	root := &ErrorTree{Errors: []string{}}
	for _, it := range iss {
		cur := root
		for _, seg := range it.Path {
			cur = cur.child(seg)
		}
		cur.Errors = append(cur.Errors, it.Message)
	}
	return root
}

func (t *ErrorTree) child(seg PathSegment) *ErrorTree {
	if !seg.IsIndex {
		if t.Properties == nil {
			t.Properties = map[string]*ErrorTree{}
		}
		c, ok := t.Properties[seg.Name]
		if !ok {
			c = &ErrorTree{Errors: []string{}}
			t.Properties[seg.Name] = c
		}
		return c
	}
	for len(t.Items) <= seg.Index {
		t.Items = append(t.Items, nil)
	}
	if t.Items[seg.Index] == nil {
		t.Items[seg.Index] = &ErrorTree{Errors: []string{}}
	}
	return t.Items[seg.Index]
}

// ---- prettify ----

// Prettify renders iss for terminals:
//
//	✖ String must be at least 2 characters
//	  → at .name, received "a"
func Prettify(iss Issues) string {
	lines := make([]string, 0, len(iss)*2)
	for _, it := range iss {
		lines = append(lines, "✖ "+it.Message)
		var parts []string
		if !it.Path.Root() {
			parts = append(parts, "at "+it.Path.String())
		}
		if it.Received != nil {
			parts = append(parts, "received "+FormatShort(*it.Received))
		}
		if len(parts) > 0 {
			lines = append(lines, "  → "+strings.Join(parts, ", "))
		}
	}
	return strings.Join(lines, "\n")
}
