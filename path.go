package vld

import (
	"strconv"
	"strings"
)

// PathSegment is one step from a parent value to a child: an object field or
// an array index.
type PathSegment struct {
	Name    string
	Index   int
	IsIndex bool
}

// FieldSeg returns a segment addressing the object member name.
func FieldSeg(name string) PathSegment { return PathSegment{Name: name} }

// IndexSeg returns a segment addressing the array element i.
func IndexSeg(i int) PathSegment { return PathSegment{Index: i, IsIndex: true} }

// String renders ".name" or "[i]".
func (s PathSegment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return "." + s.Name
}

// Path lists segments root to leaf. The empty path is the root.
type Path []PathSegment

// String concatenates the segments, e.g. ".items[2].price". The root renders
// as the empty string.
func (p Path) String() string {
	var b strings.Builder
	for _, s := range p {
		b.WriteString(s.String())
	}
	return b.String()
}

// Pointer renders p as an RFC 6901 JSON Pointer, e.g. /items/2/price.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range p {
		b.WriteByte('/')
		if s.IsIndex {
			b.WriteString(strconv.Itoa(s.Index))
			continue
		}
		// escape '~' -> '~0', '/' -> '~1' per RFC6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(s.Name, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// Field returns a new path with a field segment appended.
func (p Path) Field(name string) Path { return p.append(FieldSeg(name)) }

// Index returns a new path with an index segment appended.
func (p Path) Index(i int) Path { return p.append(IndexSeg(i)) }

func (p Path) append(s PathSegment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Root reports whether p addresses the root value.
func (p Path) Root() bool { return len(p) == 0 }
