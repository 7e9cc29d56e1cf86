package source

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/reoring/vld"
)

func decodeJSON(data []byte, o options) (vld.Value, error) {
	v, err := vld.ParseJSON(data)
	if err != nil {
		return vld.Value{}, vld.NewIssues(vld.ParseErrorCode(), "Invalid JSON: "+err.Error())
	}
	if o.duplicates == DuplicateError || o.maxDepth > 0 {
		if iss := scanJSON(data, o); len(iss) > 0 {
			return vld.Value{}, iss
		}
	}
	return v, nil
}

// jsonFrame tracks one open container during a token scan.
type jsonFrame struct {
	seg       vld.PathSegment
	object    bool
	keys      map[string]struct{}
	key       string
	expectKey bool
	next      int
}

// scanJSON walks well-formed JSON and reports duplicate keys (located at the
// enclosing object) and nesting deeper than the limit. A depth violation
// stops the scan.
func scanJSON(data []byte, o options) vld.Issues {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var (
		iss   vld.Issues
		stack []jsonFrame
	)
	path := func() vld.Path {
		p := make(vld.Path, 0, len(stack))
		for _, f := range stack[1:] {
			p = append(p, f.seg)
		}
		return p
	}
	// enter consumes the value slot of the current container and returns
	// the segment leading to the new value.
	enter := func() vld.PathSegment {
		if len(stack) == 0 {
			return vld.PathSegment{}
		}
		top := &stack[len(stack)-1]
		if top.object {
			top.expectKey = true
			return vld.FieldSeg(top.key)
		}
		seg := vld.IndexSeg(top.next)
		top.next++
		return seg
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return iss
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				seg := enter()
				stack = append(stack, jsonFrame{seg: seg, object: t == '{', keys: map[string]struct{}{}, expectKey: t == '{'})
				if o.maxDepth > 0 && len(stack) > o.maxDepth {
					return append(iss, depthIssue(path(), o.maxDepth))
				}
			case '}', ']':
				stack = stack[:len(stack)-1]
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectKey {
				top := &stack[n-1]
				if _, dup := top.keys[t]; dup && o.duplicates == DuplicateError {
					iss = append(iss, duplicateIssue(path(), t))
				}
				top.keys[t] = struct{}{}
				top.key = t
				top.expectKey = false
				continue
			}
			enter()
		default:
			enter()
		}
	}
}
