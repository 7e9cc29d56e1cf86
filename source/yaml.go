package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/vld"
)

// decodeYAML converts the first document of data. Mapping order is kept,
// aliases are resolved and scalar tags map onto Value kinds.
func decodeYAML(data []byte, o options) (vld.Value, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return vld.Null(), nil
		}
		return vld.Value{}, vld.NewIssues(vld.ParseErrorCode(), "Invalid YAML: "+err.Error())
	}
	c := yamlConverter{opts: o, active: map[*yaml.Node]bool{}}
	v, err := c.convert(&root, nil, 0)
	if err != nil {
		return vld.Value{}, vld.NewIssues(vld.ParseErrorCode(), "Invalid YAML: "+err.Error())
	}
	if len(c.issues) > 0 {
		return vld.Value{}, c.issues
	}
	return v, nil
}

type yamlConverter struct {
	opts    options
	issues  vld.Issues
	tooDeep bool
	active  map[*yaml.Node]bool
}

// convert returns an error for input that has no JSON counterpart; policy
// violations are collected on the converter instead.
func (c *yamlConverter) convert(n *yaml.Node, path vld.Path, depth int) (vld.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return vld.Null(), nil
		}
		return c.convert(n.Content[0], path, depth)
	case yaml.AliasNode:
		if c.active[n.Alias] {
			return vld.Value{}, fmt.Errorf("line %d: alias %q refers to its own ancestor", n.Line, n.Value)
		}
		return c.convert(n.Alias, path, depth)
	case yaml.MappingNode:
		if c.exceeds(path, depth) {
			return vld.Null(), nil
		}
		c.active[n] = true
		defer delete(c.active, n)
		b := vld.NewObjectBuilder(len(n.Content) / 2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, val := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return vld.Value{}, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			if b.Has(k.Value) && c.opts.duplicates == DuplicateError {
				c.issues = append(c.issues, duplicateIssue(path, k.Value))
			}
			child, err := c.convert(val, path.Field(k.Value), depth+1)
			if err != nil {
				return vld.Value{}, err
			}
			b.Set(k.Value, child)
		}
		return b.Build(), nil
	case yaml.SequenceNode:
		if c.exceeds(path, depth) {
			return vld.Null(), nil
		}
		c.active[n] = true
		defer delete(c.active, n)
		items := make([]vld.Value, 0, len(n.Content))
		for i, e := range n.Content {
			child, err := c.convert(e, path.Index(i), depth+1)
			if err != nil {
				return vld.Value{}, err
			}
			items = append(items, child)
		}
		return vld.Array(items...), nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return vld.Null(), nil
}

// exceeds reports whether a container at depth breaks the nesting limit.
// Only the first violation is recorded.
func (c *yamlConverter) exceeds(path vld.Path, depth int) bool {
	if c.opts.maxDepth <= 0 || depth < c.opts.maxDepth {
		return false
	}
	if !c.tooDeep {
		c.tooDeep = true
		c.issues = append(c.issues, depthIssue(path, c.opts.maxDepth))
	}
	return true
}

func scalar(n *yaml.Node) (vld.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return vld.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return vld.Value{}, err
		}
		return vld.Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return vld.Value{}, err
		}
		return vld.Number(f), nil
	}
	return vld.String(n.Value), nil
}
