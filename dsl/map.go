package dsl

import (
	"github.com/reoring/vld"
)

const mapEntryMsg = "Each Map entry must be a [key, value] array of length 2"

// MapSchema validates an array of [key, value] pairs. Keys are arbitrary
// schemas, so maps with non-string keys survive a JSON round trip.
type MapSchema[K comparable, V any] struct {
	key   vld.Schema[K]
	value vld.Schema[V]
	desc  string
}

// Map returns a schema for [key, value] pair arrays. A later entry with an
// equal key replaces an earlier one.
func Map[K comparable, V any](key vld.Schema[K], value vld.Schema[V]) MapSchema[K, V] {
	if key == nil || value == nil {
		panic("dsl: Map requires a key and a value schema")
	}
	return MapSchema[K, V]{key: key, value: value}
}

func (s MapSchema[K, V]) Describe(text string) MapSchema[K, V] { s.desc = text; return s }

// entries checks the outer shape and yields each well-formed pair. Malformed
// entries are reported at their index and skipped.
func (s MapSchema[K, V]) entries(v vld.Value, each func(i int, k, val vld.Value) vld.Issues) vld.Issues {
	if v.Kind() != vld.KindArray {
		return typeIssue("array", v, "Expected array of [key, value] pairs, received "+vld.TypeName(v))
	}
	var iss vld.Issues
	for i := 0; i < v.Len(); i++ {
		e := v.Index(i)
		if e.Kind() != vld.KindArray || e.Len() != 2 {
			one := vld.NewIssuesWithValue(vld.CustomCode(vld.CustomInvalidMapEntry), mapEntryMsg, e)
			iss = iss.Merge(one.WithPrefix(vld.IndexSeg(i)))
			continue
		}
		iss = iss.Merge(each(i, e.Index(0), e.Index(1)).WithPrefix(vld.IndexSeg(i)))
	}
	return iss
}

// Parse implements vld.Schema[map[K]V].
func (s MapSchema[K, V]) Parse(v vld.Value) (map[K]V, error) {
	out := make(map[K]V)
	iss := s.entries(v, func(_ int, kv, vv vld.Value) vld.Issues {
		var local vld.Issues
		k, kerr := s.key.Parse(kv)
		if kerr != nil {
			local = local.Merge(issues(kerr))
		}
		val, verr := s.value.Parse(vv)
		if verr != nil {
			local = local.Merge(issues(verr))
		}
		if len(local) == 0 {
			out[k] = val
		}
		return local
	})
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// ParseValue implements vld.AnySchema. The output is again a pair array,
// deduplicated by key with the first position kept and the last value winning.
func (s MapSchema[K, V]) ParseValue(v vld.Value) (vld.Value, error) {
	var keys, values []vld.Value
	iss := s.entries(v, func(_ int, kv, vv vld.Value) vld.Issues {
		var local vld.Issues
		k, kerr := erase(s.key, kv)
		if kerr != nil {
			local = local.Merge(issues(kerr))
		}
		val, verr := erase(s.value, vv)
		if verr != nil {
			local = local.Merge(issues(verr))
		}
		if len(local) > 0 {
			return local
		}
		for j := range keys {
			if vld.Equal(keys[j], k) {
				values[j] = val
				return nil
			}
		}
		keys = append(keys, k)
		values = append(values, val)
		return nil
	})
	if len(iss) > 0 {
		return vld.Value{}, iss
	}
	pairs := make([]vld.Value, len(keys))
	for i := range keys {
		pairs[i] = vld.Array(keys[i], values[i])
	}
	return vld.Array(pairs...), nil
}

// Descriptor implements vld.Describer.
func (s MapSchema[K, V]) Descriptor() vld.Descriptor {
	keys, values := describe(s.key), describe(s.value)
	return vld.Descriptor{Type: vld.TypeMap, Description: s.desc, Keys: &keys, Items: &values}
}
