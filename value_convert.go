package vld

import (
	"encoding/base64"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"time"

	json "github.com/goccy/go-json"
)

// ValueMarshaler is implemented by types that know their own Value encoding.
type ValueMarshaler interface {
	MarshalValue() (Value, error)
}

// ValueOf converts a Go value into a Value.
//
// Scalars, slices, arrays, string-keyed maps (sorted by key), pointers and
// ValueMarshaler implementations are converted directly. time.Time encodes as
// an RFC 3339 string and []byte as standard base64, as encoding/json does.
// Everything else goes through a JSON round trip, which keeps struct field
// order and honours json tags.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return *t, nil
	case ValueMarshaler:
		return t.MarshalValue()
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("vld: number %s: %w", t, err)
		}
		return Number(f), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case []byte:
		if t == nil {
			return Null(), nil
		}
		return String(base64.StdEncoding.EncodeToString(t)), nil
	case []Value:
		return Array(t...), nil
	case []any:
		items := make([]Value, len(t))
		for i, e := range t {
			ev, err := ValueOf(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = ev
		}
		return Value{kind: KindArray, arr: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b := NewObjectBuilder(len(keys))
		for _, k := range keys {
			mv, err := ValueOf(t[k])
			if err != nil {
				return Value{}, err
			}
			b.Set(k, mv)
		}
		return b.Build(), nil
	}
	return valueOfReflect(x, reflect.ValueOf(x))
}

// MustValueOf is like ValueOf but panics when x cannot be encoded.
func MustValueOf(x any) Value {
	v, err := ValueOf(x)
	if err != nil {
		panic(err)
	}
	return v
}

func valueOfReflect(x any, rv reflect.Value) (Value, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return ValueOf(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.Slice:
		if rv.IsNil() {
			return Null(), nil
		}
		fallthrough
	case reflect.Array:
		items := make([]Value, rv.Len())
		for i := range items {
			ev, err := ValueOf(rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("vld: index %d: %w", i, err)
			}
			items[i] = ev
		}
		return Value{kind: KindArray, arr: items}, nil
	case reflect.Map:
		if rv.IsNil() {
			return Null(), nil
		}
		if rv.Type().Key().Kind() == reflect.String {
			keys := rv.MapKeys()
			slices.SortFunc(keys, func(a, b reflect.Value) int {
				switch {
				case a.String() < b.String():
					return -1
				case a.String() > b.String():
					return 1
				}
				return 0
			})
			ob := NewObjectBuilder(len(keys))
			for _, k := range keys {
				mv, err := ValueOf(rv.MapIndex(k).Interface())
				if err != nil {
					return Value{}, fmt.Errorf("vld: key %q: %w", k.String(), err)
				}
				ob.Set(k.String(), mv)
			}
			return ob.Build(), nil
		}
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return Value{}, fmt.Errorf("vld: unsupported type %T", x)
	}
	b, err := json.Marshal(x)
	if err != nil {
		return Value{}, err
	}
	return ParseJSON(b)
}
