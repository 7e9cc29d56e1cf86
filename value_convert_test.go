package vld_test

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/reoring/vld"
)

type address struct {
	Street string `json:"street"`
	Zip    string `json:"zip,omitempty"`
}

type customer struct {
	Name    string   `json:"name"`
	Age     int      `json:"age"`
	Tags    []string `json:"tags"`
	Address *address `json:"address"`
}

type celsius float64

func (c celsius) MarshalValue() (vld.Value, error) {
	return vld.Object(vld.Field("unit", vld.String("C")), vld.Field("value", vld.Number(float64(c)))), nil
}

func mustValueOf(t *testing.T, x any) vld.Value {
	t.Helper()
	v, err := vld.ValueOf(x)
	if err != nil {
		t.Fatalf("ValueOf(%#v): %v", x, err)
	}
	return v
}

func TestValueOf_Scalars(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, `null`},
		{true, `true`},
		{"s", `"s"`},
		{42, `42`},
		{int8(-3), `-3`},
		{uint16(7), `7`},
		{float32(0.5), `0.5`},
		{[]byte("hi"), `"aGk="`},
		{time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), `"2024-03-01T12:00:00Z"`},
		{(*int)(nil), `null`},
	}
	for _, tc := range cases {
		if got := mustValueOf(t, tc.in).JSON(); got != tc.want {
			t.Fatalf("ValueOf(%#v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestValueOf_Collections(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{map[string]int{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{[]any{1, "x", map[string]any{"z": nil, "y": false}}, `[1,"x",{"y":false,"z":null}]`},
		{[2]bool{true, false}, `[true,false]`},
		{[]int(nil), `null`},
	}
	for _, tc := range cases {
		if got := mustValueOf(t, tc.in).JSON(); got != tc.want {
			t.Fatalf("ValueOf(%#v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestValueOf_StructUsesJSONTags(t *testing.T) {
	v := mustValueOf(t, customer{Name: "Ada", Age: 36, Tags: []string{"x"}, Address: &address{Street: "Main"}})
	if !reflect.DeepEqual(v.Keys(), []string{"name", "age", "tags", "address"}) {
		t.Fatalf("keys = %v", v.Keys())
	}
	if got := v.Lookup("address").JSON(); got != `{"street":"Main"}` {
		t.Fatalf("address = %s", got)
	}
}

func TestValueOf_Marshaler(t *testing.T) {
	if got := mustValueOf(t, []celsius{21.5}).JSON(); got != `[{"unit":"C","value":21.5}]` {
		t.Fatalf("got %s", got)
	}
}

func TestValueOf_Unsupported(t *testing.T) {
	_, err := vld.ValueOf(make(chan int))
	if err == nil || !strings.Contains(err.Error(), "unsupported type chan int") {
		t.Fatalf("chan: %v", err)
	}

	if _, err := vld.ValueOf(map[string]any{"f": func() {}}); err == nil {
		t.Fatalf("expected error for a func member")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("MustValueOf should panic on complex numbers")
		}
	}()
	vld.MustValueOf(complex(1, 2))
}

func TestValueOf_ValuePassesThrough(t *testing.T) {
	in := vld.MustParseJSON(`{"b":1,"a":2}`)
	if v := mustValueOf(t, in); !reflect.DeepEqual(v.Keys(), []string{"b", "a"}) {
		t.Fatalf("keys = %v", v.Keys())
	}
	if v := mustValueOf(t, &in); !vld.Equal(in, v) {
		t.Fatalf("pointer to Value = %s", v.JSON())
	}
}
