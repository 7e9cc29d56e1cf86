package vld_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/reoring/vld"
)

func TestIssueCode_Keys(t *testing.T) {
	cases := map[string]vld.IssueCode{
		vld.CodeInvalidType:          vld.InvalidTypeCode("string", "number"),
		vld.CodeTooSmall:             vld.TooSmallCode(1, true),
		vld.CodeTooBig:               vld.TooBigCode(1, false),
		vld.CodeInvalidString:        vld.InvalidStringCode(vld.ValidationEmail),
		vld.CodeNotInt:               vld.NotIntCode(),
		vld.CodeNotFinite:            vld.NotFiniteCode(),
		vld.CodeMissingField:         vld.MissingFieldCode(),
		vld.CodeUnrecognizedField:    vld.UnrecognizedFieldCode(),
		vld.CodeIOError:              vld.IOErrorCode(),
		vld.CodeParseError:           vld.ParseErrorCode(),
		vld.CustomInvalidUnion:       vld.CustomCode(vld.CustomInvalidUnion),
		vld.CustomInvalidTupleLength: vld.CustomCode(vld.CustomInvalidTupleLength),
	}
	for want, code := range cases {
		if got := code.Key(); got != want {
			t.Fatalf("Key() = %q, want %q", got, want)
		}
	}
}

func TestIssueCode_Params(t *testing.T) {
	cases := []struct {
		code vld.IssueCode
		want []vld.Param
	}{
		{vld.InvalidTypeCode("string", "number"), []vld.Param{{Name: "expected", Value: "string"}, {Name: "received", Value: "number"}}},
		{vld.TooSmallCode(2.5, false), []vld.Param{{Name: "minimum", Value: "2.5"}, {Name: "inclusive", Value: "false"}}},
		{vld.InvalidStringCode(vld.ValidationURL), []vld.Param{{Name: "validation", Value: "url"}}},
		{vld.MissingFieldCode(), nil},
	}
	for _, tc := range cases {
		if got := tc.code.Params(); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s params = %#v, want %#v", tc.code.Key(), got, tc.want)
		}
	}
}

func TestIssue_String(t *testing.T) {
	var iss vld.Issues
	iss.AddWithValue(vld.TooSmallCode(2, true), "String must be at least 2 characters", vld.String("a"))
	iss = iss.WithPrefix(vld.FieldSeg("name"))
	iss.Add(vld.CustomCode(vld.CustomCustom), "Passwords must match")

	if len(iss) != 2 {
		t.Fatalf("expected 2 issues, got %v", iss)
	}
	if got := iss[0].String(); got != `.name: String must be at least 2 characters, received "a"` {
		t.Fatalf("first issue = %q", got)
	}
	if got := iss[1].String(); got != "Passwords must match" {
		t.Fatalf("root issue = %q", got)
	}
	if iss.Error() != iss[0].String()+"\n"+iss[1].String() {
		t.Fatalf("Error() = %q", iss.Error())
	}
	if !reflect.DeepEqual(iss.Keys(), []string{"too_small", "custom"}) {
		t.Fatalf("keys = %v", iss.Keys())
	}
}

func TestIssues_WithPrefixIsCopy(t *testing.T) {
	var iss vld.Issues
	iss.AddAt(vld.Path{vld.FieldSeg("b")}, vld.MissingFieldCode(), "missing")
	prefixed := iss.WithPrefix(vld.IndexSeg(3)).WithPrefix(vld.FieldSeg("a"))

	if got := prefixed[0].Path.String(); got != ".a[3].b" {
		t.Fatalf("prefixed path = %q", got)
	}
	if got := iss[0].Path.String(); got != ".b" {
		t.Fatalf("original path changed to %q", got)
	}
}

func TestIssues_MergeKeepsOrder(t *testing.T) {
	a := vld.NewIssues(vld.NotIntCode(), "one")
	b := vld.NewIssues(vld.NotFiniteCode(), "two")
	merged := a.Merge(b)
	if !reflect.DeepEqual(merged.Keys(), []string{"not_int", "not_finite"}) {
		t.Fatalf("merged keys = %v", merged.Keys())
	}
	if len(a) != 1 {
		t.Fatalf("Merge modified its receiver")
	}
	if !reflect.DeepEqual(a.Merge(nil), a) {
		t.Fatalf("merging nothing should return the receiver")
	}
}

func TestIssues_Err(t *testing.T) {
	var empty vld.Issues
	if empty.Err() != nil {
		t.Fatalf("empty issues should be a nil error")
	}
	if vld.NewIssues(vld.NotIntCode(), "x").Err() == nil {
		t.Fatalf("non-empty issues should be an error")
	}
}

func TestAsIssues(t *testing.T) {
	iss := vld.NewIssues(vld.NotIntCode(), "Expected integer")
	wrapped := fmt.Errorf("decode order: %w", iss)

	got, ok := vld.AsIssues(wrapped)
	if !ok || !reflect.DeepEqual(got, iss) {
		t.Fatalf("AsIssues(wrapped) = %v, %v", got, ok)
	}
	if _, ok := vld.AsIssues(errors.New("boom")); ok {
		t.Fatalf("plain error is not Issues")
	}
	if _, ok := vld.AsIssues(nil); ok {
		t.Fatalf("nil is not Issues")
	}
}

func TestIssuesOf_PlainError(t *testing.T) {
	iss := vld.IssuesOf(errors.New("boom"))
	if len(iss) != 1 || iss[0].Code.Key() != vld.CustomCustom || iss[0].Message != "boom" {
		t.Fatalf("IssuesOf(plain) = %#v", iss)
	}
	if vld.IssuesOf(nil) != nil {
		t.Fatalf("IssuesOf(nil) should be nil")
	}
}

func TestNewIssuesWithValue_Snapshot(t *testing.T) {
	iss := vld.NewIssuesWithValue(vld.NotIntCode(), "x", vld.MustParseJSON(`[1,2,3,4,5,6]`))
	if iss[0].Received == nil {
		t.Fatalf("expected a snapshot")
	}
	if iss[0].Received.Len() != 6 {
		t.Fatalf("snapshot = %s", iss[0].Received.JSON())
	}
	if got := iss[0].Received.Index(5).JSON(); got != `"... (1 more)"` {
		t.Fatalf("snapshot tail = %s", got)
	}
}

func TestAppendIssues(t *testing.T) {
	out := vld.AppendIssues(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("AppendIssues(nil) = %#v", out)
	}
	out = vld.AppendIssues(out, vld.Issue{Code: vld.NotIntCode(), Message: "x"})
	if len(out) != 1 {
		t.Fatalf("len = %d", len(out))
	}
}
