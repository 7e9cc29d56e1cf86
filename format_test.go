package vld_test

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/reoring/vld"
)

func sampleIssues() vld.Issues {
	var iss vld.Issues
	iss.Add(vld.CustomCode(vld.CustomCustom), "Passwords must match")
	iss.AddAt(vld.Path{vld.FieldSeg("name")}, vld.TooSmallCode(2, true), "Too short")
	iss.AddAt(vld.Path{vld.FieldSeg("name")}, vld.InvalidStringCode(vld.ValidationRegex), "Bad pattern")
	iss.AddAt(vld.Path{vld.FieldSeg("items"), vld.IndexSeg(2), vld.FieldSeg("price")}, vld.TooSmallCode(0, false), "Must be positive")
	iss.AddAt(vld.Path{vld.IndexSeg(0)}, vld.NotIntCode(), "Expected integer")
	return iss
}

func TestFlatten(t *testing.T) {
	flat := vld.Flatten(sampleIssues())
	if !reflect.DeepEqual(flat.FormErrors, []string{"Passwords must match"}) {
		t.Fatalf("form errors = %v", flat.FormErrors)
	}
	want := map[string][]string{
		"name":  {"Too short", "Bad pattern"},
		"items": {"Must be positive"},
		"[0]":   {"Expected integer"},
	}
	if !reflect.DeepEqual(flat.FieldErrors, want) {
		t.Fatalf("field errors = %v", flat.FieldErrors)
	}
}

func TestFlatten_EmptyEncodesAsEmptyCollections(t *testing.T) {
	b, err := json.Marshal(vld.Flatten(nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"formErrors":[],"fieldErrors":{}}` {
		t.Fatalf("got %s", b)
	}
}

func TestTreeify(t *testing.T) {
	tree := vld.Treeify(sampleIssues())
	if !reflect.DeepEqual(tree.Errors, []string{"Passwords must match"}) {
		t.Fatalf("root errors = %v", tree.Errors)
	}
	if got := tree.Properties["name"].Errors; !reflect.DeepEqual(got, []string{"Too short", "Bad pattern"}) {
		t.Fatalf("name errors = %v", got)
	}

	items := tree.Properties["items"]
	if items == nil || len(items.Items) != 3 {
		t.Fatalf("items node = %#v", items)
	}
	if items.Items[0] != nil || items.Items[1] != nil {
		t.Fatalf("untouched indexes should be nil")
	}
	if got := items.Items[2].Properties["price"].Errors; !reflect.DeepEqual(got, []string{"Must be positive"}) {
		t.Fatalf("price errors = %v", got)
	}
	if len(items.Items[2].Errors) != 0 {
		t.Fatalf("items[2] errors = %v", items.Items[2].Errors)
	}

	if len(tree.Items) != 1 || !reflect.DeepEqual(tree.Items[0].Errors, []string{"Expected integer"}) {
		t.Fatalf("root items = %#v", tree.Items)
	}
}

func TestPrettify(t *testing.T) {
	var iss vld.Issues
	iss.AddWithValue(vld.TooSmallCode(2, true), "String must be at least 2 characters", vld.String("a"))
	iss = iss.WithPrefix(vld.FieldSeg("name"))
	iss.Add(vld.CustomCode(vld.CustomCustom), "Passwords must match")
	iss.AddWithValue(vld.InvalidTypeCode("object", "number"), "Expected object, received number", vld.Int(3))

	want := "✖ String must be at least 2 characters\n" +
		"  → at .name, received \"a\"\n" +
		"✖ Passwords must match\n" +
		"✖ Expected object, received number\n" +
		"  → received 3"
	if got := vld.Prettify(iss); got != want {
		t.Fatalf("Prettify =\n%s\nwant\n%s", got, want)
	}
	if vld.Prettify(nil) != "" {
		t.Fatalf("Prettify(nil) should be empty")
	}
}
