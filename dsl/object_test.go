package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vld"
	"github.com/reoring/vld/dsl"
)

func mustIssues(t *testing.T, err error) vld.Issues {
	t.Helper()
	require.Error(t, err)
	iss, ok := vld.AsIssues(err)
	require.True(t, ok, "error is not vld.Issues: %T", err)
	return iss
}

func paths(iss vld.Issues) []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Path.String()
	}
	return out
}

func TestObject_EmptyStrip(t *testing.T) {
	out, err := dsl.Object().Parse(vld.MustParseJSON(`{}`))
	require.NoError(t, err)
	assert.Equal(t, `{}`, out.JSON())
}

func TestObject_NotAnObject(t *testing.T) {
	_, err := dsl.Object().Field("a", dsl.String()).Parse(vld.MustParseJSON(`[1]`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, vld.InvalidTypeCode("object", "array"), iss[0].Code)
	assert.Equal(t, "Expected object, received array", iss[0].Message)
	require.NotNil(t, iss[0].Received)
}

func TestObject_StrictReportsUnknownKey(t *testing.T) {
	s := dsl.Object().Field("id", dsl.Int()).Strict()
	_, err := s.Parse(vld.MustParseJSON(`{"id":1,"extra":true}`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, vld.CodeUnrecognizedField, iss[0].Code.Key())
	assert.Equal(t, ".extra", iss[0].Path.String())
	assert.Equal(t, `Unrecognized field: "extra"`, iss[0].Message)
}

func TestObject_NoFailFast(t *testing.T) {
	s := dsl.Object().
		Field("a", dsl.String()).
		Field("b", dsl.Int()).
		Field("c", dsl.Boolean()).
		Field("d", dsl.String()).
		Field("e", dsl.Number())
	_, err := s.Parse(vld.MustParseJSON(`{"a":1,"b":"x","c":null,"d":"ok","e":2}`))
	iss := mustIssues(t, err)
	assert.Len(t, iss, 3)
	assert.Equal(t, []string{".a", ".b", ".c"}, paths(iss))
}

func TestObject_CatchAllOverridesStrict(t *testing.T) {
	s := dsl.Object().Field("id", dsl.Int()).Strict().CatchAll(dsl.String())
	out, err := s.Parse(vld.MustParseJSON(`{"id":1,"x":"a","y":"b"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"x":"a","y":"b"}`, out.JSON())

	_, err = s.Parse(vld.MustParseJSON(`{"id":1,"x":2}`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, vld.CodeInvalidType, iss[0].Code.Key())
	assert.Equal(t, ".x", iss[0].Path.String())
}

func TestObject_UnknownModes(t *testing.T) {
	in := vld.MustParseJSON(`{"z":0,"id":1,"extra":{"k":true}}`)
	base := dsl.Object().Field("id", dsl.Int())

	out, err := base.Parse(in)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1}`, out.JSON())

	out, err = base.Passthrough().Parse(in)
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"z":0,"extra":{"k":true}}`, out.JSON())

	assert.Equal(t, vld.UnknownStrip, base.UnknownMode())
	assert.Equal(t, vld.UnknownStrict, base.Strict().UnknownMode())
	assert.Equal(t, vld.UnknownStrip, base.Strict().Strip().UnknownMode())
}

func TestObject_MissingFieldReadsAsNull(t *testing.T) {
	s := dsl.Object().Field("name", dsl.String()).FieldOptional("nick", dsl.String())
	_, err := s.Parse(vld.MustParseJSON(`{}`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, ".name", iss[0].Path.String())
	assert.Equal(t, "Expected string, received null", iss[0].Message)

	out, err := s.Parse(vld.MustParseJSON(`{"name":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"a","nick":null}`, out.JSON())
}

func TestObject_WhenRule(t *testing.T) {
	s := dsl.Object().
		Field("role", dsl.String()).
		FieldOptional("admin_key", dsl.String()).
		When("role", "admin", "admin_key", dsl.String().Min(10))

	_, err := s.Parse(vld.MustParseJSON(`{"role":"admin"}`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, ".admin_key", iss[0].Path.String())

	_, err = s.Parse(vld.MustParseJSON(`{"role":"admin","admin_key":"short"}`))
	iss = mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, vld.CodeTooSmall, iss[0].Code.Key())

	out, err := s.Parse(vld.MustParseJSON(`{"role":"user"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"role":"user","admin_key":null}`, out.JSON())

	out, err = s.Parse(vld.MustParseJSON(`{"role":"admin","admin_key":"0123456789"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"role":"admin","admin_key":"0123456789"}`, out.JSON())
}

func TestObject_WhenMatchesStructurally(t *testing.T) {
	s := dsl.Object().
		Field("tier", dsl.Any()).
		When("tier", vld.MustParseJSON(`{"level":1}`), "quota", dsl.Int())
	_, err := s.Parse(vld.MustParseJSON(`{"tier":{"level":1.0}}`))
	iss := mustIssues(t, err)
	assert.Equal(t, []string{".quota"}, paths(iss))
}

func TestObject_NestedPaths(t *testing.T) {
	s := dsl.Object().Field("items", dsl.Array(dsl.Object().Field("price", dsl.Number().Positive())))
	_, err := s.Parse(vld.MustParseJSON(`{"items":[{"price":1},{"price":1},{"price":-1}]}`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, ".items[2].price", iss[0].Path.String())
	assert.Equal(t, "/items/2/price", iss[0].Path.Pointer())
}

func TestObject_Immutable(t *testing.T) {
	base := dsl.Object().Field("a", dsl.String())
	withB := base.Field("b", dsl.String())
	strict := base.Strict()

	assert.Equal(t, []string{"a"}, base.KeyOf())
	assert.Equal(t, []string{"a", "b"}, withB.KeyOf())
	assert.Equal(t, vld.UnknownStrip, base.UnknownMode())
	assert.Equal(t, vld.UnknownStrict, strict.UnknownMode())

	// sibling builders must not share backing arrays
	x := base.Field("x", dsl.String())
	y := base.Field("y", dsl.String())
	assert.Equal(t, []string{"a", "x"}, x.KeyOf())
	assert.Equal(t, []string{"a", "y"}, y.KeyOf())
}

func TestObject_DuplicateFieldPanics(t *testing.T) {
	assert.Panics(t, func() { dsl.Object().Field("a", dsl.String()).Field("a", dsl.Int()) })
	assert.Panics(t, func() { dsl.Object().Field("a", nil) })
}

func TestObject_PartialAndRequired(t *testing.T) {
	s := dsl.Object().Field("name", dsl.String()).Field("age", dsl.Int())

	out, err := s.Partial().Parse(vld.MustParseJSON(`{"age":3}`))
	require.NoError(t, err)
	assert.Equal(t, `{"name":null,"age":3}`, out.JSON())

	_, err = s.Partial().Parse(vld.MustParseJSON(`{"age":"x"}`))
	assert.Error(t, err)

	assert.Equal(t, s.Partial().KeyOf(), s.DeepPartial().KeyOf())

	_, err = s.Partial().Required().Parse(vld.MustParseJSON(`{"name":null}`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 2)
	for _, it := range iss {
		assert.Equal(t, vld.CodeMissingField, it.Code.Key())
		assert.Equal(t, "Required field is missing or null", it.Message)
	}
	assert.Equal(t, []string{".name", ".age"}, paths(iss))
}

func TestObject_PickOmit(t *testing.T) {
	s := dsl.Object().Field("a", dsl.String()).Field("b", dsl.String()).Field("c", dsl.String())
	assert.Equal(t, []string{"a", "c"}, s.Pick("c", "a", "missing").KeyOf())
	assert.Equal(t, []string{"b"}, s.Omit("a", "c").KeyOf())
	assert.Equal(t, []string{"a", "b", "c"}, s.KeyOf())
}

func TestObject_ExtendMovesOverriddenField(t *testing.T) {
	base := dsl.Object().Field("a", dsl.String()).Field("b", dsl.String()).Field("c", dsl.String()).Strict()
	ext := base.Extend(dsl.Object().Field("a", dsl.Int()).Field("d", dsl.Boolean()))

	assert.Equal(t, []string{"b", "c", "a", "d"}, ext.KeyOf())
	assert.Equal(t, vld.UnknownStrict, ext.UnknownMode())
	assert.Equal(t, ext.KeyOf(), base.Merge(dsl.Object().Field("a", dsl.Int()).Field("d", dsl.Boolean())).KeyOf())

	out, err := ext.Parse(vld.MustParseJSON(`{"a":1,"b":"x","c":"y","d":true}`))
	require.NoError(t, err)
	assert.Equal(t, `{"b":"x","c":"y","a":1,"d":true}`, out.JSON())
	assert.Equal(t, []string{"a", "b", "c"}, base.KeyOf())
}

func TestObject_ShapeAndParseMap(t *testing.T) {
	s := dsl.Object().Field("a", dsl.String()).Field("b", dsl.Int())
	shape := s.Shape()
	require.Len(t, shape, 2)
	assert.Equal(t, "b", shape[1].Name)

	m, err := s.ParseMap(vld.MustParseJSON(`{"a":"x","b":2}`))
	require.NoError(t, err)
	assert.Equal(t, vld.String("x"), m["a"])
	assert.Equal(t, vld.Int(2), m["b"])
}

func TestObject_Descriptor(t *testing.T) {
	s := dsl.Object().
		Field("id", dsl.Int()).
		FieldOptional("nick", dsl.String()).
		Field("tags", dsl.Default[[]string](dsl.Array(dsl.String()), []string{})).
		CatchAll(dsl.String()).
		When("id", 1, "nick", dsl.String().Min(2)).
		Describe("user")

	d := s.Descriptor()
	assert.Equal(t, vld.TypeObject, d.Type)
	assert.Equal(t, "user", d.Description)
	assert.Equal(t, []string{"id"}, d.RequiredNames())
	nick, ok := d.Property("nick")
	require.True(t, ok)
	assert.Equal(t, vld.TypeString, nick.Schema.Type)
	require.NotNil(t, d.AdditionalProperties)
	require.Len(t, d.Rules, 1)
	assert.Equal(t, "nick", d.Rules[0].Target)
}

func TestObject_ParseLenient(t *testing.T) {
	s := dsl.Object().Field("name", dsl.String().Min(2)).Field("age", dsl.Int().Min(0)).Field("email", dsl.String().Email())
	res := s.ParseLenient(vld.MustParseJSON(`{"name":"Al","age":-1,"email":"nope"}`))

	assert.False(t, res.IsValid())
	assert.Equal(t, 1, res.ValidCount())
	assert.Equal(t, 2, res.ErrorCount())
	assert.Len(t, res.Fields(), 3)
	assert.Equal(t, `{"name":"Al"}`, res.Value().JSON())

	age, ok := res.Field("age")
	require.True(t, ok)
	assert.False(t, age.OK())
	assert.Equal(t, "✖ age: Number must be at least 0 (received: -1)", age.String())

	name, _ := res.Field("name")
	assert.Equal(t, `✔ name: "Al"`, name.String())

	_, ok = res.Field("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"age", "email"}, []string{res.ErrorFields()[0].Name, res.ErrorFields()[1].Name})
	assert.Equal(t, "name", res.ValidFields()[0].Name)
}

func TestObject_ParseLenientNonObject(t *testing.T) {
	res := dsl.Object().Field("a", dsl.String()).ParseLenient(vld.String("x"))
	assert.False(t, res.IsValid())
	assert.Empty(t, res.Fields())
	require.Len(t, res.Issues, 1)
	assert.Equal(t, vld.CodeInvalidType, res.Issues[0].Code.Key())
}
