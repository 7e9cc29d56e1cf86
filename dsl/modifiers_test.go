package dsl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vld"
	"github.com/reoring/vld/dsl"
)

func TestOptional(t *testing.T) {
	s := dsl.Optional(dsl.String().Min(2))

	out, err := s.Parse(vld.Null())
	require.NoError(t, err)
	assert.Nil(t, out)

	out, err = s.Parse(vld.String("ab"))
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "ab", *out)

	_, err = s.Parse(vld.String("a"))
	assert.Error(t, err)

	assert.True(t, s.Descriptor().Optional)
	assert.True(t, dsl.Nullable(dsl.String()).Descriptor().Nullable)
	d := dsl.Nullish(dsl.String()).Descriptor()
	assert.True(t, d.Optional && d.Nullable)
}

func TestOptional_AsObjectField(t *testing.T) {
	s := dsl.Object().Field("nick", dsl.Nullable(dsl.String()))
	out, err := s.Parse(vld.MustParseJSON(`{}`))
	require.NoError(t, err)
	assert.Equal(t, `{"nick":null}`, out.JSON())
	assert.Empty(t, s.Descriptor().RequiredNames())
}

func TestDefault(t *testing.T) {
	s := dsl.Default(dsl.Int().Min(1), 10)

	out, err := s.Parse(vld.Null())
	require.NoError(t, err)
	assert.Equal(t, int64(10), out)

	out, err = s.Parse(vld.Number(3))
	require.NoError(t, err)
	assert.Equal(t, int64(3), out)

	_, err = s.Parse(vld.Number(0))
	assert.Error(t, err, "an invalid non-null value must still fail")

	obj := dsl.Object().Field("port", s)
	v, err := obj.Parse(vld.MustParseJSON(`{}`))
	require.NoError(t, err)
	assert.Equal(t, `{"port":10}`, v.JSON())

	d := s.Descriptor()
	require.NotNil(t, d.Default)
	assert.Equal(t, vld.Int(10), *d.Default)
}

func TestCatch_NeverFails(t *testing.T) {
	s := dsl.Catch(dsl.Number(), 0)
	inputs := []string{`null`, `true`, `"x"`, `[1,2]`, `{"a":1}`, `7`}
	for _, in := range inputs {
		out, err := s.Parse(vld.MustParseJSON(in))
		require.NoError(t, err, in)
		if in == `7` {
			assert.Equal(t, 7.0, out)
		} else {
			assert.Equal(t, 0.0, out, in)
		}
		_, err = s.ParseValue(vld.MustParseJSON(in))
		assert.NoError(t, err, in)
	}
}

func TestCatch_FallbackMustEncode(t *testing.T) {
	never := dsl.Custom(func(vld.Value) (chan int, error) { return nil, errors.New("no") })
	assert.Panics(t, func() { dsl.Catch(never, make(chan int)) })

	s := dsl.Catch(dsl.Int(), 5)
	v, err := s.ParseValue(vld.String("x"))
	require.NoError(t, err)
	assert.Equal(t, vld.Int(5), v)
	d := s.Descriptor()
	require.NotNil(t, d.Default)
	assert.Equal(t, vld.Int(5), *d.Default)
}

func TestRefine(t *testing.T) {
	s := dsl.Refine(dsl.String(), func(s string) bool { return strings.HasPrefix(s, "sk_") }, "must be a secret key")

	_, err := s.Parse(vld.String("sk_123"))
	require.NoError(t, err)

	_, err = s.Parse(vld.String("pk_123"))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, vld.CustomCustom, iss[0].Code.Key())
	assert.Equal(t, "must be a secret key", iss[0].Message)
	require.NotNil(t, iss[0].Received)

	// the inner schema runs first; the predicate never sees invalid input
	_, err = s.Parse(vld.Number(1))
	iss = mustIssues(t, err)
	assert.Equal(t, vld.CodeInvalidType, iss[0].Code.Key())
}

func TestSuperRefine(t *testing.T) {
	passwords := dsl.SuperRefine(
		dsl.Object().Field("password", dsl.String()).Field("confirm", dsl.String()),
		func(v vld.Value, iss *vld.Issues) {
			if !vld.Equal(v.Lookup("password"), v.Lookup("confirm")) {
				iss.AddAt(vld.Path{vld.FieldSeg("confirm")}, vld.CustomCode("mismatch"), "Passwords do not match")
			}
		})

	_, err := passwords.Parse(vld.MustParseJSON(`{"password":"a","confirm":"a"}`))
	require.NoError(t, err)

	_, err = passwords.Parse(vld.MustParseJSON(`{"password":"a","confirm":"b"}`))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, ".confirm", iss[0].Path.String())
	assert.Equal(t, "mismatch", iss[0].Code.Key())
}

func TestTransform(t *testing.T) {
	s := dsl.Transform(dsl.String(), func(s string) int { return len(s) })
	n, err := s.Parse(vld.String("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	v, err := s.ParseValue(vld.String("hey"))
	require.NoError(t, err)
	assert.Equal(t, vld.Int(3), v)
}

func TestPipe(t *testing.T) {
	s := dsl.Pipe(dsl.String().Trim(), dsl.String().Email())
	out, err := s.Parse(vld.String("  a@b.co "))
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", out)

	_, err = s.Parse(vld.String(" nope "))
	iss := mustIssues(t, err)
	require.NotNil(t, iss[0].Received)
	assert.Equal(t, vld.String("nope"), *iss[0].Received)

	toInt := dsl.Pipe(dsl.String().Coerce(), dsl.Int().Coerce().Positive())
	n, err := toInt.Parse(vld.String("12"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestPipe_SerializeFailure(t *testing.T) {
	s := dsl.Pipe(dsl.Transform(dsl.Any(), func(vld.Value) chan int { return make(chan int) }), dsl.Any())
	_, err := s.Parse(vld.Null())
	iss := mustIssues(t, err)
	assert.Equal(t, vld.CustomPipeSerialize, iss[0].Code.Key())
	assert.True(t, strings.HasPrefix(iss[0].Message, "Failed to serialize intermediate value in pipe: "))
}

func TestPreprocess(t *testing.T) {
	split := dsl.Preprocess(func(v vld.Value) vld.Value {
		s, ok := v.Str()
		if !ok {
			return v
		}
		var items []vld.Value
		for _, p := range strings.Split(s, ",") {
			items = append(items, vld.String(p))
		}
		return vld.Array(items...)
	}, dsl.Array(dsl.String().NonEmpty()))

	out, err := split.Parse(vld.String("a,b"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	_, err = split.Parse(vld.String("a,,b"))
	iss := mustIssues(t, err)
	assert.Equal(t, "[1]", iss[0].Path.String())
}

func TestWithMessage(t *testing.T) {
	s := dsl.WithMessage(dsl.String().Min(3).Email(), "Enter a valid email")
	_, err := s.Parse(vld.String("a"))
	iss := mustIssues(t, err)
	require.Len(t, iss, 2)
	for _, it := range iss {
		assert.Equal(t, "Enter a valid email", it.Message)
	}
	assert.Equal(t, vld.CodeTooSmall, iss[0].Code.Key())
}

func TestDescribe(t *testing.T) {
	s := dsl.Describe(dsl.Int().Min(1), "page number")
	assert.Equal(t, "page number", s.Descriptor().Description)
	assert.Equal(t, vld.TypeInteger, s.Descriptor().Type)
	n, err := s.Parse(vld.Number(2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func categorySchema() vld.Schema[vld.Value] {
	return dsl.Object().
		Field("name", dsl.String().NonEmpty()).
		Field("children", dsl.Array(dsl.Lazy(categorySchema)))
}

func TestLazy_Recursive(t *testing.T) {
	s := categorySchema()
	in := vld.MustParseJSON(`{"name":"root","children":[{"name":"a","children":[]},{"name":"","children":[{"name":"c","children":[1]}]}]}`)
	_, err := s.Parse(in)
	iss := mustIssues(t, err)
	assert.Equal(t, []string{".children[1].name", ".children[1].children[0].children[0]"}, paths(iss))

	assert.Equal(t, vld.TypeLazy, dsl.Lazy(categorySchema).Descriptor().Type)
}
