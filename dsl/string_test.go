package dsl_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vld"
	"github.com/reoring/vld/dsl"
)

func TestString_TypeError(t *testing.T) {
	_, err := dsl.String().Parse(vld.Number(1))
	iss := mustIssues(t, err)
	require.Len(t, iss, 1)
	assert.Equal(t, vld.InvalidTypeCode("string", "number"), iss[0].Code)
	assert.Equal(t, "Expected string, received number", iss[0].Message)

	_, err = dsl.String().TypeError("name must be text").Parse(vld.Null())
	iss = mustIssues(t, err)
	assert.Equal(t, "name must be text", iss[0].Message)
}

func TestString_ChecksAccumulate(t *testing.T) {
	s := dsl.String().Min(5).Email().StartsWith("x")
	_, err := s.Parse(vld.String("ab"))
	iss := mustIssues(t, err)
	require.Len(t, iss, 3)
	assert.Equal(t, []string{vld.CodeTooSmall, vld.CodeInvalidString, vld.CodeInvalidString}, iss.Keys())
	assert.Equal(t, "String must be at least 5 characters", iss[0].Message)
	assert.Equal(t, "Invalid email address", iss[1].Message)
	assert.Equal(t, `String must start with "x"`, iss[2].Message)
}

func TestString_LengthCountsRunes(t *testing.T) {
	s := dsl.String().Length(3)
	_, err := s.Parse(vld.String("日本語"))
	assert.NoError(t, err)

	_, err = s.Parse(vld.String("ab"))
	iss := mustIssues(t, err)
	assert.Equal(t, vld.CustomInvalidLength, iss[0].Code.Key())
	assert.Equal(t, "String must be exactly 3 characters", iss[0].Message)

	_, err = dsl.String().Max(2).Parse(vld.String("日本語"))
	iss = mustIssues(t, err)
	assert.Equal(t, vld.CodeTooBig, iss[0].Code.Key())
}

func TestString_NonEmpty(t *testing.T) {
	_, err := dsl.String().NonEmpty().Parse(vld.String(""))
	iss := mustIssues(t, err)
	assert.Equal(t, vld.TooSmallCode(1, true), iss[0].Code)
	assert.Equal(t, "String must not be empty", iss[0].Message)
}

func TestString_Transforms(t *testing.T) {
	out, err := dsl.String().Trim().ToLower().Email().Parse(vld.String("  Ann@Example.COM "))
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", out)

	out, err = dsl.String().ToUpper().Parse(vld.String("straße"))
	require.NoError(t, err)
	assert.Equal(t, "STRASSE", out)

	_, err = dsl.String().Trim().Min(1).Parse(vld.String("   "))
	assert.Error(t, err)
}

func TestString_Coerce(t *testing.T) {
	s := dsl.String().Coerce()
	out, err := s.Parse(vld.Number(42))
	require.NoError(t, err)
	assert.Equal(t, "42", out)

	out, err = s.Parse(vld.Bool(true))
	require.NoError(t, err)
	assert.Equal(t, "true", out)

	_, err = s.Parse(vld.Array())
	assert.Error(t, err)
}

func TestString_Formats(t *testing.T) {
	cases := []struct {
		name   string
		schema dsl.StringSchema
		good   []string
		bad    []string
	}{
		{"email", dsl.String().Email(), []string{"a@b.co", "first.last@example.org"}, []string{"", "ab", "a@", "@b.co"}},
		{"url", dsl.String().URL(), []string{"https://example.com", "http://localhost:8080/x?y=1"}, []string{"", "example.com", "ftp://x.y", "https://", "http://a b"}},
		{"uuid", dsl.String().UUID(), []string{"550e8400-e29b-41d4-a716-446655440000"}, []string{"", "550e8400e29b41d4a716446655440000", "550e8400-e29b-41d4-a716-44665544000g"}},
		{"ipv4", dsl.String().IPv4(), []string{"192.168.0.1"}, []string{"", "256.1.1.1", "::1"}},
		{"ipv6", dsl.String().IPv6(), []string{"::1", "2001:db8::1"}, []string{"", "192.168.0.1"}},
		{"base64", dsl.String().Base64(), []string{"aGVsbG8="}, []string{"", "not base64!"}},
		{"iso date", dsl.String().ISODate(), []string{"2024-02-29"}, []string{"", "2023-02-29", "2024-2-1"}},
		{"iso datetime", dsl.String().ISODateTime(), []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+09:00"}, []string{"", "2024-01-15", "2024-01-15 10:30:00"}},
		{"iso time", dsl.String().ISOTime(), []string{"10:30", "10:30:15", "10:30:15.123"}, []string{"", "24:00", "10:3", "10:30:60"}},
		{"hostname", dsl.String().Hostname(), []string{"example.com", "localhost"}, []string{"", "-bad-.com", "a b"}},
		{"cuid2", dsl.String().CUID2(), []string{"tz4a98xxat96iws9zmbrgj3a"}, []string{"", "1abc", "Abc"}},
		{"ulid", dsl.String().ULID(), []string{"01ARZ3NDEKTSV4RRFFQ69G5FAV"}, []string{"", "01ARZ3NDEKTSV4RRFFQ69G5FA"}},
		{"nanoid", dsl.String().NanoID(), []string{"V1StGXR8_Z5jdHi6B-myT"}, []string{"", "has space"}},
		{"emoji", dsl.String().Emoji(), []string{"hi 👋", "🎉"}, []string{"", "plain"}},
		{"regex", dsl.String().Regex(regexp.MustCompile(`^[a-z]+-\d+$`)), []string{"ab-12"}, []string{"AB-12", "ab-"}},
		{"ends with", dsl.String().EndsWith(".go"), []string{"main.go"}, []string{"main.rs"}},
		{"includes", dsl.String().Includes("@"), []string{"a@b"}, []string{"ab"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, in := range tc.good {
				_, err := tc.schema.Parse(vld.String(in))
				assert.NoError(t, err, "want %q accepted", in)
			}
			for _, in := range tc.bad {
				_, err := tc.schema.Parse(vld.String(in))
				assert.Error(t, err, "want %q rejected", in)
			}
		})
	}
}

func TestString_RegexNilPanics(t *testing.T) {
	assert.Panics(t, func() { dsl.String().Regex(nil) })
}

func TestString_WithMessages(t *testing.T) {
	s := dsl.String().Min(3).Email().WithMessages(func(key string) (string, bool) {
		if key == "too_small" {
			return "too short", true
		}
		return "", false
	})
	_, err := s.Parse(vld.String("a"))
	iss := mustIssues(t, err)
	require.Len(t, iss, 2)
	assert.Equal(t, "too short", iss[0].Message)
	assert.Equal(t, "Invalid email address", iss[1].Message)
}

func TestString_SnapshotIsTransformedValue(t *testing.T) {
	_, err := dsl.String().Trim().Min(5).Parse(vld.String("  ab  "))
	iss := mustIssues(t, err)
	require.NotNil(t, iss[0].Received)
	assert.Equal(t, vld.String("ab"), *iss[0].Received)
}

func TestString_Descriptor(t *testing.T) {
	d := dsl.String().Min(2).Max(10).Email().Describe("contact").Descriptor()
	assert.Equal(t, vld.TypeString, d.Type)
	assert.Equal(t, "email", d.Format)
	assert.Equal(t, "contact", d.Description)
	require.NotNil(t, d.MinLength)
	assert.Equal(t, 2, *d.MinLength)
	assert.Equal(t, 10, *d.MaxLength)
	assert.Equal(t, []string{"too_small", "too_big", "invalid_email"}, d.Checks)
}
