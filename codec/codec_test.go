package codec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/vld/codec"
)

func TestDate_Codec_Roundtrip(t *testing.T) {
	c := codec.Date()

	got, err := c.Decode("2024-02-29")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)))

	out, err := c.Encode(got)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", out)
}

func TestDate_Rejects(t *testing.T) {
	for _, in := range []string{"", "2023-02-30", "2024-1-05", "2024-13-01", "20240105", "2024-01-05T00:00:00Z", " 2024-01-05"} {
		t.Run(in, func(t *testing.T) {
			_, err := codec.ParseDate(in)
			assert.ErrorIs(t, err, codec.ErrInvalidDate)
		})
	}
}

func TestMustParseDate_Panics(t *testing.T) {
	assert.Panics(t, func() { codec.MustParseDate("not-a-date") })
	assert.NotPanics(t, func() { codec.MustParseDate("2000-01-01") })
}

func TestDateTime_Decode(t *testing.T) {
	want := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2024-01-15T10:30:00Z":        want,
		"2024-01-15T13:30:00+03:00":   want,
		"2024-01-15T10:30:00":         want,
		"2024-01-15T10:30:00.5":       want.Add(500 * time.Millisecond),
		"2024-01-15T10:30:00.123Z":    want.Add(123 * time.Millisecond),
		"2024-01-15T05:30:00.0-05:00": want,
	}
	for in, exp := range cases {
		t.Run(in, func(t *testing.T) {
			got, err := codec.DateTime().Decode(in)
			require.NoError(t, err)
			assert.True(t, got.Equal(exp), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestDateTime_Rejects(t *testing.T) {
	for _, in := range []string{"", "2024-01-15", "2024-01-15 10:30:00", "yesterday", "2024-01-15T25:00:00Z"} {
		_, err := codec.ParseDateTime(in)
		assert.ErrorIs(t, err, codec.ErrInvalidDateTime, in)
	}
}

func TestDateTime_Encode_Canonical(t *testing.T) {
	loc := time.FixedZone("JST", 9*60*60)
	out, err := codec.DateTime().Encode(time.Date(2025, 1, 1, 9, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01T00:00:00Z", out)
}

func TestISOFormats(t *testing.T) {
	assert.True(t, codec.IsISODate("2024-06-15"))
	assert.False(t, codec.IsISODate("2024-06-31"))

	for _, ok := range []string{"10:30", "10:30:59", "23:59:59.999", "00:00:00.0"} {
		assert.True(t, codec.IsISOTime(ok), ok)
	}
	for _, bad := range []string{"", "1:30", "10:3", "24:00", "10:60", "10:30:", "10:30:00.", "10:30:00Z", "10-30"} {
		assert.False(t, codec.IsISOTime(bad), bad)
	}

	for _, ok := range []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30", "2024-01-15T10:30:00.123+09:00", "2024-01-15T10:30:00-05:00"} {
		assert.True(t, codec.IsISODateTime(ok), ok)
	}
	for _, bad := range []string{"2024-01-15", "2024-01-15 10:30", "2024-13-15T10:30Z", "2024-01-15T10:30+9"} {
		assert.False(t, codec.IsISODateTime(bad), bad)
	}
}
