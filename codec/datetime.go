package codec

import (
	"fmt"
	"time"
)

// naive layouts are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// DateTime returns a Codec between ISO 8601 date-time strings and UTC
// time.Time values. Encoding is canonical RFC 3339 with trailing zeros of
// the fraction trimmed.
func DateTime() Codec[string, time.Time] { return dateTimeCodec{} }

type dateTimeCodec struct{}

func (dateTimeCodec) Decode(s string) (time.Time, error) { return ParseDateTime(s) }

func (dateTimeCodec) Encode(t time.Time) (string, error) { return FormatDateTime(t), nil }

// ParseDateTime accepts RFC 3339 (with offset or Z, optional fraction) and
// the offset-less form YYYY-MM-DDTHH:MM:SS[.f], which is taken as UTC. The
// result is always in UTC.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// FormatDateTime normalizes t to UTC and formats it as RFC 3339.
func FormatDateTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }
