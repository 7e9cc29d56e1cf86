package codec

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date wire format, YYYY-MM-DD.
const DateLayout = "2006-01-02"

// Date returns a Codec between YYYY-MM-DD strings and time.Time values at
// midnight UTC.
func Date() Codec[string, time.Time] { return dateCodec{} }

type dateCodec struct{}

func (dateCodec) Decode(s string) (time.Time, error) { return ParseDate(s) }

func (dateCodec) Encode(t time.Time) (string, error) { return FormatDate(t), nil }

// ParseDate parses a strict YYYY-MM-DD date. Month and day ranges are
// checked against the calendar, so "2023-02-30" fails.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(DateLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// MustParseDate is like ParseDate but panics on error. It is meant for
// schema construction with literal bounds.
func MustParseDate(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string { return t.UTC().Format(DateLayout) }
