package codec

import (
	"strings"
	"time"
)

// IsISODate reports whether s is a valid YYYY-MM-DD calendar date.
func IsISODate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// IsISOTime reports whether s is HH:MM, HH:MM:SS or HH:MM:SS.fff with
// two-digit fields.
func IsISOTime(s string) bool {
	return ValidateTime(s) == nil
}

// ValidateTime checks the HH:MM[:SS[.f]] time-of-day format.
func ValidateTime(s string) error {
	if len(s) < 5 || s[2] != ':' {
		return ErrInvalidTime
	}
	if len(s) == 5 {
		if _, err := time.Parse("15:04", s); err != nil {
			return ErrInvalidTime
		}
		return nil
	}
	if len(s) < 8 || s[5] != ':' {
		return ErrInvalidTime
	}
	if len(s) > 8 && (s[8] != '.' || len(s) == 9) {
		return ErrInvalidTime
	}
	if _, err := time.Parse("15:04:05.999999999", s); err != nil {
		return ErrInvalidTime
	}
	return nil
}

// IsISODateTime reports whether s is YYYY-MM-DDTHH:MM[:SS[.f]] optionally
// followed by Z or a ±HH:MM offset.
func IsISODateTime(s string) bool {
	date, rest, ok := strings.Cut(s, "T")
	if !ok || !IsISODate(date) {
		return false
	}
	clock, ok := trimZone(rest)
	if !ok {
		return false
	}
	return IsISOTime(clock)
}

// trimZone strips a trailing Z or ±HH:MM offset.
func trimZone(s string) (string, bool) {
	if strings.HasSuffix(s, "Z") {
		return s[:len(s)-1], true
	}
	if len(s) > 6 {
		sign := s[len(s)-6]
		if sign == '+' || sign == '-' {
			if _, err := time.Parse("15:04", s[len(s)-5:]); err != nil {
				return "", false
			}
			return s[:len(s)-6], true
		}
	}
	return s, true
}
