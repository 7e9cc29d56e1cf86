package vld

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

const (
	snapshotMaxString = 100
	snapshotKeepBytes = 97
	snapshotMaxItems  = 5
	shortMaxString    = 50
	shortKeepBytes    = 47
)

// TypeName returns the JSON type name of v: null, boolean, number, string,
// array or object.
func TypeName(v Value) string { return v.kind.String() }

// FormatNumber renders a number in its shortest decimal form ("3", "0.5").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatShort renders v for single-line messages. Long strings are cut,
// containers are summarised by size.
func FormatShort(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.n)
	case KindString:
		if len(v.s) > shortMaxString {
			return `"` + cutUTF8(v.s, shortKeepBytes) + `..."`
		}
		return `"` + v.s + `"`
	case KindArray:
		return fmt.Sprintf("Array(len=%d)", len(v.arr))
	case KindObject:
		return fmt.Sprintf("Object(keys=%d)", len(v.obj.members))
	}
	return ""
}

// Snapshot returns the copy of v stored on issues: strings longer than 100
// bytes keep their first 97 bytes plus "...", arrays longer than 5 keep their
// first 5 elements plus a "... (N more)" marker. Nested values are kept as is.
func Snapshot(v Value) Value {
	switch v.kind {
	case KindString:
		if len(v.s) > snapshotMaxString {
			return String(cutUTF8(v.s, snapshotKeepBytes) + "...")
		}
	case KindArray:
		if len(v.arr) > snapshotMaxItems {
			items := make([]Value, 0, snapshotMaxItems+1)
			items = append(items, v.arr[:snapshotMaxItems]...)
			items = append(items, String(fmt.Sprintf("... (%d more)", len(v.arr)-snapshotMaxItems)))
			return Value{kind: KindArray, arr: items}
		}
	}
	return v
}

// cutUTF8 returns at most n leading bytes of s without splitting a rune.
func cutUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// String implements fmt.Stringer with the compact JSON form.
func (v Value) String() string { return v.JSON() }
