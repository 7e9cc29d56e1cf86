package dsl

import (
	"fmt"
	"time"

	"github.com/reoring/vld"
	"github.com/reoring/vld/codec"
)

// DateSchema parses YYYY-MM-DD strings into time.Time values at midnight UTC.
type DateSchema struct {
	min, max *time.Time
	typeMsg  string
	desc     string
}

var (
	_ vld.Schema[time.Time] = DateSchema{}
	_ vld.AnySchema         = DateSchema{}
)

// Date returns a calendar date schema.
func Date() DateSchema { return DateSchema{} }

func (s DateSchema) TypeError(msg string) DateSchema { s.typeMsg = msg; return s }

func (s DateSchema) Describe(text string) DateSchema { s.desc = text; return s }

// Min sets an inclusive lower bound. It panics when date is not YYYY-MM-DD.
func (s DateSchema) Min(date string) DateSchema {
	t := codec.MustParseDate(date)
	s.min = &t
	return s
}

// Max sets an inclusive upper bound. It panics when date is not YYYY-MM-DD.
func (s DateSchema) Max(date string) DateSchema {
	t := codec.MustParseDate(date)
	s.max = &t
	return s
}

// Parse implements vld.Schema[time.Time].
func (s DateSchema) Parse(v vld.Value) (time.Time, error) {
	str, ok := v.Str()
	if !ok {
		msg := s.typeMsg
		if msg == "" {
			msg = "Expected date string (YYYY-MM-DD), received " + vld.TypeName(v)
		}
		return time.Time{}, vld.NewIssuesWithValue(vld.InvalidTypeCode("string (date)", vld.TypeName(v)), msg, v)
	}
	t, err := codec.Date().Decode(str)
	if err != nil {
		return time.Time{}, vld.NewIssuesWithValue(vld.CustomCode(vld.CustomInvalidDate),
			fmt.Sprintf("Invalid date format: expected YYYY-MM-DD, got %q", str), v)
	}
	var iss vld.Issues
	if s.min != nil && t.Before(*s.min) {
		iss.AddWithValue(vld.TooSmallCode(0, true), "Date must be on or after "+codec.FormatDate(*s.min), v)
	}
	if s.max != nil && t.After(*s.max) {
		iss.AddWithValue(vld.TooBigCode(0, true), "Date must be on or before "+codec.FormatDate(*s.max), v)
	}
	if len(iss) > 0 {
		return time.Time{}, iss
	}
	return t, nil
}

// ParseValue implements vld.AnySchema.
func (s DateSchema) ParseValue(v vld.Value) (vld.Value, error) {
	t, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.String(codec.FormatDate(t)), nil
}

// Descriptor implements vld.Describer.
func (s DateSchema) Descriptor() vld.Descriptor {
	return vld.Descriptor{Type: vld.TypeString, Format: "date", Description: s.desc}
}

// DateTimeSchema parses ISO 8601 date-time strings into UTC time.Time values.
type DateTimeSchema struct {
	typeMsg string
	desc    string
}

var (
	_ vld.Schema[time.Time] = DateTimeSchema{}
	_ vld.AnySchema         = DateTimeSchema{}
)

// DateTime returns a date-time schema. Offsets are honored and normalized to
// UTC; strings without an offset are read as UTC.
func DateTime() DateTimeSchema { return DateTimeSchema{} }

func (s DateTimeSchema) TypeError(msg string) DateTimeSchema { s.typeMsg = msg; return s }

func (s DateTimeSchema) Describe(text string) DateTimeSchema { s.desc = text; return s }

// Parse implements vld.Schema[time.Time].
func (s DateTimeSchema) Parse(v vld.Value) (time.Time, error) {
	str, ok := v.Str()
	if !ok {
		msg := s.typeMsg
		if msg == "" {
			msg = "Expected datetime string, received " + vld.TypeName(v)
		}
		return time.Time{}, vld.NewIssuesWithValue(vld.InvalidTypeCode("string (datetime)", vld.TypeName(v)), msg, v)
	}
	t, err := codec.DateTime().Decode(str)
	if err != nil {
		return time.Time{}, vld.NewIssuesWithValue(vld.CustomCode(vld.CustomInvalidDatetime),
			fmt.Sprintf("Invalid datetime format: %q", str), v)
	}
	return t, nil
}

// ParseValue implements vld.AnySchema.
func (s DateTimeSchema) ParseValue(v vld.Value) (vld.Value, error) {
	t, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	out, _ := codec.DateTime().Encode(t)
	return vld.String(out), nil
}

// Descriptor implements vld.Describer.
func (s DateTimeSchema) Descriptor() vld.Descriptor {
	return vld.Descriptor{Type: vld.TypeString, Format: "date-time", Description: s.desc}
}
