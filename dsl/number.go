package dsl

import (
	"fmt"
	"math"

	"github.com/asaskevich/govalidator"

	"github.com/reoring/vld"
)

// maxSafeInteger is 2^53-1, the largest integer a float64 holds exactly.
const maxSafeInteger = 9007199254740991

type numberCheck struct {
	key  string
	code vld.IssueCode
	msg  string
	ok   func(n float64) bool
}

// NumberSchema validates JSON numbers as float64. Checks accumulate.
type NumberSchema struct {
	coerce  bool
	checks  []numberCheck
	typeMsg string
	desc    string
	bounds  numberBounds
}

// numberBounds mirrors the checks for the descriptor.
type numberBounds struct {
	min, max, gt, lt, multipleOf *float64
}

var (
	_ vld.Schema[float64] = NumberSchema{}
	_ vld.AnySchema       = NumberSchema{}
)

// Number returns a number schema without checks.
func Number() NumberSchema { return NumberSchema{} }

// Coerce accepts numeric strings and booleans (true is 1, false is 0).
func (s NumberSchema) Coerce() NumberSchema { s.coerce = true; return s }

// TypeError replaces the message of the type mismatch issue.
func (s NumberSchema) TypeError(msg string) NumberSchema { s.typeMsg = msg; return s }

func (s NumberSchema) Describe(text string) NumberSchema { s.desc = text; return s }

// WithMessages overrides check messages by check key (too_small, too_big,
// not_positive, not_negative, not_non_negative, not_non_positive, not_finite,
// not_multiple_of, not_safe).
func (s NumberSchema) WithMessages(fn func(key string) (string, bool)) NumberSchema {
	checks := make([]numberCheck, len(s.checks))
	for i, c := range s.checks {
		if msg, ok := fn(c.key); ok {
			c.msg = msg
		}
		checks[i] = c
	}
	s.checks = checks
	return s
}

func (s NumberSchema) check(c numberCheck) NumberSchema {
	s.checks = cloneAppend(s.checks, c)
	return s
}

// Min requires n >= v.
func (s NumberSchema) Min(v float64) NumberSchema {
	s.bounds.min = &v
	return s.check(numberCheck{"too_small", vld.TooSmallCode(v, true),
		"Number must be at least " + vld.FormatNumber(v), func(n float64) bool { return n >= v }})
}

// Gte is an alias of Min.
func (s NumberSchema) Gte(v float64) NumberSchema { return s.Min(v) }

// Max requires n <= v.
func (s NumberSchema) Max(v float64) NumberSchema {
	s.bounds.max = &v
	return s.check(numberCheck{"too_big", vld.TooBigCode(v, true),
		"Number must be at most " + vld.FormatNumber(v), func(n float64) bool { return n <= v }})
}

// Lte is an alias of Max.
func (s NumberSchema) Lte(v float64) NumberSchema { return s.Max(v) }

// Gt requires n > v.
func (s NumberSchema) Gt(v float64) NumberSchema {
	s.bounds.gt = &v
	return s.check(numberCheck{"too_small", vld.TooSmallCode(v, false),
		"Number must be greater than " + vld.FormatNumber(v), func(n float64) bool { return n > v }})
}

// Lt requires n < v.
func (s NumberSchema) Lt(v float64) NumberSchema {
	s.bounds.lt = &v
	return s.check(numberCheck{"too_big", vld.TooBigCode(v, false),
		"Number must be less than " + vld.FormatNumber(v), func(n float64) bool { return n < v }})
}

func (s NumberSchema) Positive() NumberSchema {
	return s.check(numberCheck{"not_positive", vld.TooSmallCode(0, false),
		"Number must be positive", func(n float64) bool { return n > 0 }})
}

func (s NumberSchema) Negative() NumberSchema {
	return s.check(numberCheck{"not_negative", vld.TooBigCode(0, false),
		"Number must be negative", func(n float64) bool { return n < 0 }})
}

func (s NumberSchema) NonNegative() NumberSchema {
	return s.check(numberCheck{"not_non_negative", vld.TooSmallCode(0, true),
		"Number must be non-negative", func(n float64) bool { return n >= 0 }})
}

func (s NumberSchema) NonPositive() NumberSchema {
	return s.check(numberCheck{"not_non_positive", vld.TooBigCode(0, true),
		"Number must be non-positive", func(n float64) bool { return n <= 0 }})
}

// Finite rejects NaN and infinities. Values decoded from JSON are always
// finite; the check matters for coerced and programmatic input.
func (s NumberSchema) Finite() NumberSchema {
	return s.check(numberCheck{"not_finite", vld.NotFiniteCode(),
		"Number must be finite", func(n float64) bool { return !math.IsNaN(n) && !math.IsInf(n, 0) }})
}

// MultipleOf requires n to be a multiple of v within float64 epsilon.
func (s NumberSchema) MultipleOf(v float64) NumberSchema {
	s.bounds.multipleOf = &v
	return s.check(numberCheck{"not_multiple_of", vld.CustomCode(vld.CustomNotMultipleOf),
		"Number must be a multiple of " + vld.FormatNumber(v), func(n float64) bool { return isMultiple(n, v) }})
}

// Safe requires -(2^53-1) <= n <= 2^53-1.
func (s NumberSchema) Safe() NumberSchema {
	return s.check(numberCheck{"not_safe", vld.CustomCode(vld.CustomNotSafe),
		"Number must be a safe integer (-(2^53-1) to 2^53-1)",
		func(n float64) bool { return n >= -maxSafeInteger && n <= maxSafeInteger }})
}

// Int converts the schema to an integer schema keeping its checks.
func (s NumberSchema) Int() IntSchema { return IntSchema{inner: s} }

func isMultiple(n, v float64) bool {
	return math.Abs(math.Mod(n, v)) <= epsilon
}

const epsilon = 2.220446049250313e-16

// extract reads the number, applying coercion when enabled.
func (s NumberSchema) extract(v vld.Value) (float64, vld.Issues) {
	if n, ok := v.Number(); ok {
		return n, nil
	}
	if s.coerce {
		switch v.Kind() {
		case vld.KindString:
			str, _ := v.Str()
			if govalidator.IsFloat(str) {
				if n, err := govalidator.ToFloat(str); err == nil {
					return n, nil
				}
			}
			msg := s.typeMsg
			if msg == "" {
				msg = fmt.Sprintf("Cannot coerce %q to number", str)
			}
			return 0, vld.NewIssuesWithValue(vld.InvalidTypeCode("number", "string"), msg, v)
		case vld.KindBool:
			if b, _ := v.Bool(); b {
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, typeIssue("number", v, s.typeMsg)
}

// validate runs every check against n; the snapshot is the original input.
func (s NumberSchema) validate(n float64, v vld.Value) vld.Issues {
	var iss vld.Issues
	for _, c := range s.checks {
		if !c.ok(n) {
			iss.AddWithValue(c.code, c.msg, v)
		}
	}
	return iss
}

// Parse implements vld.Schema[float64].
func (s NumberSchema) Parse(v vld.Value) (float64, error) {
	n, iss := s.extract(v)
	if len(iss) > 0 {
		return 0, iss
	}
	if iss = s.validate(n, v); len(iss) > 0 {
		return 0, iss
	}
	return n, nil
}

// ParseValue implements vld.AnySchema.
func (s NumberSchema) ParseValue(v vld.Value) (vld.Value, error) {
	n, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.Number(n), nil
}

// Descriptor implements vld.Describer.
func (s NumberSchema) Descriptor() vld.Descriptor {
	d := vld.Descriptor{
		Type:             vld.TypeNumber,
		Description:      s.desc,
		Minimum:          s.bounds.min,
		Maximum:          s.bounds.max,
		ExclusiveMinimum: s.bounds.gt,
		ExclusiveMaximum: s.bounds.lt,
		MultipleOf:       s.bounds.multipleOf,
	}
	for _, c := range s.checks {
		d.Checks = append(d.Checks, c.key)
	}
	return d
}

// ---- integers ----

// IntSchema validates integral numbers as int64. The integrality check runs
// before the bound checks and short-circuits them.
type IntSchema struct {
	inner  NumberSchema
	intMsg string
}

var (
	_ vld.Schema[int64] = IntSchema{}
	_ vld.AnySchema     = IntSchema{}
)

// Int returns an integer schema without checks.
func Int() IntSchema { return IntSchema{} }

func (s IntSchema) Coerce() IntSchema { s.inner = s.inner.Coerce(); return s }

func (s IntSchema) TypeError(msg string) IntSchema { s.inner = s.inner.TypeError(msg); return s }

// IntError replaces the "Expected integer, received float" message.
func (s IntSchema) IntError(msg string) IntSchema { s.intMsg = msg; return s }

func (s IntSchema) Describe(text string) IntSchema { s.inner = s.inner.Describe(text); return s }

// WithMessages overrides messages by check key; "not_int" targets the
// integrality check.
func (s IntSchema) WithMessages(fn func(key string) (string, bool)) IntSchema {
	if msg, ok := fn(vld.CodeNotInt); ok {
		s.intMsg = msg
	}
	s.inner = s.inner.WithMessages(fn)
	return s
}

func (s IntSchema) Min(v int64) IntSchema  { s.inner = s.inner.Min(float64(v)); return s }
func (s IntSchema) Gte(v int64) IntSchema  { return s.Min(v) }
func (s IntSchema) Max(v int64) IntSchema  { s.inner = s.inner.Max(float64(v)); return s }
func (s IntSchema) Lte(v int64) IntSchema  { return s.Max(v) }
func (s IntSchema) Gt(v int64) IntSchema   { s.inner = s.inner.Gt(float64(v)); return s }
func (s IntSchema) Lt(v int64) IntSchema   { s.inner = s.inner.Lt(float64(v)); return s }
func (s IntSchema) Positive() IntSchema    { s.inner = s.inner.Positive(); return s }
func (s IntSchema) Negative() IntSchema    { s.inner = s.inner.Negative(); return s }
func (s IntSchema) NonNegative() IntSchema { s.inner = s.inner.NonNegative(); return s }
func (s IntSchema) NonPositive() IntSchema { s.inner = s.inner.NonPositive(); return s }
func (s IntSchema) Safe() IntSchema        { s.inner = s.inner.Safe(); return s }
func (s IntSchema) MultipleOf(v int64) IntSchema {
	s.inner = s.inner.MultipleOf(float64(v))
	return s
}

// maxInt64Float is 2^63, the first float64 above the int64 range.
const maxInt64Float = float64(1 << 63)

// Parse implements vld.Schema[int64].
func (s IntSchema) Parse(v vld.Value) (int64, error) {
	n, iss := s.inner.extract(v)
	if len(iss) > 0 {
		return 0, iss
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		msg := s.intMsg
		if msg == "" {
			msg = "Expected integer, received float"
		}
		return 0, vld.NewIssuesWithValue(vld.NotIntCode(), msg, v)
	}
	if n >= maxInt64Float {
		return 0, vld.NewIssuesWithValue(vld.TooBigCode(maxInt64Float, false),
			fmt.Sprintf("Integer must be at most %d", int64(math.MaxInt64)), v)
	}
	if n < -maxInt64Float {
		return 0, vld.NewIssuesWithValue(vld.TooSmallCode(-maxInt64Float, true),
			fmt.Sprintf("Integer must be at least %d", int64(math.MinInt64)), v)
	}
	if iss = s.inner.validate(n, v); len(iss) > 0 {
		return 0, iss
	}
	return int64(n), nil
}

// ParseValue implements vld.AnySchema.
func (s IntSchema) ParseValue(v vld.Value) (vld.Value, error) {
	n, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.Int(n), nil
}

// Descriptor implements vld.Describer.
func (s IntSchema) Descriptor() vld.Descriptor {
	d := s.inner.Descriptor()
	d.Type = vld.TypeInteger
	return d
}
