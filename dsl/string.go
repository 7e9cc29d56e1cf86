package dsl

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reoring/vld"
	"github.com/reoring/vld/codec"
)

type stringTransform uint8

const (
	transformTrim stringTransform = iota
	transformLower
	transformUpper
)

// stringCheck is one accumulated string check. key is the stable check key
// used by WithMessages.
type stringCheck struct {
	key  string
	code vld.IssueCode
	msg  string
	ok   func(s string) bool
	// descriptor hint
	format string
}

// StringSchema validates strings. Transforms run first, in declaration order,
// then every check runs against the transformed string.
type StringSchema struct {
	coerce     bool
	transforms []stringTransform
	checks     []stringCheck
	typeMsg    string
	desc       string
	pattern    string
	minLen     *int
	maxLen     *int
}

var (
	_ vld.Schema[string] = StringSchema{}
	_ vld.AnySchema      = StringSchema{}
)

// String returns a string schema without checks.
func String() StringSchema { return StringSchema{} }

// Coerce accepts numbers and booleans and converts them to their string form.
func (s StringSchema) Coerce() StringSchema { s.coerce = true; return s }

// TypeError replaces the message of the type mismatch issue.
func (s StringSchema) TypeError(msg string) StringSchema { s.typeMsg = msg; return s }

// Describe attaches a description for introspection.
func (s StringSchema) Describe(text string) StringSchema { s.desc = text; return s }

// WithMessages overrides check messages by check key (too_small, too_big,
// invalid_length, invalid_email, ...). fn returns false to keep a message.
func (s StringSchema) WithMessages(fn func(key string) (string, bool)) StringSchema {
	checks := make([]stringCheck, len(s.checks))
	for i, c := range s.checks {
		if msg, ok := fn(c.key); ok {
			c.msg = msg
		}
		checks[i] = c
	}
	s.checks = checks
	return s
}

// ---- transforms ----

func (s StringSchema) Trim() StringSchema { return s.transform(transformTrim) }

func (s StringSchema) ToLower() StringSchema { return s.transform(transformLower) }

func (s StringSchema) ToUpper() StringSchema { return s.transform(transformUpper) }

func (s StringSchema) transform(t stringTransform) StringSchema {
	s.transforms = cloneAppend(s.transforms, t)
	return s
}

// ---- checks ----

func (s StringSchema) check(c stringCheck) StringSchema {
	s.checks = cloneAppend(s.checks, c)
	return s
}

// Min requires at least n characters (runes).
func (s StringSchema) Min(n int) StringSchema {
	s.minLen = &n
	return s.check(stringCheck{
		key: "too_small", code: vld.TooSmallCode(float64(n), true),
		msg: fmt.Sprintf("String must be at least %d characters", n),
		ok:  func(v string) bool { return utf8.RuneCountInString(v) >= n },
	})
}

// Max allows at most n characters (runes).
func (s StringSchema) Max(n int) StringSchema {
	s.maxLen = &n
	return s.check(stringCheck{
		key: "too_big", code: vld.TooBigCode(float64(n), true),
		msg: fmt.Sprintf("String must be at most %d characters", n),
		ok:  func(v string) bool { return utf8.RuneCountInString(v) <= n },
	})
}

// Length requires exactly n characters (runes).
func (s StringSchema) Length(n int) StringSchema {
	s.minLen, s.maxLen = &n, &n
	return s.check(stringCheck{
		key: "invalid_length", code: vld.CustomCode(vld.CustomInvalidLength),
		msg: fmt.Sprintf("String must be exactly %d characters", n),
		ok:  func(v string) bool { return utf8.RuneCountInString(v) == n },
	})
}

// NonEmpty rejects the empty string.
func (s StringSchema) NonEmpty() StringSchema {
	one := 1
	s.minLen = &one
	return s.check(stringCheck{
		key: "non_empty", code: vld.TooSmallCode(1, true),
		msg: "String must not be empty",
		ok:  func(v string) bool { return v != "" },
	})
}

func (s StringSchema) Email() StringSchema {
	return s.format("invalid_email", vld.ValidationEmail, "Invalid email address", "email", ruleCheck(is.EmailFormat))
}

// URL accepts absolute http and https URLs with a non-empty host part.
func (s StringSchema) URL() StringSchema {
	return s.format("invalid_url", vld.ValidationURL, "Invalid URL", "uri", isHTTPURL)
}

// UUID accepts the canonical 8-4-4-4-12 hex form.
func (s StringSchema) UUID() StringSchema {
	return s.format("invalid_uuid", vld.ValidationUUID, "Invalid UUID", "uuid", isUUID)
}

// Regex requires a match of re anywhere in the string.
func (s StringSchema) Regex(re *regexp.Regexp) StringSchema {
	if re == nil {
		panic("dsl: String().Regex with nil pattern")
	}
	s.pattern = re.String()
	return s.format("invalid_regex", vld.ValidationRegex, "String does not match pattern", "", re.MatchString)
}

func (s StringSchema) StartsWith(prefix string) StringSchema {
	return s.format("invalid_starts_with", vld.ValidationStartsWith,
		fmt.Sprintf("String must start with %q", prefix), "",
		func(v string) bool { return strings.HasPrefix(v, prefix) })
}

func (s StringSchema) EndsWith(suffix string) StringSchema {
	return s.format("invalid_ends_with", vld.ValidationEndsWith,
		fmt.Sprintf("String must end with %q", suffix), "",
		func(v string) bool { return strings.HasSuffix(v, suffix) })
}

// Includes requires sub to occur in the string.
func (s StringSchema) Includes(sub string) StringSchema {
	return s.check(stringCheck{
		key: "invalid_contains", code: vld.CustomCode(vld.CustomInvalidString),
		msg: fmt.Sprintf("String must contain %q", sub),
		ok:  func(v string) bool { return strings.Contains(v, sub) },
	})
}

func (s StringSchema) IPv4() StringSchema {
	return s.format("invalid_ipv4", vld.ValidationIPv4, "Invalid IPv4 address", "ipv4", ruleCheck(is.IPv4))
}

func (s StringSchema) IPv6() StringSchema {
	return s.format("invalid_ipv6", vld.ValidationIPv6, "Invalid IPv6 address", "ipv6", ruleCheck(is.IPv6))
}

func (s StringSchema) Base64() StringSchema {
	return s.format("invalid_base64", vld.ValidationBase64, "Invalid Base64 string", "byte", ruleCheck(is.Base64))
}

func (s StringSchema) ISODate() StringSchema {
	return s.format("invalid_iso_date", vld.ValidationISODate, "Invalid ISO date (expected YYYY-MM-DD)", "date", codec.IsISODate)
}

func (s StringSchema) ISODateTime() StringSchema {
	return s.format("invalid_iso_datetime", vld.ValidationISODatetime, "Invalid ISO datetime", "date-time", codec.IsISODateTime)
}

// ISOTime accepts HH:MM and HH:MM:SS[.fff].
func (s StringSchema) ISOTime() StringSchema {
	return s.format("invalid_iso_time", vld.ValidationISOTime, "Invalid ISO time", "time", codec.IsISOTime)
}

func (s StringSchema) Hostname() StringSchema {
	return s.format("invalid_hostname", vld.ValidationHostname, "Invalid hostname", "hostname", ruleCheck(is.DNSName))
}

func (s StringSchema) CUID2() StringSchema {
	return s.format("invalid_cuid2", vld.ValidationCUID2, "Invalid CUID2", "cuid2", ruleCheck(validation.Match(cuid2Pattern)))
}

func (s StringSchema) ULID() StringSchema {
	return s.format("invalid_ulid", vld.ValidationULID, "Invalid ULID", "ulid", ruleCheck(validation.Match(ulidPattern)))
}

func (s StringSchema) NanoID() StringSchema {
	return s.format("invalid_nanoid", vld.ValidationNanoID, "Invalid Nano ID", "nanoid", ruleCheck(validation.Match(nanoIDPattern)))
}

// Emoji requires at least one emoji code point.
func (s StringSchema) Emoji() StringSchema {
	return s.format("invalid_emoji", vld.ValidationEmoji, "String must contain an emoji", "", hasEmoji)
}

func (s StringSchema) format(key string, kind vld.StringValidation, msg, format string, ok func(string) bool) StringSchema {
	return s.check(stringCheck{key: key, code: vld.InvalidStringCode(kind), msg: msg, ok: ok, format: format})
}

// ---- parse ----

// Parse implements vld.Schema[string].
func (s StringSchema) Parse(v vld.Value) (string, error) {
	str, ok := v.Str()
	if !ok {
		if !s.coerce {
			return "", typeIssue("string", v, s.typeMsg)
		}
		switch v.Kind() {
		case vld.KindNumber:
			n, _ := v.Number()
			str = vld.FormatNumber(n)
		case vld.KindBool:
			b, _ := v.Bool()
			str = fmt.Sprint(b)
		default:
			return "", typeIssue("string", v, s.typeMsg)
		}
	}
	for _, t := range s.transforms {
		switch t {
		case transformTrim:
			str = strings.TrimSpace(str)
		case transformLower:
			// Casers keep state; one per call.
			str = cases.Lower(language.Und).String(str)
		case transformUpper:
			str = cases.Upper(language.Und).String(str)
		}
	}
	var iss vld.Issues
	snap := vld.String(str)
	for _, c := range s.checks {
		if !c.ok(str) {
			iss.AddWithValue(c.code, c.msg, snap)
		}
	}
	if len(iss) > 0 {
		return "", iss
	}
	return str, nil
}

// ParseValue implements vld.AnySchema.
func (s StringSchema) ParseValue(v vld.Value) (vld.Value, error) {
	out, err := s.Parse(v)
	if err != nil {
		return vld.Value{}, err
	}
	return vld.String(out), nil
}

// Descriptor implements vld.Describer.
func (s StringSchema) Descriptor() vld.Descriptor {
	d := vld.Descriptor{Type: vld.TypeString, Description: s.desc, Pattern: s.pattern, MinLength: s.minLen, MaxLength: s.maxLen}
	for _, c := range s.checks {
		d.Checks = append(d.Checks, c.key)
		if c.format != "" && d.Format == "" {
			d.Format = c.format
		}
	}
	return d
}

// ---- format predicates ----

var (
	cuid2Pattern  = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	nanoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	ulidPattern   = regexp.MustCompile(`^[0-7][0-9A-HJKMNP-TV-Za-hjkmnp-tv-z]{25}$`)
)

// ruleCheck adapts an ozzo rule. ozzo rules treat "" as valid; format checks
// do not.
func ruleCheck(r validation.Rule) func(string) bool {
	return func(s string) bool { return s != "" && r.Validate(s) == nil }
}

func isHTTPURL(s string) bool {
	rest, ok := strings.CutPrefix(s, "https://")
	if !ok {
		if rest, ok = strings.CutPrefix(s, "http://"); !ok {
			return false
		}
	}
	if rest == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	return govalidator.IsRequestURL(s)
}

func isUUID(s string) bool {
	if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// emojiRanges are the code point blocks treated as emoji.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F}, {0x1F300, 0x1F5FF}, {0x1F680, 0x1F6FF}, {0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0}, {0x2600, 0x26FF}, {0xFE00, 0xFE0F}, {0x1F900, 0x1F9FF},
	{0x1FA00, 0x1FA6F}, {0x1FA70, 0x1FAFF}, {0x231A, 0x231B}, {0x23E9, 0x23F3},
	{0x23F8, 0x23FA}, {0x200D, 0x200D}, {0x2B50, 0x2B50}, {0x2764, 0x2764},
}

func hasEmoji(s string) bool {
	for _, r := range s {
		for _, rg := range emojiRanges {
			if r >= rg[0] && r <= rg[1] {
				return true
			}
		}
	}
	return false
}
