package vld

import (
	"errors"
	"strconv"
	"strings"
)

// Stable issue keys, usable as message-table keys.
const (
	CodeInvalidType       = "invalid_type"
	CodeTooSmall          = "too_small"
	CodeTooBig            = "too_big"
	CodeInvalidString     = "invalid_string"
	CodeNotInt            = "not_int"
	CodeNotFinite         = "not_finite"
	CodeMissingField      = "missing_field"
	CodeUnrecognizedField = "unrecognized_field"
	CodeIOError           = "io_error"
	CodeParseError        = "parse_error"
)

// Custom codes emitted by the built-in validators.
const (
	CustomCustom             = "custom"
	CustomSerialize          = "serialize"
	CustomPipeSerialize      = "pipe_serialize"
	CustomInvalidUnion       = "invalid_union"
	CustomInvalidDiscrim     = "invalid_discriminator"
	CustomInvalidLiteral     = "invalid_literal"
	CustomInvalidEnumValue   = "invalid_enum_value"
	CustomInvalidLength      = "invalid_length"
	CustomInvalidMapEntry    = "invalid_map_entry"
	CustomInvalidTupleLength = "invalid_tuple_length"
	CustomInvalidDate        = "invalid_date"
	CustomInvalidDatetime    = "invalid_datetime"
	CustomNotMultipleOf      = "not_multiple_of"
	CustomNotSafe            = "not_safe"
	CustomInvalidString      = "invalid_string"
)

// CodeKind is the taxonomy tag of an IssueCode.
type CodeKind uint8

const (
	KindInvalidType CodeKind = iota
	KindTooSmall
	KindTooBig
	KindInvalidString
	KindNotInt
	KindNotFinite
	KindMissingField
	KindUnrecognizedField
	KindIOError
	KindParseError
	KindCustom
)

// StringValidation names the string format check that failed.
type StringValidation string

const (
	ValidationEmail       StringValidation = "email"
	ValidationURL         StringValidation = "url"
	ValidationUUID        StringValidation = "uuid"
	ValidationRegex       StringValidation = "regex"
	ValidationStartsWith  StringValidation = "starts_with"
	ValidationEndsWith    StringValidation = "ends_with"
	ValidationIPv4        StringValidation = "ipv4"
	ValidationIPv6        StringValidation = "ipv6"
	ValidationBase64      StringValidation = "base64"
	ValidationISODate     StringValidation = "iso_date"
	ValidationISODatetime StringValidation = "iso_datetime"
	ValidationISOTime     StringValidation = "iso_time"
	ValidationHostname    StringValidation = "hostname"
	ValidationCUID2       StringValidation = "cuid2"
	ValidationULID        StringValidation = "ulid"
	ValidationNanoID      StringValidation = "nanoid"
	ValidationEmoji       StringValidation = "emoji"
)

// IssueCode classifies an issue. Only the fields relevant to Kind are set.
type IssueCode struct {
	Kind       CodeKind
	Expected   string           // InvalidType
	Received   string           // InvalidType
	Minimum    float64          // TooSmall
	Maximum    float64          // TooBig
	Inclusive  bool             // TooSmall, TooBig
	Validation StringValidation // InvalidString
	Custom     string           // Custom
}

func InvalidTypeCode(expected, received string) IssueCode {
	return IssueCode{Kind: KindInvalidType, Expected: expected, Received: received}
}

func TooSmallCode(minimum float64, inclusive bool) IssueCode {
	return IssueCode{Kind: KindTooSmall, Minimum: minimum, Inclusive: inclusive}
}

func TooBigCode(maximum float64, inclusive bool) IssueCode {
	return IssueCode{Kind: KindTooBig, Maximum: maximum, Inclusive: inclusive}
}

func InvalidStringCode(v StringValidation) IssueCode {
	return IssueCode{Kind: KindInvalidString, Validation: v}
}

func NotIntCode() IssueCode            { return IssueCode{Kind: KindNotInt} }
func NotFiniteCode() IssueCode         { return IssueCode{Kind: KindNotFinite} }
func MissingFieldCode() IssueCode      { return IssueCode{Kind: KindMissingField} }
func UnrecognizedFieldCode() IssueCode { return IssueCode{Kind: KindUnrecognizedField} }
func IOErrorCode() IssueCode           { return IssueCode{Kind: KindIOError} }
func ParseErrorCode() IssueCode        { return IssueCode{Kind: KindParseError} }

// CustomCode returns a Custom code; its key is code itself.
func CustomCode(code string) IssueCode { return IssueCode{Kind: KindCustom, Custom: code} }

// Key returns the stable string key of the code.
func (c IssueCode) Key() string {
	switch c.Kind {
	case KindInvalidType:
		return CodeInvalidType
	case KindTooSmall:
		return CodeTooSmall
	case KindTooBig:
		return CodeTooBig
	case KindInvalidString:
		return CodeInvalidString
	case KindNotInt:
		return CodeNotInt
	case KindNotFinite:
		return CodeNotFinite
	case KindMissingField:
		return CodeMissingField
	case KindUnrecognizedField:
		return CodeUnrecognizedField
	case KindIOError:
		return CodeIOError
	case KindParseError:
		return CodeParseError
	}
	return c.Custom
}

// Param is a named code parameter, used for message templates.
type Param struct {
	Name  string
	Value string
}

// Params returns the code parameters in a fixed order.
func (c IssueCode) Params() []Param {
	switch c.Kind {
	case KindInvalidType:
		return []Param{{"expected", c.Expected}, {"received", c.Received}}
	case KindTooSmall:
		return []Param{{"minimum", FormatNumber(c.Minimum)}, {"inclusive", strconv.FormatBool(c.Inclusive)}}
	case KindTooBig:
		return []Param{{"maximum", FormatNumber(c.Maximum)}, {"inclusive", strconv.FormatBool(c.Inclusive)}}
	case KindInvalidString:
		return []Param{{"validation", string(c.Validation)}}
	case KindCustom:
		return []Param{{"code", c.Custom}}
	}
	return nil
}

// Issue is a single validation failure.
type Issue struct {
	Code    IssueCode
	Message string
	Path    Path
	// Received is a truncated snapshot of the offending value, when known.
	Received *Value
}

// String renders "path: message, received X". The path part is omitted at the
// root and the received part when no snapshot was recorded.
func (it Issue) String() string {
	var b strings.Builder
	if !it.Path.Root() {
		b.WriteString(it.Path.String())
		b.WriteString(": ")
	}
	b.WriteString(it.Message)
	if it.Received != nil {
		b.WriteString(", received ")
		b.WriteString(FormatShort(*it.Received))
	}
	return b.String()
}

// Issues is the ordered set of failures of one parse. It implements error; a
// parse succeeds iff its Issues are empty.
type Issues []Issue

// Error renders one issue per line.
func (iss Issues) Error() string {
	var b strings.Builder
	for i, it := range iss {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(it.String())
	}
	return b.String()
}

// Err returns iss as an error, or nil when it is empty.
func (iss Issues) Err() error {
	if len(iss) == 0 {
		return nil
	}
	return iss
}

// Add appends an issue without a snapshot.
func (iss *Issues) Add(code IssueCode, msg string) {
	*iss = append(*iss, Issue{Code: code, Message: msg})
}

// AddWithValue appends an issue with a snapshot of v.
func (iss *Issues) AddWithValue(code IssueCode, msg string, v Value) {
	snap := Snapshot(v)
	*iss = append(*iss, Issue{Code: code, Message: msg, Received: &snap})
}

// AddAt appends an issue located at path (relative to the value being
// validated).
func (iss *Issues) AddAt(path Path, code IssueCode, msg string) {
	*iss = append(*iss, Issue{Code: code, Message: msg, Path: path})
}

// Merge returns the receiver's issues followed by other's.
func (iss Issues) Merge(other Issues) Issues {
	if len(other) == 0 {
		return iss
	}
	out := make(Issues, 0, len(iss)+len(other))
	out = append(out, iss...)
	return append(out, other...)
}

// WithPrefix returns a copy with seg prepended to every issue path.
func (iss Issues) WithPrefix(seg PathSegment) Issues {
	if len(iss) == 0 {
		return iss
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		p := make(Path, 0, len(it.Path)+1)
		p = append(p, seg)
		it.Path = append(p, it.Path...)
		out[i] = it
	}
	return out
}

// Keys lists the stable code keys in order.
func (iss Issues) Keys() []string {
	keys := make([]string, len(iss))
	for i, it := range iss {
		keys[i] = it.Code.Key()
	}
	return keys
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
