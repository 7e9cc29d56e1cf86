// Package source turns external input (JSON or YAML bytes, readers, files)
// into a vld.Value ready to be parsed by a schema.
//
// Every failure is reported as vld.Issues so callers handle input errors and
// validation errors the same way: read failures carry the io_error code,
// syntax errors, duplicate keys and limit violations the parse_error code.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/vld"
)

// ErrUnknownFormat is returned when a format or policy name is not recognized.
var ErrUnknownFormat = errors.New("source: unknown format")

// Format selects the decoder.
type Format int

const (
	// Auto reads JSON when the first non-space byte opens an object or array
	// and YAML otherwise.
	Auto Format = iota
	JSON
	YAML
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat maps "auto", "json", "yaml" or "yml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}
	return Auto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath picks the format from the file extension. Unknown
// extensions yield Auto.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	}
	return Auto
}

// DuplicateKeys is the policy for repeated object keys.
type DuplicateKeys int

const (
	// DuplicateLast keeps the first position and the last value of a
	// repeated key, as vld.ParseJSON does.
	DuplicateLast DuplicateKeys = iota
	// DuplicateError reports one parse_error per repeated key.
	DuplicateError
)

func (d DuplicateKeys) String() string {
	if d == DuplicateError {
		return "error"
	}
	return "last"
}

// ParseDuplicateKeys maps "last" or "error" to a policy.
func ParseDuplicateKeys(s string) (DuplicateKeys, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last":
		return DuplicateLast, nil
	case "error":
		return DuplicateError, nil
	}
	return DuplicateLast, fmt.Errorf("%w: duplicate key policy %q", ErrUnknownFormat, s)
}

type options struct {
	format     Format
	duplicates DuplicateKeys
	maxDepth   int
	maxBytes   int64
}

// Option configures decoding.
type Option func(*options)

// WithFormat forces a format instead of detecting it.
func WithFormat(f Format) Option { return func(o *options) { o.format = f } }

// WithDuplicateKeys sets the duplicate key policy. The default is
// DuplicateLast.
func WithDuplicateKeys(d DuplicateKeys) Option { return func(o *options) { o.duplicates = d } }

// WithMaxDepth limits container nesting. Zero means unlimited.
func WithMaxDepth(n int) Option { return func(o *options) { o.maxDepth = n } }

// WithMaxBytes limits the input size. Zero means unlimited.
func WithMaxBytes(n int64) Option { return func(o *options) { o.maxBytes = n } }

func buildOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Decode decodes a single document.
func Decode(data []byte, opts ...Option) (vld.Value, error) {
	return decode(data, buildOptions(opts))
}

// DecodeReader reads r to the end and decodes it.
func DecodeReader(r io.Reader, opts ...Option) (vld.Value, error) {
	o := buildOptions(opts)
	data, err := readAll(r, o.maxBytes)
	if err != nil {
		return vld.Value{}, err
	}
	return decode(data, o)
}

// ReadFile reads and decodes path. Without WithFormat the format comes from
// the file extension.
func ReadFile(path string, opts ...Option) (vld.Value, error) {
	o := options{format: FormatFromPath(path)}
	for _, fn := range opts {
		fn(&o)
	}
	f, err := os.Open(path)
	if err != nil {
		return vld.Value{}, readIssue(err)
	}
	defer f.Close()
	data, err := readAll(f, o.maxBytes)
	if err != nil {
		return vld.Value{}, err
	}
	return decode(data, o)
}

func readAll(r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readIssue(err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, vld.NewIssues(vld.IOErrorCode(), fmt.Sprintf("Input exceeds %d bytes", limit))
	}
	return data, nil
}

func readIssue(err error) vld.Issues {
	return vld.NewIssues(vld.IOErrorCode(), "Failed to read file: "+err.Error())
}

func decode(data []byte, o options) (vld.Value, error) {
	if o.maxBytes > 0 && int64(len(data)) > o.maxBytes {
		return vld.Value{}, vld.NewIssues(vld.IOErrorCode(), fmt.Sprintf("Input exceeds %d bytes", o.maxBytes))
	}
	format := o.format
	if format == Auto {
		format = sniff(data)
	}
	if format == YAML {
		return decodeYAML(data, o)
	}
	return decodeJSON(data, o)
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSON
	}
	return YAML
}

func depthIssue(path vld.Path, limit int) vld.Issue {
	return vld.Issue{Code: vld.ParseErrorCode(), Path: path, Message: fmt.Sprintf("Maximum nesting depth %d exceeded", limit)}
}

func duplicateIssue(path vld.Path, key string) vld.Issue {
	return vld.Issue{Code: vld.ParseErrorCode(), Path: path, Message: fmt.Sprintf("Duplicate key %q", key)}
}
