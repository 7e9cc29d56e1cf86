package dsl

import (
	"fmt"

	"github.com/reoring/vld"
)

// ---- refine ----

// RefineSchema adds a predicate on the parsed output.
type RefineSchema[T any] struct {
	inner vld.Schema[T]
	pred  func(T) bool
	msg   string
}

// Refine runs s first; when it succeeds and pred returns false the parse
// fails with one custom issue carrying msg.
func Refine[T any](s vld.Schema[T], pred func(T) bool, msg string) RefineSchema[T] {
	if s == nil || pred == nil {
		panic("dsl: Refine requires a schema and a predicate")
	}
	return RefineSchema[T]{inner: s, pred: pred, msg: msg}
}

// Parse implements vld.Schema[T].
func (s RefineSchema[T]) Parse(v vld.Value) (T, error) {
	out, err := s.inner.Parse(v)
	if err != nil {
		return out, err
	}
	if !s.pred(out) {
		var zero T
		return zero, vld.NewIssuesWithValue(vld.CustomCode(vld.CustomCustom), s.msg, v)
	}
	return out, nil
}

func (s RefineSchema[T]) ParseValue(v vld.Value) (vld.Value, error) { return vld.ParseAny[T](s, v) }
func (s RefineSchema[T]) Descriptor() vld.Descriptor                { return describe(s.inner) }

// SuperRefineSchema lets a function report any number of issues about the
// parsed output.
type SuperRefineSchema[T any] struct {
	inner vld.Schema[T]
	fn    func(T, *vld.Issues)
}

// SuperRefine runs s first; when it succeeds fn may add issues, and any
// added issue fails the parse. Paths set by fn are kept.
func SuperRefine[T any](s vld.Schema[T], fn func(T, *vld.Issues)) SuperRefineSchema[T] {
	if s == nil || fn == nil {
		panic("dsl: SuperRefine requires a schema and a function")
	}
	return SuperRefineSchema[T]{inner: s, fn: fn}
}

// Parse implements vld.Schema[T].
func (s SuperRefineSchema[T]) Parse(v vld.Value) (T, error) {
	out, err := s.inner.Parse(v)
	if err != nil {
		return out, err
	}
	var iss vld.Issues
	s.fn(out, &iss)
	if len(iss) > 0 {
		var zero T
		return zero, iss
	}
	return out, nil
}

func (s SuperRefineSchema[T]) ParseValue(v vld.Value) (vld.Value, error) {
	return vld.ParseAny[T](s, v)
}
func (s SuperRefineSchema[T]) Descriptor() vld.Descriptor { return describe(s.inner) }

// ---- transform / pipe / preprocess ----

// TransformSchema maps the output of a successful parse.
type TransformSchema[T, U any] struct {
	inner vld.Schema[T]
	fn    func(T) U
}

// Transform returns a schema producing fn(out) for every successful parse of s.
func Transform[T, U any](s vld.Schema[T], fn func(T) U) TransformSchema[T, U] {
	if s == nil || fn == nil {
		panic("dsl: Transform requires a schema and a function")
	}
	return TransformSchema[T, U]{inner: s, fn: fn}
}

// Parse implements vld.Schema[U].
func (s TransformSchema[T, U]) Parse(v vld.Value) (U, error) {
	out, err := s.inner.Parse(v)
	if err != nil {
		var zero U
		return zero, err
	}
	return s.fn(out), nil
}

func (s TransformSchema[T, U]) ParseValue(v vld.Value) (vld.Value, error) {
	return vld.ParseAny[U](s, v)
}
func (s TransformSchema[T, U]) Descriptor() vld.Descriptor { return describe(s.inner) }

// PipeSchema feeds the re-encoded output of one schema into another.
type PipeSchema[T, U any] struct {
	first  vld.Schema[T]
	second vld.Schema[U]
}

// Pipe parses with first, re-encodes its output as a Value and parses that
// with second. Issues of second are reported against the intermediate value.
func Pipe[T, U any](first vld.Schema[T], second vld.Schema[U]) PipeSchema[T, U] {
	if first == nil || second == nil {
		panic("dsl: Pipe requires two schemas")
	}
	return PipeSchema[T, U]{first: first, second: second}
}

// Parse implements vld.Schema[U].
func (s PipeSchema[T, U]) Parse(v vld.Value) (U, error) {
	var zero U
	out, err := s.first.Parse(v)
	if err != nil {
		return zero, err
	}
	mid, err := vld.ValueOf(out)
	if err != nil {
		return zero, vld.NewIssues(vld.CustomCode(vld.CustomPipeSerialize),
			fmt.Sprintf("Failed to serialize intermediate value in pipe: %v", err))
	}
	return s.second.Parse(mid)
}

func (s PipeSchema[T, U]) ParseValue(v vld.Value) (vld.Value, error) {
	return vld.ParseAny[U](s, v)
}
func (s PipeSchema[T, U]) Descriptor() vld.Descriptor { return describe(s.second) }

// PreprocessSchema rewrites the raw input before parsing.
type PreprocessSchema[T any] struct {
	fn    func(vld.Value) vld.Value
	inner vld.Schema[T]
}

// Preprocess applies fn to the input and parses the result with s.
func Preprocess[T any](fn func(vld.Value) vld.Value, s vld.Schema[T]) PreprocessSchema[T] {
	if s == nil || fn == nil {
		panic("dsl: Preprocess requires a function and a schema")
	}
	return PreprocessSchema[T]{fn: fn, inner: s}
}

func (s PreprocessSchema[T]) Parse(v vld.Value) (T, error) { return s.inner.Parse(s.fn(v)) }
func (s PreprocessSchema[T]) ParseValue(v vld.Value) (vld.Value, error) {
	return erase(s.inner, s.fn(v))
}
func (s PreprocessSchema[T]) Descriptor() vld.Descriptor { return describe(s.inner) }

// ---- messages and metadata ----

// MessageSchema replaces the message of every issue of the inner schema.
type MessageSchema[T any] struct {
	inner vld.Schema[T]
	msg   string
}

// WithMessage returns s with every issue message replaced by msg. Codes,
// paths and snapshots are kept.
func WithMessage[T any](s vld.Schema[T], msg string) MessageSchema[T] {
	if s == nil {
		panic("dsl: WithMessage of nil schema")
	}
	return MessageSchema[T]{inner: s, msg: msg}
}

// Parse implements vld.Schema[T].
func (s MessageSchema[T]) Parse(v vld.Value) (T, error) {
	out, err := s.inner.Parse(v)
	if err != nil {
		return out, s.rewrite(err)
	}
	return out, nil
}

// ParseValue implements vld.AnySchema.
func (s MessageSchema[T]) ParseValue(v vld.Value) (vld.Value, error) {
	out, err := erase(s.inner, v)
	if err != nil {
		return out, s.rewrite(err)
	}
	return out, nil
}

func (s MessageSchema[T]) rewrite(err error) vld.Issues {
	src := issues(err)
	out := make(vld.Issues, len(src))
	for i, it := range src {
		it.Message = s.msg
		out[i] = it
	}
	return out
}

func (s MessageSchema[T]) Descriptor() vld.Descriptor { return describe(s.inner) }

// DescribedSchema attaches a description without changing behavior.
type DescribedSchema[T any] struct {
	inner vld.Schema[T]
	text  string
}

// Describe attaches a human description to s. Parsing is unaffected.
func Describe[T any](s vld.Schema[T], text string) DescribedSchema[T] {
	if s == nil {
		panic("dsl: Describe of nil schema")
	}
	return DescribedSchema[T]{inner: s, text: text}
}

func (s DescribedSchema[T]) Parse(v vld.Value) (T, error)              { return s.inner.Parse(v) }
func (s DescribedSchema[T]) ParseValue(v vld.Value) (vld.Value, error) { return erase(s.inner, v) }

// Descriptor implements vld.Describer.
func (s DescribedSchema[T]) Descriptor() vld.Descriptor {
	d := describe(s.inner)
	d.Description = s.text
	return d
}

// ---- lazy ----

// LazySchema builds its schema on every parse.
type LazySchema[T any] struct {
	factory func() vld.Schema[T]
}

// Lazy defers schema construction to parse time, allowing self-reference.
// The factory runs on every parse and every nesting level; recursion depth is
// bounded only by the input.
func Lazy[T any](factory func() vld.Schema[T]) LazySchema[T] {
	if factory == nil {
		panic("dsl: Lazy with nil factory")
	}
	return LazySchema[T]{factory: factory}
}

func (s LazySchema[T]) Parse(v vld.Value) (T, error)              { return s.factory().Parse(v) }
func (s LazySchema[T]) ParseValue(v vld.Value) (vld.Value, error) { return erase(s.factory(), v) }

// Descriptor reports a lazy node without invoking the factory.
func (s LazySchema[T]) Descriptor() vld.Descriptor { return vld.Descriptor{Type: vld.TypeLazy} }
