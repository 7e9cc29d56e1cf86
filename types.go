package vld

// UnknownMode controls how an object schema treats undeclared keys.
type UnknownMode int

const (
	UnknownStrip       UnknownMode = iota // Drop unknown keys (default).
	UnknownStrict                         // Report each unknown key.
	UnknownPassthrough                    // Copy unknown keys into the result unchanged.
)

func (m UnknownMode) String() string {
	switch m {
	case UnknownStrict:
		return "strict"
	case UnknownPassthrough:
		return "passthrough"
	default:
		return "strip"
	}
}

// Either is the result of a two-way union, tagged by the position of the
// alternative that matched.
type Either[A, B any] struct {
	left    A
	right   B
	isRight bool
}

func Left[A, B any](a A) Either[A, B]  { return Either[A, B]{left: a} }
func Right[A, B any](b B) Either[A, B] { return Either[A, B]{right: b, isRight: true} }

func (e Either[A, B]) IsLeft() bool     { return !e.isRight }
func (e Either[A, B]) IsRight() bool    { return e.isRight }
func (e Either[A, B]) Left() (A, bool)  { return e.left, !e.isRight }
func (e Either[A, B]) Right() (B, bool) { return e.right, e.isRight }

// MarshalValue encodes the matched alternative.
func (e Either[A, B]) MarshalValue() (Value, error) {
	if e.isRight {
		return ValueOf(e.right)
	}
	return ValueOf(e.left)
}

// Either3 is the result of a three-way union. Which returns 1, 2 or 3.
type Either3[A, B, C any] struct {
	first  A
	second B
	third  C
	which  int
}

func First[A, B, C any](a A) Either3[A, B, C]  { return Either3[A, B, C]{first: a, which: 1} }
func Second[A, B, C any](b B) Either3[A, B, C] { return Either3[A, B, C]{second: b, which: 2} }
func Third[A, B, C any](c C) Either3[A, B, C]  { return Either3[A, B, C]{third: c, which: 3} }

func (e Either3[A, B, C]) Which() int        { return e.which }
func (e Either3[A, B, C]) First() (A, bool)  { return e.first, e.which == 1 }
func (e Either3[A, B, C]) Second() (B, bool) { return e.second, e.which == 2 }
func (e Either3[A, B, C]) Third() (C, bool)  { return e.third, e.which == 3 }

// MarshalValue encodes the matched alternative.
func (e Either3[A, B, C]) MarshalValue() (Value, error) {
	switch e.which {
	case 2:
		return ValueOf(e.second)
	case 3:
		return ValueOf(e.third)
	}
	return ValueOf(e.first)
}

// Pair is the result of a two-element tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// MarshalValue encodes the pair as a two-element array.
func (p Pair[A, B]) MarshalValue() (Value, error) {
	a, err := ValueOf(p.First)
	if err != nil {
		return Value{}, err
	}
	b, err := ValueOf(p.Second)
	if err != nil {
		return Value{}, err
	}
	return Array(a, b), nil
}

// Triple is the result of a three-element tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// MarshalValue encodes the triple as a three-element array.
func (t Triple[A, B, C]) MarshalValue() (Value, error) {
	a, err := ValueOf(t.First)
	if err != nil {
		return Value{}, err
	}
	b, err := ValueOf(t.Second)
	if err != nil {
		return Value{}, err
	}
	c, err := ValueOf(t.Third)
	if err != nil {
		return Value{}, err
	}
	return Array(a, b, c), nil
}
