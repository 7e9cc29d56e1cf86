package vld

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	json "github.com/goccy/go-json"
)

// ParseJSON decodes a single JSON document into a Value. Object member order
// follows the document; a repeated key keeps its first position and its last
// value.
func ParseJSON(data []byte) (Value, error) {
	// the token stream skips separators without checking them, so syntax is
	// validated up front
	var probe any
	if err := json.Unmarshal(data, &probe); err != nil {
		return Value{}, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Value{}, err
		}
		return Value{}, fmt.Errorf("unexpected trailing token %v after top-level value", tok)
	}
	return v, nil
}

// DecodeJSON reads a single JSON document from r.
func DecodeJSON(r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, err
	}
	return ParseJSON(data)
}

// MustParseJSON is like ParseJSON but panics on malformed input. Intended for
// tests and fixed literals.
func MustParseJSON(s string) Value {
	v, err := ParseJSON([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("vld: MustParseJSON: %v", err))
	}
	return v
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			b := NewObjectBuilder(4)
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return Value{}, err
				}
				key, ok := kt.(string)
				if !ok {
					return Value{}, fmt.Errorf("expected object key, got %v", kt)
				}
				mv, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				b.Set(key, mv)
			}
			if err := expectDelim(dec, '}'); err != nil {
				return Value{}, err
			}
			return b.Build(), nil
		case '[':
			items := []Value{}
			for dec.More() {
				ev, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, ev)
			}
			if err := expectDelim(dec, ']'); err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, arr: items}, nil
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("number %s out of range", t)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	}
	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}

// MarshalJSON encodes the value keeping object member order. Non-finite
// numbers encode as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes data into v.
func (v *Value) UnmarshalJSON(data []byte) error {
	out, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// JSON returns the compact JSON encoding. Encoding a Value cannot fail, so
// errors are folded into the zero string.
func (v Value) JSON() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			buf.WriteString("null")
			return nil
		}
		b, err := json.Marshal(v.n)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindString:
		b, err := json.Marshal(v.s)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.obj.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := m.Value.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
