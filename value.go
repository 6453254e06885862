// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"bytes"
	"math"

	"github.com/open-flash/v8json/internal/jsonwire"
)

// Kind represents each possible JSON value kind with a single byte,
// which is conveniently the first byte of that kind's grammar
// with the restriction that numbers always be represented with '0':
//
//   - 'n': null
//   - 'f': false
//   - 't': true
//   - '"': string
//   - '0': number
//   - '{': object
//   - '[': array
//
// An invalid kind is usually represented using 0,
// but may be non-zero due to invalid JSON data.
type Kind byte

const invalidKind Kind = 0

// String prints the kind in a humanly readable fashion.
func (k Kind) String() string {
	switch k {
	case 'n':
		return "null"
	case 'f':
		return "false"
	case 't':
		return "true"
	case '"':
		return "string"
	case '0':
		return "number"
	case '{':
		return "object"
	case '[':
		return "array"
	default:
		return "<invalid v8json.Kind: " + jsonwire.QuoteRune(string(k)) + ">"
	}
}

// normalize maps the leading byte of a number ('-' or a digit) to '0'
// so that all numbers share a single kind.
func (k Kind) normalize() Kind {
	if k == '-' || ('0' <= k && k <= '9') {
		return '0'
	}
	return k
}

// Value represents a single JSON value, which may be one of the following:
//   - a JSON literal (i.e., null, true, or false)
//   - a JSON string (e.g., "hello, world!")
//   - a JSON number (e.g., 123.456)
//   - an entire JSON object (e.g., {"fizz":"buzz"} )
//   - an entire JSON array (e.g., [1,2,3] )
//   - a raw, pre-encoded span of JSON text (see [Raw])
//
// Value is an opaque concrete type rather than an interface to keep
// allocations and mutations under the package's control.
// The zero Value is the JSON null.
//
// Accessor methods panic when called on a Value of the wrong kind,
// so callers switching over unknown values should dispatch on [Value.Kind]
// (and [Value.IsRaw] if raw spans may be present).
type Value struct {
	kind Kind // zero implies 'n'
	str  string
	num  Number
	arr  []Value
	obj  *Object
	raw  RawValue
}

var (
	// Null is the JSON null. It is the zero Value.
	Null Value
	// False is the JSON false.
	False = Value{kind: 'f'}
	// True is the JSON true.
	True = Value{kind: 't'}
)

// Bool constructs a Value representing a JSON boolean.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// String constructs a Value representing a JSON string.
// The string is stored and later encoded as-is; invalid UTF-8 is preserved
// byte for byte rather than being mangled.
func String(s string) Value {
	return Value{kind: '"', str: s}
}

// Int constructs a Value representing a JSON number from an int64.
func Int(n int64) Value {
	return Value{kind: '0', num: Number{typ: numInt64, bits: uint64(n)}}
}

// Uint constructs a Value representing a JSON number from a uint64.
func Uint(n uint64) Value {
	return Value{kind: '0', num: Number{typ: numUint64, bits: n}}
}

// Float constructs a Value representing a JSON number from a float64.
// NaN and infinities have no JSON representation and are rejected
// with [ErrInvalidNumber].
func Float(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrInvalidNumber
	}
	return Value{kind: '0', num: Number{typ: numFloat64, bits: math.Float64bits(f)}}, nil
}

// NumberValue constructs a Value representing the JSON number n.
func NumberValue(n Number) Value {
	return Value{kind: '0', num: n}
}

// Array constructs a Value representing a JSON array of the given elements.
// The elements are referenced, not copied; use [Value.Clone] for an
// exclusive tree.
func Array(elems ...Value) Value {
	return Value{kind: '[', arr: elems}
}

// ObjectValue constructs a Value representing the JSON object o.
// The object is referenced, not copied. A nil o is an empty object.
func ObjectValue(o *Object) Value {
	return Value{kind: '{', obj: o}
}

// Raw constructs a Value that encodes as the span b verbatim.
//
// The bytes must hold exactly one complete, syntactically valid JSON value;
// this is not re-checked when the tree is encoded, so an invalid span
// corrupts the output. Use [RawValue.IsValid] when the bytes are not already
// trusted. An empty b is treated as JSON null.
func Raw(b RawValue) Value {
	if len(b) == 0 {
		return Null
	}
	return Value{kind: b.Kind(), raw: b}
}

// Kind returns the value kind. Raw values report the kind of their
// leading token.
func (v Value) Kind() Kind {
	if v.kind == 0 {
		return 'n'
	}
	return v.kind
}

// IsRaw reports whether the value holds a raw span rather than a
// materialized value.
func (v Value) IsRaw() bool {
	return v.raw != nil
}

// RawBytes returns the underlying raw span.
// It panics if the value was not constructed with [Raw].
func (v Value) RawBytes() RawValue {
	if v.raw == nil {
		panic("v8json.Value is not a raw value")
	}
	return v.raw
}

// Bool returns the value for a JSON boolean.
// It panics if the value kind is not a JSON boolean.
func (v Value) Bool() bool {
	if v.raw == nil {
		switch v.kind {
		case 't':
			return true
		case 'f':
			return false
		}
	}
	panic("invalid JSON value kind: " + v.Kind().String())
}

// Number returns the value for a JSON number.
// It panics if the value kind is not a JSON number.
func (v Value) Number() Number {
	if v.kind != '0' || v.raw != nil {
		panic("invalid JSON value kind: " + v.Kind().String())
	}
	return v.num
}

// Array returns the elements of a JSON array.
// The returned slice is shared with the value, not copied.
// It panics if the value kind is not a JSON array.
func (v Value) Array() []Value {
	if v.kind != '[' || v.raw != nil {
		panic("invalid JSON value kind: " + v.Kind().String())
	}
	return v.arr
}

// Object returns the underlying object of a JSON object value, which may be
// nil for an empty object. It panics if the value kind is not a JSON object.
func (v Value) Object() *Object {
	if v.kind != '{' || v.raw != nil {
		panic("invalid JSON value kind: " + v.Kind().String())
	}
	return v.obj
}

// String returns the unescaped string value for a JSON string.
// For other JSON kinds, this returns the compact JSON representation,
// fulfilling the [fmt.Stringer] duty.
func (v Value) String() string {
	if v.kind == '"' && v.raw == nil {
		return v.str
	}
	b, err := Marshal(v)
	if err != nil {
		return "<invalid v8json.Value>"
	}
	return string(b)
}

// Equal reports whether v and w represent the same JSON value.
//
// Numbers compare per [Number.Equal]. Objects compare as name sets
// regardless of their map mode or member order, per RFC 8259. A raw value
// equals only a raw value with identical bytes, never a materialized one,
// since raw spans are deliberately not interpreted.
func (v Value) Equal(w Value) bool {
	if v.raw != nil || w.raw != nil {
		return v.raw != nil && w.raw != nil && bytes.Equal(v.raw, w.raw)
	}
	if v.Kind() != w.Kind() {
		return false
	}
	switch v.kind {
	case '"':
		return v.str == w.str
	case '0':
		return v.num.Equal(w.num)
	case '[':
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	case '{':
		return v.obj.Equal(w.obj)
	default:
		return true // null, false, and true carry no payload
	}
}

// Clone makes a deep copy of the value, so that mutations of the original
// tree are not visible through the copy.
func (v Value) Clone() Value {
	switch {
	case v.raw != nil:
		v.raw = bytes.Clone(v.raw)
	case v.kind == '[':
		elems := make([]Value, len(v.arr))
		for i := range v.arr {
			elems[i] = v.arr[i].Clone()
		}
		v.arr = elems
	case v.kind == '{':
		v.obj = v.obj.Clone()
	}
	return v
}
