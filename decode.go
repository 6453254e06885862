// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"io"
	"math"

	"github.com/open-flash/v8json/internal/jsonwire"
)

// decodeState carries the input buffer and position through one recursive
// descent. The wire-level consume functions report offsets relative to the
// slice they were handed; decodeState converts them into absolute,
// positioned errors.
type decodeState struct {
	buf      []byte
	pos      int
	depth    int
	opts     options
	scratch  []byte // for unquoting strings that contain escape sequences
	strCache *stringCache
}

// Unmarshal decodes data as exactly one JSON value, with optional
// surrounding whitespace. Anything else after the value fails with
// [ErrTrailingData].
//
// Null, false, and true decode to the corresponding literal values;
// strings decode with all escape sequences resolved; arrays decode to
// element slices; objects decode to an [Object] (insertion-ordered when
// [OrderedObjects] is set), where a duplicated member name keeps the value
// of its last occurrence.
//
// A number without a fraction or exponent decodes to a uint64 when
// non-negative and to an int64 otherwise; integers beyond those ranges and
// all other numbers decode to the nearest float64. A literal -0 decodes to
// the double -0 so that the sign survives re-encoding. Literals whose
// magnitude exceeds the float64 range fail with [ErrNumberSyntax].
// Under [ArbitraryPrecision] every number is instead captured verbatim.
//
// Syntax failures are reported as a [*SyntaxError] locating the
// offending byte.
func Unmarshal(data []byte, opts ...Options) (Value, error) {
	d := getDecodeState(data, resolveOptions(opts))
	defer putDecodeState(d)
	return d.unmarshal()
}

// UnmarshalRead buffers the entirety of r and decodes it per [Unmarshal].
// A failed read is reported as a wrapped error that unwraps to the error
// returned by r.
func UnmarshalRead(r io.Reader, opts ...Options) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Value{}, &wrapError{str: "read error", err: err}
	}
	return Unmarshal(data, opts...)
}

func (d *decodeState) unmarshal() (Value, error) {
	d.pos += jsonwire.ConsumeWhitespace(d.buf)
	if d.pos == len(d.buf) {
		return Value{}, newSyntaxError(d.buf, d.pos, io.ErrUnexpectedEOF)
	}
	v, err := d.parseValue()
	if err != nil {
		return Value{}, err
	}
	d.pos += jsonwire.ConsumeWhitespace(d.buf[d.pos:])
	if d.pos < len(d.buf) {
		str := "invalid character " + jsonwire.QuoteRune(d.buf[d.pos:]) + " after top-level value"
		return Value{}, syntaxErrorAt(d.buf, d.pos, ErrTrailingData, str)
	}
	return v, nil
}

// parseValue decodes the value starting at the current position, which must
// not be whitespace or end of input.
func (d *decodeState) parseValue() (Value, error) {
	switch c := d.buf[d.pos]; c {
	case 'n':
		if err := d.parseLiteral("null"); err != nil {
			return Value{}, err
		}
		return Null, nil
	case 'f':
		if err := d.parseLiteral("false"); err != nil {
			return Value{}, err
		}
		return False, nil
	case 't':
		if err := d.parseLiteral("true"); err != nil {
			return Value{}, err
		}
		return True, nil
	case '"':
		s, err := d.parseString()
		if err != nil {
			return Value{}, err
		}
		return Value{kind: '"', str: s}, nil
	case '{':
		return d.parseObject()
	case '[':
		return d.parseArray()
	default:
		if c == '-' || ('0' <= c && c <= '9') {
			return d.parseNumber()
		}
		err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "at start of value")
		return Value{}, newSyntaxError(d.buf, d.pos, err)
	}
}

func (d *decodeState) parseLiteral(lit string) error {
	var n int
	switch lit[0] {
	case 'n':
		n = jsonwire.ConsumeNull(d.buf[d.pos:])
	case 'f':
		n = jsonwire.ConsumeFalse(d.buf[d.pos:])
	case 't':
		n = jsonwire.ConsumeTrue(d.buf[d.pos:])
	}
	if n == 0 {
		m, err := jsonwire.ConsumeLiteral(d.buf[d.pos:], lit)
		return newSyntaxError(d.buf, d.pos+m, err)
	}
	d.pos += n
	return nil
}

// parseString decodes the string literal at the current position,
// interning the result so that repeated names share storage.
func (d *decodeState) parseString() (string, error) {
	if n := jsonwire.ConsumeSimpleString(d.buf[d.pos:]); n > 0 {
		s := d.strCache.make(d.buf[d.pos+1 : d.pos+n-1])
		d.pos += n
		return s, nil
	}
	n, err := jsonwire.ConsumeString(d.buf[d.pos:])
	if err != nil {
		return "", newSyntaxError(d.buf, d.pos+n, err)
	}
	d.scratch, _ = jsonwire.AppendUnquote(d.scratch[:0], d.buf[d.pos:d.pos+n])
	s := d.strCache.make(d.scratch)
	d.pos += n
	return s, nil
}

func (d *decodeState) parseNumber() (Value, error) {
	start := d.pos
	n, err := jsonwire.ConsumeNumber(d.buf[d.pos:])
	if err != nil {
		return Value{}, newSyntaxError(d.buf, d.pos+n, err)
	}
	lit := d.buf[start : start+n]
	d.pos += n

	if d.opts.arbitraryPrecision {
		return Value{kind: '0', num: Number{typ: numVerbatim, lit: d.strCache.make(lit)}}, nil
	}
	if !jsonwire.HasFloatSyntax(lit) {
		if lit[0] == '-' {
			if len(lit) == 2 && lit[1] == '0' {
				// A bare -0 decodes as the double -0 to keep its sign.
				f := math.Copysign(0, -1)
				return Value{kind: '0', num: Number{typ: numFloat64, bits: math.Float64bits(f)}}, nil
			}
			if u, ok := jsonwire.ParseUint(lit[1:]); ok && u <= 1<<63 {
				if u == 1<<63 {
					return Int(math.MinInt64), nil
				}
				return Int(-int64(u)), nil
			}
		} else if u, ok := jsonwire.ParseUint(lit); ok {
			return Uint(u), nil
		}
	}
	f, ok := jsonwire.ParseFloat(lit, 64)
	if !ok {
		return Value{}, syntaxErrorAt(d.buf, start, ErrNumberSyntax, "number out of range")
	}
	return Value{kind: '0', num: Number{typ: numFloat64, bits: math.Float64bits(f)}}, nil
}

func (d *decodeState) parseObject() (Value, error) {
	if d.depth++; d.opts.exceedsDepth(d.depth) {
		return Value{}, syntaxErrorAt(d.buf, d.pos, ErrRecursionLimit, ErrRecursionLimit.Error())
	}
	defer func() { d.depth-- }()

	obj := NewObject()
	if d.opts.orderedObjects {
		obj = NewOrderedObject()
	}
	d.pos++ // consume '{'
	if err := d.skipWhitespace(); err != nil {
		return Value{}, err
	}
	if d.buf[d.pos] == '}' {
		d.pos++
		return Value{kind: '{', obj: obj}, nil
	}
	for {
		name, err := d.parseString()
		if err != nil {
			return Value{}, err
		}
		if err := d.skipWhitespace(); err != nil {
			return Value{}, err
		}
		if d.buf[d.pos] != ':' {
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after object name (expecting ':')")
			return Value{}, newSyntaxError(d.buf, d.pos, err)
		}
		d.pos++
		if err := d.skipWhitespace(); err != nil {
			return Value{}, err
		}
		value, err := d.parseValue()
		if err != nil {
			return Value{}, err
		}
		obj.Set(name, value) // a duplicate name keeps the last value
		if err := d.skipWhitespace(); err != nil {
			return Value{}, err
		}
		switch d.buf[d.pos] {
		case ',':
			d.pos++
			if err := d.skipWhitespace(); err != nil {
				return Value{}, err
			}
		case '}':
			d.pos++
			return Value{kind: '{', obj: obj}, nil
		default:
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after object value (expecting ',' or '}')")
			return Value{}, newSyntaxError(d.buf, d.pos, err)
		}
	}
}

func (d *decodeState) parseArray() (Value, error) {
	if d.depth++; d.opts.exceedsDepth(d.depth) {
		return Value{}, syntaxErrorAt(d.buf, d.pos, ErrRecursionLimit, ErrRecursionLimit.Error())
	}
	defer func() { d.depth-- }()

	d.pos++ // consume '['
	if err := d.skipWhitespace(); err != nil {
		return Value{}, err
	}
	if d.buf[d.pos] == ']' {
		d.pos++
		return Value{kind: '['}, nil
	}
	var elems []Value
	for {
		elem, err := d.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
		if err := d.skipWhitespace(); err != nil {
			return Value{}, err
		}
		switch d.buf[d.pos] {
		case ',':
			d.pos++
			if err := d.skipWhitespace(); err != nil {
				return Value{}, err
			}
		case ']':
			d.pos++
			return Value{kind: '[', arr: elems}, nil
		default:
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after array value (expecting ',' or ']')")
			return Value{}, newSyntaxError(d.buf, d.pos, err)
		}
	}
}

// skipWhitespace advances past insignificant whitespace and fails if the
// input is exhausted, since every caller still expects a token.
func (d *decodeState) skipWhitespace() error {
	d.pos += jsonwire.ConsumeWhitespace(d.buf[d.pos:])
	if d.pos == len(d.buf) {
		return newSyntaxError(d.buf, d.pos, io.ErrUnexpectedEOF)
	}
	return nil
}

// skipValue validates the value starting at the current position and
// advances past it without materializing anything.
func (d *decodeState) skipValue() error {
	switch c := d.buf[d.pos]; c {
	case 'n':
		return d.parseLiteral("null")
	case 'f':
		return d.parseLiteral("false")
	case 't':
		return d.parseLiteral("true")
	case '"':
		n, err := jsonwire.ConsumeString(d.buf[d.pos:])
		if err != nil {
			return newSyntaxError(d.buf, d.pos+n, err)
		}
		d.pos += n
		return nil
	case '{':
		return d.skipObject()
	case '[':
		return d.skipArray()
	default:
		if c == '-' || ('0' <= c && c <= '9') {
			n, err := jsonwire.ConsumeNumber(d.buf[d.pos:])
			if err != nil {
				return newSyntaxError(d.buf, d.pos+n, err)
			}
			d.pos += n
			return nil
		}
		err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "at start of value")
		return newSyntaxError(d.buf, d.pos, err)
	}
}

func (d *decodeState) skipObject() error {
	if d.depth++; d.opts.exceedsDepth(d.depth) {
		return syntaxErrorAt(d.buf, d.pos, ErrRecursionLimit, ErrRecursionLimit.Error())
	}
	defer func() { d.depth-- }()

	d.pos++ // consume '{'
	if err := d.skipWhitespace(); err != nil {
		return err
	}
	if d.buf[d.pos] == '}' {
		d.pos++
		return nil
	}
	for {
		n, err := jsonwire.ConsumeString(d.buf[d.pos:])
		if err != nil {
			return newSyntaxError(d.buf, d.pos+n, err)
		}
		d.pos += n
		if err := d.skipWhitespace(); err != nil {
			return err
		}
		if d.buf[d.pos] != ':' {
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after object name (expecting ':')")
			return newSyntaxError(d.buf, d.pos, err)
		}
		d.pos++
		if err := d.skipWhitespace(); err != nil {
			return err
		}
		if err := d.skipValue(); err != nil {
			return err
		}
		if err := d.skipWhitespace(); err != nil {
			return err
		}
		switch d.buf[d.pos] {
		case ',':
			d.pos++
			if err := d.skipWhitespace(); err != nil {
				return err
			}
		case '}':
			d.pos++
			return nil
		default:
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after object value (expecting ',' or '}')")
			return newSyntaxError(d.buf, d.pos, err)
		}
	}
}

func (d *decodeState) skipArray() error {
	if d.depth++; d.opts.exceedsDepth(d.depth) {
		return syntaxErrorAt(d.buf, d.pos, ErrRecursionLimit, ErrRecursionLimit.Error())
	}
	defer func() { d.depth-- }()

	d.pos++ // consume '['
	if err := d.skipWhitespace(); err != nil {
		return err
	}
	if d.buf[d.pos] == ']' {
		d.pos++
		return nil
	}
	for {
		if err := d.skipValue(); err != nil {
			return err
		}
		if err := d.skipWhitespace(); err != nil {
			return err
		}
		switch d.buf[d.pos] {
		case ',':
			d.pos++
			if err := d.skipWhitespace(); err != nil {
				return err
			}
		case ']':
			d.pos++
			return nil
		default:
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after array value (expecting ',' or ']')")
			return newSyntaxError(d.buf, d.pos, err)
		}
	}
}

// Decoder reads a stream of whitespace-separated top-level JSON values
// from an underlying [io.Reader].
//
// The entire input is buffered before the first value is decoded;
// incremental consumption of unbounded streams is not a goal.
type Decoder struct {
	d       decodeState
	r       io.Reader
	filled  bool
	readErr error
}

// NewDecoder constructs a new streaming decoder reading from r,
// configured with the provided options.
func NewDecoder(r io.Reader, opts ...Options) *Decoder {
	return &Decoder{
		d: decodeState{opts: resolveOptions(opts), strCache: new(stringCache)},
		r: r,
	}
}

// fill buffers the remaining input on first use. A read failure is sticky.
func (dec *Decoder) fill() error {
	if !dec.filled {
		dec.filled = true
		data, err := io.ReadAll(dec.r)
		dec.d.buf = data
		if err != nil {
			dec.readErr = &wrapError{str: "read error", err: err}
		}
	}
	return dec.readErr
}

// ReadValue decodes the next top-level value per [Unmarshal].
// It returns [io.EOF] when only whitespace remains.
func (dec *Decoder) ReadValue() (Value, error) {
	if err := dec.fill(); err != nil {
		return Value{}, err
	}
	d := &dec.d
	d.pos += jsonwire.ConsumeWhitespace(d.buf[d.pos:])
	if d.pos == len(d.buf) {
		return Value{}, io.EOF
	}
	return d.parseValue()
}

// ReadRaw validates the next top-level value and captures its span without
// materializing it. The span aliases the decoder's input buffer; use
// [RawValue.Clone] to retain it past the decoder's lifetime.
// It returns [io.EOF] when only whitespace remains.
func (dec *Decoder) ReadRaw() (RawValue, error) {
	if err := dec.fill(); err != nil {
		return nil, err
	}
	d := &dec.d
	d.pos += jsonwire.ConsumeWhitespace(d.buf[d.pos:])
	if d.pos == len(d.buf) {
		return nil, io.EOF
	}
	start := d.pos
	if err := d.skipValue(); err != nil {
		return nil, err
	}
	return RawValue(d.buf[start:d.pos]), nil
}

// PeekKind returns the kind of the next value in the stream without
// consuming it, or zero if the input is exhausted or unreadable.
func (dec *Decoder) PeekKind() Kind {
	if err := dec.fill(); err != nil {
		return invalidKind
	}
	d := &dec.d
	d.pos += jsonwire.ConsumeWhitespace(d.buf[d.pos:])
	if d.pos == len(d.buf) {
		return invalidKind
	}
	return Kind(d.buf[d.pos]).normalize()
}

// InputOffset returns the number of input bytes consumed so far, which is
// the offset just past the most recently read value.
func (dec *Decoder) InputOffset() int64 {
	return int64(dec.d.pos)
}
