// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"bytes"
	"io"

	"github.com/open-flash/v8json/internal/jsonwire"
)

// RawValue represents a single raw JSON value, which may be one of the following:
//
//   - a JSON literal (i.e., null, true, or false)
//   - a JSON string (e.g., "hello, world!")
//   - a JSON number (e.g., 123.456)
//   - an entire JSON object (e.g., {"fizz":"buzz"} )
//   - an entire JSON array (e.g., [1,2,3] )
//
// A RawValue passes through encoding byte for byte, so text produced
// elsewhere can be embedded in output without being reparsed or
// reformatted. [Raw] wraps a RawValue as a [Value], and
// [Decoder.ReadRaw] captures one from input.
type RawValue []byte

// Kind returns the starting token kind,
// or zero if v holds nothing but whitespace.
func (v RawValue) Kind() Kind {
	if v := v[jsonwire.ConsumeWhitespace(v):]; len(v) > 0 {
		return Kind(v[0]).normalize()
	}
	return invalidKind
}

// IsValid reports whether v holds exactly one syntactically valid JSON
// value with optional surrounding whitespace.
//
// It does not verify whether an object has duplicate names or whether
// numbers are representable as a float64, int64, or uint64.
// Nesting is checked against the default depth limit.
func (v RawValue) IsValid() bool {
	d := getDecodeState(v, resolveOptions(nil))
	defer putDecodeState(d)
	d.pos += jsonwire.ConsumeWhitespace(d.buf)
	if d.pos == len(d.buf) {
		return false
	}
	if err := d.skipValue(); err != nil {
		return false
	}
	d.pos += jsonwire.ConsumeWhitespace(d.buf[d.pos:])
	return d.pos == len(d.buf)
}

// Clone returns a copy of v.
func (v RawValue) Clone() RawValue {
	return bytes.Clone(v)
}

// String returns the raw text as a string.
func (v RawValue) String() string {
	return string(v)
}

// Compact removes all whitespace from the raw JSON value.
//
// It does not reformat JSON strings or numbers to use any other
// representation. It is guaranteed to succeed if the input is valid.
// If the value is already compact, then the buffer is not mutated.
func (v *RawValue) Compact() error {
	return v.reformat(false, "", "")
}

// Indent reformats the whitespace in the raw JSON value so that each member
// or element in a JSON object or array begins on a new, indented line
// beginning with prefix followed by one or more copies of indent according
// to the nesting. The value does not begin with the prefix nor any indention,
// to make it easier to embed inside other formatted JSON data.
// Like [WithIndent] and [WithIndentPrefix], Indent panics if prefix or
// indent contains anything other than spaces and tabs.
//
// It does not reformat JSON strings or numbers to use any other
// representation. It is guaranteed to succeed if the input is valid.
// If the value is already indented properly, then the buffer is not mutated.
func (v *RawValue) Indent(prefix, indent string) error {
	return v.reformat(true, prefix, indent)
}

func (v *RawValue) reformat(multiline bool, prefix, indent string) error {
	checkIndentChars(prefix, "indent prefix")
	checkIndentChars(indent, "indent")
	o := options{
		depthLimit:   defaultDepthLimit,
		multiline:    multiline,
		indentPrefix: prefix,
		indent:       indent,
	}

	d := getDecodeState(*v, o)
	defer putDecodeState(d)
	b := getBuffer()
	defer putBuffer(b)

	d.pos += jsonwire.ConsumeWhitespace(d.buf)
	if d.pos == len(d.buf) {
		return newSyntaxError(d.buf, d.pos, io.ErrUnexpectedEOF)
	}
	var err error
	if b.buf, err = d.reformatValue(b.buf); err != nil {
		return err
	}
	d.pos += jsonwire.ConsumeWhitespace(d.buf[d.pos:])
	if d.pos < len(d.buf) {
		str := "invalid character " + jsonwire.QuoteRune(d.buf[d.pos:]) + " after top-level value"
		return syntaxErrorAt(d.buf, d.pos, ErrTrailingData, str)
	}

	// Store the result back into the value if different.
	if !bytes.Equal(*v, b.buf) {
		*v = append((*v)[:0], b.buf...)
	}
	return nil
}

// reformatValue copies the value starting at the current position to dst,
// regenerating the whitespace between tokens while leaving every token
// byte for byte intact.
func (d *decodeState) reformatValue(dst []byte) ([]byte, error) {
	switch c := d.buf[d.pos]; c {
	case 'n', 'f', 't':
		start := d.pos
		var err error
		switch c {
		case 'n':
			err = d.parseLiteral("null")
		case 'f':
			err = d.parseLiteral("false")
		case 't':
			err = d.parseLiteral("true")
		}
		if err != nil {
			return dst, err
		}
		return append(dst, d.buf[start:d.pos]...), nil
	case '"':
		n, err := jsonwire.ConsumeString(d.buf[d.pos:])
		if err != nil {
			return dst, newSyntaxError(d.buf, d.pos+n, err)
		}
		dst = append(dst, d.buf[d.pos:d.pos+n]...)
		d.pos += n
		return dst, nil
	case '{':
		return d.reformatObject(dst)
	case '[':
		return d.reformatArray(dst)
	default:
		if c == '-' || ('0' <= c && c <= '9') {
			n, err := jsonwire.ConsumeNumber(d.buf[d.pos:])
			if err != nil {
				return dst, newSyntaxError(d.buf, d.pos+n, err)
			}
			dst = append(dst, d.buf[d.pos:d.pos+n]...)
			d.pos += n
			return dst, nil
		}
		err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "at start of value")
		return dst, newSyntaxError(d.buf, d.pos, err)
	}
}

func (d *decodeState) reformatObject(dst []byte) ([]byte, error) {
	if d.depth++; d.opts.exceedsDepth(d.depth) {
		return dst, syntaxErrorAt(d.buf, d.pos, ErrRecursionLimit, ErrRecursionLimit.Error())
	}
	defer func() { d.depth-- }()

	d.pos++ // consume '{'
	if err := d.skipWhitespace(); err != nil {
		return dst, err
	}
	if d.buf[d.pos] == '}' {
		d.pos++
		return append(dst, "{}"...), nil
	}
	dst = append(dst, '{')
	for i := 0; ; i++ {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendIndent(dst, &d.opts, d.depth)
		n, err := jsonwire.ConsumeString(d.buf[d.pos:])
		if err != nil {
			return dst, newSyntaxError(d.buf, d.pos+n, err)
		}
		dst = append(dst, d.buf[d.pos:d.pos+n]...)
		d.pos += n
		if err := d.skipWhitespace(); err != nil {
			return dst, err
		}
		if d.buf[d.pos] != ':' {
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after object name (expecting ':')")
			return dst, newSyntaxError(d.buf, d.pos, err)
		}
		d.pos++
		dst = append(dst, ':')
		if d.opts.multiline {
			dst = append(dst, ' ')
		}
		if err := d.skipWhitespace(); err != nil {
			return dst, err
		}
		if dst, err = d.reformatValue(dst); err != nil {
			return dst, err
		}
		if err := d.skipWhitespace(); err != nil {
			return dst, err
		}
		switch d.buf[d.pos] {
		case ',':
			d.pos++
			if err := d.skipWhitespace(); err != nil {
				return dst, err
			}
		case '}':
			d.pos++
			dst = appendIndent(dst, &d.opts, d.depth-1)
			return append(dst, '}'), nil
		default:
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after object value (expecting ',' or '}')")
			return dst, newSyntaxError(d.buf, d.pos, err)
		}
	}
}

func (d *decodeState) reformatArray(dst []byte) ([]byte, error) {
	if d.depth++; d.opts.exceedsDepth(d.depth) {
		return dst, syntaxErrorAt(d.buf, d.pos, ErrRecursionLimit, ErrRecursionLimit.Error())
	}
	defer func() { d.depth-- }()

	d.pos++ // consume '['
	if err := d.skipWhitespace(); err != nil {
		return dst, err
	}
	if d.buf[d.pos] == ']' {
		d.pos++
		return append(dst, "[]"...), nil
	}
	dst = append(dst, '[')
	for i := 0; ; i++ {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendIndent(dst, &d.opts, d.depth)
		var err error
		if dst, err = d.reformatValue(dst); err != nil {
			return dst, err
		}
		if err := d.skipWhitespace(); err != nil {
			return dst, err
		}
		switch d.buf[d.pos] {
		case ',':
			d.pos++
			if err := d.skipWhitespace(); err != nil {
				return dst, err
			}
		case ']':
			d.pos++
			dst = appendIndent(dst, &d.opts, d.depth-1)
			return append(dst, ']'), nil
		default:
			err := jsonwire.NewInvalidCharacterError(d.buf[d.pos:], "after array value (expecting ',' or ']')")
			return dst, newSyntaxError(d.buf, d.pos, err)
		}
	}
}
