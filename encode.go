// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"bytes"
	"io"
	"math"
	"strconv"

	"github.com/open-flash/v8json/internal/jsonwire"
	"github.com/open-flash/v8json/internal/ryu"
)

// Marshal encodes v as JSON text.
//
// The output is compact unless [WithIndent] or [WithIndentPrefix] is set.
// Numbers are formatted exactly as V8's JSON.stringify formats them;
// strings escape only quotes, backslashes, and control characters.
// The tree must be acyclic. Encoding fails only with [ErrInvalidNumber]
// on a NaN or infinite number, which the package constructors cannot
// produce, or with [ErrRecursionLimit] when an explicit [WithDepthLimit]
// is exceeded.
func Marshal(v Value, opts ...Options) ([]byte, error) {
	o := resolveOptions(opts)
	b := getBuffer()
	defer putBuffer(b)
	var err error
	if b.buf, err = appendValue(b.buf, v, &o, 0); err != nil {
		return nil, err
	}
	return bytes.Clone(b.buf), nil
}

// MarshalAppend appends the JSON text for v to dst and returns the extended
// buffer. If encoding fails, dst is returned unextended.
func MarshalAppend(dst []byte, v Value, opts ...Options) ([]byte, error) {
	o := resolveOptions(opts)
	out, err := appendValue(dst, v, &o, 0)
	if err != nil {
		return dst, err
	}
	return out, nil
}

// MarshalWrite encodes v as JSON text and writes it to w in a single Write
// call. A failed write is reported as a wrapped error that unwraps to the
// error returned by w.
func MarshalWrite(w io.Writer, v Value, opts ...Options) error {
	o := resolveOptions(opts)
	b := getBuffer()
	defer putBuffer(b)
	var err error
	if b.buf, err = appendValue(b.buf, v, &o, 0); err != nil {
		return err
	}
	if _, err := w.Write(b.buf); err != nil {
		return &wrapError{str: "write error", err: err}
	}
	return nil
}

// Encoder writes a stream of JSON values to an underlying [io.Writer],
// terminating each top-level value with a newline.
type Encoder struct {
	w    io.Writer
	opts options
}

// NewEncoder constructs a new streaming encoder writing to w,
// configured with the provided options.
func NewEncoder(w io.Writer, opts ...Options) *Encoder {
	return &Encoder{w: w, opts: resolveOptions(opts)}
}

// WriteValue encodes v per [Marshal] and writes it to the underlying
// writer, followed by a newline, in a single Write call.
func (e *Encoder) WriteValue(v Value) error {
	b := getBuffer()
	defer putBuffer(b)
	var err error
	if b.buf, err = appendValue(b.buf, v, &e.opts, 0); err != nil {
		return err
	}
	b.buf = append(b.buf, '\n')
	if _, err := e.w.Write(b.buf); err != nil {
		return &wrapError{str: "write error", err: err}
	}
	return nil
}

// WriteRaw writes the span v to the underlying writer verbatim, followed by
// a newline. Like [Raw], the bytes must hold exactly one complete, valid
// JSON value; they are not validated.
func (e *Encoder) WriteRaw(v RawValue) error {
	b := getBuffer()
	defer putBuffer(b)
	b.buf = append(b.buf, v...)
	b.buf = append(b.buf, '\n')
	if _, err := e.w.Write(b.buf); err != nil {
		return &wrapError{str: "write error", err: err}
	}
	return nil
}

// appendValue appends the JSON text for v to dst. depth counts enclosing
// containers and is checked only when the caller set an explicit depth
// limit. On failure, dst may hold partially encoded output; callers that
// expose the buffer must discard it.
func appendValue(dst []byte, v Value, o *options, depth int) ([]byte, error) {
	if v.raw != nil {
		return append(dst, v.raw...), nil
	}
	switch v.kind {
	case 0, 'n':
		return append(dst, "null"...), nil
	case 'f':
		return append(dst, "false"...), nil
	case 't':
		return append(dst, "true"...), nil
	case '"':
		return jsonwire.AppendQuote(dst, v.str), nil
	case '0':
		return appendNumber(dst, v.num)
	case '[':
		return appendArray(dst, v, o, depth)
	case '{':
		return appendObject(dst, v, o, depth)
	default:
		panic("BUG: invalid value kind: " + v.kind.String())
	}
}

func appendNumber(dst []byte, n Number) ([]byte, error) {
	switch n.typ {
	case numInt64:
		return strconv.AppendInt(dst, int64(n.bits), 10), nil
	case numFloat64:
		f := math.Float64frombits(n.bits)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return dst, ErrInvalidNumber
		}
		return ryu.AppendFloat64(dst, f), nil
	case numVerbatim:
		return append(dst, n.lit...), nil
	default:
		return strconv.AppendUint(dst, n.bits, 10), nil
	}
}

func appendArray(dst []byte, v Value, o *options, depth int) ([]byte, error) {
	if o.exceedsEncodeDepth(depth + 1) {
		return dst, ErrRecursionLimit
	}
	if len(v.arr) == 0 {
		return append(dst, "[]"...), nil
	}
	dst = append(dst, '[')
	var err error
	for i := range v.arr {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendIndent(dst, o, depth+1)
		if dst, err = appendValue(dst, v.arr[i], o, depth+1); err != nil {
			return dst, err
		}
	}
	dst = appendIndent(dst, o, depth)
	return append(dst, ']'), nil
}

func appendObject(dst []byte, v Value, o *options, depth int) ([]byte, error) {
	if o.exceedsEncodeDepth(depth + 1) {
		return dst, ErrRecursionLimit
	}
	if v.obj.Len() == 0 {
		return append(dst, "{}"...), nil
	}
	dst = append(dst, '{')
	var err error
	var i int
	v.obj.Range(func(name string, value Value) bool {
		if i > 0 {
			dst = append(dst, ',')
		}
		i++
		dst = appendIndent(dst, o, depth+1)
		dst = jsonwire.AppendQuote(dst, name)
		dst = append(dst, ':')
		if o.multiline {
			dst = append(dst, ' ')
		}
		dst, err = appendValue(dst, value, o, depth+1)
		return err == nil
	})
	if err != nil {
		return dst, err
	}
	dst = appendIndent(dst, o, depth)
	return append(dst, '}'), nil
}

// appendIndent starts a new line indented for the given container depth.
// It is a no-op unless multiline output was requested.
func appendIndent(dst []byte, o *options, depth int) []byte {
	if !o.multiline {
		return dst
	}
	dst = append(dst, '\n')
	dst = append(dst, o.indentPrefix...)
	for ; depth > 0; depth-- {
		dst = append(dst, o.indent...)
	}
	return dst
}
