// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/open-flash/v8json/internal/jsonwire"
)

const errorPrefix = "v8json: "

// Error matches errors returned by this package according to [errors.Is].
const Error = jsonError("v8json error")

type jsonError string

func (e jsonError) Error() string        { return string(e) }
func (e jsonError) Is(target error) bool { return e == target || target == Error }

// These sentinels classify failures reported by this package.
// They are matched with [errors.Is]; syntax failures are never returned
// directly, but through a [SyntaxError] that unwraps to one of them.
// Truncated input is classified by [io.ErrUnexpectedEOF].
var (
	// ErrUnexpectedToken indicates a byte that cannot begin or continue
	// a JSON value at its position.
	ErrUnexpectedToken = jsonwire.ErrUnexpectedToken
	// ErrInvalidEscape indicates a malformed escape sequence within a
	// string, including unpaired UTF-16 surrogate halves.
	ErrInvalidEscape = jsonwire.ErrInvalidEscape
	// ErrUnterminatedString indicates input that ends inside a string
	// literal before its closing quote.
	ErrUnterminatedString = jsonwire.ErrUnterminatedString
	// ErrNumberSyntax indicates a malformed number literal, or a literal
	// whose magnitude exceeds the range of a float64.
	ErrNumberSyntax = jsonwire.ErrNumberSyntax
)

const (
	// ErrRecursionLimit indicates that a value was nested deeper than the
	// configured depth limit. See [WithDepthLimit] and [UnboundedDepth].
	ErrRecursionLimit = jsonError("exceeded maximum recursion depth")
	// ErrTrailingData indicates non-whitespace input after the sole
	// top-level value accepted by [Unmarshal].
	ErrTrailingData = jsonError("unexpected data after top-level value")
	// ErrInvalidNumber indicates a NaN or infinite floating-point value,
	// which has no JSON representation.
	ErrInvalidNumber = jsonError("invalid number value")
)

// SyntaxError is a description of a JSON syntax error.
//
// The contents of this error as produced by this package may change over time.
type SyntaxError struct {
	// Offset indicates that an error occurred processing the byte
	// at Offset bytes into the input.
	Offset int64
	// Line and Column locate Offset for diagnostics. Both are 1-indexed;
	// Column counts bytes, not runes, from the start of the line.
	Line, Column int
	// Err classifies the error. It is one of the package sentinels or
	// an error unwrapping to one.
	Err error

	str string
}

func (e *SyntaxError) Error() string {
	s := errorPrefix + e.str + " at offset " + strconv.FormatInt(e.Offset, 10)
	if e.Line > 0 {
		s += " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + ")"
	}
	return s
}
func (e *SyntaxError) Unwrap() error        { return e.Err }
func (e *SyntaxError) Is(target error) bool { return e == target || target == Error }

type wrapError struct {
	str string
	err error
}

func (e *wrapError) Error() string        { return errorPrefix + e.str + ": " + e.err.Error() }
func (e *wrapError) Unwrap() error        { return e.err }
func (e *wrapError) Is(target error) bool { return e == target || target == Error }

// newSyntaxError positions cause within data. The classifying sentinel is
// recovered by unwrapping cause one level, so wire-level errors report their
// kind while bare sentinels report themselves.
func newSyntaxError(data []byte, offset int, cause error) *SyntaxError {
	kind := cause
	if u := errors.Unwrap(cause); u != nil {
		kind = u
	}
	return syntaxErrorAt(data, offset, kind, cause.Error())
}

// syntaxErrorAt builds a positioned SyntaxError with an explicit kind.
func syntaxErrorAt(data []byte, offset int, kind error, str string) *SyntaxError {
	line, column := lineColumn(data, offset)
	return &SyntaxError{Offset: int64(offset), Line: line, Column: column, Err: kind, str: str}
}

// lineColumn reports the 1-indexed line and byte column of offset in data.
func lineColumn(data []byte, offset int) (line, column int) {
	if offset > len(data) {
		offset = len(data)
	}
	i := bytes.LastIndexByte(data[:offset], '\n')
	return 1 + bytes.Count(data[:offset], []byte("\n")), offset - i
}
