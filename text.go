// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"math"

	"github.com/open-flash/v8json/internal/jsonwire"
	"github.com/open-flash/v8json/internal/ryu"
)

// AppendQuote appends a double-quoted JSON string literal representing src
// to dst and returns the extended buffer.
//
// Only the double quote, the backslash, and control characters are escaped.
// All other bytes, including invalid UTF-8, pass through verbatim, so
// [AppendUnquote] restores the original bytes exactly.
func AppendQuote[Bytes ~[]byte | ~string](dst []byte, src Bytes) []byte {
	return jsonwire.AppendQuote(dst, src)
}

// AppendUnquote appends the decoded interpretation of src as a
// double-quoted JSON string literal to dst and returns the extended buffer.
// The input src must be the entire literal, with no surrounding whitespace;
// trailing bytes after the closing quote result in an error.
// Escape sequences are decoded, combining escaped UTF-16 surrogate pairs;
// everything else passes through verbatim.
func AppendUnquote[Bytes ~[]byte | ~string](dst []byte, src Bytes) ([]byte, error) {
	dst, err := jsonwire.AppendUnquote(dst, src)
	if err != nil {
		n, cerr := jsonwire.ConsumeString([]byte(string(src)))
		if cerr == nil {
			// The literal itself is fine, so the failure was trailing data.
			return dst, syntaxErrorAt([]byte(string(src)), n, ErrTrailingData, err.Error())
		}
		return dst, newSyntaxError([]byte(string(src)), n, cerr)
	}
	return dst, nil
}

// AppendDouble appends the ECMAScript decimal representation of f to dst
// and returns the extended buffer. The output is identical to how V8
// stringifies numbers: the shortest digit string that round-trips to f,
// rendered in fixed notation for magnitudes within [1e-6, 1e21) and in
// exponential notation otherwise, with -0 rendered as "-0".
//
// NaN and infinities have no JSON representation and are rejected
// with [ErrInvalidNumber].
func AppendDouble(dst []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return dst, ErrInvalidNumber
	}
	return ryu.AppendFloat64(dst, f), nil
}

// FormatDouble returns the ECMAScript decimal representation of f,
// per [AppendDouble].
func FormatDouble(f float64) (string, error) {
	b, err := AppendDouble(nil, f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
