// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jsonwire implements stateless functionality for handling JSON text.
// Functions in this package operate on a single token or literal at a time;
// positions are reported as byte offsets relative to the input slice so that
// callers can translate them into absolute positions.
package jsonwire

import (
	"errors"
	"strconv"
	"unicode/utf8"
)

// Sentinel errors classifying syntactic failures. Errors produced by this
// package unwrap to exactly one of these.
var (
	ErrUnexpectedToken    = errors.New("unexpected token")
	ErrInvalidEscape      = errors.New("invalid escape sequence within string")
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrNumberSyntax       = errors.New("invalid number syntax")
)

// SyntacticError describes a JSON syntax failure detected by a consume
// function. The position of the failure is reported separately by the
// function as a byte offset into its input.
type SyntacticError struct {
	str string
	err error
}

func (e *SyntacticError) Error() string { return e.str }

// Unwrap returns the sentinel classifying this error.
func (e *SyntacticError) Unwrap() error { return e.err }

var (
	errUnterminatedString = &SyntacticError{str: "unterminated string literal", err: ErrUnterminatedString}
	errUnpairedSurrogate  = &SyntacticError{str: "invalid unpaired surrogate half within string", err: ErrInvalidEscape}
)

// NewInvalidCharacterError constructs an error for an unexpected character,
// where prefix is the remaining input starting at the offending character.
func NewInvalidCharacterError[Bytes ~[]byte | ~string](prefix Bytes, where string) *SyntacticError {
	return newInvalidCharacterError(prefix, where, ErrUnexpectedToken)
}

func newInvalidCharacterError[Bytes ~[]byte | ~string](prefix Bytes, where string, kind error) *SyntacticError {
	return &SyntacticError{str: "invalid character " + QuoteRune(prefix) + " " + where, err: kind}
}

// NewInvalidEscapeError constructs an error for a malformed escape sequence,
// where seq is the offending sequence, possibly truncated by end of input.
func NewInvalidEscapeError[Bytes ~[]byte | ~string](seq Bytes, where string) *SyntacticError {
	return &SyntacticError{str: "invalid escape sequence " + strconv.Quote(string(seq)) + " " + where, err: ErrInvalidEscape}
}

// QuoteRune quotes the first rune of b for inclusion in an error message.
// If b starts with invalid UTF-8, the leading byte is quoted instead.
func QuoteRune[Bytes ~[]byte | ~string](b Bytes) string {
	r, n := utf8.DecodeRuneInString(string(truncateMaxUTF8(b)))
	if r == utf8.RuneError && n == 1 {
		return `'\x` + strconv.FormatUint(uint64(b[0]), 16) + `'`
	}
	return strconv.QuoteRune(r)
}

// truncateMaxUTF8 truncates b to the maximum length of a UTF-8 encoded rune
// so that conversions to string stay cheap.
func truncateMaxUTF8[Bytes ~[]byte | ~string](b Bytes) Bytes {
	if len(b) > utf8.UTFMax {
		return b[:utf8.UTFMax]
	}
	return b
}
