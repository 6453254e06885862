// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import (
	"errors"
	"io"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
)

// ConsumeWhitespace consumes leading JSON whitespace per RFC 8259, section 2.
func ConsumeWhitespace(b []byte) (n int) {
	// NOTE: The arguments and logic are kept simple to keep this inlinable.
	for len(b) > n && (b[n] == ' ' || b[n] == '\t' || b[n] == '\r' || b[n] == '\n') {
		n++
	}
	return n
}

// ConsumeNull consumes the next JSON null literal per RFC 8259, section 3.
// It returns 0 if it is invalid, in which case ConsumeLiteral should be used.
func ConsumeNull(b []byte) int {
	// NOTE: The arguments and logic are kept simple to keep this inlinable.
	const literal = "null"
	if len(b) >= len(literal) && string(b[:len(literal)]) == literal {
		return len(literal)
	}
	return 0
}

// ConsumeFalse consumes the next JSON false literal per RFC 8259, section 3.
// It returns 0 if it is invalid, in which case ConsumeLiteral should be used.
func ConsumeFalse(b []byte) int {
	// NOTE: The arguments and logic are kept simple to keep this inlinable.
	const literal = "false"
	if len(b) >= len(literal) && string(b[:len(literal)]) == literal {
		return len(literal)
	}
	return 0
}

// ConsumeTrue consumes the next JSON true literal per RFC 8259, section 3.
// It returns 0 if it is invalid, in which case ConsumeLiteral should be used.
func ConsumeTrue(b []byte) int {
	// NOTE: The arguments and logic are kept simple to keep this inlinable.
	const literal = "true"
	if len(b) >= len(literal) && string(b[:len(literal)]) == literal {
		return len(literal)
	}
	return 0
}

// ConsumeLiteral consumes the next JSON literal per RFC 8259, section 3.
// If the input appears truncated, it returns io.ErrUnexpectedEOF.
func ConsumeLiteral(b []byte, lit string) (n int, err error) {
	for i := 0; i < len(b) && i < len(lit); i++ {
		if b[i] != lit[i] {
			return i, NewInvalidCharacterError(b[i:], "within literal "+lit+" (expecting "+strconv.QuoteRune(rune(lit[i]))+")")
		}
	}
	if len(b) < len(lit) {
		return len(b), io.ErrUnexpectedEOF
	}
	return len(lit), nil
}

// ConsumeSimpleString consumes the next JSON string per RFC 8259, section 7,
// but is limited to the grammar for an ASCII string without escape sequences.
// It returns 0 if it is invalid or more complicated than a simple string,
// in which case ConsumeString should be used.
func ConsumeSimpleString(b []byte) (n int) {
	if len(b) > 0 && b[0] == '"' {
		n++
		for len(b) > n && b[n] != '"' && (' ' <= b[n] && b[n] != '\\' && b[n] < utf8.RuneSelf) {
			n++
		}
		if uint(len(b)) > uint(n) && b[n] == '"' {
			n++
			return n
		}
	}
	return 0
}

// ConsumeString consumes the next JSON string per RFC 8259, section 7.
// On failure, n is the offset of the offending byte or sequence.
// Bytes that are not part of an escape sequence pass through unvalidated,
// so strings with invalid UTF-8 are preserved byte for byte.
func ConsumeString(b []byte) (n int, err error) {
	if n = ConsumeSimpleString(b); n > 0 {
		return n, nil
	}
	if len(b) == 0 || b[0] != '"' {
		return 0, NewInvalidCharacterError(b, `at start of string (expecting '"')`)
	}
	n = 1
	for n < len(b) {
		switch c := b[n]; {
		case c == '"':
			return n + 1, nil
		case c == '\\':
			m, _, err := consumeEscape(b, n)
			if err != nil {
				return m, err
			}
			n = m
		case c < ' ':
			return n, NewInvalidCharacterError(b[n:], "within string (expecting non-control character)")
		default:
			n++
		}
	}
	return len(b), errUnterminatedString
}

// consumeEscape consumes the escape sequence starting at the backslash at
// b[n], returning the offset just past it and the rune it denotes.
// Escaped UTF-16 surrogate pairs are combined into a single rune; an
// unpairable half is an error.
func consumeEscape[Bytes ~[]byte | ~string](b Bytes, n int) (int, rune, error) {
	if len(b) < n+2 {
		return len(b), 0, errUnterminatedString
	}
	switch c := b[n+1]; c {
	case '"', '\\', '/':
		return n + 2, rune(c), nil
	case 'b':
		return n + 2, '\b', nil
	case 'f':
		return n + 2, '\f', nil
	case 'n':
		return n + 2, '\n', nil
	case 'r':
		return n + 2, '\r', nil
	case 't':
		return n + 2, '\t', nil
	case 'u':
		seq := b[n:min(n+6, len(b))]
		if len(seq) < 6 {
			if isEscapedUTF16Prefix(seq) {
				return len(b), 0, errUnterminatedString
			}
			return n, 0, NewInvalidEscapeError(seq, "within string")
		}
		v1, ok := ParseHexUint16(seq[2:6])
		if !ok {
			return n, 0, NewInvalidEscapeError(seq, "within string")
		}
		r := rune(v1)
		if !utf16.IsSurrogate(r) {
			return n + 6, r, nil
		}
		if r >= 0xdc00 {
			// A low half with no preceding high half.
			return n, 0, errUnpairedSurrogate
		}
		pair := b[n+6 : min(n+12, len(b))]
		if len(pair) < 6 {
			if isEscapedUTF16Prefix(pair) {
				return len(b), 0, errUnterminatedString
			}
			return n, 0, errUnpairedSurrogate
		}
		if pair[0] != '\\' || pair[1] != 'u' {
			return n, 0, errUnpairedSurrogate
		}
		v2, ok := ParseHexUint16(pair[2:6])
		if !ok {
			return n + 6, 0, NewInvalidEscapeError(pair, "within string")
		}
		r2 := rune(v2)
		if r2 < 0xdc00 || 0xdfff < r2 {
			return n, 0, errUnpairedSurrogate
		}
		return n + 12, utf16.DecodeRune(r, r2), nil
	default:
		return n, 0, NewInvalidEscapeError(b[n:n+2], "within string")
	}
}

// isEscapedUTF16Prefix reports whether b is a (possibly empty) prefix of an
// escaped UTF-16 code unit of the form `\uXXXX`.
func isEscapedUTF16Prefix[Bytes ~[]byte | ~string](b Bytes) bool {
	for i := 0; i < len(b) && i < 6; i++ {
		switch c := b[i]; {
		case i == 0 && c != '\\':
			return false
		case i == 1 && c != 'u':
			return false
		case i >= 2 && !isHexDigit(c):
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// AppendUnquote appends the decoded interpretation of the JSON string
// literal src to dst and returns the extended buffer. The input must be the
// entire literal, including both quotes, with nothing surrounding it.
func AppendUnquote[Bytes ~[]byte | ~string](dst []byte, src Bytes) ([]byte, error) {
	dst = slices.Grow(dst, len(src))
	if len(src) == 0 || src[0] != '"' {
		return dst, NewInvalidCharacterError(src, `at start of string (expecting '"')`)
	}
	i, n := 1, 1
	for n < len(src) {
		switch c := src[n]; {
		case c == '"':
			dst = append(dst, src[i:n]...)
			n++
			if n < len(src) {
				return dst, NewInvalidCharacterError(src[n:], "after string value")
			}
			return dst, nil
		case c == '\\':
			dst = append(dst, src[i:n]...)
			m, r, err := consumeEscape(src, n)
			if err != nil {
				return dst, err
			}
			dst = utf8.AppendRune(dst, r)
			n = m
			i = n
		case c < ' ':
			return dst, NewInvalidCharacterError(src[n:], "within string (expecting non-control character)")
		default:
			n++
		}
	}
	return dst, errUnterminatedString
}

// ConsumeSimpleNumber consumes the next JSON number per RFC 8259, section 6,
// but is limited to the grammar for a non-negative integer without leading
// zeros. It returns 0 if it is invalid or more complicated than a simple
// integer, in which case ConsumeNumber should be used.
func ConsumeSimpleNumber(b []byte) (n int) {
	if len(b) > 0 {
		if b[0] == '0' {
			n++
		} else if '1' <= b[0] && b[0] <= '9' {
			n++
			for len(b) > n && ('0' <= b[n] && b[n] <= '9') {
				n++
			}
		} else {
			return 0
		}
		if uint(len(b)) <= uint(n) || (b[n] != '.' && b[n] != 'e' && b[n] != 'E') {
			return n
		}
	}
	return 0
}

// ConsumeNumber consumes the next JSON number per RFC 8259, section 6.
// On failure, n is the offset of the offending byte. Truncated input
// reports io.ErrUnexpectedEOF; malformed digits report an error classified
// under ErrNumberSyntax.
func ConsumeNumber(b []byte) (n int, err error) {
	if n = ConsumeSimpleNumber(b); n > 0 {
		return n, nil
	}
	if len(b) > 0 && b[0] == '-' {
		n++
	}

	// Integer component per RFC 8259, section 6.
	switch {
	case n == len(b):
		return n, io.ErrUnexpectedEOF
	case b[n] == '0':
		n++
	case '1' <= b[n] && b[n] <= '9':
		n++
		for n < len(b) && '0' <= b[n] && b[n] <= '9' {
			n++
		}
	default:
		return n, newInvalidCharacterError(b[n:], "within number (expecting digit)", ErrNumberSyntax)
	}

	// Fraction component.
	if n < len(b) && b[n] == '.' {
		n++
		switch {
		case n == len(b):
			return n, io.ErrUnexpectedEOF
		case '0' <= b[n] && b[n] <= '9':
			for n < len(b) && '0' <= b[n] && b[n] <= '9' {
				n++
			}
		default:
			return n, newInvalidCharacterError(b[n:], "within number (expecting digit)", ErrNumberSyntax)
		}
	}

	// Exponent component.
	if n < len(b) && (b[n] == 'e' || b[n] == 'E') {
		n++
		if n < len(b) && (b[n] == '-' || b[n] == '+') {
			n++
		}
		switch {
		case n == len(b):
			return n, io.ErrUnexpectedEOF
		case '0' <= b[n] && b[n] <= '9':
			for n < len(b) && '0' <= b[n] && b[n] <= '9' {
				n++
			}
		default:
			return n, newInvalidCharacterError(b[n:], "within number (expecting digit)", ErrNumberSyntax)
		}
	}

	return n, nil
}

// HasFloatSyntax reports whether the number literal b carries a fraction or
// exponent part. Literals without either are integer literals.
func HasFloatSyntax(b []byte) bool {
	for _, c := range b {
		switch c {
		case '.', 'e', 'E':
			return true
		}
	}
	return false
}

// ParseHexUint16 parses b as a 4-digit hexadecimal number.
func ParseHexUint16[Bytes ~[]byte | ~string](b Bytes) (v uint16, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	for i := 0; i < 4; i++ {
		c := b[i]
		switch {
		case '0' <= c && c <= '9':
			c = c - '0'
		case 'a' <= c && c <= 'f':
			c = 10 + c - 'a'
		case 'A' <= c && c <= 'F':
			c = 10 + c - 'A'
		default:
			return 0, false
		}
		v = v*16 + uint16(c)
	}
	return v, true
}

// ParseUint parses b as a decimal unsigned integer. It reports false if b
// is empty, contains a non-digit, or overflows uint64.
func ParseUint(b []byte) (v uint64, ok bool) {
	if len(b) == 0 {
		return 0, false
	}
	for _, c := range b {
		if c < '0' || '9' < c {
			return 0, false
		}
		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// ParseFloat parses b as a JSON number into a float of the given bit size.
// Literals whose magnitude overflows the type report false. Underflow is
// harmless: the result is a zero carrying the literal's sign, reported true.
func ParseFloat(b []byte, bits int) (v float64, ok bool) {
	v, err := strconv.ParseFloat(string(b), bits)
	if err != nil && (!errors.Is(err, strconv.ErrRange) || math.IsInf(v, 0)) {
		return 0, false
	}
	return v, true
}
