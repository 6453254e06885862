// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonwire

import "slices"

const hex = "0123456789abcdef"

// AppendQuote appends src to dst as a JSON string per RFC 8259, section 7.
//
// Only the double quote, the backslash, and control characters are escaped.
// Everything else, including invalid UTF-8, passes through byte for byte,
// so AppendUnquote(AppendQuote(b)) always restores b exactly.
func AppendQuote[Bytes ~[]byte | ~string](dst []byte, src Bytes) []byte {
	dst = slices.Grow(dst, len(`"`)+len(src)+len(`"`))
	dst = append(dst, '"')
	var i, n int
	for uint(len(src)) > uint(n) {
		if c := src[n]; c < ' ' || c == '"' || c == '\\' {
			dst = append(dst, src[i:n]...)
			dst = appendEscapedASCII(dst, c)
			n++
			i = n
		} else {
			n++
		}
	}
	dst = append(dst, src[i:n]...)
	dst = append(dst, '"')
	return dst
}

// appendEscapedASCII appends the escaped form of the quote, backslash, or
// control character c, preferring the short forms of RFC 8259, section 7
// and falling back to a lowercase \u00XX sequence.
func appendEscapedASCII(dst []byte, c byte) []byte {
	switch c {
	case '"', '\\':
		dst = append(dst, '\\', c)
	case '\b':
		dst = append(dst, "\\b"...)
	case '\f':
		dst = append(dst, "\\f"...)
	case '\n':
		dst = append(dst, "\\n"...)
	case '\r':
		dst = append(dst, "\\r"...)
	case '\t':
		dst = append(dst, "\\t"...)
	default:
		dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
	}
	return dst
}
