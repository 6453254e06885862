// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
)

func TestFormatDouble(t *testing.T) {
	tenth := 0.1 // avoid exact constant folding of the sums below
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "-0"},
		{1, "1"},
		{-1, "-1"},
		{42, "42"},
		{100, "100"},
		{0.1, "0.1"},
		{-0.5, "-0.5"},
		{1.0 / 3.0, "0.3333333333333333"},
		{tenth + 0.2, "0.30000000000000004"},

		// The fixed/exponential switch-over happens at exactly 1e21 above
		// and 1e-6 below, matching ECMA-262 section 7.1.12.1.
		{1e20, "100000000000000000000"},
		{999999999999999900000.0, "999999999999999900000"},
		{1e21, "1e+21"},
		{1.0000000000000001e21, "1.0000000000000001e+21"},
		{0.000001, "0.000001"},
		{0.0000001, "1e-7"},
		{1.5e-7, "1.5e-7"},

		// Exponents carry a mandatory sign and no zero padding.
		{1e100, "1e+100"},
		{1.5e-300, "1.5e-300"},
		{2e-308, "2e-308"},

		// Extremes of the binary64 range.
		{5e-324, "5e-324"},
		{math.MaxFloat64, "1.7976931348623157e+308"},
		{-math.MaxFloat64, "-1.7976931348623157e+308"},

		// Integral doubles render with no decimal point.
		{4294967296, "4294967296"},
		{9007199254740992, "9007199254740992"},
		{1.8446744073709552e19, "18446744073709552000"},
	}
	for _, tt := range tests {
		got, err := FormatDouble(tt.in)
		if err != nil {
			t.Errorf("FormatDouble(%v) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatDouble(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDoubleNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(+1), math.Inf(-1)} {
		if _, err := FormatDouble(f); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("FormatDouble(%v) error = %v, want ErrInvalidNumber", f, err)
		}
		if _, err := AppendDouble(nil, f); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("AppendDouble(%v) error = %v, want ErrInvalidNumber", f, err)
		}
	}
}

func TestFormatDoubleRoundTrip(t *testing.T) {
	// Every output must parse back to the identical bits, and must never be
	// longer than the shortest representation strconv finds.
	values := []float64{
		0.1, 2.2250738585072014e-308, 1.7976931348623157e+308,
		5e-324, 123456.789e-20, 622666234635.3213e-8,
		9007199254740993, // 2^53+1 is not representable; rounds to 2^53
		3.141592653589793, 2.718281828459045,
	}
	for i := uint64(1); i < 1<<52; i = i*3 + 7 {
		values = append(values, math.Float64frombits(i|1<<62))
	}
	for _, f := range values {
		s, err := FormatDouble(f)
		if err != nil {
			t.Fatalf("FormatDouble(%v) error: %v", f, err)
		}
		back, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q) error: %v", s, err)
		}
		if math.Float64bits(back) != math.Float64bits(f) {
			t.Errorf("FormatDouble(%v) = %q, which parses to %v", f, s, back)
		}
		// The significant digits must agree with strconv's shortest form;
		// only the rendering around them differs.
		if got, want := significantDigits(s), significantDigits(strconv.FormatFloat(f, 'e', -1, 64)); got != want {
			t.Errorf("FormatDouble(%v) = %q with digits %q, want digits %q", f, s, got, want)
		}
	}
}

// significantDigits reduces a decimal rendering to its significant digits,
// dropping sign, decimal point, exponent, and the zeros that positional
// notation pads with.
func significantDigits(s string) string {
	s = strings.TrimPrefix(s, "-")
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.TrimLeft(s, "0")
	s = strings.TrimRight(s, "0")
	if s == "" {
		s = "0"
	}
	return s
}

func TestAppendQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"hello", `"hello"`},
		{`a"b\c`, `"a\"b\\c"`},
		{"\b\f\n\r\t", `"\b\f\n\r\t"`},
		{"\x00\x01\x1f", `"\u0000\u0001\u001f"`},
		{"\x7f", "\"\x7f\""},     // DEL is not a JSON control character
		{"日本語", `"日本語"`},        // multi-byte passes through
		{"\xde\xad", "\"\xde\xad\""}, // invalid UTF-8 passes through
	}
	for _, tt := range tests {
		if got := AppendQuote(nil, tt.in); string(got) != tt.want {
			t.Errorf("AppendQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
		// Unquoting must restore the original bytes exactly.
		back, err := AppendUnquote(nil, tt.want)
		if err != nil {
			t.Errorf("AppendUnquote(%q) error: %v", tt.want, err)
			continue
		}
		if string(back) != tt.in {
			t.Errorf("AppendUnquote(AppendQuote(%q)) = %q", tt.in, back)
		}
	}
}

func TestAppendUnquote(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: `"A"`, want: "A"},
		{in: `"😀"`, want: "😀"},
		{in: `"/\/"`, want: "//"},
		{in: `"abc`, wantErr: ErrUnterminatedString},
		{in: `"\uD83D"`, wantErr: ErrInvalidEscape},
		{in: `"a"x`, wantErr: ErrTrailingData},
		{in: ``, wantErr: ErrUnexpectedToken},
	}
	for _, tt := range tests {
		got, err := AppendUnquote(nil, tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AppendUnquote(%q) error = %v, want kind %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("AppendUnquote(%q) error: %v", tt.in, err)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("AppendUnquote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
