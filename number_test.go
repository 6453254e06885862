// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumberFromLiteral(t *testing.T) {
	valid := []string{
		"0", "-0", "42", "-42", "0.5", "-0.5", "1e3", "1E+3", "1e-3",
		"9223372036854775808", "1e999",
		"3.141592653589793238462643383279", // beyond float64 precision
	}
	for _, lit := range valid {
		n, err := NumberFromLiteral(lit)
		if err != nil {
			t.Errorf("NumberFromLiteral(%q) error: %v", lit, err)
			continue
		}
		if !n.IsVerbatim() {
			t.Errorf("NumberFromLiteral(%q).IsVerbatim() = false, want true", lit)
		}
		if got := n.String(); got != lit {
			t.Errorf("NumberFromLiteral(%q).String() = %q, want the literal back", lit, got)
		}
	}

	invalid := []string{
		"", "+1", "01", "1.", ".5", "1e", "1e+", "0x1", "NaN", "Infinity",
		"1 ", "1,2", "--1",
	}
	for _, lit := range invalid {
		if _, err := NumberFromLiteral(lit); err == nil {
			t.Errorf("NumberFromLiteral(%q) succeeded, want error", lit)
		}
	}
}

func TestNumberAccessors(t *testing.T) {
	require := require.New(t)

	var zero Number
	i, ok := zero.Int64()
	require.True(ok)
	require.Equal(int64(0), i)
	require.Equal("0", zero.String())

	// A uint64 beyond int64 range is not an int64.
	big := Uint(math.MaxInt64 + 1).Number()
	_, ok = big.Int64()
	require.False(ok)
	u, ok := big.Uint64()
	require.True(ok)
	require.Equal(uint64(math.MaxInt64+1), u)

	// A negative int64 is not a uint64.
	neg := Int(-1).Number()
	_, ok = neg.Uint64()
	require.False(ok)

	// Doubles never report as integers, even at integral values.
	fv, err := Float(42)
	require.NoError(err)
	_, ok = fv.Number().Int64()
	require.False(ok)
	_, ok = fv.Number().Uint64()
	require.False(ok)
	require.Equal(42.0, fv.Number().Float64())

	// Verbatim literals classify by their spelled value.
	v, err := NumberFromLiteral("-9223372036854775808")
	require.NoError(err)
	i, ok = v.Int64()
	require.True(ok)
	require.Equal(int64(math.MinInt64), i)
	_, ok = v.Uint64()
	require.False(ok)

	v, err = NumberFromLiteral("-9223372036854775809")
	require.NoError(err)
	_, ok = v.Int64()
	require.False(ok)

	v, err = NumberFromLiteral("18446744073709551615")
	require.NoError(err)
	u, ok = v.Uint64()
	require.True(ok)
	require.Equal(uint64(math.MaxUint64), u)

	v, err = NumberFromLiteral("1.5")
	require.NoError(err)
	_, ok = v.Int64()
	require.False(ok)
	require.Equal(1.5, v.Float64())
}

func TestNumberString(t *testing.T) {
	mustFloat := func(f float64) Number {
		v, err := Float(f)
		if err != nil {
			t.Fatalf("Float(%v) error: %v", f, err)
		}
		return v.Number()
	}
	tests := []struct {
		in   Number
		want string
	}{
		{Int(0).Number(), "0"},
		{Int(math.MinInt64).Number(), "-9223372036854775808"},
		{Uint(math.MaxUint64).Number(), "18446744073709551615"},
		{mustFloat(0.5), "0.5"},
		{mustFloat(42), "42"}, // integral doubles render without a point
		{mustFloat(math.Copysign(0, -1)), "-0"},
		{mustFloat(1e21), "1e+21"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Number.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNumberEqual(t *testing.T) {
	mustFloat := func(f float64) Number {
		v, err := Float(f)
		if err != nil {
			t.Fatalf("Float(%v) error: %v", f, err)
		}
		return v.Number()
	}
	mustVerbatim := func(lit string) Number {
		n, err := NumberFromLiteral(lit)
		if err != nil {
			t.Fatalf("NumberFromLiteral(%q) error: %v", lit, err)
		}
		return n
	}
	tests := []struct {
		name string
		n, m Number
		want bool
	}{
		{"IntUintUnify", Int(42).Number(), Uint(42).Number(), true},
		{"NegIntUint", Int(-1).Number(), Uint(math.MaxUint64).Number(), false},
		{"IntFloat", Int(42).Number(), mustFloat(42), false},
		{"FloatFloat", mustFloat(1.5), mustFloat(1.5), true},
		{"NegZero", mustFloat(math.Copysign(0, -1)), mustFloat(0), true},
		{"VerbatimSame", mustVerbatim("1.50"), mustVerbatim("1.50"), true},
		{"VerbatimSpelling", mustVerbatim("1.5"), mustVerbatim("1.50"), false},
		{"VerbatimVsFloat", mustVerbatim("1.5"), mustFloat(1.5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Equal(tt.m); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
			if got := tt.m.Equal(tt.n); got != tt.want {
				t.Errorf("Equal (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}
