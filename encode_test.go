// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func mustFloatValue(t *testing.T, f float64) Value {
	t.Helper()
	v, err := Float(f)
	if err != nil {
		t.Fatalf("Float(%v) error: %v", f, err)
	}
	return v
}

func TestMarshal(t *testing.T) {
	orderedObj := NewOrderedObject()
	orderedObj.Set("z", Int(26))
	orderedObj.Set("a", Int(1))
	orderedObj.Set("nested", Array(Null, True, False))

	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"Null", Null, `null`},
		{"ZeroValue", Value{}, `null`},
		{"False", False, `false`},
		{"True", True, `true`},
		{"EmptyString", String(""), `""`},
		{"SimpleString", String("hello"), `"hello"`},
		{"EscapedString", String("a\"b\\c\x01"), `"a\"b\\c\u0001"`},
		{"ShortEscapes", String("\b\f\n\r\t"), `"\b\f\n\r\t"`},
		{"ControlBytes", String("\x00\x1f"), `"\u0000\u001f"`},
		{"NonASCII", String("Σигма😀"), `"Σигма😀"`},
		{"InvalidUTF8", String("\xff"), "\"\xff\""}, // passed through verbatim
		{"Int", Int(-123), `-123`},
		{"IntMin", Int(math.MinInt64), `-9223372036854775808`},
		{"UintMax", Uint(math.MaxUint64), `18446744073709551615`},
		{"Double", mustFloatValue(t, 0.1), `0.1`},
		{"IntegralDouble", mustFloatValue(t, 3.0), `3`},
		{"NegativeZero", mustFloatValue(t, math.Copysign(0, -1)), `-0`},
		{"LargeDouble", mustFloatValue(t, 1e21), `1e+21`},
		{"EmptyArray", Array(), `[]`},
		{"Array", Array(Int(1), String("x"), Null), `[1,"x",null]`},
		{"EmptyObject", ObjectValue(NewObject()), `{}`},
		{"NilObject", ObjectValue(nil), `{}`},
		{"OrderedObject", ObjectValue(orderedObj), `{"z":26,"a":1,"nested":[null,true,false]}`},
		{"RawValue", Raw(RawValue(`{"kept" : "as-is"}`)), `{"kept" : "as-is"}`},
		{"RawInArray", Array(Int(1), Raw(RawValue(`[2, 3]`))), `[1,[2, 3]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalIndent(t *testing.T) {
	obj := NewOrderedObject()
	obj.Set("a", Array(Int(1), Int(2)))
	obj.Set("b", ObjectValue(NewObject()))
	v := ObjectValue(obj)

	got, err := Marshal(v, WithIndent("\t"))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := "{\n\t\"a\": [\n\t\t1,\n\t\t2\n\t],\n\t\"b\": {}\n}"
	if string(got) != want {
		t.Errorf("Marshal with indent:\ngot  %q\nwant %q", got, want)
	}

	got, err = Marshal(Array(Int(1)), WithIndent("  "), WithIndentPrefix("\t"))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want = "[\n\t  1\n\t]"
	if string(got) != want {
		t.Errorf("Marshal with indent prefix:\ngot  %q\nwant %q", got, want)
	}
}

func TestMarshalAppend(t *testing.T) {
	dst := []byte("prefix:")
	got, err := MarshalAppend(dst, Array(Int(1)))
	if err != nil {
		t.Fatalf("MarshalAppend error: %v", err)
	}
	if want := "prefix:[1]"; string(got) != want {
		t.Errorf("MarshalAppend = %q, want %q", got, want)
	}

	// On failure the destination comes back unextended.
	deep := Array(Array(Array()))
	got, err = MarshalAppend(dst, deep, WithDepthLimit(2))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("MarshalAppend error = %v, want ErrRecursionLimit", err)
	}
	if string(got) != "prefix:" {
		t.Errorf("MarshalAppend after failure = %q, want %q", got, "prefix:")
	}
}

func TestMarshalDepthLimit(t *testing.T) {
	// Encoding walks an in-memory tree, so by default it imposes no nesting
	// limit even where decoding the same text would.
	deep := Int(1)
	for i := 0; i < 500; i++ {
		deep = Array(deep)
	}
	got, err := Marshal(deep)
	if err != nil {
		t.Fatalf("Marshal of deeply nested tree error: %v", err)
	}
	want := strings.Repeat("[", 500) + "1" + strings.Repeat("]", 500)
	if string(got) != want {
		t.Errorf("Marshal of deeply nested tree produced wrong text")
	}

	// An explicit limit still applies to encoding.
	v := Array(Array(Array(Int(1))))
	if _, err := Marshal(v, WithDepthLimit(3)); err != nil {
		t.Errorf("Marshal at limit error: %v", err)
	}
	_, err = Marshal(v, WithDepthLimit(2))
	if !errors.Is(err, ErrRecursionLimit) {
		t.Errorf("Marshal beyond limit error = %v, want ErrRecursionLimit", err)
	}
	if !errors.Is(err, Error) {
		t.Errorf("errors.Is(err, Error) = false, want true")
	}
	if _, err := Marshal(v, WithDepthLimit(2), UnboundedDepth(true)); err != nil {
		t.Errorf("Marshal with unbounded depth error: %v", err)
	}
}

func TestMarshalInvalidNumber(t *testing.T) {
	// The constructors reject non-finite doubles, so smuggle one in to
	// exercise the encoder's defensive check.
	v := NumberValue(Number{typ: numFloat64, bits: math.Float64bits(math.NaN())})
	if _, err := Marshal(v); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("Marshal(NaN) error = %v, want ErrInvalidNumber", err)
	}
}

type failWriter struct{ err error }

func (w failWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestMarshalWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := MarshalWrite(&buf, Array(Int(1), Int(2))); err != nil {
		t.Fatalf("MarshalWrite error: %v", err)
	}
	if want := "[1,2]"; buf.String() != want {
		t.Errorf("MarshalWrite output = %q, want %q", buf.String(), want)
	}

	sinkErr := errors.New("sink failure")
	err := MarshalWrite(failWriter{sinkErr}, Null)
	if !errors.Is(err, sinkErr) {
		t.Errorf("MarshalWrite error = %v, want to unwrap to sink error", err)
	}
	if !errors.Is(err, Error) {
		t.Errorf("errors.Is(err, Error) = false, want true")
	}
	if !strings.HasPrefix(err.Error(), "v8json: write error: ") {
		t.Errorf("MarshalWrite error message = %q, want %q prefix", err, "v8json: write error: ")
	}
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	if err := enc.WriteValue(Int(1)); err != nil {
		t.Fatalf("WriteValue error: %v", err)
	}
	if err := enc.WriteValue(True); err != nil {
		t.Fatalf("WriteValue error: %v", err)
	}
	if err := enc.WriteRaw(RawValue(`{"raw" : 1}`)); err != nil {
		t.Fatalf("WriteRaw error: %v", err)
	}
	want := "1\ntrue\n{\"raw\" : 1}\n"
	if buf.String() != want {
		t.Errorf("Encoder output = %q, want %q", buf.String(), want)
	}

	sinkErr := errors.New("sink failure")
	if err := NewEncoder(failWriter{sinkErr}).WriteValue(Null); !errors.Is(err, sinkErr) {
		t.Errorf("WriteValue error = %v, want to unwrap to sink error", err)
	}
}
