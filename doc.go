// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package v8json implements a JSON value model and text codec whose output
// is byte for byte identical to JSON.stringify in the V8 JavaScript engine.
// JSON is a simple data interchange format that can represent
// primitive data types such as booleans, strings, and numbers,
// in addition to structured data types such as objects and arrays.
//
// # Number formatting
//
// The distinguishing feature of this package is its treatment of numbers.
// ECMA-262 section 7.1.12.1 renders a double as the shortest decimal string
// that reads back as exactly the same double, switching from positional to
// exponential notation outside the interval [1e-6, 1e21).
// [AppendDouble] and [FormatDouble] implement that algorithm, and the
// encoder uses it for every double in a [Value] tree, so output can be
// compared byte for byte against what a JavaScript runtime would produce.
// Integral doubles render without a decimal point (1 rather than 1.0), and
// the double -0 renders as -0 so that a negative zero survives a round
// trip through text.
//
// # Value model
//
// A [Value] is a tree of literals, strings, numbers, arrays, and objects.
// A [Number] records how it was produced (int64, uint64, double, or a
// verbatim literal), and each representation is formatted by its natural
// formatter, so integers never pick up a spurious exponent or lose
// precision to a double conversion. An [Object] preserves the document
// order of its members when constructed with [NewOrderedObject] and
// otherwise iterates in Go map order. A [RawValue] passes through both
// directions of the codec untouched.
//
// The decoder accepts the RFC 8259 grammar. Where that grammar leaves
// behavior undefined, this package follows ECMAScript: an object with
// duplicate member names keeps the value of the last occurrence, and
// strings that do not hold valid UTF-8 pass through verbatim.
//
// This package uses the terms "encode" and "decode" for syntactic
// processing of JSON text, and the terms "marshal" and "unmarshal" for
// conversion between JSON text and the [Value] model.
package v8json

// nonComparable can be embedded in a struct to prevent comparability.
type nonComparable [0]func()
