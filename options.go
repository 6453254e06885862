// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"strings"

	"github.com/open-flash/v8json/internal/jsonwire"
)

// Options configures [Marshal], [MarshalAppend], [MarshalWrite],
// [Unmarshal], [UnmarshalRead], [NewEncoder], and [NewDecoder]
// with specific features.
// Each function takes in a variadic list of options, where properties
// set in latter options override the value of previously set properties.
// Options that do not affect a particular operation are ignored.
//
// Options are constructed with [OrderedObjects], [ArbitraryPrecision],
// [WithDepthLimit], [UnboundedDepth], [WithIndent], [WithIndentPrefix],
// and [JoinOptions].
type Options interface {
	applyOptions(*options)
}

// defaultDepthLimit bounds the nesting depth of objects and arrays
// unless overridden with [WithDepthLimit] or [UnboundedDepth].
const defaultDepthLimit = 128

// options is the resolved form threaded through encoding and decoding.
type options struct {
	orderedObjects     bool
	arbitraryPrecision bool
	unboundedDepth     bool
	depthLimitSet      bool
	multiline          bool
	depthLimit         int
	indent             string
	indentPrefix       string
}

func resolveOptions(opts []Options) (o options) {
	o.depthLimit = defaultDepthLimit
	optionList(opts).applyOptions(&o)
	return o
}

// exceedsDepth reports whether a container at the given nesting depth
// (1 for a top-level object or array) lies beyond the configured limit.
func (o *options) exceedsDepth(depth int) bool {
	return !o.unboundedDepth && depth > o.depthLimit
}

// exceedsEncodeDepth is like exceedsDepth but never fires unless the caller
// set an explicit limit, since encoding walks an in-memory tree rather than
// untrusted input.
func (o *options) exceedsEncodeDepth(depth int) bool {
	return o.depthLimitSet && o.exceedsDepth(depth)
}

// OrderedObjects specifies that objects produced by unmarshaling preserve
// the document order of their members, as observed through [Object.Names],
// [Object.Range], and re-encoding. Otherwise objects iterate in Go map
// order, which varies between runs.
//
// This only affects unmarshaling; encoding always follows the mode each
// [Object] was constructed with.
func OrderedObjects(v bool) Options {
	return orderedObjectsOption(v)
}

// ArbitraryPrecision specifies that numbers produced by unmarshaling are
// kept as verbatim literals rather than converted to a machine
// representation, so precision beyond the int64, uint64, and float64
// ranges survives a round trip untouched. This includes literals such as
// 1e999 that would otherwise fail with [ErrNumberSyntax].
//
// This only affects unmarshaling.
func ArbitraryPrecision(v bool) Options {
	return arbitraryPrecisionOption(v)
}

// WithDepthLimit specifies the maximum nesting depth of objects and arrays,
// beyond which decoding fails with [ErrRecursionLimit]. The default limit
// is 128. Encoding has no depth limit unless one is set explicitly with
// this option. WithDepthLimit panics if n is not positive.
func WithDepthLimit(n int) Options {
	if n < 1 {
		panic(errorPrefix + "depth limit must be positive")
	}
	return depthLimitOption(n)
}

// UnboundedDepth specifies that no depth check is performed at all.
// Decoding then recurses as deep as the input nests, so malicious input
// can exhaust the goroutine stack; enable it only for trusted input.
func UnboundedDepth(v bool) Options {
	return unboundedDepthOption(v)
}

// WithIndent specifies that the encoder should emit multiline output where
// each member or element of an object or array begins on a new, indented
// line, indented by one or more copies of indent according to the nesting
// depth. The indent must be composed of only space or tab characters.
//
// This only affects encoding.
func WithIndent(indent string) Options {
	checkIndentChars(indent, "indent")
	return indentOption(indent)
}

// WithIndentPrefix specifies that the encoder should emit multiline output
// where each line begins with prefix before any indentation.
// The prefix must be composed of only space or tab characters.
//
// This only affects encoding.
func WithIndentPrefix(prefix string) Options {
	checkIndentChars(prefix, "indent prefix")
	return indentPrefixOption(prefix)
}

func checkIndentChars(s, which string) {
	if t := strings.Trim(s, " \t"); len(t) > 0 {
		panic(errorPrefix + "invalid character " + jsonwire.QuoteRune(t) + " in " + which)
	}
}

// JoinOptions coalesces the provided list of options into a single Options.
// Properties set in latter options override previously set properties.
func JoinOptions(opts ...Options) Options {
	return optionList(opts)
}

type (
	orderedObjectsOption     bool
	arbitraryPrecisionOption bool
	depthLimitOption         int
	unboundedDepthOption     bool
	indentOption             string
	indentPrefixOption       string
	optionList               []Options
)

func (v orderedObjectsOption) applyOptions(o *options)     { o.orderedObjects = bool(v) }
func (v arbitraryPrecisionOption) applyOptions(o *options) { o.arbitraryPrecision = bool(v) }
func (v depthLimitOption) applyOptions(o *options)         { o.depthLimit, o.depthLimitSet = int(v), true }
func (v unboundedDepthOption) applyOptions(o *options)     { o.unboundedDepth = bool(v) }

func (v indentOption) applyOptions(o *options) {
	o.multiline, o.indent = true, string(v)
}

func (v indentPrefixOption) applyOptions(o *options) {
	o.multiline, o.indentPrefix = true, string(v)
}

func (v optionList) applyOptions(o *options) {
	for _, opt := range v {
		if opt != nil {
			opt.applyOptions(o)
		}
	}
}
