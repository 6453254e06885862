// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectBasics(t *testing.T) {
	require := require.New(t)

	var zero Object // the zero Object is ready for use
	require.Equal(0, zero.Len())
	require.False(zero.Ordered())
	zero.Set("a", Int(1))
	require.Equal(1, zero.Len())

	o := NewObject()
	require.False(o.Ordered())
	o.Set("a", Int(1))
	o.Set("b", Int(2))
	require.Equal(2, o.Len())
	require.True(o.Has("a"))
	require.False(o.Has("c"))

	v, ok := o.Get("b")
	require.True(ok)
	require.True(v.Equal(Int(2)))
	_, ok = o.Get("c")
	require.False(ok)

	o.Set("a", String("replaced")) // last write wins
	require.Equal(2, o.Len())
	v, _ = o.Get("a")
	require.True(v.Equal(String("replaced")))

	o.Delete("a")
	require.Equal(1, o.Len())
	require.False(o.Has("a"))
	o.Delete("missing") // no-op

	names := o.Names()
	sort.Strings(names)
	require.Equal([]string{"b"}, names)
}

func TestObjectOrdered(t *testing.T) {
	require := require.New(t)

	o := NewOrderedObject()
	require.True(o.Ordered())
	o.Set("z", Int(1))
	o.Set("a", Int(2))
	o.Set("m", Int(3))
	require.Equal([]string{"z", "a", "m"}, o.Names())

	// Re-assignment keeps the original position.
	o.Set("a", Int(4))
	require.Equal([]string{"z", "a", "m"}, o.Names())

	o.Delete("a")
	require.Equal([]string{"z", "m"}, o.Names())

	// Re-adding a deleted name appends at the end.
	o.Set("a", Int(5))
	require.Equal([]string{"z", "m", "a"}, o.Names())

	var got []string
	o.Range(func(name string, value Value) bool {
		got = append(got, name)
		return true
	})
	require.Equal([]string{"z", "m", "a"}, got)

	// Range stops when f returns false.
	got = got[:0]
	o.Range(func(name string, value Value) bool {
		got = append(got, name)
		return false
	})
	require.Equal([]string{"z"}, got)
}

func TestObjectEqual(t *testing.T) {
	require := require.New(t)

	ordered := NewOrderedObject()
	ordered.Set("a", Int(1))
	ordered.Set("b", Int(2))

	reversed := NewObject()
	reversed.Set("b", Int(2))
	reversed.Set("a", Int(1))

	// Member order and map mode do not participate in equality.
	require.True(ordered.Equal(reversed))
	require.True(reversed.Equal(ordered))

	reversed.Set("b", Int(3))
	require.False(ordered.Equal(reversed))

	var nilObj *Object
	require.True(nilObj.Equal(NewObject()))
	require.False(nilObj.Equal(ordered))
}

func TestObjectClone(t *testing.T) {
	require := require.New(t)

	o := NewOrderedObject()
	o.Set("a", Array(Int(1)))

	c := o.Clone()
	require.True(o.Equal(c))
	require.True(c.Ordered())

	o.Set("b", Int(2))
	require.False(o.Equal(c))
	require.Equal([]string{"a"}, c.Names())

	var nilObj *Object
	require.Nil(nilObj.Clone())
}
