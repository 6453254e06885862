// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json

import "slices"

// Object represents the members of a JSON object.
//
// Lookups are backed by a map in either mode. An ordered object
// additionally records insertion order for iteration and encoding, at the
// cost of an extra name slice and linear-time [Object.Delete]; an unordered
// object iterates in Go map order, which varies between runs.
// [Unmarshal] produces unordered objects unless [OrderedObjects] is set.
//
// The zero Object is an empty unordered object ready for use.
// An Object is not safe for concurrent mutation.
type Object struct {
	members map[string]Value
	names   []string // insertion order; nil unless ordered
	ordered bool
}

// NewObject constructs an empty unordered object.
func NewObject() *Object {
	return &Object{}
}

// NewOrderedObject constructs an empty object that preserves insertion
// order.
func NewOrderedObject() *Object {
	return &Object{ordered: true}
}

// Ordered reports whether the object preserves insertion order.
func (o *Object) Ordered() bool {
	return o != nil && o.ordered
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Get returns the value of the member with the given name and
// reports whether it is present.
func (o *Object) Get(name string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.members[name]
	return v, ok
}

// Has reports whether a member with the given name is present.
func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Set stores the value under the given name. Setting an existing name
// replaces its value; in an ordered object the member keeps its original
// position, matching how ECMAScript objects treat property re-assignment.
func (o *Object) Set(name string, value Value) {
	if o.members == nil {
		o.members = make(map[string]Value)
	}
	if _, ok := o.members[name]; !ok && o.ordered {
		o.names = append(o.names, name)
	}
	o.members[name] = value
}

// Delete removes the member with the given name, if present.
func (o *Object) Delete(name string) {
	if o == nil {
		return
	}
	if _, ok := o.members[name]; !ok {
		return
	}
	delete(o.members, name)
	if o.ordered {
		if i := slices.Index(o.names, name); i >= 0 {
			o.names = slices.Delete(o.names, i, i+1)
		}
	}
}

// Names returns a snapshot of the member names in iteration order:
// insertion order for ordered objects, unspecified order otherwise.
func (o *Object) Names() []string {
	if o == nil {
		return nil
	}
	if o.ordered {
		return slices.Clone(o.names)
	}
	names := make([]string, 0, len(o.members))
	for name := range o.members {
		names = append(names, name)
	}
	return names
}

// Range calls f for each member in iteration order until f returns false.
// f must not mutate the object.
func (o *Object) Range(f func(name string, value Value) bool) {
	if o == nil {
		return
	}
	if o.ordered {
		for _, name := range o.names {
			if !f(name, o.members[name]) {
				return
			}
		}
		return
	}
	for name, value := range o.members {
		if !f(name, value) {
			return
		}
	}
}

// Equal reports whether two objects hold the same name set with equal
// values, per RFC 8259. Member order and map mode do not participate,
// so an ordered object can equal an unordered one.
func (o *Object) Equal(p *Object) bool {
	if o.Len() != p.Len() {
		return false
	}
	if o == nil || p == nil {
		return true
	}
	for name, value := range o.members {
		pv, ok := p.members[name]
		if !ok || !value.Equal(pv) {
			return false
		}
	}
	return true
}

// Clone makes a deep copy of the object and its values.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	p := &Object{ordered: o.ordered, names: slices.Clone(o.names)}
	if o.members != nil {
		p.members = make(map[string]Value, len(o.members))
		for name, value := range o.members {
			p.members[name] = value.Clone()
		}
	}
	return p
}
