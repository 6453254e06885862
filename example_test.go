// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v8json_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/open-flash/v8json"
)

// Numbers are rendered exactly as V8's JSON.stringify renders them:
// shortest round-tripping digits, positional notation within [1e-6, 1e21),
// and exponential notation outside it.
func ExampleFormatDouble() {
	for _, f := range []float64{0.1, 1.0 / 3.0, 1e20, 1e21, 0.000001, 0.0000001} {
		s, err := v8json.FormatDouble(f)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s)
	}

	// Output:
	// 0.1
	// 0.3333333333333333
	// 100000000000000000000
	// 1e+21
	// 0.000001
	// 1e-7
}

func ExampleMarshal() {
	obj := v8json.NewOrderedObject()
	obj.Set("name", v8json.String("sensor-1"))
	obj.Set("count", v8json.Int(42))
	tenth := 0.1 // runtime sum, not the constant-folded 0.3
	reading, err := v8json.Float(tenth + 0.2)
	if err != nil {
		log.Fatal(err)
	}
	obj.Set("reading", reading)

	b, err := v8json.Marshal(v8json.ObjectValue(obj))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(b))

	// Output:
	// {"name":"sensor-1","count":42,"reading":0.30000000000000004}
}

func ExampleUnmarshal() {
	v, err := v8json.Unmarshal([]byte(`{"id":9223372036854775807,"tags":["a","b"]}`))
	if err != nil {
		log.Fatal(err)
	}

	idv, _ := v.Object().Get("id")
	id, _ := idv.Number().Int64()
	fmt.Println(id)

	// Output:
	// 9223372036854775807
}

// OrderedObjects preserves the document order of object members through a
// decode/encode round trip.
func ExampleOrderedObjects() {
	const in = `{"z":1,"a":2,"m":3}`
	v, err := v8json.Unmarshal([]byte(in), v8json.OrderedObjects(true))
	if err != nil {
		log.Fatal(err)
	}
	out, err := v8json.Marshal(v)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out) == in)

	// Output:
	// true
}

// A raw span captured during decoding re-embeds into new output verbatim,
// whitespace and number spelling included.
func ExampleDecoder_ReadRaw() {
	dec := v8json.NewDecoder(strings.NewReader(`{"pi": 3.14000}`))
	raw, err := dec.ReadRaw()
	if err != nil {
		log.Fatal(err)
	}

	out, err := v8json.Marshal(v8json.Array(v8json.String("wrapped"), v8json.Raw(raw)))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))

	// Output:
	// ["wrapped",{"pi": 3.14000}]
}

func ExampleRawValue_Indent() {
	v := v8json.RawValue(`{"a":[1,2]}`)
	if err := v.Indent("", "  "); err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)

	// Output:
	// {
	//   "a": [
	//     1,
	//     2
	//   ]
	// }
}
