package node_test

import (
	"fmt"
	"log"

	"github.com/erraggy/jolt/node"
)

// ExampleDecode shows that key order and the integer/float distinction
// survive a round trip.
func ExampleDecode() {
	v, err := node.Decode([]byte(`{"b": 1, "a": 1.0, "c": [true, null]}`))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(node.KindOf(v))
	data, _ := node.Marshal(v)
	fmt.Println(string(data))
	// Output:
	// object
	// {"b":1,"a":1.0,"c":[true,null]}
}

func ExampleEqual() {
	a := node.MustDecode(`{"x": 1, "y": 2}`)
	b := node.MustDecode(`{"y": 2, "x": 1}`)
	c := node.MustDecode(`{"x": 1.0, "y": 2}`)
	fmt.Println(node.Equal(a, b), node.Equal(a, c))
	// Output: true false
}
