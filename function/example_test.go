package function_test

import (
	"fmt"

	"github.com/erraggy/jolt/function"
)

func ExampleDefault() {
	upper, _ := function.Default().Lookup("toUpper")
	fmt.Println(upper.Apply("ada"))
	// Output: ADA true
}

func ExampleRegistry_Register() {
	r := function.NewRegistry()
	_ = r.Register("greet", function.Func(func(args ...any) (any, bool) {
		if len(args) != 1 {
			return nil, false
		}
		return fmt.Sprintf("hello %v", args[0]), true
	}))

	f, _ := r.Lookup("greet")
	fmt.Println(f.Apply("world"))
	fmt.Println(r.Names())
	// Output:
	// hello world true
	// [greet]
}
