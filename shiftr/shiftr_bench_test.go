package shiftr

import (
	"strconv"
	"testing"

	"github.com/erraggy/jolt/node"
)

func wideDocument(size int) *node.Object {
	items := node.NewObject()
	for i := range size {
		items.Set("item"+strconv.Itoa(i), node.ObjectOf("value", int64(i)))
	}
	return node.ObjectOf("items", items)
}

// BenchmarkTransform runs specs that pick a few keys out of a wide input,
// with and without a wildcard sibling forcing a scan of every key.
func BenchmarkTransform(b *testing.B) {
	specs := []struct {
		name string
		spec string
	}{
		{"FewLiterals", `{"items": {"item1": {"value": "first"}, "item500": {"value": "middle"}}}`},
		{"LiteralsAndWildcard", `{"items": {"item1": {"value": "first"}, "item*": {"value": "rest[]"}}}`},
	}

	for _, size := range []int{100, 10000} {
		input := wideDocument(size)
		for _, tt := range specs {
			s, err := New(node.MustDecode(tt.spec).(*node.Object))
			if err != nil {
				b.Fatalf("New: %v", err)
			}
			b.Run(tt.name+"/"+strconv.Itoa(size), func(b *testing.B) {
				b.ReportAllocs()
				for b.Loop() {
					_ = s.Transform(input)
				}
			})
		}
	}
}
