package strategy

import (
	"strconv"
	"testing"

	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/node"
)

// counter counts matched keys without retaining them.
type counter struct {
	n int
}

type countingSpec struct {
	matcher pathelement.Matcher
}

func (s *countingSpec) Apply(key string, _ any, _ bool, wp *pathelement.WalkedPath, c *counter) bool {
	if s.matcher.Match(key, wp) == nil {
		return false
	}
	c.n++
	return true
}

func wideObject(size int) *node.Object {
	obj := node.NewObject()
	for i := range size {
		obj.Set("key"+strconv.Itoa(i), int64(i))
	}
	return obj
}

// BenchmarkProcess compares the literal lookup of AvailableLiterals with the
// full input scan of Conflict when a spec names only a few keys of a wide
// object.
func BenchmarkProcess(b *testing.B) {
	c := &Children[*counter]{}
	for _, key := range []string{"key1", "key500", "key9999"} {
		c.AddLiteral(key, &countingSpec{matcher: pathelement.NewLiteral(key)})
	}

	for _, size := range []int{100, 10000} {
		input := wideObject(size)
		for _, s := range []Strategy{AvailableLiterals, Conflict} {
			b.Run(s.String()+"/"+strconv.Itoa(size), func(b *testing.B) {
				wp := pathelement.NewWalkedPath(input, "root")
				b.ReportAllocs()
				for b.Loop() {
					Process(s, c, input, wp, &counter{})
				}
			})
		}
	}
}
