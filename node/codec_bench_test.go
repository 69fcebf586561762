package node

import (
	"strconv"
	"strings"
	"testing"
)

func benchDocument(items int) []byte {
	var b strings.Builder
	b.WriteString(`{"items": [`)
	for i := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`{"id": ` + strconv.Itoa(i) + `, "price": 9.5, "name": "item", "tags": ["a", "b"], "active": true}`)
	}
	b.WriteString(`]}`)
	return []byte(b.String())
}

func BenchmarkDecode(b *testing.B) {
	for _, n := range []int{10, 1000} {
		data := benchDocument(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Decode(data); err != nil {
					b.Fatalf("Decode: %v", err)
				}
			}
		})
	}
}

func BenchmarkMarshal(b *testing.B) {
	for _, n := range []int{10, 1000} {
		v, err := Decode(benchDocument(n))
		if err != nil {
			b.Fatalf("Decode: %v", err)
		}
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Marshal(v); err != nil {
					b.Fatalf("Marshal: %v", err)
				}
			}
		})
	}
}
