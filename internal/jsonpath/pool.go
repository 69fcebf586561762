package jsonpath

import "sync"

// scratch recycles the slices a parse or a query step builds before its
// result is copied out. Buffers that grew past limit are left to the
// garbage collector.
type scratch[T any] struct {
	pool  sync.Pool
	limit int
}

func newScratch[T any](size, limit int) *scratch[T] {
	sc := &scratch[T]{limit: limit}
	sc.pool.New = func() any {
		buf := make([]T, 0, size)
		return &buf
	}
	return sc
}

func (sc *scratch[T]) borrow() *[]T {
	buf := sc.pool.Get().(*[]T)
	*buf = (*buf)[:0]
	return buf
}

// release zeroes buf first, so a pooled match buffer holds no node values.
func (sc *scratch[T]) release(buf *[]T) {
	if buf == nil || cap(*buf) > sc.limit {
		return
	}
	clear(*buf)
	sc.pool.Put(buf)
}

// detach returns a copy of buf that outlives its release.
func detach[T any](buf []T) []T {
	out := make([]T, len(buf))
	copy(out, buf)
	return out
}

var (
	segmentScratch = newScratch[Segment](8, 32)
	matchScratch   = newScratch[any](32, 256)
)
