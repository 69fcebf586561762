package jsonpath

import (
	"github.com/erraggy/jolt/node"
)

// Get evaluates the path against doc and returns every matching value in
// document order. The values are shared with doc, not copied. Returns nil
// when nothing matches.
func (p *Path) Get(doc any) []any {
	current := []any{doc}
	for _, seg := range p.segments {
		current = applySegment(current, seg)
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

// First returns the first value matched by the path.
func (p *Path) First(doc any) (any, bool) {
	matches := p.Get(doc)
	if len(matches) == 0 {
		return nil, false
	}
	return matches[0], true
}

// Query parses expr and evaluates it against doc. A single match is
// returned as-is; several matches are collected into an array; no match
// returns nil.
func Query(expr string, doc any) (any, error) {
	p, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	matches := p.Get(doc)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return node.NewArray(matches...), nil
	}
}

func applySegment(current []any, seg Segment) []any {
	buf := matchScratch.borrow()
	defer matchScratch.release(buf)

	for _, v := range current {
		selectInto(buf, v, seg)
	}
	if len(*buf) == 0 {
		return nil
	}
	return detach(*buf)
}

func selectInto(results *[]any, v any, seg Segment) {
	switch s := seg.(type) {
	case ChildSegment:
		if obj, ok := v.(*node.Object); ok {
			if val, exists := obj.Get(s.Key); exists {
				*results = append(*results, val)
			}
		}

	case WildcardSegment:
		switch t := v.(type) {
		case *node.Object:
			for _, e := range t.Entries() {
				*results = append(*results, e.Value)
			}
		case *node.Array:
			*results = append(*results, t.Items()...)
		}

	case IndexSegment:
		if arr, ok := v.(*node.Array); ok {
			idx := s.Index
			if idx < 0 {
				idx += arr.Len()
			}
			if val, exists := arr.Get(idx); exists {
				*results = append(*results, val)
			}
		}

	case FilterSegment:
		switch t := v.(type) {
		case *node.Object:
			for _, e := range t.Entries() {
				if s.Expr.Match(e.Value) {
					*results = append(*results, e.Value)
				}
			}
		case *node.Array:
			for _, item := range t.Items() {
				if s.Expr.Match(item) {
					*results = append(*results, item)
				}
			}
		}

	case RecursiveSegment:
		descend(results, v, s.Child)
	}
}

// descend applies child at v and then at every descendant of v, depth first.
func descend(results *[]any, v any, child Segment) {
	selectInto(results, v, child)
	switch t := v.(type) {
	case *node.Object:
		for _, e := range t.Entries() {
			descend(results, e.Value, child)
		}
	case *node.Array:
		for _, item := range t.Items() {
			descend(results, item, child)
		}
	}
}
