package pathelement

import "sort"

func specificityRank(m Matcher) int {
	switch m.(type) {
	case *Reference:
		return 0
	case *Star:
		return 1
	case *StarAll:
		return 3
	}
	return 2
}

// LessSpecific reports whether a should be tried before b among the
// computed children of one spec level: references first, then wildcard
// patterns with more literal text and fewer wildcards, and bare "*" last.
func LessSpecific(a, b Matcher) bool {
	ra, rb := specificityRank(a), specificityRank(b)
	if ra != rb {
		return ra < rb
	}
	sa, aok := a.(*Star)
	sb, bok := b.(*Star)
	if aok && bok {
		if la, lb := sa.LiteralLen(), sb.LiteralLen(); la != lb {
			return la > lb
		}
		if wa, wb := sa.Wildcards(), sb.Wildcards(); wa != wb {
			return wa < wb
		}
	}
	return a.Canonical() < b.Canonical()
}

// SortBySpecificity orders items in place using the matcher returned by key.
func SortBySpecificity[T any](items []T, key func(T) Matcher) {
	sort.SliceStable(items, func(i, j int) bool {
		return LessSpecific(key(items[i]), key(items[j]))
	})
}

// CanMatchLiteral reports whether m would match the literal key.
func CanMatchLiteral(m Matcher, key string) bool {
	switch m.(type) {
	case *Star, *StarAll:
		return m.Match(key, nil) != nil
	}
	return false
}
