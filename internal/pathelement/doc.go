// Package pathelement parses and evaluates the key language used by
// transform specs.
//
// Spec keys (the left-hand side of a spec entry) are parsed by [ParseKey]
// into [Matcher]s that decide whether an input key belongs to a spec
// child. Write paths (the right-hand side of a shift entry) are parsed by
// [ParseWritePath] into a [WritePath] whose elements are resolved against
// the [WalkedPath] of the current walk and then written through
// internal/traversr.
//
// Key forms:
//
//	name        literal key
//	*           any non-empty key
//	a*-*        wildcard pattern; each * captures one or more characters
//	[3]         array index literal
//	&, &1, &(1,2)
//	            reference to a key (or capture) matched higher up the walk
//	@, @1, @(2,a.b)
//	            transpose: a value looked up in the input
//	$, $1, $(1,2)
//	            emit the matched key as data
//	#text       emit text as data
//	a|b         alternatives sharing one right-hand side
//
// A backslash escapes the character that follows it.
package pathelement
