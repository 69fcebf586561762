// Package modifier implements the modify transforms, which write values
// into an input document in place.
//
// Three modes share one spec language and differ only in when a write is
// allowed:
//
//	Overwrite  always writes
//	Default    writes when the key is missing or null
//	Define     writes when the key is missing
//
// A single key can switch mode with a prefix: "+key" overwrites, "~key"
// defaults and "_key" defines, whatever the mode of the transform.
//
// The spec mirrors the input. Nested objects are walked and created when
// missing (if the mode allows it); leaf values say what to write:
//
//	"key": 5                  a literal value
//	"key": "=toUpper"         a function applied to the current value
//	"key": "=concat(@(1,first),' ',@(1,last))"
//	                          a function applied to arguments
//	"key": "@(1,other)"       a value looked up in the input
//	"key": "^settings.tz"     a value looked up in the context document
//	"key": ["=toInteger", 0]  the first of several choices that yields a value
//
// Function arguments are lookups ("@..." or "^..."), quoted strings,
// true/false, numbers, or bare text; an empty argument is null. When a
// function yields nothing, or a lookup finds nothing, no write happens.
//
// Keys of a nested object decide the container it stands for: numeric keys
// ("0" or "[0]") and "[*]" expect an array, which is extended with nulls to
// reach the highest index named; other literal keys expect an object. A
// level with only wildcards accepts either, but is skipped when the value
// is missing, null, or not a container.
//
// A built [Modifier] is immutable and safe for concurrent use.
package modifier
