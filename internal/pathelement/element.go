package pathelement

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/erraggy/jolt/internal/traversr"
	"github.com/erraggy/jolt/node"
)

// Element is one parsed path element.
type Element interface {
	// Canonical returns a normalized rendering of the element.
	Canonical() string
	element()
}

// Matcher is an element that can be used as a spec key.
type Matcher interface {
	Element
	// Match reports the match of an input key, or nil when the key does
	// not belong to this element. Matching never changes wp.
	Match(key string, wp *WalkedPath) *MatchedElement
}

// Evaluator is an element that can appear in a write or read path.
type Evaluator interface {
	Element
	// Evaluate resolves the element to a key. The second result is false
	// when a reference cannot be resolved.
	Evaluate(wp *WalkedPath) (string, bool)
}

// Literal is a plain key.
type Literal struct {
	key string
}

// NewLiteral returns a literal element for key.
func NewLiteral(key string) *Literal { return &Literal{key: key} }

func (e *Literal) element() {}

// Canonical returns the key itself.
func (e *Literal) Canonical() string { return e.key }

// Key returns the literal key.
func (e *Literal) Key() string { return e.key }

// Match matches exactly the literal key.
func (e *Literal) Match(key string, _ *WalkedPath) *MatchedElement {
	if key != e.key {
		return nil
	}
	return NewMatchedElement(key)
}

// Evaluate always resolves to the key.
func (e *Literal) Evaluate(*WalkedPath) (string, bool) { return e.key, true }

// ArrayIndex is an explicit "[N]" key. It matches the decimal form of N.
type ArrayIndex struct {
	index int
	text  string
}

func (e *ArrayIndex) element() {}

// Canonical returns the bracketed form, e.g. "[2]".
func (e *ArrayIndex) Canonical() string { return "[" + e.text + "]" }

// Index returns the array index.
func (e *ArrayIndex) Index() int { return e.index }

// Key returns the index as it appears as a walk key.
func (e *ArrayIndex) Key() string { return e.text }

// Match matches the decimal walk key of the index, so "[2]" matches "2".
func (e *ArrayIndex) Match(key string, _ *WalkedPath) *MatchedElement {
	if key != e.text {
		return nil
	}
	return NewMatchedElement(key)
}

// StarAll is the bare "*" key, which matches any non-empty key.
type StarAll struct {
	// Array is set for the "[*]" form.
	Array bool
}

func (e *StarAll) element() {}

// Canonical returns "*" or "[*]".
func (e *StarAll) Canonical() string {
	if e.Array {
		return "[*]"
	}
	return "*"
}

// Match matches every key except "". The whole key is capture 0.
func (e *StarAll) Match(key string, _ *WalkedPath) *MatchedElement {
	if key == "" {
		return nil
	}
	return NewMatchedElement(key)
}

// Star is a wildcard pattern with literal text around one or more "*".
// Each wildcard captures at least one character; when several placements
// are possible the leftmost shortest capture wins.
type Star struct {
	canonical string
	parts     []string
}

func (e *Star) element() {}

// Canonical returns the pattern as written.
func (e *Star) Canonical() string { return e.canonical }

// Wildcards returns the number of "*" in the pattern.
func (e *Star) Wildcards() int { return len(e.parts) - 1 }

// LiteralLen returns the number of literal bytes in the pattern.
func (e *Star) LiteralLen() int {
	n := 0
	for _, p := range e.parts {
		n += len(p)
	}
	return n
}

// Match fits key to the pattern. Capture i holds the text of the i-th
// wildcard, counted from 1.
func (e *Star) Match(key string, _ *WalkedPath) *MatchedElement {
	if len(key) < e.LiteralLen()+e.Wildcards() {
		return nil
	}
	prefix := e.parts[0]
	if !strings.HasPrefix(key, prefix) {
		return nil
	}
	groups, ok := matchGaps(key[len(prefix):], e.parts[1:], make([]string, 0, e.Wildcards()))
	if !ok {
		return nil
	}
	return newCapturedElement(key, groups)
}

// matchGaps matches rest against gap parts[0] gap parts[1] ... where each
// gap is non-empty and the final part must end rest.
func matchGaps(rest string, parts []string, groups []string) ([]string, bool) {
	if len(parts) == 1 {
		suffix := parts[0]
		if len(rest) <= len(suffix) || !strings.HasSuffix(rest, suffix) {
			return nil, false
		}
		return append(groups, rest[:len(rest)-len(suffix)]), true
	}
	lit := parts[0]
	for i := 0; i < len(rest); {
		_, size := utf8.DecodeRuneInString(rest[i:])
		i += size
		if i+len(lit) > len(rest) {
			break
		}
		if rest[i:i+len(lit)] != lit {
			continue
		}
		if out, ok := matchGaps(rest[i+len(lit):], parts[1:], append(groups, rest[:i])); ok {
			return out, true
		}
	}
	return nil, false
}

// Ref points at capture Group of the match Up levels above the innermost
// frame.
type Ref struct {
	Up    int
	Group int
}

// Resolve returns the referenced capture.
func (r Ref) Resolve(wp *WalkedPath) (string, bool) {
	f, ok := wp.FromEnd(r.Up)
	if !ok || f.Match == nil {
		return "", false
	}
	return f.Match.Capture(r.Group)
}

func (r Ref) canonical(prefix byte) string {
	return string(prefix) + "(" + strconv.Itoa(r.Up) + "," + strconv.Itoa(r.Group) + ")"
}

type token struct {
	text  string
	ref   Ref
	isRef bool
}

// Reference is literal text mixed with "&" references. As a spec key it
// matches the input key equal to its evaluation.
type Reference struct {
	tokens []token
}

func (e *Reference) element() {}

// Canonical renders every reference in the "&(up,group)" form.
func (e *Reference) Canonical() string {
	var b strings.Builder
	for _, t := range e.tokens {
		if t.isRef {
			b.WriteString(t.ref.canonical('&'))
		} else {
			b.WriteString(t.text)
		}
	}
	return b.String()
}

// Evaluate substitutes each reference with its capture from wp. It fails
// when any reference points past the walked frames or their captures.
func (e *Reference) Evaluate(wp *WalkedPath) (string, bool) {
	var b strings.Builder
	for _, t := range e.tokens {
		if !t.isRef {
			b.WriteString(t.text)
			continue
		}
		s, ok := t.ref.Resolve(wp)
		if !ok {
			return "", false
		}
		b.WriteString(s)
	}
	return b.String(), true
}

// Match matches the input key equal to the evaluated reference.
func (e *Reference) Match(key string, wp *WalkedPath) *MatchedElement {
	evaluated, ok := e.Evaluate(wp)
	if !ok || evaluated != key {
		return nil
	}
	return NewMatchedElement(key)
}

// At is the "@" key. It stands for the input at the current level.
type At struct{}

func (e *At) element() {}

// Canonical returns "@".
func (e *At) Canonical() string { return "@" }

// Match returns the innermost match so that "&0" and "&1" below an "@"
// behave as they would for the parent.
func (e *At) Match(_ string, wp *WalkedPath) *MatchedElement {
	return wp.Last().Match
}

// Dollar emits a matched key as data.
type Dollar struct {
	ref Ref
}

func (e *Dollar) element() {}

// Canonical returns the "$(up,group)" form.
func (e *Dollar) Canonical() string { return e.ref.canonical('$') }

// Match yields the referenced capture as the matched text, or nil when the
// reference cannot be resolved.
func (e *Dollar) Match(_ string, wp *WalkedPath) *MatchedElement {
	s, ok := e.ref.Resolve(wp)
	if !ok {
		return nil
	}
	return NewMatchedElement(s)
}

// Hash emits fixed text as data.
type Hash struct {
	value string
}

func (e *Hash) element() {}

// Canonical returns "#" followed by the text.
func (e *Hash) Canonical() string { return "#" + e.value }

// Match always yields the fixed text.
func (e *Hash) Match(string, *WalkedPath) *MatchedElement {
	return NewMatchedElement(e.value)
}

// Transpose looks a value up in the input. Up selects the frame whose
// input is searched and the optional sub path selects a value inside it.
type Transpose struct {
	up   int
	path *ReadPath
}

func (e *Transpose) element() {}

// Canonical returns the "@(up)" or "@(up,path)" form.
func (e *Transpose) Canonical() string {
	if e.path == nil {
		return "@(" + strconv.Itoa(e.up) + ")"
	}
	return "@(" + strconv.Itoa(e.up) + "," + e.path.String() + ")"
}

// Match returns the innermost match; the transposed value is obtained with
// Lookup.
func (e *Transpose) Match(_ string, wp *WalkedPath) *MatchedElement {
	return wp.Last().Match
}

// Lookup returns the transposed value and whether it is present.
func (e *Transpose) Lookup(wp *WalkedPath) (any, bool) {
	f, ok := wp.FromEnd(e.up)
	if !ok {
		return nil, false
	}
	if e.path == nil {
		return f.TreeRef, true
	}
	return e.path.Read(f.TreeRef, wp)
}

// Evaluate renders the transposed value as a key. Only scalars can be
// keys.
func (e *Transpose) Evaluate(wp *WalkedPath) (string, bool) {
	v, ok := e.Lookup(wp)
	if !ok {
		return "", false
	}
	return node.KeyString(v)
}

type arrayKind int

const (
	arrayAppend arrayKind = iota
	arrayIndex
	arrayRef
	arrayHash
	arrayTranspose
)

// ArrayElement is a bracketed write path element: "[]", "[N]", "[&..]",
// "[#N]" or "[@..]".
type ArrayElement struct {
	kind      arrayKind
	index     string
	ref       *Reference
	hashUp    int
	transpose *Transpose
}

func (e *ArrayElement) element() {}

// Canonical returns the bracketed form; "[]" for append.
func (e *ArrayElement) Canonical() string {
	switch e.kind {
	case arrayIndex:
		return "[" + e.index + "]"
	case arrayRef:
		return "[" + e.ref.Canonical() + "]"
	case arrayHash:
		return "[#" + strconv.Itoa(e.hashUp) + "]"
	case arrayTranspose:
		return "[" + e.transpose.Canonical() + "]"
	}
	return traversr.Append
}

// IsAppend reports whether the element is "[]".
func (e *ArrayElement) IsAppend() bool { return e.kind == arrayAppend }

// Evaluate resolves the index key. Append resolves to "[]", and "[#N]"
// resolves to the match count of the frame N levels up.
func (e *ArrayElement) Evaluate(wp *WalkedPath) (string, bool) {
	switch e.kind {
	case arrayIndex:
		return e.index, true
	case arrayRef:
		return e.ref.Evaluate(wp)
	case arrayHash:
		f, ok := wp.FromEnd(e.hashUp)
		if !ok || f.Match == nil {
			return "", false
		}
		return strconv.Itoa(f.Match.HashCount()), true
	case arrayTranspose:
		return e.transpose.Evaluate(wp)
	}
	return traversr.Append, true
}
