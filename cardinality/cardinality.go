package cardinality

import (
	"fmt"

	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/internal/strategy"
	"github.com/erraggy/jolt/internal/traversr"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

const rootKey = "root"

// Relationship is the target shape of a matched value.
type Relationship int

const (
	// One reduces an array to its first element.
	One Relationship = iota
	// Many wraps a single value in an array.
	Many
)

// String returns "ONE" or "MANY".
func (r Relationship) String() string {
	switch r {
	case One:
		return "ONE"
	case Many:
		return "MANY"
	}
	return fmt.Sprintf("Relationship(%d)", int(r))
}

// ParseRelationship parses "ONE" or "MANY".
func ParseRelationship(s string) (Relationship, error) {
	switch s {
	case "ONE":
		return One, nil
	case "MANY":
		return Many, nil
	}
	return 0, fmt.Errorf("invalid cardinality %q, expected ONE or MANY", s)
}

// Cardinality is a compiled cardinality spec.
type Cardinality struct {
	root *composite
}

// New compiles spec.
func New(spec *node.Object) (*Cardinality, error) {
	if spec == nil {
		return nil, jolterrors.NewSpecError("", "cardinality spec must be an object")
	}
	root, err := newComposite(pathelement.NewLiteral(rootKey), spec)
	if err != nil {
		return nil, err
	}
	return &Cardinality{root: root}, nil
}

// Transform adjusts input in place and returns it. When the spec changes
// the shape of the document root the returned value replaces input.
func (c *Cardinality) Transform(input any) any {
	holder := node.ObjectOf(rootKey, input)
	wp := pathelement.NewWalkedPath(holder, "")
	c.root.Apply(rootKey, input, true, wp, struct{}{})
	v, _ := holder.Get(rootKey)
	return v
}

type spec = strategy.Spec[struct{}]

type composite struct {
	matcher  pathelement.Matcher
	self     *leaf
	children strategy.Children[struct{}]
}

func newComposite(m pathelement.Matcher, body *node.Object) (*composite, error) {
	if body.Len() == 0 {
		return nil, jolterrors.NewSpecError(m.Canonical(), "empty object is not a valid cardinality entry")
	}
	c := &composite{matcher: m}
	var (
		computed []spec
		matchers = make(map[spec]pathelement.Matcher)
	)
	for _, e := range body.Entries() {
		alternatives, err := pathelement.ParseKey(e.Key)
		if err != nil {
			return nil, jolterrors.AtPath(err, e.Key)
		}
		for _, am := range alternatives {
			child, err := newChild(e.Key, am, e.Value)
			if err != nil {
				return nil, jolterrors.AtPath(err, e.Key)
			}
			switch km := am.(type) {
			case *pathelement.At:
				c.self = child.(*leaf)
			case *pathelement.Literal:
				c.children.AddLiteral(km.Key(), child)
			case *pathelement.ArrayIndex:
				c.children.AddLiteral(km.Key(), child)
			default:
				computed = append(computed, child)
				matchers[child] = am
			}
		}
	}
	pathelement.SortBySpecificity(computed, func(s spec) pathelement.Matcher { return matchers[s] })
	c.children.SetComputed(computed)
	return c, nil
}

func newChild(key string, m pathelement.Matcher, value any) (spec, error) {
	switch m.(type) {
	case *pathelement.Dollar, *pathelement.Hash, *pathelement.Transpose:
		return nil, jolterrors.NewSpecError(key, "%s keys are not supported by cardinality", m.Canonical())
	}
	switch v := value.(type) {
	case *node.Object:
		if _, ok := m.(*pathelement.At); ok {
			return nil, jolterrors.NewSpecError(key, "@ must be ONE or MANY")
		}
		return newComposite(m, v)
	case string:
		rel, err := ParseRelationship(v)
		if err != nil {
			return nil, &jolterrors.SpecError{Key: key, Message: "bad cardinality", Cause: err}
		}
		return &leaf{matcher: m, relationship: rel}, nil
	}
	return nil, jolterrors.NewSpecError(key, "cardinality entries must be ONE, MANY, or an object, got %s", node.KindOf(value))
}

func (c *composite) Apply(key string, input any, present bool, wp *pathelement.WalkedPath, env struct{}) bool {
	m := c.matcher.Match(key, wp)
	if m == nil {
		return false
	}
	if !present {
		return true
	}
	if c.self != nil {
		if v, changed := c.self.adjust(key, input, wp.Last().TreeRef, m, wp); changed {
			input = v
		}
	}
	c.descend(input, m, wp, env)
	return true
}

func (c *composite) descend(input any, m *pathelement.MatchedElement, wp *pathelement.WalkedPath, env struct{}) {
	defer wp.Push(input, m)()
	switch input.(type) {
	case *node.Object, *node.Array:
		strategy.Process(strategy.Conflict, &c.children, input, wp, env)
	}
}

type leaf struct {
	matcher      pathelement.Matcher
	relationship Relationship
}

func (l *leaf) Apply(key string, input any, present bool, wp *pathelement.WalkedPath, _ struct{}) bool {
	m := l.matcher.Match(key, wp)
	if m == nil {
		return false
	}
	if present {
		l.adjust(key, input, wp.Last().TreeRef, m, wp)
	}
	return true
}

// adjust rewrites the slot key of parent and reports the value now stored
// there. The second result is false when input already had the requested
// shape.
func (l *leaf) adjust(key string, input, parent any, m *pathelement.MatchedElement, wp *pathelement.WalkedPath) (any, bool) {
	defer wp.Push(input, m)()

	var v any
	switch l.relationship {
	case Many:
		switch in := input.(type) {
		case *node.Array:
			return in, false
		case nil:
			v = node.NewArray()
		default:
			v = node.NewArray(in)
		}
	case One:
		arr, ok := input.(*node.Array)
		if !ok {
			return input, false
		}
		if arr.Len() > 0 {
			v, _ = arr.RemoveAt(0)
		}
	}
	slot := traversr.MapKey(key)
	if _, ok := parent.(*node.Array); ok {
		slot = traversr.IndexKey(key)
	}
	traversr.Set(parent, []traversr.Key{slot}, v, traversr.Simple)
	return v, true
}
