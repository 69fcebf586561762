package shiftr

import (
	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/internal/strategy"
	"github.com/erraggy/jolt/internal/traversr"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

// rootKey names the synthetic level above the input and the output.
const rootKey = "root"

var rootPrefix = []traversr.Key{traversr.MapKey(rootKey)}

// Shiftr is a compiled shift spec.
type Shiftr struct {
	root *composite
}

// New compiles spec. Malformed keys or output paths are reported as
// *jolterrors.SpecError.
func New(spec *node.Object) (*Shiftr, error) {
	if spec == nil {
		return nil, jolterrors.NewSpecError("", "shift spec must be an object")
	}
	root, err := newComposite(pathelement.NewLiteral(rootKey), spec)
	if err != nil {
		return nil, err
	}
	return &Shiftr{root: root}, nil
}

// Transform returns a new document built from input. The result is nil
// when nothing matched.
func (s *Shiftr) Transform(input any) any {
	output := node.NewObject()
	wp := pathelement.NewWalkedPath(input, rootKey)
	s.root.Apply(rootKey, input, true, wp, output)
	v, _ := output.Get(rootKey)
	return v
}

type spec = strategy.Spec[*node.Object]

// composite is a spec entry whose value is an object of child entries.
type composite struct {
	matcher  pathelement.Matcher
	special  []spec
	children strategy.Children[*node.Object]
	strategy strategy.Strategy
}

func newComposite(m pathelement.Matcher, body *node.Object) (*composite, error) {
	c := &composite{matcher: m}
	var (
		literalKeys []string
		computed    []spec
		matchers    = make(map[spec]pathelement.Matcher)
	)
	for _, e := range body.Entries() {
		children, err := buildChildren(e.Key, e.Value)
		if err != nil {
			return nil, jolterrors.AtPath(err, e.Key)
		}
		for _, child := range children {
			switch cm := child.matcher.(type) {
			case *pathelement.Literal:
				literalKeys = append(literalKeys, cm.Key())
				c.children.AddLiteral(cm.Key(), child.spec)
			case *pathelement.ArrayIndex:
				literalKeys = append(literalKeys, cm.Key())
				c.children.AddLiteral(cm.Key(), child.spec)
			case *pathelement.At, *pathelement.Dollar, *pathelement.Hash, *pathelement.Transpose:
				c.special = append(c.special, child.spec)
			default:
				computed = append(computed, child.spec)
				matchers[child.spec] = cm
			}
		}
	}
	pathelement.SortBySpecificity(computed, func(s spec) pathelement.Matcher { return matchers[s] })
	c.children.SetComputed(computed)

	overlap := false
	for _, s := range computed {
		m := matchers[s]
		switch m.(type) {
		case *pathelement.Star, *pathelement.StarAll:
			for _, key := range literalKeys {
				if pathelement.CanMatchLiteral(m, key) {
					overlap = true
				}
			}
		default:
			overlap = true
		}
	}
	c.strategy = strategy.Select(c.children.HasLiterals(), c.children.HasComputed(), overlap, false)
	return c, nil
}

type builtChild struct {
	matcher pathelement.Matcher
	spec    spec
}

// buildChildren compiles one spec entry, producing a child per "|"
// alternative of the key.
func buildChildren(key string, value any) ([]builtChild, error) {
	matchers, err := pathelement.ParseKey(key)
	if err != nil {
		return nil, err
	}
	out := make([]builtChild, 0, len(matchers))
	for _, m := range matchers {
		var s spec
		if body, ok := value.(*node.Object); ok {
			s, err = buildComposite(key, m, body)
		} else {
			s, err = newLeaf(key, m, value)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, builtChild{matcher: m, spec: s})
	}
	return out, nil
}

func buildComposite(key string, m pathelement.Matcher, body *node.Object) (spec, error) {
	switch m.(type) {
	case *pathelement.At, *pathelement.Dollar, *pathelement.Hash:
		return nil, jolterrors.NewSpecError(key, "%s keys can not have child entries", m.Canonical())
	}
	if body.Len() == 0 {
		return nil, jolterrors.NewSpecError(key, "empty object is not a valid shift entry")
	}
	return newComposite(m, body)
}

// Apply matches key, descends into input, and records the match on the
// parent level.
func (c *composite) Apply(key string, input any, present bool, wp *pathelement.WalkedPath, output *node.Object) bool {
	m := c.matcher.Match(key, wp)
	if m == nil {
		return false
	}
	if t, ok := c.matcher.(*pathelement.Transpose); ok {
		v, found := t.Lookup(wp)
		if !found {
			return false
		}
		input, present = v, true
	}
	c.descend(key, input, present, m, wp, output)
	wp.Last().Match.IncrementHashCount()
	return true
}

func (c *composite) descend(key string, input any, present bool, m *pathelement.MatchedElement, wp *pathelement.WalkedPath, output *node.Object) {
	defer wp.Push(input, m)()
	for _, s := range c.special {
		s.Apply(key, input, present, wp, output)
	}
	strategy.Process(c.strategy, &c.children, input, wp, output)
}
