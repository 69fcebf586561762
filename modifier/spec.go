package modifier

import (
	"github.com/erraggy/jolt/function"
	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/internal/strategy"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

type spec = strategy.Spec[*node.Object]

type builder struct {
	mode      OpMode
	functions *function.Registry
}

// splitKey strips a mode prefix from key.
func (b *builder) splitKey(key string) (string, OpMode) {
	if len(key) > 1 {
		if mode, ok := opModeFromPrefix(key[0]); ok {
			return key[1:], mode
		}
	}
	return key, b.mode
}

type composite struct {
	matcher  pathelement.Matcher
	mode     OpMode
	dataType dataType
	children strategy.Children[*node.Object]
	strategy strategy.Strategy
}

func (b *builder) composite(m pathelement.Matcher, mode OpMode, body *node.Object) (*composite, error) {
	c := &composite{matcher: m, mode: mode}
	var (
		computed []spec
		matchers = make(map[spec]pathelement.Matcher)
		listKey  string
		mapKey   string
		maxIndex = -1
	)
	for _, e := range body.Entries() {
		key, childMode := b.splitKey(e.Key)
		alternatives, err := pathelement.ParseKey(key)
		if err != nil {
			return nil, jolterrors.AtPath(err, e.Key)
		}
		for _, am := range alternatives {
			child, err := b.child(key, am, childMode, e.Value)
			if err != nil {
				return nil, jolterrors.AtPath(err, e.Key)
			}
			switch km := am.(type) {
			case *pathelement.Literal:
				if idx, ok := listIndex(km.Key()); ok {
					listKey, maxIndex = e.Key, max(maxIndex, idx)
				} else {
					mapKey = e.Key
				}
				c.children.AddLiteral(km.Key(), child)
			case *pathelement.ArrayIndex:
				listKey, maxIndex = e.Key, max(maxIndex, km.Index())
				c.children.AddLiteral(km.Key(), child)
			case *pathelement.StarAll:
				if km.Array {
					listKey = e.Key
				}
				computed = append(computed, child)
				matchers[child] = am
			default:
				computed = append(computed, child)
				matchers[child] = am
			}
		}
	}
	switch {
	case listKey != "" && mapKey != "":
		return nil, jolterrors.NewSpecError(m.Canonical(), "keys %q and %q mix array and object entries", listKey, mapKey)
	case listKey != "":
		c.dataType = dataType{kind: listData, maxIndex: maxIndex}
	case mapKey != "":
		c.dataType = dataType{kind: mapData}
	}
	pathelement.SortBySpecificity(computed, func(s spec) pathelement.Matcher { return matchers[s] })
	c.children.SetComputed(computed)
	c.strategy = strategy.Select(c.children.HasLiterals(), c.children.HasComputed(), false, true)
	return c, nil
}

func (b *builder) child(key string, m pathelement.Matcher, mode OpMode, value any) (spec, error) {
	switch m.(type) {
	case *pathelement.At, *pathelement.Dollar, *pathelement.Hash, *pathelement.Transpose:
		return nil, jolterrors.NewSpecError(key, "%s keys are not supported by modify", m.Canonical())
	}
	if body, ok := value.(*node.Object); ok {
		return b.composite(m, mode, body)
	}
	return b.leaf(key, m, mode, value)
}

// listIndex reports whether key is a plain array index.
func listIndex(key string) (int, bool) {
	if key == "" || len(key) > 9 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
		n = n*10 + int(key[i]-'0')
	}
	return n, true
}

// Apply walks input, creating it in the parent when it is missing or null
// and the mode allows.
func (c *composite) Apply(key string, input any, present bool, wp *pathelement.WalkedPath, ctx *node.Object) bool {
	m := c.matcher.Match(key, wp)
	if m == nil {
		return false
	}
	if !present {
		input = nil
	}
	if !c.dataType.compatible(input) {
		return true
	}
	if input == nil {
		parent := wp.Last()
		if !applicable(parent, key, c.mode) {
			return true
		}
		input = c.dataType.newValue()
		store(parent, key, input)
	}
	c.descend(input, m, wp, ctx)
	return true
}

func (c *composite) descend(input any, m *pathelement.MatchedElement, wp *pathelement.WalkedPath, ctx *node.Object) {
	if arr, ok := input.(*node.Array); ok {
		defer wp.PushList(input, m, c.dataType.expand(arr))()
	} else {
		defer wp.Push(input, m)()
	}
	strategy.Process(c.strategy, &c.children, input, wp, ctx)
}

type leaf struct {
	matcher    pathelement.Matcher
	mode       OpMode
	evaluators []evaluator
}

func (b *builder) leaf(key string, m pathelement.Matcher, mode OpMode, value any) (*leaf, error) {
	l := &leaf{matcher: m, mode: mode}
	choices := []any{value}
	if arr, ok := value.(*node.Array); ok {
		choices = arr.Items()
	}
	for _, choice := range choices {
		e, err := b.evaluator(key, choice)
		if err != nil {
			return nil, err
		}
		l.evaluators = append(l.evaluators, e)
	}
	return l, nil
}

// Apply writes the first value the leaf can produce, if the mode allows.
func (l *leaf) Apply(key string, input any, present bool, wp *pathelement.WalkedPath, ctx *node.Object) bool {
	m := l.matcher.Match(key, wp)
	if m == nil {
		return false
	}
	parent := wp.Last()
	if !applicable(parent, key, l.mode) {
		return true
	}
	if v, ok := l.evaluate(input, present, m, wp, ctx); ok {
		store(parent, key, node.Clone(v))
	}
	return true
}

func (l *leaf) evaluate(input any, present bool, m *pathelement.MatchedElement, wp *pathelement.WalkedPath, ctx *node.Object) (any, bool) {
	defer wp.Push(input, m)()
	for _, e := range l.evaluators {
		if v, ok := e.evaluate(input, present, wp, ctx); ok {
			return v, true
		}
	}
	return nil, false
}
