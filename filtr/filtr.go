package filtr

import (
	"slices"
	"strconv"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/internal/strategy"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

const rootKey = "root"

// DefaultMatchTimeout bounds a single regular expression match. A match
// that runs longer counts as no match.
const DefaultMatchTimeout = time.Second

// Filtr is a compiled filter spec.
type Filtr struct {
	root *composite
}

// Option configures a Filtr.
type Option func(*buildConfig) error

type buildConfig struct {
	matchTimeout time.Duration
}

// WithMatchTimeout sets the time limit of each regular expression match.
func WithMatchTimeout(d time.Duration) Option {
	return func(cfg *buildConfig) error {
		if d <= 0 {
			return &jolterrors.ConfigError{Option: "WithMatchTimeout", Value: d, Message: "match timeout must be positive"}
		}
		cfg.matchTimeout = d
		return nil
	}
}

// New compiles spec. Invalid regular expressions are reported as
// *jolterrors.SpecError.
func New(spec *node.Object, opts ...Option) (*Filtr, error) {
	cfg := &buildConfig{matchTimeout: DefaultMatchTimeout}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if spec == nil {
		return nil, jolterrors.NewSpecError("", "filter spec must be an object")
	}
	root, err := newComposite(pathelement.NewLiteral(rootKey), spec, cfg)
	if err != nil {
		return nil, err
	}
	return &Filtr{root: root}, nil
}

// Transform removes matching values from input and returns it. The result
// is nil when the document root itself matched.
func (f *Filtr) Transform(input any) any {
	holder := node.ObjectOf(rootKey, input)
	wp := pathelement.NewWalkedPath(holder, "")
	f.root.Apply(rootKey, input, true, wp, &removals{})
	v, _ := holder.Get(rootKey)
	return v
}

// removals collects array slots to delete once the walk of their array is
// done, so indexes stay valid while siblings are visited.
type removals struct {
	pending map[*node.Array][]int
}

func (r *removals) remove(parent any, key string) {
	switch p := parent.(type) {
	case *node.Object:
		p.Delete(key)
	case *node.Array:
		idx, err := strconv.Atoi(key)
		if err != nil {
			return
		}
		if r.pending == nil {
			r.pending = make(map[*node.Array][]int)
		}
		r.pending[p] = append(r.pending[p], idx)
	}
}

func (r *removals) flush(arr *node.Array) {
	idxs := r.pending[arr]
	if len(idxs) == 0 {
		return
	}
	delete(r.pending, arr)
	slices.Sort(idxs)
	for i := len(idxs) - 1; i >= 0; i-- {
		arr.RemoveAt(idxs[i])
	}
}

type spec = strategy.Spec[*removals]

type composite struct {
	matcher  pathelement.Matcher
	filters  predicate
	children strategy.Children[*removals]
}

func newComposite(m pathelement.Matcher, body *node.Object, cfg *buildConfig) (*composite, error) {
	if body.Len() == 0 {
		return nil, jolterrors.NewSpecError(m.Canonical(), "empty object is not a valid filter entry")
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
			if _, ok := am.(*pathelement.At); ok {
				p, err := newPredicate(e.Value, cfg.matchTimeout)
				if err != nil {
					return nil, jolterrors.AtPath(err, e.Key)
				}
				c.filters = p
				continue
			}
			child, err := newChild(e.Key, am, e.Value, cfg)
			if err != nil {
				return nil, jolterrors.AtPath(err, e.Key)
			}
			switch km := am.(type) {
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

func newChild(key string, m pathelement.Matcher, value any, cfg *buildConfig) (spec, error) {
	switch m.(type) {
	case *pathelement.Dollar, *pathelement.Hash, *pathelement.Transpose:
		return nil, jolterrors.NewSpecError(key, "%s keys are not supported by filter", m.Canonical())
	}
	body, ok := value.(*node.Object)
	if !ok {
		return nil, jolterrors.NewSpecError(key, "filter entries must be objects, got %s", node.KindOf(value))
	}
	return newComposite(m, body, cfg)
}

// Apply removes input from its parent when the filters match, and
// otherwise walks into it.
func (c *composite) Apply(key string, input any, present bool, wp *pathelement.WalkedPath, r *removals) bool {
	m := c.matcher.Match(key, wp)
	if m == nil {
		return false
	}
	if !present {
		return true
	}
	if c.filters.matches(input) {
		r.remove(wp.Last().TreeRef, key)
		return true
	}
	c.descend(input, m, wp, r)
	return true
}

func (c *composite) descend(input any, m *pathelement.MatchedElement, wp *pathelement.WalkedPath, r *removals) {
	defer wp.Push(input, m)()
	switch in := input.(type) {
	case *node.Object:
		strategy.Process(strategy.Conflict, &c.children, in, wp, r)
	case *node.Array:
		strategy.Process(strategy.Conflict, &c.children, in, wp, r)
		r.flush(in)
	}
}

// valueFilter tests one value.
type valueFilter interface {
	match(v any) bool
}

type regexFilter struct {
	re *regexp2.Regexp
}

func (f regexFilter) match(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	// A timed out match reports an error.
	matched, err := f.re.MatchString(s)
	return err == nil && matched
}

type equalFilter struct {
	want any
}

func (f equalFilter) match(v any) bool {
	return node.Equal(f.want, v)
}

type keyedFilter struct {
	key    string
	filter valueFilter
}

// predicate is the filter set of an "@" entry. A nil predicate never
// matches.
type predicate []keyedFilter

func newPredicate(value any, timeout time.Duration) (predicate, error) {
	obj, ok := value.(*node.Object)
	if !ok {
		return nil, jolterrors.NewSpecError("@", "filters must be an object, got %s", node.KindOf(value))
	}
	p := make(predicate, 0, obj.Len())
	for _, e := range obj.Entries() {
		var f valueFilter = equalFilter{want: e.Value}
		if pattern, ok := e.Value.(string); ok {
			re, err := regexp2.Compile(pattern, regexp2.None)
			if err != nil {
				return nil, &jolterrors.SpecError{Path: e.Key, Key: pattern, Message: "invalid regular expression", Cause: err}
			}
			re.MatchTimeout = timeout
			f = regexFilter{re: re}
		}
		p = append(p, keyedFilter{key: e.Key, filter: f})
	}
	return p, nil
}

func (p predicate) matches(v any) bool {
	switch t := v.(type) {
	case *node.Array:
		for _, f := range p {
			idx, err := strconv.Atoi(f.key)
			if err != nil || idx < 0 || idx >= t.Len() {
				continue
			}
			if item, _ := t.Get(idx); f.filter.match(item) {
				return true
			}
		}
	case *node.Object:
		for _, f := range p {
			if item, ok := t.Get(f.key); ok && f.filter.match(item) {
				return true
			}
		}
	default:
		for _, f := range p {
			if f.filter.match(v) {
				return true
			}
		}
	}
	return false
}
