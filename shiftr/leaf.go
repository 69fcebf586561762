package shiftr

import (
	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/internal/traversr"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

// leaf is a spec entry whose value names output paths.
type leaf struct {
	matcher pathelement.Matcher
	writers []*pathelement.WritePath
}

// newLeaf accepts a single output path, an array of output paths, or null,
// which matches without writing anything.
func newLeaf(key string, m pathelement.Matcher, value any) (*leaf, error) {
	l := &leaf{matcher: m}
	switch v := value.(type) {
	case nil:
	case string:
		w, err := pathelement.ParseWritePath(v)
		if err != nil {
			return nil, err
		}
		l.writers = append(l.writers, w)
	case *node.Array:
		for _, item := range v.Items() {
			s, ok := item.(string)
			if !ok {
				return nil, jolterrors.NewSpecError(key, "output paths must be strings, got %s", node.KindOf(item))
			}
			w, err := pathelement.ParseWritePath(s)
			if err != nil {
				return nil, err
			}
			l.writers = append(l.writers, w)
		}
	default:
		return nil, jolterrors.NewSpecError(key, "a shift entry must be an object, an output path, or a list of output paths, got %s", node.KindOf(value))
	}
	return l, nil
}

func (l *leaf) Apply(key string, input any, _ bool, wp *pathelement.WalkedPath, output *node.Object) bool {
	m := l.matcher.Match(key, wp)
	if m == nil {
		return false
	}
	data := input
	realChild := false
	switch e := l.matcher.(type) {
	case *pathelement.Dollar, *pathelement.Hash:
		data = m.RawKey()
	case *pathelement.At:
	case *pathelement.Transpose:
		v, found := e.Lookup(wp)
		if !found {
			return false
		}
		data = v
	default:
		realChild = true
	}
	l.write(input, data, m, wp, output)
	if realChild {
		wp.Last().Match.IncrementHashCount()
	}
	return true
}

// write stores a copy of data at every output path, so later writes that
// collect into arrays never reach back into the input.
func (l *leaf) write(input, data any, m *pathelement.MatchedElement, wp *pathelement.WalkedPath, output *node.Object) {
	defer wp.Push(input, m)()
	for _, w := range l.writers {
		w.Write(output, rootPrefix, node.Clone(data), wp, traversr.Shift)
	}
}
