package pathelement

import (
	"strings"

	"github.com/erraggy/jolt/internal/traversr"
	"github.com/erraggy/jolt/jolterrors"
)

type step struct {
	elem  Evaluator
	index bool
}

func (s step) key(wp *WalkedPath) (traversr.Key, bool) {
	name, ok := s.elem.Evaluate(wp)
	if !ok {
		return traversr.Key{}, false
	}
	return traversr.Key{Name: name, Index: s.index}, true
}

func parseSteps(spec, text string, allowAppend bool) ([]step, error) {
	if text == "" {
		return nil, nil
	}
	var steps []step
	for _, part := range splitPath(text) {
		if part == "" {
			return nil, jolterrors.NewSpecError(spec, "empty path element")
		}
		pieces, err := splitBrackets(part)
		if err != nil {
			return nil, err
		}
		for _, piece := range pieces {
			elem, err := parsePathElement(piece)
			if err != nil {
				return nil, err
			}
			arr, isArray := elem.(*ArrayElement)
			if isArray && arr.IsAppend() && !allowAppend {
				return nil, jolterrors.NewSpecError(spec, "[] is only valid in an output path")
			}
			steps = append(steps, step{elem: elem, index: isArray})
		}
	}
	return steps, nil
}

func render(steps []step) string {
	var b strings.Builder
	for i, s := range steps {
		if i > 0 && !s.index {
			b.WriteByte('.')
		}
		b.WriteString(s.elem.Canonical())
	}
	return b.String()
}

func resolve(steps []step, wp *WalkedPath) ([]traversr.Key, bool) {
	keys := make([]traversr.Key, 0, len(steps))
	for _, s := range steps {
		k, ok := s.key(wp)
		if !ok {
			return nil, false
		}
		keys = append(keys, k)
	}
	return keys, true
}

// WritePath is a parsed output path.
type WritePath struct {
	steps []step
}

// ParseWritePath parses a dotted output path. An empty string is the
// output root.
func ParseWritePath(text string) (*WritePath, error) {
	steps, err := parseSteps(text, text, true)
	if err != nil {
		return nil, err
	}
	return &WritePath{steps: steps}, nil
}

// String renders the path in spec syntax.
func (p *WritePath) String() string { return render(p.steps) }

// Len returns the number of elements.
func (p *WritePath) Len() int { return len(p.steps) }

// Keys resolves the path against wp.
func (p *WritePath) Keys(wp *WalkedPath) ([]traversr.Key, bool) {
	return resolve(p.steps, wp)
}

// Write stores data at the resolved path below prefix in tree. Nothing is
// written when a reference along the path cannot be resolved.
func (p *WritePath) Write(tree any, prefix []traversr.Key, data any, wp *WalkedPath, mode traversr.Mode) bool {
	keys, ok := p.Keys(wp)
	if !ok {
		return false
	}
	full := make([]traversr.Key, 0, len(prefix)+len(keys))
	full = append(full, prefix...)
	full = append(full, keys...)
	return traversr.Set(tree, full, data, mode)
}

// ReadPath is a parsed lookup path.
type ReadPath struct {
	steps []step
}

// ParseReadPath parses a dotted lookup path. "[]" is not allowed.
func ParseReadPath(text string) (*ReadPath, error) {
	return parseReadPath(text, text)
}

func parseReadPath(spec, text string) (*ReadPath, error) {
	steps, err := parseSteps(spec, text, false)
	if err != nil {
		return nil, err
	}
	for _, s := range steps {
		if _, ok := s.elem.(*Transpose); ok {
			return nil, jolterrors.NewSpecError(spec, "@ can not be nested in a lookup path")
		}
	}
	return &ReadPath{steps: steps}, nil
}

// String renders the path in spec syntax.
func (p *ReadPath) String() string { return render(p.steps) }

// Read returns the value at the resolved path below tree.
func (p *ReadPath) Read(tree any, wp *WalkedPath) (any, bool) {
	keys, ok := resolve(p.steps, wp)
	if !ok {
		return nil, false
	}
	return traversr.Get(tree, keys)
}
