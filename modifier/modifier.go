package modifier

import (
	"fmt"
	"strconv"

	"github.com/erraggy/jolt/function"
	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

const rootKey = "root"

// OpMode decides when a modifier may write to a slot.
type OpMode int

const (
	// Overwrite always writes.
	Overwrite OpMode = iota
	// Default writes when the slot is missing or null.
	Default
	// Define writes when the slot is missing.
	Define
)

var opModeNames = [...]string{
	Overwrite: "overwrite",
	Default:   "default",
	Define:    "define",
}

// String returns the mode name, e.g. "default".
func (m OpMode) String() string {
	if m < 0 || int(m) >= len(opModeNames) {
		return "OpMode(" + strconv.Itoa(int(m)) + ")"
	}
	return opModeNames[m]
}

// opModeFromPrefix maps a key prefix to the mode it selects.
func opModeFromPrefix(c byte) (OpMode, bool) {
	switch c {
	case '+':
		return Overwrite, true
	case '~':
		return Default, true
	case '_':
		return Define, true
	}
	return 0, false
}

// appliesToObject reports whether key of obj may be written.
func (m OpMode) appliesToObject(obj *node.Object, key string) bool {
	switch m {
	case Default:
		v, ok := obj.Get(key)
		return !ok || v == nil
	case Define:
		return !obj.Has(key)
	}
	return true
}

// appliesToArray reports whether index idx of arr may be written. Slots at
// or past origSize did not exist before the walk extended the array.
func (m OpMode) appliesToArray(arr *node.Array, idx, origSize int) bool {
	if idx < 0 {
		return false
	}
	switch m {
	case Default:
		if idx >= origSize {
			return true
		}
		v, _ := arr.Get(idx)
		return v == nil
	case Define:
		return idx >= origSize
	}
	return true
}

// Modifier is a compiled modify spec.
type Modifier struct {
	mode OpMode
	root *composite
}

// Option configures a Modifier.
type Option func(*buildConfig) error

type buildConfig struct {
	functions *function.Registry
}

// WithFunctions sets the registry used to resolve "=name" calls. The
// default is function.Default().
func WithFunctions(r *function.Registry) Option {
	return func(cfg *buildConfig) error {
		if r == nil {
			return &jolterrors.ConfigError{Option: "WithFunctions", Message: "function registry cannot be nil"}
		}
		cfg.functions = r
		return nil
	}
}

func applyOptions(opts ...Option) (*buildConfig, error) {
	cfg := &buildConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.functions == nil {
		cfg.functions = function.Default()
	}
	return cfg, nil
}

// New compiles spec for mode.
func New(mode OpMode, spec *node.Object, opts ...Option) (*Modifier, error) {
	if mode < Overwrite || mode > Define {
		return nil, &jolterrors.ConfigError{Option: "mode", Value: int(mode), Message: "unknown modifier mode"}
	}
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, jolterrors.NewSpecError("", "modify spec must be an object")
	}
	b := &builder{mode: mode, functions: cfg.functions}
	root, err := b.composite(pathelement.NewLiteral(rootKey), mode, spec)
	if err != nil {
		return nil, err
	}
	return &Modifier{mode: mode, root: root}, nil
}

// NewOverwrite compiles spec in Overwrite mode.
func NewOverwrite(spec *node.Object, opts ...Option) (*Modifier, error) {
	return New(Overwrite, spec, opts...)
}

// NewDefault compiles spec in Default mode.
func NewDefault(spec *node.Object, opts ...Option) (*Modifier, error) {
	return New(Default, spec, opts...)
}

// NewDefine compiles spec in Define mode.
func NewDefine(spec *node.Object, opts ...Option) (*Modifier, error) {
	return New(Define, spec, opts...)
}

// Mode returns the mode the spec was compiled for.
func (m *Modifier) Mode() OpMode { return m.mode }

// Transform modifies input in place and returns it.
func (m *Modifier) Transform(input any) any {
	return m.TransformWithContext(input, nil)
}

// TransformWithContext modifies input in place and returns it. "^" lookups
// read from ctx, which is never modified. A nil ctx makes every "^"
// lookup come up empty.
//
// When input is null and the spec describes an object or array, the
// returned value is the container created for it.
func (m *Modifier) TransformWithContext(input any, ctx *node.Object) any {
	holder := node.ObjectOf(rootKey, input)
	wp := pathelement.NewWalkedPath(holder, "")
	m.root.Apply(rootKey, input, true, wp, ctx)
	v, _ := holder.Get(rootKey)
	return v
}

// dataType is the container a composite level expects.
type dataType struct {
	kind     dataKind
	maxIndex int
}

type dataKind int

const (
	runtimeData dataKind = iota
	mapData
	listData
)

func (d dataType) String() string {
	switch d.kind {
	case mapData:
		return "map"
	case listData:
		return fmt.Sprintf("list(%d)", d.maxIndex)
	}
	return "runtime"
}

// compatible reports whether input can be walked at this level. Null is
// compatible when a container can be created for it.
func (d dataType) compatible(input any) bool {
	switch input.(type) {
	case nil:
		return d.kind != runtimeData
	case *node.Object:
		return d.kind != listData
	case *node.Array:
		return d.kind != mapData
	}
	return false
}

func (d dataType) newValue() any {
	if d.kind == listData {
		return node.NewArray()
	}
	return node.NewObject()
}

// expand extends arr to cover the highest index named by the spec and
// returns its length before the call.
func (d dataType) expand(arr *node.Array) int {
	if d.kind != listData {
		return arr.Len()
	}
	return arr.Grow(d.maxIndex + 1)
}

// origSize returns the length an array had before the walk extended it.
func origSize(f pathelement.Frame, arr *node.Array) int {
	if f.HasOrigSize {
		return f.OrigSize
	}
	return arr.Len()
}

// applicable reports whether mode allows writing key of the container
// held by frame f.
func applicable(f pathelement.Frame, key string, mode OpMode) bool {
	switch parent := f.TreeRef.(type) {
	case *node.Object:
		return mode.appliesToObject(parent, key)
	case *node.Array:
		idx, err := strconv.Atoi(key)
		return err == nil && mode.appliesToArray(parent, idx, origSize(f, parent))
	}
	return false
}

// store writes v at key of the container held by frame f.
func store(f pathelement.Frame, key string, v any) {
	switch parent := f.TreeRef.(type) {
	case *node.Object:
		parent.Set(key, v)
	case *node.Array:
		if idx, err := strconv.Atoi(key); err == nil {
			parent.Set(idx, v)
		}
	}
}
