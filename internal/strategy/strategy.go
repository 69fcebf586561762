// Package strategy selects and runs the algorithm that pairs the keys of an
// input value with the children of a composite spec.
//
// The choice depends only on the static shape of the spec level, so it is
// made once when a spec is built:
//
//	AvailableLiterals              literal children only; absent keys skipped
//	AllLiterals                    literal children only; absent keys dispatched
//	Computed                       pattern children only
//	Conflict                       a key may match a literal and a pattern
//	AvailableLiteralsWithComputed  literals then patterns, no overlap possible
//	AllLiteralsWithComputed        AllLiterals then patterns
//
// Arrays are walked with the decimal index as key, and a scalar input is
// matched as a key with no value.
package strategy

import (
	"strconv"

	"github.com/erraggy/jolt/internal/pathelement"
	"github.com/erraggy/jolt/node"
)

// Strategy identifies a matching algorithm.
type Strategy int

const (
	AvailableLiterals Strategy = iota
	AllLiterals
	Computed
	Conflict
	AvailableLiteralsWithComputed
	AllLiteralsWithComputed
)

var strategyNames = [...]string{
	AvailableLiterals:             "AvailableLiterals",
	AllLiterals:                   "AllLiterals",
	Computed:                      "Computed",
	Conflict:                      "Conflict",
	AvailableLiteralsWithComputed: "AvailableLiteralsWithComputed",
	AllLiteralsWithComputed:       "AllLiteralsWithComputed",
}

// String returns the strategy name.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "Strategy(" + strconv.Itoa(int(s)) + ")"
	}
	return strategyNames[s]
}

// Select picks the strategy for a spec level. overlap reports that some
// input key could match both a literal and a computed child. With
// dispatchAbsent set, literal children also see keys missing from the
// input.
func Select(hasLiterals, hasComputed, overlap, dispatchAbsent bool) Strategy {
	switch {
	case !hasComputed && dispatchAbsent:
		return AllLiterals
	case !hasComputed:
		return AvailableLiterals
	case !hasLiterals:
		return Computed
	case dispatchAbsent:
		return AllLiteralsWithComputed
	case overlap:
		return Conflict
	}
	return AvailableLiteralsWithComputed
}

// Spec is a child of a composite spec. Apply reports whether the child
// matched key; present is false when the key has no value in the input.
type Spec[E any] interface {
	Apply(key string, input any, present bool, wp *pathelement.WalkedPath, env E) bool
}

// Children holds the literal and computed children of one composite spec.
// Literals keep the order in which they were added; computed children must
// already be sorted by specificity.
type Children[E any] struct {
	literals map[string]Spec[E]
	order    []string
	computed []Spec[E]
}

// AddLiteral registers a literal child. A repeated key replaces the earlier
// child.
func (c *Children[E]) AddLiteral(key string, s Spec[E]) {
	if c.literals == nil {
		c.literals = make(map[string]Spec[E])
	}
	if _, exists := c.literals[key]; !exists {
		c.order = append(c.order, key)
	}
	c.literals[key] = s
}

// SetComputed sets the computed children in match order.
func (c *Children[E]) SetComputed(specs []Spec[E]) {
	c.computed = specs
}

// Literal returns the literal child for key.
func (c *Children[E]) Literal(key string) (Spec[E], bool) {
	s, ok := c.literals[key]
	return s, ok
}

// LiteralKeys returns the literal keys in order.
func (c *Children[E]) LiteralKeys() []string {
	return append([]string(nil), c.order...)
}

// HasLiterals reports whether any literal child exists.
func (c *Children[E]) HasLiterals() bool { return len(c.order) > 0 }

// HasComputed reports whether any computed child exists.
func (c *Children[E]) HasComputed() bool { return len(c.computed) > 0 }

// Process walks input with strategy s. Null input is ignored.
func Process[E any](s Strategy, c *Children[E], input any, wp *pathelement.WalkedPath, env E) {
	switch in := input.(type) {
	case *node.Object:
		processMap(s, c, in, wp, env)
	case *node.Array:
		processList(s, c, in, wp, env)
	default:
		if key, ok := node.KeyString(input); ok {
			processScalar(s, c, key, wp, env)
		}
	}
}

func processMap[E any](s Strategy, c *Children[E], in *node.Object, wp *pathelement.WalkedPath, env E) {
	switch s {
	case AvailableLiterals:
		availableLiteralsMap(c, in, wp, env)
	case AllLiterals:
		allLiteralsMap(c, in, wp, env)
	case Computed:
		for _, e := range in.Entries() {
			applyComputed(c.computed, e.Key, e.Value, true, wp, env)
		}
	case Conflict:
		for _, e := range in.Entries() {
			applyLiteralOrComputed(c, e.Key, e.Value, true, wp, env)
		}
	case AvailableLiteralsWithComputed:
		availableLiteralsMap(c, in, wp, env)
		computedSkippingLiterals(c, in.Entries(), wp, env)
	case AllLiteralsWithComputed:
		allLiteralsMap(c, in, wp, env)
		computedSkippingLiterals(c, in.Entries(), wp, env)
	}
}

func processList[E any](s Strategy, c *Children[E], in *node.Array, wp *pathelement.WalkedPath, env E) {
	switch s {
	case AvailableLiterals:
		availableLiteralsList(c, in, wp, env)
	case AllLiterals:
		allLiteralsList(c, in, wp, env)
	case Computed:
		eachElement(in, wp, func(key string, v any, present bool) {
			applyComputed(c.computed, key, v, present, wp, env)
		})
	case Conflict:
		eachElement(in, wp, func(key string, v any, present bool) {
			applyLiteralOrComputed(c, key, v, present, wp, env)
		})
	case AvailableLiteralsWithComputed:
		availableLiteralsList(c, in, wp, env)
		computedListSkippingLiterals(c, in, wp, env)
	case AllLiteralsWithComputed:
		allLiteralsList(c, in, wp, env)
		computedListSkippingLiterals(c, in, wp, env)
	}
}

func processScalar[E any](s Strategy, c *Children[E], key string, wp *pathelement.WalkedPath, env E) {
	switch s {
	case AvailableLiterals, AllLiterals:
		if child, ok := c.literals[key]; ok {
			child.Apply(key, nil, false, wp, env)
		}
	case Computed:
		applyComputed(c.computed, key, nil, false, wp, env)
	case Conflict, AvailableLiteralsWithComputed, AllLiteralsWithComputed:
		applyLiteralOrComputed(c, key, nil, false, wp, env)
	}
}

func availableLiteralsMap[E any](c *Children[E], in *node.Object, wp *pathelement.WalkedPath, env E) {
	for _, key := range c.order {
		if v, ok := in.Get(key); ok {
			c.literals[key].Apply(key, v, true, wp, env)
		}
	}
}

func allLiteralsMap[E any](c *Children[E], in *node.Object, wp *pathelement.WalkedPath, env E) {
	for _, key := range c.order {
		v, ok := in.Get(key)
		c.literals[key].Apply(key, v, ok, wp, env)
	}
}

func availableLiteralsList[E any](c *Children[E], in *node.Array, wp *pathelement.WalkedPath, env E) {
	frame := wp.Last()
	for _, key := range c.order {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= in.Len() {
			continue
		}
		v, _ := in.Get(idx)
		present := !(v == nil && frame.HasOrigSize && idx >= frame.OrigSize)
		c.literals[key].Apply(key, v, present, wp, env)
	}
}

// allLiteralsList dispatches every literal index. A slot only counts as
// present when it holds a value, or it existed before the array was
// expanded for this level.
func allLiteralsList[E any](c *Children[E], in *node.Array, wp *pathelement.WalkedPath, env E) {
	frame := wp.Last()
	for _, key := range c.order {
		var v any
		present := false
		if idx, err := strconv.Atoi(key); err == nil && idx >= 0 && idx < in.Len() {
			v, _ = in.Get(idx)
			present = v != nil || !frame.HasOrigSize || idx < frame.OrigSize
		}
		c.literals[key].Apply(key, v, present, wp, env)
	}
}

// eachElement visits a snapshot of the array. Slots added by expansion
// beyond the original size that are still null count as absent.
func eachElement(in *node.Array, wp *pathelement.WalkedPath, visit func(key string, v any, present bool)) {
	frame := wp.Last()
	for i, v := range in.Items() {
		present := !(v == nil && frame.HasOrigSize && i >= frame.OrigSize)
		visit(strconv.Itoa(i), v, present)
	}
}

func computedSkippingLiterals[E any](c *Children[E], entries []node.Entry, wp *pathelement.WalkedPath, env E) {
	for _, e := range entries {
		if _, owned := c.literals[e.Key]; owned {
			continue
		}
		applyComputed(c.computed, e.Key, e.Value, true, wp, env)
	}
}

func computedListSkippingLiterals[E any](c *Children[E], in *node.Array, wp *pathelement.WalkedPath, env E) {
	eachElement(in, wp, func(key string, v any, present bool) {
		if _, owned := c.literals[key]; owned {
			return
		}
		applyComputed(c.computed, key, v, present, wp, env)
	})
}

func applyLiteralOrComputed[E any](c *Children[E], key string, v any, present bool, wp *pathelement.WalkedPath, env E) {
	if child, ok := c.literals[key]; ok {
		child.Apply(key, v, present, wp, env)
		return
	}
	applyComputed(c.computed, key, v, present, wp, env)
}

// applyComputed tries each computed child in order until one matches.
func applyComputed[E any](computed []Spec[E], key string, v any, present bool, wp *pathelement.WalkedPath, env E) {
	for _, child := range computed {
		if child.Apply(key, v, present, wp, env) {
			return
		}
	}
}
