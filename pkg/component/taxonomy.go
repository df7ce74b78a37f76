package component

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownType is returned when a type name is not part of the taxonomy.
	ErrUnknownType = errors.New("unknown component type")

	// ErrConflictingParent is returned when a refinement is redeclared with a
	// different parent.
	ErrConflictingParent = errors.New("conflicting parent type")
)

// Builder assembles a Taxonomy. It is not safe for concurrent use.
type Builder struct {
	parents map[Type]Type
	order   []Type
}

// NewBuilder creates a Builder pre-populated with the built-in types.
func NewBuilder() *Builder {
	b := &Builder{parents: make(map[Type]Type)}
	for _, t := range builtinBases {
		b.add(t, t)
	}
	for _, r := range builtinRefinements {
		b.add(r.Type, r.Parent)
	}
	return b
}

func (b *Builder) add(t, parent Type) {
	if _, exists := b.parents[t]; !exists {
		b.order = append(b.order, t)
	}
	b.parents[t] = parent
}

// Known returns true if t has been added to the builder.
func (b *Builder) Known(t Type) bool {
	_, ok := b.parents[t]
	return ok
}

// AddBase adds a new base category. Re-adding an existing base is a no-op.
func (b *Builder) AddBase(t Type) error {
	t = Normalize(string(t))
	if t == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownType)
	}
	if parent, ok := b.parents[t]; ok {
		if parent != t {
			return fmt.Errorf("%w: %s is already a refinement of %s", ErrConflictingParent, t, parent)
		}
		return nil
	}
	b.add(t, t)
	return nil
}

// AddRefinement adds t as a refinement of parent. The parent must already be
// known, which makes cycles impossible.
func (b *Builder) AddRefinement(t, parent Type) error {
	t = Normalize(string(t))
	parent = Normalize(string(parent))
	if t == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownType)
	}
	if t == parent {
		return fmt.Errorf("%w: %s cannot refine itself", ErrConflictingParent, t)
	}
	if !b.Known(parent) {
		return fmt.Errorf("%w: parent %s of %s", ErrUnknownType, parent, t)
	}
	if existing, ok := b.parents[t]; ok {
		if existing != parent {
			return fmt.Errorf("%w: %s refines %s, not %s", ErrConflictingParent, t, existing, parent)
		}
		return nil
	}
	b.add(t, parent)
	return nil
}

// Build returns an immutable Taxonomy. The builder may keep being used
// afterwards without affecting the returned value.
func (b *Builder) Build() *Taxonomy {
	tx := &Taxonomy{
		parents: make(map[Type]Type, len(b.parents)),
		bases:   make(map[Type]Type, len(b.parents)),
		depths:  make(map[Type]int, len(b.parents)),
		order:   append([]Type(nil), b.order...),
	}
	for t, p := range b.parents {
		tx.parents[t] = p
	}
	for _, t := range tx.order {
		base, depth := t, 0
		for tx.parents[base] != base {
			base = tx.parents[base]
			depth++
		}
		tx.bases[t] = base
		tx.depths[t] = depth
	}
	return tx
}

// Taxonomy is an immutable set of component types with their parent links.
// It is safe for concurrent use.
type Taxonomy struct {
	parents map[Type]Type
	bases   map[Type]Type
	depths  map[Type]int
	order   []Type
}

// Default returns a Taxonomy containing only the built-in types.
func Default() *Taxonomy {
	return NewBuilder().Build()
}

// Known returns true if t is part of the taxonomy.
func (tx *Taxonomy) Known(t Type) bool {
	_, ok := tx.parents[t]
	return ok
}

// Parse normalizes s and returns the matching type.
func (tx *Taxonomy) Parse(s string) (Type, error) {
	t := Normalize(s)
	if !tx.Known(t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Parent returns the direct parent of t. For base types the parent is t itself.
func (tx *Taxonomy) Parent(t Type) (Type, bool) {
	p, ok := tx.parents[t]
	return p, ok
}

// Base returns the root category of t.
func (tx *Taxonomy) Base(t Type) (Type, bool) {
	b, ok := tx.bases[t]
	return b, ok
}

// IsBase returns true if t is a known base category.
func (tx *Taxonomy) IsBase(t Type) bool {
	p, ok := tx.parents[t]
	return ok && p == t
}

// Depth returns how many refinement steps separate t from its base.
// Base types have depth 0; unknown types return -1.
func (tx *Taxonomy) Depth(t Type) int {
	d, ok := tx.depths[t]
	if !ok {
		return -1
	}
	return d
}

// Is returns true if t equals target or refines it (directly or transitively).
func (tx *Taxonomy) Is(t, target Type) bool {
	if t == target {
		return true
	}
	cur, ok := tx.parents[t]
	if !ok {
		return false
	}
	prev := t
	for cur != prev {
		if cur == target {
			return true
		}
		prev, cur = cur, tx.parents[cur]
	}
	return false
}

// Ancestors returns t followed by each of its ancestors up to the base.
func (tx *Taxonomy) Ancestors(t Type) []Type {
	if !tx.Known(t) {
		return nil
	}
	out := []Type{t}
	for cur := t; tx.parents[cur] != cur; {
		cur = tx.parents[cur]
		out = append(out, cur)
	}
	return out
}

// Types returns all known types in the order they were added.
func (tx *Taxonomy) Types() []Type {
	return append([]Type(nil), tx.order...)
}

// Refinements returns the direct refinements of t, sorted by name.
func (tx *Taxonomy) Refinements(t Type) []Type {
	var out []Type
	for child, parent := range tx.parents {
		if parent == t && child != t {
			out = append(out, child)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
