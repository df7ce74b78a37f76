package provider

import (
	"slices"

	"github.com/mpn-kit/mpn-go/pkg/capability"
	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/series"
)

// Provider claims and describes part numbers for a single owner.
// Implementations must be safe for concurrent use once constructed.
type Provider interface {
	// ID returns the owner id. It scopes pattern registry queries.
	ID() string

	// Name returns a human-readable name.
	Name() string

	// Priority orders competing providers; higher wins.
	Priority() int

	// SupportedTypes lists the component types the provider may return.
	SupportedTypes() []component.Type

	// Classify returns the component type of mpn, or false when the provider
	// does not claim it.
	Classify(mpn string) (component.Type, bool)

	// ExtractSeries returns the normalized series code, or "".
	ExtractSeries(mpn string) string

	// ExtractPackage returns the normalized package designator, or "".
	ExtractPackage(mpn string) string

	// Capabilities returns the comparable attributes of mpn.
	Capabilities(mpn string) []capability.Attribute

	// SeriesOrder returns the order used to compare the provider's series.
	SeriesOrder() series.Order
}

// Part is a classified part as seen by a Replacer.
type Part struct {
	MPN    string
	Owner  string
	Type   component.Type
	Series string
}

// Replacer is implemented by providers that carry explicit substitution
// knowledge. When decided is true, ok is the final answer.
type Replacer interface {
	Replacement(required, candidate Part) (ok bool, decided bool)
}

// Base holds the identity fields shared by provider implementations.
type Base struct {
	id       string
	name     string
	priority int
	types    []component.Type
}

// NewBase creates a Base.
func NewBase(id, name string, priority int, types ...component.Type) Base {
	if name == "" {
		name = id
	}
	return Base{
		id:       id,
		name:     name,
		priority: priority,
		types:    slices.Clone(types),
	}
}

// ID returns the owner id.
func (b Base) ID() string { return b.id }

// Name returns the display name.
func (b Base) Name() string { return b.name }

// Priority returns the dispatch priority.
func (b Base) Priority() int { return b.priority }

// SupportedTypes returns a copy of the supported types.
func (b Base) SupportedTypes() []component.Type {
	return slices.Clone(b.types)
}

// Supports reports whether t is one of the supported types.
func (b Base) Supports(t component.Type) bool {
	return slices.Contains(b.types, t)
}
