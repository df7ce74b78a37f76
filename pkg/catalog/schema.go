package catalog

// Vendor is the definition of one rule provider.
type Vendor struct {
	Owner    string `yaml:"owner"`
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`

	// Types declares taxonomy additions: refinements when Refines is set,
	// new base types otherwise.
	Types []TypeDef `yaml:"types,omitempty"`

	// SupportedTypes lists the types the provider may return. When empty it
	// is derived from Prefixes and Patterns.
	SupportedTypes []string `yaml:"supportedTypes,omitempty"`

	Prefixes        []PrefixDef     `yaml:"prefixes,omitempty"`
	Patterns        []PatternDef    `yaml:"patterns,omitempty"`
	Series          SeriesDef       `yaml:"series,omitempty"`
	Packages        PackageDef      `yaml:"packages,omitempty"`
	Capabilities    []CapabilityDef `yaml:"capabilities,omitempty"`
	CrossReferences []CrossRefDef   `yaml:"crossReferences,omitempty"`

	// Source is the file the definition was read from.
	Source string `yaml:"-"`
}

// TypeDef declares a component type.
type TypeDef struct {
	Name    string `yaml:"name"`
	Refines string `yaml:"refines,omitempty"`
}

// PrefixDef is a direct prefix claim.
type PrefixDef struct {
	Prefix string `yaml:"prefix"`
	Type   string `yaml:"type"`
}

// PatternDef is a registry rule. Order within a vendor is precedence order.
type PatternDef struct {
	Type string `yaml:"type"`
	Expr string `yaml:"expr"`
}

// SeriesDef configures series extraction and ordering.
type SeriesDef struct {
	Rules    []SeriesRuleDef `yaml:"rules,omitempty"`
	Families []FamilyDef     `yaml:"families,omitempty"`

	// Rank adds an ordering after the explicit families:
	// "" or "identity" for none, "trailingDigits" for numeric model ranks.
	Rank string `yaml:"rank,omitempty"`
}

// SeriesRuleDef extracts a series code.
type SeriesRuleDef struct {
	Pattern  string `yaml:"pattern"`
	Template string `yaml:"template,omitempty"`
}

// FamilyDef is an ordered series family, lowest rank first.
type FamilyDef struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// PackageDef configures package extraction.
type PackageDef struct {
	Strip    []string          `yaml:"strip,omitempty"`
	Suffixes map[string]string `yaml:"suffixes,omitempty"`
	Match    string            `yaml:"match,omitempty"`
	Group    map[string]string `yaml:"group,omitempty"`
}

// CapabilityDef configures one capability attribute.
type CapabilityDef struct {
	Name     string             `yaml:"name"`
	Kind     string             `yaml:"kind"`
	Pattern  string             `yaml:"pattern,omitempty"`
	Lookup   map[string]float64 `yaml:"lookup,omitempty"`
	Encoding string             `yaml:"encoding,omitempty"`
	Scale    float64            `yaml:"scale,omitempty"`
	Exact    bool               `yaml:"exact,omitempty"`
	Default  *float64           `yaml:"default,omitempty"`
	Members  []MemberDef        `yaml:"members,omitempty"`
}

// MemberDef adds a set member when its pattern matches.
type MemberDef struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// CrossRefDef is a known substitution decision.
type CrossRefDef struct {
	Required       string `yaml:"required"`
	Candidate      string `yaml:"candidate"`
	CandidateOwner string `yaml:"candidateOwner,omitempty"`
	Bidirectional  bool   `yaml:"bidirectional,omitempty"`
	Deny           bool   `yaml:"deny,omitempty"`
}

// DeclaredTypes returns the supported types as written, or derived from
// prefixes and patterns when none are listed. Order is first appearance.
func (v *Vendor) DeclaredTypes() []string {
	if len(v.SupportedTypes) > 0 {
		return append([]string(nil), v.SupportedTypes...)
	}
	seen := make(map[string]bool)
	var out []string
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, p := range v.Prefixes {
		add(p.Type)
	}
	for _, p := range v.Patterns {
		add(p.Type)
	}
	return out
}
