package catalog

import (
	"fmt"
	"regexp"

	"github.com/mpn-kit/mpn-go/pkg/capability"
	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/pattern"
	"github.com/mpn-kit/mpn-go/pkg/provider"
	"github.com/mpn-kit/mpn-go/pkg/series"
)

// Catalog is the immutable classification state built from vendor
// definitions.
type Catalog struct {
	Taxonomy  *component.Taxonomy
	Registry  *pattern.Registry
	Providers []provider.Provider
	Vendors   []*Vendor

	tables map[string]*provider.Table
}

// Table returns the provider built for owner.
func (c *Catalog) Table(owner string) (*provider.Table, bool) {
	t, ok := c.tables[owner]
	return t, ok
}

// Owners returns the provider ids in build order.
func (c *Catalog) Owners() []string {
	out := make([]string, len(c.Providers))
	for i, p := range c.Providers {
		out[i] = p.ID()
	}
	return out
}

// Build validates and compiles vendor definitions. Vendor order is provider
// registration order. Every error wraps ErrInvalidCatalog.
func Build(vendors ...*Vendor) (*Catalog, error) {
	if len(vendors) == 0 {
		return nil, fmt.Errorf("%w: no vendors", ErrInvalidCatalog)
	}

	seen := make(map[string]string, len(vendors))
	for _, v := range vendors {
		if v == nil || v.Owner == "" {
			return nil, fmt.Errorf("%w: vendor without owner", ErrInvalidCatalog)
		}
		if prev, dup := seen[v.Owner]; dup {
			return nil, fmt.Errorf("%w: owner %s defined in %s and %s", ErrInvalidCatalog, v.Owner, prev, v.Source)
		}
		seen[v.Owner] = v.Source
	}

	tx, err := buildTaxonomy(vendors)
	if err != nil {
		return nil, err
	}

	reg := pattern.NewRegistry(tx)
	c := &Catalog{
		Taxonomy: tx,
		Registry: reg,
		Vendors:  vendors,
		tables:   make(map[string]*provider.Table, len(vendors)),
	}
	for _, v := range vendors {
		tbl, err := compileVendor(v, tx, reg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, v.Owner, err)
		}
		c.Providers = append(c.Providers, tbl)
		c.tables[v.Owner] = tbl
	}
	reg.Seal()
	return c, nil
}

// TypeError describes a type definition that could not be added to the
// taxonomy.
type TypeError struct {
	Owner string
	Type  string
	Err   error
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type %s: %v", e.Type, e.Err)
}

// Unwrap allows errors.Is against the component errors.
func (e *TypeError) Unwrap() error {
	return e.Err
}

// ResolveTaxonomy adds every declared type to the built-in taxonomy.
// Refinements may reference types declared later or by another vendor.
// Definitions that cannot be added are skipped and reported; the returned
// taxonomy holds everything else.
func ResolveTaxonomy(vendors []*Vendor) (*component.Taxonomy, []*TypeError) {
	b := component.NewBuilder()
	var errs []*TypeError

	type pending struct {
		def   TypeDef
		owner string
	}
	var todo []pending
	for _, v := range vendors {
		if v == nil {
			continue
		}
		for _, d := range v.Types {
			if d.Refines == "" {
				if err := b.AddBase(component.Type(d.Name)); err != nil {
					errs = append(errs, &TypeError{Owner: v.Owner, Type: d.Name, Err: err})
				}
				continue
			}
			todo = append(todo, pending{def: d, owner: v.Owner})
		}
	}

	for len(todo) > 0 {
		var next []pending
		for _, p := range todo {
			if !b.Known(component.Normalize(p.def.Refines)) {
				next = append(next, p)
				continue
			}
			if err := b.AddRefinement(component.Type(p.def.Name), component.Type(p.def.Refines)); err != nil {
				errs = append(errs, &TypeError{Owner: p.owner, Type: p.def.Name, Err: err})
			}
		}
		if len(next) == len(todo) {
			for _, p := range next {
				errs = append(errs, &TypeError{
					Owner: p.owner,
					Type:  p.def.Name,
					Err:   fmt.Errorf("%w %s", component.ErrUnknownType, p.def.Refines),
				})
			}
			break
		}
		todo = next
	}
	return b.Build(), errs
}

func buildTaxonomy(vendors []*Vendor) (*component.Taxonomy, error) {
	tx, errs := ResolveTaxonomy(vendors)
	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, errs[0].Owner, errs[0])
	}
	return tx, nil
}

func compileRegexp(what, expr string) (*regexp.Regexp, error) {
	re, err := pattern.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return re, nil
}

func compileVendor(v *Vendor, tx *component.Taxonomy, reg *pattern.Registry) (*provider.Table, error) {
	cfg := provider.TableConfig{
		ID:       v.Owner,
		Name:     v.Name,
		Priority: v.Priority,
	}

	for _, name := range v.DeclaredTypes() {
		t, err := tx.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("supported type: %w", err)
		}
		cfg.Types = append(cfg.Types, t)
	}

	for _, p := range v.Prefixes {
		t, err := tx.Parse(p.Type)
		if err != nil {
			return nil, fmt.Errorf("prefix %s: %w", p.Prefix, err)
		}
		cfg.Prefixes = append(cfg.Prefixes, provider.PrefixRule{Prefix: p.Prefix, Type: t})
	}

	for _, p := range v.Patterns {
		t, err := tx.Parse(p.Type)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", p.Expr, err)
		}
		if err := reg.Register(v.Owner, t, p.Expr); err != nil {
			return nil, err
		}
	}

	order, err := compileSeries(v.Series, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.Order = order

	if cfg.Packages, err = compilePackages(v.Packages); err != nil {
		return nil, err
	}

	for _, d := range v.Capabilities {
		rule, err := compileCapability(d)
		if err != nil {
			return nil, fmt.Errorf("capability %s: %w", d.Name, err)
		}
		cfg.Capabilities = append(cfg.Capabilities, rule)
	}

	for i, d := range v.CrossReferences {
		req, err := compileAnchored(fmt.Sprintf("crossReferences[%d].required", i), d.Required)
		if err != nil {
			return nil, err
		}
		cand, err := compileAnchored(fmt.Sprintf("crossReferences[%d].candidate", i), d.Candidate)
		if err != nil {
			return nil, err
		}
		cfg.CrossReferences = append(cfg.CrossReferences, provider.CrossReference{
			Required:       req,
			Candidate:      cand,
			CandidateOwner: d.CandidateOwner,
			Bidirectional:  d.Bidirectional,
			Deny:           d.Deny,
		})
	}

	return provider.NewTable(cfg, reg)
}

// compileAnchored compiles a cross-reference pattern. Plain part numbers
// match exactly; anything already anchored is used as written.
func compileAnchored(what, expr string) (*regexp.Regexp, error) {
	if expr != "" && expr[0] != '^' {
		expr = "^" + regexp.QuoteMeta(pattern.Normalize(expr)) + "$"
	}
	return compileRegexp(what, expr)
}

func compileSeries(d SeriesDef, cfg *provider.TableConfig) (series.Order, error) {
	for i, r := range d.Rules {
		re, err := compileRegexp(fmt.Sprintf("series.rules[%d]", i), r.Pattern)
		if err != nil {
			return nil, err
		}
		cfg.Series = append(cfg.Series, provider.SeriesRule{Pattern: re, Template: r.Template})
	}

	var chain series.Chain
	if len(d.Families) > 0 {
		fams := make([]series.Family, len(d.Families))
		for i, f := range d.Families {
			fams[i] = series.Family{Name: f.Name, Members: f.Members}
		}
		f, err := series.NewFamilies(fams...)
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}

	switch d.Rank {
	case "", "identity":
	case "trailingDigits":
		chain = append(chain, series.TrailingDigits{})
	default:
		return nil, fmt.Errorf("series.rank: unknown ordering %q", d.Rank)
	}

	switch len(chain) {
	case 0:
		return series.Identity{}, nil
	case 1:
		return chain[0], nil
	default:
		return chain, nil
	}
}

func compilePackages(d PackageDef) (provider.PackageTable, error) {
	pt := provider.PackageTable{
		Strip:    d.Strip,
		Suffixes: d.Suffixes,
		Group:    d.Group,
	}
	if d.Match != "" {
		re, err := compileRegexp("packages.match", d.Match)
		if err != nil {
			return pt, err
		}
		if re.NumSubexp() < 1 {
			return pt, fmt.Errorf("packages.match %q needs a capture group", d.Match)
		}
		pt.Match = re
	}
	return pt, nil
}

func compileCapability(d CapabilityDef) (provider.CapabilityRule, error) {
	kind, err := capability.ParseKind(d.Kind)
	if err != nil {
		return provider.CapabilityRule{}, err
	}
	enc, err := provider.ParseEncoding(d.Encoding)
	if err != nil {
		return provider.CapabilityRule{}, err
	}

	rule := provider.CapabilityRule{
		Name:     d.Name,
		Kind:     kind,
		Exact:    d.Exact,
		Lookup:   d.Lookup,
		Encoding: enc,
		Scale:    d.Scale,
		Default:  d.Default,
	}
	if d.Pattern != "" {
		if rule.Pattern, err = compileRegexp("pattern", d.Pattern); err != nil {
			return rule, err
		}
	}
	for _, m := range d.Members {
		re, err := compileRegexp("member "+m.Name, m.Pattern)
		if err != nil {
			return rule, err
		}
		rule.Members = append(rule.Members, provider.SetMember{Name: m.Name, Pattern: re})
	}
	return rule, nil
}
