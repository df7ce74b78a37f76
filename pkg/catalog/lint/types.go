package lint

import (
	"errors"
	"fmt"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
	"github.com/mpn-kit/mpn-go/pkg/component"
)

// CAT002 checks that prefixes and patterns only claim supported types.
type CAT002 struct{ *BaseRule }

// NewCAT002 creates the unsupported claim rule.
func NewCAT002() *CAT002 {
	return &CAT002{NewBaseRule("CAT-002", "Claim outside supported types", "types", SeverityError)}
}

// Check implements Rule.
func (r *CAT002) Check(vendors []*catalog.Vendor) []Violation {
	var out []Violation
	for _, v := range vendors {
		if len(v.SupportedTypes) == 0 {
			continue
		}
		supported := make(map[component.Type]bool, len(v.SupportedTypes))
		for _, s := range v.SupportedTypes {
			supported[component.Normalize(s)] = true
		}
		check := func(what, typ string) {
			if !supported[component.Normalize(typ)] {
				out = append(out, r.violation(v,
					fmt.Sprintf("%s claims %s which is not in supportedTypes", what, typ),
					"add "+typ+" to supportedTypes"))
			}
		}
		for _, p := range v.Prefixes {
			check("prefix "+p.Prefix, p.Type)
		}
		for _, p := range v.Patterns {
			check("pattern "+p.Expr, p.Type)
		}
	}
	return out
}

// CAT003 checks that every referenced type exists.
type CAT003 struct{ *BaseRule }

// NewCAT003 creates the unknown type rule.
func NewCAT003() *CAT003 {
	return &CAT003{NewBaseRule("CAT-003", "Unknown type", "types", SeverityError)}
}

// Check implements Rule. Type definitions are resolved exactly as
// catalog.Build resolves them.
func (r *CAT003) Check(vendors []*catalog.Vendor) []Violation {
	tx, typeErrs := catalog.ResolveTaxonomy(vendors)
	byOwner := make(map[string][]*catalog.TypeError)
	for _, e := range typeErrs {
		byOwner[e.Owner] = append(byOwner[e.Owner], e)
	}

	var out []Violation
	for _, v := range vendors {
		for _, e := range byOwner[v.Owner] {
			suggestion := "declare the parent type or use a built-in one"
			if errors.Is(e, component.ErrConflictingParent) {
				suggestion = "give " + e.Type + " one parent across all catalogs"
			}
			out = append(out, r.violation(v, e.Error(), suggestion))
		}
		delete(byOwner, v.Owner)

		report := func(what, typ string) {
			if !tx.Known(component.Normalize(typ)) {
				out = append(out, r.violation(v,
					fmt.Sprintf("%s references unknown type %s", what, typ),
					"declare the type or use a built-in one"))
			}
		}
		for _, s := range v.SupportedTypes {
			report("supportedTypes", s)
		}
		for _, p := range v.Prefixes {
			report("prefix "+p.Prefix, p.Type)
		}
		for _, p := range v.Patterns {
			report("pattern "+p.Expr, p.Type)
		}
	}
	return out
}
