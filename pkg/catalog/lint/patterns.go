package lint

import (
	"fmt"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
	"github.com/mpn-kit/mpn-go/pkg/pattern"
)

// CAT006 flags a vendor listing the same pattern twice.
type CAT006 struct{ *BaseRule }

// NewCAT006 creates the duplicate pattern rule.
func NewCAT006() *CAT006 {
	return &CAT006{NewBaseRule("CAT-006", "Duplicate pattern", "patterns", SeverityWarning)}
}

// Check implements Rule.
func (r *CAT006) Check(vendors []*catalog.Vendor) []Violation {
	var out []Violation
	for _, v := range vendors {
		seen := make(map[string]string)
		for _, p := range v.Patterns {
			if prev, dup := seen[p.Expr]; dup {
				msg := fmt.Sprintf("pattern %s is listed more than once", p.Expr)
				if prev != p.Type {
					msg = fmt.Sprintf("pattern %s maps to %s and %s; only the first is reachable", p.Expr, prev, p.Type)
				}
				out = append(out, r.violation(v, msg, "remove the later entry"))
				continue
			}
			seen[p.Expr] = p.Type
		}
	}
	return out
}

// CAT009 checks that every expression compiles.
type CAT009 struct{ *BaseRule }

// NewCAT009 creates the invalid expression rule.
func NewCAT009() *CAT009 {
	return &CAT009{NewBaseRule("CAT-009", "Invalid expression", "patterns", SeverityError)}
}

// Check implements Rule.
func (r *CAT009) Check(vendors []*catalog.Vendor) []Violation {
	var out []Violation
	for _, v := range vendors {
		check := func(what, expr string) {
			if expr == "" {
				return
			}
			if _, err := pattern.Compile(expr); err != nil {
				out = append(out, r.violation(v, fmt.Sprintf("%s: %v", what, err), ""))
			}
		}
		for i, p := range v.Patterns {
			check(fmt.Sprintf("patterns[%d]", i), p.Expr)
		}
		for i, s := range v.Series.Rules {
			check(fmt.Sprintf("series.rules[%d]", i), s.Pattern)
		}
		check("packages.match", v.Packages.Match)
		for _, c := range v.Capabilities {
			check("capability "+c.Name, c.Pattern)
			for _, m := range c.Members {
				check("capability "+c.Name+" member "+m.Name, m.Pattern)
			}
		}
		for i, x := range v.CrossReferences {
			if len(x.Required) > 0 && x.Required[0] == '^' {
				check(fmt.Sprintf("crossReferences[%d].required", i), x.Required)
			}
			if len(x.Candidate) > 0 && x.Candidate[0] == '^' {
				check(fmt.Sprintf("crossReferences[%d].candidate", i), x.Candidate)
			}
		}
	}
	return out
}
