package lint

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mpn-kit/mpn-go/pkg/capability"
	"github.com/mpn-kit/mpn-go/pkg/catalog"
	"github.com/mpn-kit/mpn-go/pkg/pattern"
)

// CAT004 checks that an attribute name has one kind across all vendors.
// Comparing parts from two vendors that disagree fails at resolve time.
type CAT004 struct{ *BaseRule }

// NewCAT004 creates the attribute kind conflict rule.
func NewCAT004() *CAT004 {
	return &CAT004{NewBaseRule("CAT-004", "Attribute kind conflict", "capabilities", SeverityError)}
}

// Check implements Rule.
func (r *CAT004) Check(vendors []*catalog.Vendor) []Violation {
	type decl struct {
		kind  capability.Kind
		owner string
	}
	first := make(map[string]decl)
	var out []Violation
	for _, v := range vendors {
		for _, c := range v.Capabilities {
			kind, err := capability.ParseKind(c.Kind)
			if err != nil {
				out = append(out, r.violation(v, fmt.Sprintf("capability %s: %v", c.Name, err),
					"use ordinal, numeric or set"))
				continue
			}
			prev, ok := first[c.Name]
			if !ok {
				first[c.Name] = decl{kind: kind, owner: v.Owner}
				continue
			}
			if prev.kind != kind {
				out = append(out, r.violation(v,
					fmt.Sprintf("capability %s is %s here but %s in %s", c.Name, kind, prev.kind, prev.owner),
					"rename the attribute or align its kind"))
			}
		}
	}
	return out
}

// CAT005 checks series family definitions.
type CAT005 struct{ *BaseRule }

// NewCAT005 creates the ambiguous family rule.
func NewCAT005() *CAT005 {
	return &CAT005{NewBaseRule("CAT-005", "Ambiguous series family", "series", SeverityError)}
}

// Check implements Rule.
func (r *CAT005) Check(vendors []*catalog.Vendor) []Violation {
	var out []Violation
	for _, v := range vendors {
		member := make(map[string]string)
		for _, f := range v.Series.Families {
			if len(f.Members) == 0 {
				out = append(out, r.violation(v, fmt.Sprintf("family %s has no members", f.Name), ""))
			}
			for _, m := range f.Members {
				key := pattern.Normalize(m)
				if prev, dup := member[key]; dup {
					out = append(out, r.violation(v,
						fmt.Sprintf("series %s is in families %s and %s", m, prev, f.Name),
						"keep each series in one family"))
					continue
				}
				member[key] = f.Name
			}
		}
		switch v.Series.Rank {
		case "", "identity", "trailingDigits":
		default:
			out = append(out, r.violation(v, fmt.Sprintf("unknown series rank %q", v.Series.Rank),
				"use identity or trailingDigits"))
		}
	}
	return out
}

// CAT007 checks package table consistency.
type CAT007 struct{ *BaseRule }

// NewCAT007 creates the package table rule.
func NewCAT007() *CAT007 {
	return &CAT007{NewBaseRule("CAT-007", "Package table problem", "packages", SeverityWarning)}
}

// Check implements Rule.
func (r *CAT007) Check(vendors []*catalog.Vendor) []Violation {
	var out []Violation
	for _, v := range vendors {
		p := v.Packages
		if len(p.Group) > 0 && p.Match == "" {
			out = append(out, r.violation(v, "packages.group is set without packages.match",
				"add a match expression with one capture group"))
		}
		if p.Match != "" {
			if re, err := pattern.Compile(p.Match); err == nil && re.NumSubexp() < 1 {
				out = append(out, r.violation(v, fmt.Sprintf("packages.match %q has no capture group", p.Match), ""))
			}
		}
		strip := make(map[string]bool, len(p.Strip))
		for _, s := range p.Strip {
			strip[strings.ToUpper(s)] = true
		}
		for _, code := range slices.Sorted(maps.Keys(p.Suffixes)) {
			if strip[strings.ToUpper(code)] {
				out = append(out, r.violation(v,
					fmt.Sprintf("suffix %s is also stripped and can never be looked up", code),
					"remove it from packages.strip or packages.suffixes"))
			}
		}
	}
	return out
}
