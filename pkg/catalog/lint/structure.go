package lint

import (
	"fmt"
	"strings"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
)

// CAT001 checks that every owner is defined once.
type CAT001 struct{ *BaseRule }

// NewCAT001 creates the duplicate owner rule.
func NewCAT001() *CAT001 {
	return &CAT001{NewBaseRule("CAT-001", "Duplicate owner", "structure", SeverityError)}
}

// Check implements Rule.
func (r *CAT001) Check(vendors []*catalog.Vendor) []Violation {
	var out []Violation
	first := make(map[string]*catalog.Vendor)
	for _, v := range vendors {
		if v.Owner == "" {
			out = append(out, r.violation(v, "vendor has no owner", "set the owner field"))
			continue
		}
		key := strings.ToLower(v.Owner)
		if prev, dup := first[key]; dup {
			out = append(out, r.violation(v,
				fmt.Sprintf("owner %s is already defined in %s", v.Owner, sourceOf(prev)),
				"merge the definitions or rename one owner"))
			continue
		}
		first[key] = v
	}
	return out
}

// CAT008 flags providers that can never classify a part.
type CAT008 struct{ *BaseRule }

// NewCAT008 creates the inert provider rule.
func NewCAT008() *CAT008 {
	return &CAT008{NewBaseRule("CAT-008", "Provider without classification rules", "structure", SeverityWarning)}
}

// Check implements Rule.
func (r *CAT008) Check(vendors []*catalog.Vendor) []Violation {
	var out []Violation
	for _, v := range vendors {
		if len(v.Prefixes) == 0 && len(v.Patterns) == 0 {
			out = append(out, r.violation(v, "provider declares no prefixes or patterns",
				"add at least one pattern or remove the vendor"))
		}
	}
	return out
}

func sourceOf(v *catalog.Vendor) string {
	if v.Source != "" {
		return v.Source
	}
	return "an earlier definition"
}
