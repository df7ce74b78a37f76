package capability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the comparison family of an attribute.
type Kind uint8

const (
	// KindOrdinal compares integer levels with >=.
	KindOrdinal Kind = iota + 1
	// KindSet compares feature sets with superset.
	KindSet
	// KindNumeric compares quantities with >= (or == when Exact).
	KindNumeric
)

func (k Kind) String() string {
	switch k {
	case KindOrdinal:
		return "ordinal"
	case KindSet:
		return "set"
	case KindNumeric:
		return "numeric"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ParseKind parses a kind name as written in catalogs.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ordinal":
		return KindOrdinal, nil
	case "set":
		return KindSet, nil
	case "numeric", "numericrange", "range":
		return KindNumeric, nil
	default:
		return 0, fmt.Errorf("unknown capability kind %q", s)
	}
}

// Attribute is a named, typed, comparable feature of a part.
type Attribute struct {
	Name string
	Kind Kind

	// Ordinal holds the value of KindOrdinal attributes.
	Ordinal int64
	// Number holds the value of KindNumeric attributes.
	Number float64
	// Members holds the sorted, upper-cased members of KindSet attributes.
	Members []string
	// Exact requires numeric equality instead of >=.
	Exact bool
}

// Ordinal creates an ordinal attribute.
func Ordinal(name string, v int64) Attribute {
	return Attribute{Name: name, Kind: KindOrdinal, Ordinal: v}
}

// Numeric creates a numeric attribute compared with >=.
func Numeric(name string, v float64) Attribute {
	return Attribute{Name: name, Kind: KindNumeric, Number: v}
}

// ExactNumeric creates a numeric attribute that must match exactly.
func ExactNumeric(name string, v float64) Attribute {
	return Attribute{Name: name, Kind: KindNumeric, Number: v, Exact: true}
}

// Set creates a set attribute. Members are upper-cased, de-duplicated and
// sorted; an empty set is valid and means "no features".
func Set(name string, members ...string) Attribute {
	seen := make(map[string]struct{}, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return Attribute{Name: name, Kind: KindSet, Members: out}
}

// Has returns true if a set attribute contains member.
func (a Attribute) Has(member string) bool {
	member = strings.ToUpper(member)
	i := sort.SearchStrings(a.Members, member)
	return i < len(a.Members) && a.Members[i] == member
}

// Value returns the attribute value formatted for display.
func (a Attribute) Value() string {
	switch a.Kind {
	case KindOrdinal:
		return strconv.FormatInt(a.Ordinal, 10)
	case KindNumeric:
		s := strconv.FormatFloat(a.Number, 'g', -1, 64)
		if a.Exact {
			return "=" + s
		}
		return s
	case KindSet:
		return "{" + strings.Join(a.Members, ",") + "}"
	default:
		return ""
	}
}

// String returns "name(kind)=value".
func (a Attribute) String() string {
	return fmt.Sprintf("%s(%s)=%s", a.Name, a.Kind, a.Value())
}

// Clone returns a deep copy of attrs.
func Clone(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		out[i] = a
		if a.Members != nil {
			out[i].Members = append([]string(nil), a.Members...)
		}
	}
	return out
}

// Index maps attributes by name. When a name repeats, the first one wins.
func Index(attrs []Attribute) map[string]Attribute {
	m := make(map[string]Attribute, len(attrs))
	for _, a := range attrs {
		if _, exists := m[a.Name]; !exists {
			m[a.Name] = a
		}
	}
	return m
}
