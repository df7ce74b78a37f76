package lint

import (
	"fmt"
	"strings"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
)

// Severity represents the severity level of a finding.
type Severity int

const (
	// SeverityError marks catalogs that will not build or will misclassify.
	SeverityError Severity = iota
	// SeverityWarning marks likely mistakes.
	SeverityWarning
	// SeverityInfo marks informational notes.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ParseSeverity parses a severity name.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

// Rule is a check over a set of vendor catalogs.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "CAT-001").
	ID() string
	// Name returns a human-readable name for the rule.
	Name() string
	// Category returns the rule category (e.g., "types", "patterns").
	Category() string
	// DefaultSeverity returns the default severity level.
	DefaultSeverity() Severity
	// Check applies the rule and returns any violations.
	Check(vendors []*catalog.Vendor) []Violation
}

// Violation is a single finding.
type Violation struct {
	RuleID   string
	Severity Severity
	Message  string
	// Owner is the vendor the finding belongs to, if any.
	Owner string
	// Source is the file the vendor was loaded from, if known.
	Source     string
	Suggestion string
}

// String returns a formatted representation of the violation.
func (v Violation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s", v.RuleID, v.Severity, v.Message)
	if v.Owner != "" {
		fmt.Fprintf(&sb, " (owner: %s)", v.Owner)
	}
	if v.Source != "" {
		fmt.Fprintf(&sb, " [%s]", v.Source)
	}
	if v.Suggestion != "" {
		fmt.Fprintf(&sb, " -> %s", v.Suggestion)
	}
	return sb.String()
}

// HasErrors returns true if any violation has severity Error.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FilterBySeverity returns violations at or above the given severity level.
func FilterBySeverity(violations []Violation, minSeverity Severity) []Violation {
	var filtered []Violation
	for _, v := range violations {
		if v.Severity <= minSeverity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// BaseRule provides the common Rule methods.
type BaseRule struct {
	id              string
	name            string
	category        string
	defaultSeverity Severity
}

// ID returns the rule ID.
func (r *BaseRule) ID() string { return r.id }

// Name returns the rule name.
func (r *BaseRule) Name() string { return r.name }

// Category returns the rule category.
func (r *BaseRule) Category() string { return r.category }

// DefaultSeverity returns the default severity.
func (r *BaseRule) DefaultSeverity() Severity { return r.defaultSeverity }

// NewBaseRule creates a BaseRule.
func NewBaseRule(id, name, category string, severity Severity) *BaseRule {
	return &BaseRule{
		id:              id,
		name:            name,
		category:        category,
		defaultSeverity: severity,
	}
}

// violation fills in the rule and vendor fields.
func (r *BaseRule) violation(v *catalog.Vendor, msg, suggestion string) Violation {
	out := Violation{
		RuleID:     r.id,
		Severity:   r.defaultSeverity,
		Message:    msg,
		Suggestion: suggestion,
	}
	if v != nil {
		out.Owner, out.Source = v.Owner, v.Source
	}
	return out
}
