package capability

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrKindMismatch indicates that two parts define the same attribute name
// with different kinds. It signals a catalog inconsistency, not a bad part.
var ErrKindMismatch = errors.New("capability kind mismatch")

// KindMismatchError describes a kind mismatch for one attribute.
type KindMismatchError struct {
	Name      string
	Required  Kind
	Candidate Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%v: attribute %q is %s on the required part but %s on the candidate",
		ErrKindMismatch, e.Name, e.Required, e.Candidate)
}

// Unwrap allows errors.Is(err, ErrKindMismatch).
func (e *KindMismatchError) Unwrap() error {
	return ErrKindMismatch
}

// Unmet describes a required attribute the candidate does not satisfy.
type Unmet struct {
	Name   string
	Reason string
}

func (u Unmet) String() string {
	return u.Name + ": " + u.Reason
}

// Report is the outcome of comparing two attribute lists.
type Report struct {
	Satisfied bool
	Unmet     []Unmet
}

// relative tolerance for numeric comparisons of decoded values
const epsilon = 1e-9

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

// Satisfies reports whether cand dominates req. The reason is empty when
// satisfied. Both attributes must share a kind.
func Satisfies(req, cand Attribute) (bool, string, error) {
	if req.Kind != cand.Kind {
		return false, "", &KindMismatchError{Name: req.Name, Required: req.Kind, Candidate: cand.Kind}
	}

	switch req.Kind {
	case KindOrdinal:
		if cand.Ordinal < req.Ordinal {
			return false, fmt.Sprintf("level %d is below required %d", cand.Ordinal, req.Ordinal), nil
		}
	case KindSet:
		var missing []string
		for _, m := range req.Members {
			if !cand.Has(m) {
				missing = append(missing, m)
			}
		}
		if len(missing) > 0 {
			return false, "missing " + strings.Join(missing, ", "), nil
		}
	case KindNumeric:
		if req.Exact {
			if !nearlyEqual(cand.Number, req.Number) {
				return false, fmt.Sprintf("value %s must equal %s", cand.Value(), req.Value()), nil
			}
		} else if cand.Number < req.Number && !nearlyEqual(cand.Number, req.Number) {
			return false, fmt.Sprintf("value %s is below required %s", cand.Value(), req.Value()), nil
		}
	default:
		return false, "", fmt.Errorf("attribute %q has invalid kind %s", req.Name, req.Kind)
	}
	return true, "", nil
}

// Compare checks that candidate dominates every attribute of required.
// A required attribute the candidate does not declare is unmet. The first
// kind mismatch aborts the comparison with an error.
func Compare(required, candidate []Attribute) (Report, error) {
	cand := Index(candidate)
	seen := make(map[string]struct{}, len(required))
	report := Report{Satisfied: true}

	for _, req := range required {
		if _, dup := seen[req.Name]; dup {
			continue
		}
		seen[req.Name] = struct{}{}

		c, ok := cand[req.Name]
		if !ok {
			report.Satisfied = false
			report.Unmet = append(report.Unmet, Unmet{Name: req.Name, Reason: "not declared by candidate"})
			continue
		}

		ok, reason, err := Satisfies(req, c)
		if err != nil {
			report.Satisfied = false
			return report, err
		}
		if !ok {
			report.Satisfied = false
			report.Unmet = append(report.Unmet, Unmet{Name: req.Name, Reason: reason})
		}
	}

	return report, nil
}
