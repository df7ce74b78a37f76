package resolve

import (
	"errors"
	"fmt"

	"github.com/mpn-kit/mpn-go/pkg/capability"
	"github.com/mpn-kit/mpn-go/pkg/classify"
	"github.com/mpn-kit/mpn-go/pkg/pattern"
	"github.com/mpn-kit/mpn-go/pkg/provider"
	"github.com/mpn-kit/mpn-go/pkg/series"
)

// ErrUnknownProvider is returned when a result names an owner the
// classifier does not know.
var ErrUnknownProvider = errors.New("unknown provider")

// Stage identifies the step that produced a verdict. Stages are listed in
// evaluation order.
type Stage uint8

const (
	StageInput Stage = iota
	StageClassify
	StageIdentity
	StageOverride
	StageOwner
	StageSeries
	StageCapability
	StageAdmitted
)

var stageNames = map[Stage]string{
	StageInput:      "input",
	StageIdentity:   "identity",
	StageClassify:   "classify",
	StageOverride:   "override",
	StageOwner:      "owner",
	StageSeries:     "series",
	StageCapability: "capability",
	StageAdmitted:   "admitted",
}

func (s Stage) String() string {
	if n, ok := stageNames[s]; ok {
		return n
	}
	return fmt.Sprintf("stage(%d)", s)
}

// Verdict explains a replacement decision.
type Verdict struct {
	Replaceable bool
	Stage       Stage
	Reason      string

	// Series is set once the series stage ran.
	Series series.Comparison
	// Unmet lists failed capability checks.
	Unmet []capability.Unmet

	Required  classify.Result
	Candidate classify.Result
}

// Resolver decides replacements over a classifier.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	classifier classify.Classifier
}

// New creates a resolver.
func New(c classify.Classifier) *Resolver {
	return &Resolver{classifier: c}
}

// IsReplacement reports whether candidate may replace required.
func (r *Resolver) IsReplacement(required, candidate string) (bool, error) {
	v, err := r.Explain(required, candidate)
	if err != nil {
		return false, err
	}
	return v.Replaceable, nil
}

// Explain classifies both part numbers and returns the full verdict.
func (r *Resolver) Explain(required, candidate string) (Verdict, error) {
	rn, cn := pattern.Normalize(required), pattern.Normalize(candidate)
	if rn == "" || cn == "" {
		return Verdict{Stage: StageInput, Reason: "empty part number"}, nil
	}

	req, ok := r.classifier.Classify(required)
	if !ok {
		return Verdict{Stage: StageClassify, Reason: fmt.Sprintf("required part %s is not classified", rn)}, nil
	}
	if rn == cn {
		cand := req.Clone()
		cand.MPN = candidate
		return Verdict{
			Replaceable: true,
			Stage:       StageIdentity,
			Reason:      "identical part numbers",
			Required:    req,
			Candidate:   cand,
		}, nil
	}
	cand, ok := r.classifier.Classify(candidate)
	if !ok {
		return Verdict{
			Stage:    StageClassify,
			Reason:   fmt.Sprintf("candidate part %s is not classified", cn),
			Required: req,
		}, nil
	}
	return r.ExplainResults(req, cand)
}

// ExplainResults decides on already classified parts.
func (r *Resolver) ExplainResults(req, cand classify.Result) (Verdict, error) {
	v := Verdict{Required: req, Candidate: cand}

	if req.Normalized == "" || cand.Normalized == "" {
		v.Stage, v.Reason = StageInput, "empty part number"
		return v, nil
	}
	if req.Normalized == cand.Normalized {
		v.Replaceable, v.Stage, v.Reason = true, StageIdentity, "identical part numbers"
		return v, nil
	}

	reqProvider, ok := r.classifier.Provider(req.Owner)
	if !ok {
		return v, fmt.Errorf("%w: %s", ErrUnknownProvider, req.Owner)
	}

	if ok, decided, owner := r.override(reqProvider, req, cand); decided {
		v.Replaceable, v.Stage = ok, StageOverride
		if ok {
			v.Reason = "listed as a replacement by " + owner
		} else {
			v.Reason = "listed as not a replacement by " + owner
		}
		return v, nil
	}

	if req.Owner != cand.Owner {
		v.Stage = StageOwner
		v.Reason = fmt.Sprintf("owners differ: %s, %s", req.Owner, cand.Owner)
		return v, nil
	}

	v.Series = reqProvider.SeriesOrder().Compare(req.Series, cand.Series)
	if !v.Series.Admits() {
		v.Stage = StageSeries
		switch v.Series.Relation {
		case series.Ranked:
			v.Reason = fmt.Sprintf("series %s ranks below %s", cand.Series, req.Series)
		default:
			v.Reason = fmt.Sprintf("series %s and %s are unrelated", req.Series, cand.Series)
		}
		return v, nil
	}

	report, err := capability.Compare(req.Capabilities, cand.Capabilities)
	if err != nil {
		v.Stage, v.Reason = StageCapability, err.Error()
		return v, fmt.Errorf("compare %s with %s: %w", req.Normalized, cand.Normalized, err)
	}
	if !report.Satisfied {
		v.Stage, v.Unmet = StageCapability, report.Unmet
		v.Reason = fmt.Sprintf("%d capability requirement(s) unmet", len(report.Unmet))
		return v, nil
	}

	v.Replaceable, v.Stage = true, StageAdmitted
	v.Reason = "series and capabilities admit the candidate"
	return v, nil
}

// override consults the required part's provider, then the candidate's when
// the owners differ.
func (r *Resolver) override(reqProvider provider.Provider, req, cand classify.Result) (ok, decided bool, owner string) {
	if rp, isReplacer := reqProvider.(provider.Replacer); isReplacer {
		if ok, decided := rp.Replacement(req.Part(), cand.Part()); decided {
			return ok, true, req.Owner
		}
	}
	if req.Owner == cand.Owner {
		return false, false, ""
	}
	cp, found := r.classifier.Provider(cand.Owner)
	if !found {
		return false, false, ""
	}
	if rp, isReplacer := cp.(provider.Replacer); isReplacer {
		if ok, decided := rp.Replacement(req.Part(), cand.Part()); decided {
			return ok, true, cand.Owner
		}
	}
	return false, false, ""
}
