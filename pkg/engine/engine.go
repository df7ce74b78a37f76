package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
	"github.com/mpn-kit/mpn-go/pkg/classify"
	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/resolve"
	"github.com/mpn-kit/mpn-go/pkg/trace"
)

// ErrNotFound is returned when no provider claims a part number.
var ErrNotFound = errors.New("part number not classified")

// Engine answers classification and replacement queries.
type Engine struct {
	catalog    *catalog.Catalog
	dispatcher *classify.Dispatcher
	classifier classify.Classifier
	cache      *classify.Cached
	resolver   *resolve.Resolver

	logger  *slog.Logger
	tracer  trace.Logger
	workers int
}

// New creates an engine over cat.
func New(cat *catalog.Catalog, cfg Config) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d, err := classify.NewDispatcher(cat.Taxonomy, cat.Providers, cfg.Logger)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		catalog:    cat,
		dispatcher: d,
		classifier: d,
		logger:     cfg.Logger,
		tracer:     cfg.Tracer,
		workers:    cfg.Workers,
	}
	if e.tracer == nil {
		e.tracer = trace.NoopLogger{}
	}
	if cfg.Cache {
		e.cache = classify.NewCached(d, cfg.CacheTTL, cfg.CacheCleanup)
		e.classifier = e.cache
	}
	e.resolver = resolve.New(e.classifier)

	e.debugLog("engine ready",
		"providers", len(cat.Providers),
		"rules", cat.Registry.Count(),
		"cache", cfg.Cache)
	return e, nil
}

func (e *Engine) debugLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) warnLog(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}

// Catalog returns the catalog the engine was built from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// FlushCache drops all cached classifications. It is a no-op without a cache.
func (e *Engine) FlushCache() {
	if e.cache != nil {
		e.cache.Flush()
	}
}

func (e *Engine) emit(ev trace.Event, start time.Time) {
	ev.Duration = time.Since(start)
	e.tracer.Log(ev)
}

func classificationEvent(res classify.Result) *trace.ClassificationEvent {
	return &trace.ClassificationEvent{
		Owner:   res.Owner,
		Type:    string(res.Type),
		Base:    string(res.Base),
		Series:  res.Series,
		Package: res.Package,
	}
}

func (e *Engine) classify(op trace.Operation, mpn string) (classify.Result, error) {
	start := time.Now()
	ev := trace.NewEvent(op)
	ev.MPN = mpn

	res, ok := e.classifier.Classify(mpn)
	if !ok {
		ev.Outcome = trace.OutcomeMiss
		e.emit(ev, start)
		return classify.Result{}, fmt.Errorf("%w: %q", ErrNotFound, mpn)
	}
	ev.Outcome = trace.OutcomeHit
	ev.Classification = classificationEvent(res)
	e.emit(ev, start)
	return res, nil
}

// Classify returns the classification of mpn, or ErrNotFound.
func (e *Engine) Classify(mpn string) (classify.Result, error) {
	return e.classify(trace.OpClassify, mpn)
}

// ClassifyAs classifies mpn, accepting only claims for want or one of its
// refinements. An unknown want returns component.ErrUnknownType.
func (e *Engine) ClassifyAs(mpn string, want component.Type) (classify.Result, error) {
	start := time.Now()
	ev := trace.NewEvent(trace.OpClassifyAs)
	ev.MPN = mpn

	t, err := e.catalog.Taxonomy.Parse(string(want))
	if err != nil {
		ev.Outcome = trace.OutcomeError
		ev.Error = &trace.ErrorEvent{Message: err.Error()}
		e.emit(ev, start)
		return classify.Result{}, err
	}

	res, ok := e.dispatcher.ClassifyAs(mpn, t)
	if !ok {
		ev.Outcome = trace.OutcomeMiss
		e.emit(ev, start)
		return classify.Result{}, fmt.Errorf("%w: %q as %s", ErrNotFound, mpn, t)
	}
	ev.Outcome = trace.OutcomeHit
	ev.Classification = classificationEvent(res)
	e.emit(ev, start)
	return res, nil
}

// ExtractSeries returns the series code of mpn as extracted by its owning
// provider. The code may be empty for a classified part.
func (e *Engine) ExtractSeries(mpn string) (string, error) {
	res, err := e.classify(trace.OpExtractSeries, mpn)
	if err != nil {
		return "", err
	}
	return res.Series, nil
}

// ExtractPackage returns the package designator of mpn as extracted by its
// owning provider. The designator may be empty for a classified part.
func (e *Engine) ExtractPackage(mpn string) (string, error) {
	res, err := e.classify(trace.OpExtractPackage, mpn)
	if err != nil {
		return "", err
	}
	return res.Package, nil
}

func replacementEvent(v resolve.Verdict) *trace.ReplacementEvent {
	re := &trace.ReplacementEvent{
		Replaceable:    v.Replaceable,
		Stage:          v.Stage.String(),
		Reason:         v.Reason,
		RequiredOwner:  v.Required.Owner,
		CandidateOwner: v.Candidate.Owner,
	}
	for _, u := range v.Unmet {
		re.Unmet = append(re.Unmet, u.String())
	}
	return re
}

// Explain decides whether candidate may replace required and reports the
// stage that decided. Empty or unclassified parts yield a negative verdict,
// not an error. Attribute kind mismatches are returned as errors.
func (e *Engine) Explain(required, candidate string) (resolve.Verdict, error) {
	start := time.Now()
	ev := trace.NewEvent(trace.OpReplacement)
	ev.MPN, ev.Candidate = required, candidate

	v, err := e.resolver.Explain(required, candidate)
	ev.Replacement = replacementEvent(v)
	switch {
	case err != nil:
		ev.Outcome = trace.OutcomeError
		ev.Error = &trace.ErrorEvent{Message: err.Error()}
		e.warnLog("replacement check failed", "required", required, "candidate", candidate, "error", err)
	case v.Replaceable:
		ev.Outcome = trace.OutcomeHit
	default:
		ev.Outcome = trace.OutcomeMiss
	}
	e.emit(ev, start)
	return v, err
}

// IsReplacement reports whether candidate may replace required.
func (e *Engine) IsReplacement(required, candidate string) (bool, error) {
	v, err := e.Explain(required, candidate)
	if err != nil {
		return false, err
	}
	return v.Replaceable, nil
}

// Candidate is an admissible substitute returned by Rank.
type Candidate struct {
	MPN      string
	Distance int
	Verdict  resolve.Verdict
}

// Rank returns the candidates that may replace required, closest series
// first. Candidates at the same distance keep their input order. An
// unclassified required part returns ErrNotFound.
func (e *Engine) Rank(required string, candidates ...string) ([]Candidate, error) {
	start := time.Now()
	ev := trace.NewEvent(trace.OpRank)
	ev.MPN = required

	req, ok := e.classifier.Classify(required)
	if !ok {
		ev.Outcome = trace.OutcomeMiss
		e.emit(ev, start)
		return nil, fmt.Errorf("%w: %q", ErrNotFound, required)
	}
	ev.Classification = classificationEvent(req)

	var out []Candidate
	for _, mpn := range candidates {
		cand, ok := e.classifier.Classify(mpn)
		if !ok {
			continue
		}
		v, err := e.resolver.ExplainResults(req, cand)
		if err != nil {
			ev.Outcome = trace.OutcomeError
			ev.Candidate = mpn
			ev.Error = &trace.ErrorEvent{Message: err.Error()}
			e.emit(ev, start)
			return nil, err
		}
		if v.Replaceable {
			out = append(out, Candidate{MPN: mpn, Distance: v.Series.Distance(), Verdict: v})
		}
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		return a.Distance - b.Distance
	})

	ev.Outcome = trace.OutcomeMiss
	if len(out) > 0 {
		ev.Outcome = trace.OutcomeHit
	}
	e.emit(ev, start)
	e.debugLog("ranked candidates", "required", required, "offered", len(candidates), "admitted", len(out))
	return out, nil
}
