package classify

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/pattern"
	"github.com/mpn-kit/mpn-go/pkg/provider"
)

var (
	// ErrDuplicateProvider is returned when two providers share an id.
	ErrDuplicateProvider = errors.New("duplicate provider id")

	// ErrNoProviders is returned when a dispatcher is built without providers.
	ErrNoProviders = errors.New("no providers")
)

type entry struct {
	p         provider.Provider
	supported map[component.Type]struct{}
}

// Dispatcher is the Classifier over a fixed set of providers.
// It is immutable and safe for concurrent use.
type Dispatcher struct {
	taxonomy *component.Taxonomy
	entries  []entry
	byID     map[string]int
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher. Provider order is registration order
// and breaks ties between equal claims. A nil taxonomy means
// component.Default(); a nil logger disables debug output.
func NewDispatcher(tx *component.Taxonomy, providers []provider.Provider, logger *slog.Logger) (*Dispatcher, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	if tx == nil {
		tx = component.Default()
	}

	d := &Dispatcher{
		taxonomy: tx,
		byID:     make(map[string]int, len(providers)),
		logger:   logger,
	}
	for _, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("nil provider at index %d", len(d.entries))
		}
		if _, dup := d.byID[p.ID()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProvider, p.ID())
		}
		e := entry{p: p, supported: make(map[component.Type]struct{})}
		for _, t := range p.SupportedTypes() {
			e.supported[t] = struct{}{}
		}
		d.byID[p.ID()] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d, nil
}

func (d *Dispatcher) debugLog(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}

// Taxonomy returns the taxonomy used for precedence.
func (d *Dispatcher) Taxonomy() *component.Taxonomy {
	return d.taxonomy
}

// Provider implements Classifier.
func (d *Dispatcher) Provider(id string) (provider.Provider, bool) {
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return d.entries[i].p, true
}

// Providers returns the providers in registration order.
func (d *Dispatcher) Providers() []provider.Provider {
	out := make([]provider.Provider, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.p
	}
	return out
}

// claim asks one provider for a claim and filters it.
func (d *Dispatcher) claim(e entry, mpn string, want component.Type) (Claim, bool) {
	t, ok := e.p.Classify(mpn)
	if !ok {
		return Claim{}, false
	}
	if _, ok := e.supported[t]; !ok {
		d.debugLog("ignoring claim for undeclared type", "owner", e.p.ID(), "type", t, "mpn", mpn)
		return Claim{}, false
	}
	depth := d.taxonomy.Depth(t)
	if depth < 0 {
		d.debugLog("ignoring claim for unknown type", "owner", e.p.ID(), "type", t, "mpn", mpn)
		return Claim{}, false
	}
	if want != "" && !d.taxonomy.Is(t, want) {
		return Claim{}, false
	}
	return Claim{Owner: e.p.ID(), Type: t, Priority: e.p.Priority(), Depth: depth}, true
}

// beats reports whether a takes precedence over b.
func beats(a, b Claim) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.Depth > b.Depth
}

// couldSatisfy reports whether any declared type of e is want or one of
// its refinements.
func (d *Dispatcher) couldSatisfy(e entry, want component.Type) bool {
	for t := range e.supported {
		if d.taxonomy.Is(t, want) {
			return true
		}
	}
	return false
}

func (d *Dispatcher) dispatch(mpn string, want component.Type) (Result, bool) {
	n := pattern.Normalize(mpn)
	if n == "" {
		return Result{}, false
	}

	var (
		best  Claim
		found bool
	)
	for _, e := range d.entries {
		if want != "" && !d.couldSatisfy(e, want) {
			continue
		}
		c, ok := d.claim(e, n, want)
		if !ok {
			continue
		}
		if !found || beats(c, best) {
			best, found = c, true
		}
	}
	if !found {
		return Result{}, false
	}

	p := d.entries[d.byID[best.Owner]].p
	base, _ := d.taxonomy.Base(best.Type)
	return Result{
		MPN:          mpn,
		Normalized:   n,
		Type:         best.Type,
		Base:         base,
		Owner:        best.Owner,
		Series:       p.ExtractSeries(n),
		Package:      p.ExtractPackage(n),
		Capabilities: p.Capabilities(n),
	}, true
}

// Classify implements Classifier.
func (d *Dispatcher) Classify(mpn string) (Result, bool) {
	return d.dispatch(mpn, "")
}

// ClassifyAs classifies mpn considering only claims of type want or one of
// its refinements. Providers that declare no such type are not consulted.
func (d *Dispatcher) ClassifyAs(mpn string, want component.Type) (Result, bool) {
	if !d.taxonomy.Known(want) {
		return Result{}, false
	}
	return d.dispatch(mpn, want)
}

// Candidates returns every accepted claim on mpn, best first.
func (d *Dispatcher) Candidates(mpn string) []Claim {
	n := pattern.Normalize(mpn)
	if n == "" {
		return nil
	}
	var claims []Claim
	for _, e := range d.entries {
		if c, ok := d.claim(e, n, ""); ok {
			claims = append(claims, c)
		}
	}
	slices.SortStableFunc(claims, func(a, b Claim) int {
		switch {
		case beats(a, b):
			return -1
		case beats(b, a):
			return 1
		}
		return 0
	})
	return claims
}

var _ Classifier = (*Dispatcher)(nil)
