package provider

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mpn-kit/mpn-go/pkg/capability"
	"github.com/mpn-kit/mpn-go/pkg/component"
	"github.com/mpn-kit/mpn-go/pkg/pattern"
	"github.com/mpn-kit/mpn-go/pkg/series"
)

var (
	// ErrInvalidConfig is returned by NewTable for unusable configuration.
	ErrInvalidConfig = errors.New("invalid provider config")

	// ErrInvalidValue is returned when a captured capability value cannot be decoded.
	ErrInvalidValue = errors.New("invalid capability value")
)

// FallbackSeries extracts the shortest identifiable prefix when no series
// rule applies: a run of letters, or digits followed by letters.
var FallbackSeries = regexp.MustCompile(`^(?:[A-Z]+|[0-9]+[A-Z]*)`)

// PrefixRule is a direct prefix claim checked before any registry lookup.
type PrefixRule struct {
	Prefix string
	Type   component.Type
}

// SeriesRule extracts a series code. When Template is set it is expanded
// against the match; otherwise the first capture group is used, or the whole
// match if there is none.
type SeriesRule struct {
	Pattern  *regexp.Regexp
	Template string
}

func (r SeriesRule) extract(mpn string) (string, bool) {
	idx := r.Pattern.FindStringSubmatchIndex(mpn)
	if idx == nil {
		return "", false
	}
	if r.Template != "" {
		return string(r.Pattern.ExpandString(nil, r.Template, mpn, idx)), true
	}
	if len(idx) >= 4 && idx[2] >= 0 {
		return mpn[idx[2]:idx[3]], true
	}
	return mpn[idx[0]:idx[1]], true
}

// PackageTable maps part number suffixes to package designators.
type PackageTable struct {
	// Strip lists packaging suffixes (tape and reel, lead-free markers)
	// removed before lookup.
	Strip []string

	// Suffixes maps a trailing code to a package name. The longest matching
	// code wins. An empty name means the code itself is the package.
	Suffixes map[string]string

	// Match, when set, takes precedence over Suffixes. Its first capture
	// group is looked up in Group, or returned as-is when Group is nil.
	Match *regexp.Regexp
	Group map[string]string
}

func (p PackageTable) strip(mpn string) string {
	strip := append([]string(nil), p.Strip...)
	sort.Slice(strip, func(i, j int) bool { return len(strip[i]) > len(strip[j]) })
	for _, s := range strip {
		if s != "" && len(mpn) > len(s) && strings.HasSuffix(mpn, s) {
			return mpn[:len(mpn)-len(s)]
		}
	}
	return mpn
}

func (p PackageTable) extract(mpn string) string {
	s := p.strip(mpn)

	if p.Match != nil {
		m := p.Match.FindStringSubmatch(s)
		if len(m) < 2 || m[1] == "" {
			return ""
		}
		if p.Group == nil {
			return m[1]
		}
		return p.Group[m[1]]
	}

	best := ""
	for code := range p.Suffixes {
		if len(code) > len(best) && len(s) > len(code) && strings.HasSuffix(s, code) {
			best = code
		}
	}
	if best == "" {
		return ""
	}
	if name := p.Suffixes[best]; name != "" {
		return name
	}
	return best
}

// Encoding selects how a captured capability value is decoded.
type Encoding uint8

const (
	// EncodingDecimal parses the capture as a decimal number.
	EncodingDecimal Encoding = iota
	// EncodingEIA3 decodes the three-character EIA value code used for
	// passives: two significant digits and a power-of-ten multiplier
	// ("104" = 100000), or an R marking the decimal point ("4R7" = 4.7).
	EncodingEIA3
)

// ParseEncoding parses an encoding name. The empty string is decimal.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "decimal":
		return EncodingDecimal, nil
	case "eia3", "eia":
		return EncodingEIA3, nil
	default:
		return 0, fmt.Errorf("%w: unknown encoding %q", ErrInvalidConfig, s)
	}
}

// DecodeEIA3 decodes a three-character EIA value code.
func DecodeEIA3(code string) (float64, error) {
	if len(code) != 3 {
		return 0, fmt.Errorf("%w: %q is not a 3-character code", ErrInvalidValue, code)
	}
	if i := strings.IndexByte(code, 'R'); i >= 0 {
		v, err := strconv.ParseFloat(code[:i]+"."+code[i+1:], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, code)
		}
		return v, nil
	}
	sig, err := strconv.Atoi(code[:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, code)
	}
	exp := int(code[2] - '0')
	if exp < 0 || exp > 9 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, code)
	}
	return float64(sig) * math.Pow10(exp), nil
}

// SetMember adds Name to a set attribute when Pattern matches.
type SetMember struct {
	Name    string
	Pattern *regexp.Regexp
}

// CapabilityRule derives one attribute from a part number.
//
// Set rules always produce an attribute, possibly empty. Ordinal and numeric
// rules produce one only when Pattern matches (and the capture decodes), or
// when Default is set.
type CapabilityRule struct {
	Name     string
	Kind     capability.Kind
	Exact    bool
	Pattern  *regexp.Regexp
	Lookup   map[string]float64
	Encoding Encoding
	Scale    float64
	Default  *float64
	Members  []SetMember
}

func (r CapabilityRule) value(mpn string) (float64, bool) {
	if r.Pattern == nil {
		return 0, false
	}
	m := r.Pattern.FindStringSubmatch(mpn)
	if m == nil {
		return 0, false
	}
	raw := m[0]
	if len(m) > 1 {
		raw = m[1]
	}

	var v float64
	switch {
	case r.Lookup != nil:
		lv, ok := r.Lookup[raw]
		if !ok {
			return 0, false
		}
		v = lv
	case r.Encoding == EncodingEIA3:
		ev, err := DecodeEIA3(raw)
		if err != nil {
			return 0, false
		}
		v = ev
	default:
		pv, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		v = pv
	}
	if r.Scale != 0 {
		v *= r.Scale
	}
	return v, true
}

// Evaluate returns the attribute for mpn.
func (r CapabilityRule) Evaluate(mpn string) (capability.Attribute, bool) {
	if r.Kind == capability.KindSet {
		var members []string
		for _, m := range r.Members {
			if m.Pattern != nil && m.Pattern.MatchString(mpn) {
				members = append(members, m.Name)
			}
		}
		return capability.Set(r.Name, members...), true
	}

	v, ok := r.value(mpn)
	if !ok {
		if r.Default == nil {
			return capability.Attribute{}, false
		}
		v = *r.Default
	}

	switch r.Kind {
	case capability.KindOrdinal:
		return capability.Ordinal(r.Name, int64(math.Round(v))), true
	case capability.KindNumeric:
		a := capability.Numeric(r.Name, v)
		a.Exact = r.Exact
		return a, true
	default:
		return capability.Attribute{}, false
	}
}

// CrossReference records a known substitution decision. Required and
// Candidate are matched against normalized part numbers. CandidateOwner
// restricts the candidate side to one owner; empty means any owner.
// Deny turns the entry into an explicit rejection.
type CrossReference struct {
	Required       *regexp.Regexp
	Candidate      *regexp.Regexp
	CandidateOwner string
	Bidirectional  bool
	Deny           bool
}

func (x CrossReference) matches(owner string, required, candidate Part) bool {
	if x.Required == nil || x.Candidate == nil {
		return false
	}
	if x.CandidateOwner != "" && candidate.Owner != x.CandidateOwner {
		return false
	}
	if required.Owner != owner && candidate.Owner != owner {
		return false
	}
	return x.Required.MatchString(required.MPN) && x.Candidate.MatchString(candidate.MPN)
}

// TableConfig configures a Table provider.
type TableConfig struct {
	ID       string
	Name     string
	Priority int
	Types    []component.Type

	Prefixes        []PrefixRule
	Series          []SeriesRule
	Order           series.Order
	Packages        PackageTable
	Capabilities    []CapabilityRule
	CrossReferences []CrossReference
}

// Table is a data-driven provider. Classification rules live in the shared
// pattern registry under the provider's id; everything else is held in the
// configuration.
type Table struct {
	Base
	cfg TableConfig
	reg *pattern.Registry
}

// NewTable creates a table provider over reg.
func NewTable(cfg TableConfig, reg *pattern.Registry) (*Table, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidConfig)
	}
	if reg == nil {
		return nil, fmt.Errorf("%w: %s: nil registry", ErrInvalidConfig, cfg.ID)
	}
	for _, s := range cfg.Series {
		if s.Pattern == nil {
			return nil, fmt.Errorf("%w: %s: series rule without pattern", ErrInvalidConfig, cfg.ID)
		}
	}
	for _, c := range cfg.Capabilities {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: %s: capability without name", ErrInvalidConfig, cfg.ID)
		}
		if c.Kind != capability.KindSet && c.Pattern == nil && c.Default == nil {
			return nil, fmt.Errorf("%w: %s: capability %s has no pattern", ErrInvalidConfig, cfg.ID, c.Name)
		}
	}
	if cfg.Order == nil {
		cfg.Order = series.Identity{}
	}

	prefixes := append([]PrefixRule(nil), cfg.Prefixes...)
	for i := range prefixes {
		prefixes[i].Prefix = pattern.Normalize(prefixes[i].Prefix)
	}
	// Longest prefix first so the most specific claim wins.
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i].Prefix) > len(prefixes[j].Prefix)
	})
	cfg.Prefixes = prefixes

	return &Table{
		Base: NewBase(cfg.ID, cfg.Name, cfg.Priority, cfg.Types...),
		cfg:  cfg,
		reg:  reg,
	}, nil
}

// Classify implements Provider.
func (t *Table) Classify(mpn string) (component.Type, bool) {
	n := pattern.Normalize(mpn)
	if n == "" {
		return "", false
	}
	for _, p := range t.cfg.Prefixes {
		if p.Prefix != "" && strings.HasPrefix(n, p.Prefix) {
			return p.Type, true
		}
	}
	rule, ok := t.reg.FirstMatch(n, t.ID())
	if !ok {
		return "", false
	}
	return rule.Type, true
}

// ExtractSeries implements Provider.
func (t *Table) ExtractSeries(mpn string) string {
	n := pattern.Normalize(mpn)
	if n == "" {
		return ""
	}
	for _, r := range t.cfg.Series {
		if s, ok := r.extract(n); ok && s != "" {
			return s
		}
	}
	return FallbackSeries.FindString(n)
}

// ExtractPackage implements Provider.
func (t *Table) ExtractPackage(mpn string) string {
	n := pattern.Normalize(mpn)
	if n == "" {
		return ""
	}
	return t.cfg.Packages.extract(n)
}

// Capabilities implements Provider.
func (t *Table) Capabilities(mpn string) []capability.Attribute {
	n := pattern.Normalize(mpn)
	if n == "" {
		return nil
	}
	var attrs []capability.Attribute
	for _, r := range t.cfg.Capabilities {
		if a, ok := r.Evaluate(n); ok {
			attrs = append(attrs, a)
		}
	}
	return attrs
}

// SeriesOrder implements Provider.
func (t *Table) SeriesOrder() series.Order {
	return t.cfg.Order
}

// CapabilityRules returns the configured capability rules.
func (t *Table) CapabilityRules() []CapabilityRule {
	return append([]CapabilityRule(nil), t.cfg.Capabilities...)
}

// Replacement implements Replacer using the cross-reference table. A
// bidirectional entry also applies with the roles swapped.
func (t *Table) Replacement(required, candidate Part) (ok bool, decided bool) {
	required.MPN = pattern.Normalize(required.MPN)
	candidate.MPN = pattern.Normalize(candidate.MPN)

	for _, x := range t.cfg.CrossReferences {
		if x.matches(t.ID(), required, candidate) {
			return !x.Deny, true
		}
		if x.Bidirectional && x.matches(t.ID(), candidate, required) {
			return !x.Deny, true
		}
	}
	return false, false
}

// Compile-time interface satisfaction checks.
var (
	_ Provider = (*Table)(nil)
	_ Replacer = (*Table)(nil)
)
