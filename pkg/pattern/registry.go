package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/mpn-kit/mpn-go/pkg/component"
)

var (
	// ErrInvalidMatcher is returned when a rule expression cannot be compiled.
	ErrInvalidMatcher = errors.New("invalid matcher")

	// ErrSealed is returned when registering into a sealed registry.
	ErrSealed = errors.New("registry is sealed")
)

// Matcher reports whether a normalized part number matches.
// *regexp.Regexp satisfies Matcher.
type Matcher interface {
	MatchString(s string) bool
}

// Rule is a single registered matching rule. Rules are immutable.
type Rule struct {
	// Owner is the id of the provider that registered the rule.
	Owner string
	// Type is the component type the rule identifies.
	Type component.Type
	// Expr is the source expression, empty for pre-built matchers.
	Expr string
	// Seq is the rule's position within its owner's rules.
	Seq int

	matcher Matcher
}

// Match reports whether the rule matches the part number.
func (r Rule) Match(mpn string) bool {
	return r.matcher.MatchString(Normalize(mpn))
}

// Normalize returns the canonical form of a part number: whitespace removed
// and letters upper-cased.
func Normalize(mpn string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, mpn))
}

// Compile compiles a rule expression case-insensitively.
func Compile(expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidMatcher)
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidMatcher, expr, err)
	}
	return re, nil
}

// Registry holds matching rules keyed by owner and type.
//
// A registry is populated at startup and then sealed; after Seal all
// methods are read-only and safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	taxonomy *component.Taxonomy
	all      []Rule
	byOwner  map[string][]Rule
	owners   []string // Maintain insertion order for deterministic iteration
	sealed   bool
}

// NewRegistry creates an empty registry. When tx is non-nil, a rule for a
// refinement type also satisfies queries for any of its ancestors.
func NewRegistry(tx *component.Taxonomy) *Registry {
	return &Registry{
		taxonomy: tx,
		byOwner:  make(map[string][]Rule),
	}
}

// Register compiles expr and appends a rule for (owner, t).
// Invalid expressions are rejected here, never at query time.
func (r *Registry) Register(owner string, t component.Type, expr string) error {
	re, err := Compile(expr)
	if err != nil {
		return fmt.Errorf("owner %s, type %s: %w", owner, t, err)
	}
	return r.add(owner, t, expr, re)
}

// MustRegister is like Register but panics on error. Intended for static
// rule tables compiled into a binary.
func (r *Registry) MustRegister(owner string, t component.Type, expr string) {
	if err := r.Register(owner, t, expr); err != nil {
		panic(err)
	}
}

// RegisterMatcher appends a rule backed by a pre-built matcher. The matcher
// receives normalized (upper-case) part numbers.
func (r *Registry) RegisterMatcher(owner string, t component.Type, m Matcher) error {
	if m == nil {
		return fmt.Errorf("owner %s, type %s: %w: nil matcher", owner, t, ErrInvalidMatcher)
	}
	return r.add(owner, t, "", m)
}

func (r *Registry) add(owner string, t component.Type, expr string, m Matcher) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrSealed
	}

	existing, known := r.byOwner[owner]
	if !known {
		r.owners = append(r.owners, owner)
	}
	rule := Rule{
		Owner:   owner,
		Type:    t,
		Expr:    expr,
		Seq:     len(existing),
		matcher: m,
	}
	r.byOwner[owner] = append(existing, rule)
	r.all = append(r.all, rule)
	return nil
}

// Seal prevents further registration.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed returns true once Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

func (r *Registry) covers(ruleType, target component.Type) bool {
	if r.taxonomy == nil {
		return ruleType == target
	}
	return r.taxonomy.Is(ruleType, target)
}

// MatchAny returns true if any owner's rule for t matches mpn.
func (r *Registry) MatchAny(mpn string, t component.Type) bool {
	n := Normalize(mpn)
	if n == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.all {
		if r.covers(rule.Type, t) && rule.matcher.MatchString(n) {
			return true
		}
	}
	return false
}

// MatchForOwner returns true only if a rule registered by owner for t matches.
func (r *Registry) MatchForOwner(mpn string, t component.Type, owner string) bool {
	n := Normalize(mpn)
	if n == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.byOwner[owner] {
		if r.covers(rule.Type, t) && rule.matcher.MatchString(n) {
			return true
		}
	}
	return false
}

// FirstMatch returns the first rule registered by owner, in registration
// order, that matches mpn.
func (r *Registry) FirstMatch(mpn string, owner string) (Rule, bool) {
	n := Normalize(mpn)
	if n == "" {
		return Rule{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rule := range r.byOwner[owner] {
		if rule.matcher.MatchString(n) {
			return rule, true
		}
	}
	return Rule{}, false
}

// MatchingOwners returns, in registration order, the owners with at least
// one rule for t that matches mpn.
func (r *Registry) MatchingOwners(mpn string, t component.Type) []string {
	n := Normalize(mpn)
	if n == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var owners []string
	for _, owner := range r.owners {
		for _, rule := range r.byOwner[owner] {
			if r.covers(rule.Type, t) && rule.matcher.MatchString(n) {
				owners = append(owners, owner)
				break
			}
		}
	}
	return owners
}

// Rules returns the rules registered by owner in registration order.
func (r *Registry) Rules(owner string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Rule(nil), r.byOwner[owner]...)
}

// Owners returns all owners in the order they first registered a rule.
func (r *Registry) Owners() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.owners...)
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.all)
}
