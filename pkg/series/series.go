// Package series orders the series (family) codes a provider extracts from
// part numbers.
//
// Comparing a required series with a candidate series yields one of three
// relations:
//
//   - Equal: same series, the trivially compatible baseline.
//   - Ranked: both belong to one family with a total order; the candidate is
//     admissible only when its rank is at least the required rank.
//   - Unrelated: different families. Substitution is rejected regardless of
//     any other attribute.
package series

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Relation is the relationship between two series codes.
type Relation uint8

const (
	// Unrelated means the series belong to different families.
	Unrelated Relation = iota
	// Equal means the series are identical.
	Equal
	// Ranked means both series belong to one ordered family.
	Ranked
)

func (r Relation) String() string {
	switch r {
	case Unrelated:
		return "unrelated"
	case Equal:
		return "equal"
	case Ranked:
		return "ranked"
	default:
		return fmt.Sprintf("unknown(%d)", r)
	}
}

// Comparison is the result of comparing a required and a candidate series.
type Comparison struct {
	Relation      Relation
	Family        string
	RequiredRank  int
	CandidateRank int
}

// Admits returns true when the candidate series may replace the required one.
func (c Comparison) Admits() bool {
	switch c.Relation {
	case Equal:
		return true
	case Ranked:
		return c.CandidateRank >= c.RequiredRank
	default:
		return false
	}
}

// Distance returns how many ranks the candidate sits above the required
// series. Equal series have distance 0.
func (c Comparison) Distance() int {
	if c.Relation != Ranked {
		return 0
	}
	return c.CandidateRank - c.RequiredRank
}

// Order compares series codes of one provider.
type Order interface {
	Compare(required, candidate string) Comparison
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Identity treats equal series as compatible and everything else as unrelated.
type Identity struct{}

// Compare implements Order.
func (Identity) Compare(required, candidate string) Comparison {
	if normalize(required) == normalize(candidate) {
		return Comparison{Relation: Equal}
	}
	return Comparison{Relation: Unrelated}
}

// ErrAmbiguousSeries is returned when one series is listed in more than one family.
var ErrAmbiguousSeries = errors.New("series listed in more than one family")

// Family is an explicitly ordered list of series, lowest rank first.
type Family struct {
	Name    string
	Members []string
}

type position struct {
	family string
	rank   int
}

// Families orders series by their position in explicit family tables.
type Families struct {
	index map[string]position
}

// NewFamilies builds a Families order. A series may belong to at most one
// family, otherwise ranks would not form a total order.
func NewFamilies(families ...Family) (*Families, error) {
	f := &Families{index: make(map[string]position)}
	for _, fam := range families {
		for rank, member := range fam.Members {
			m := normalize(member)
			if m == "" {
				continue
			}
			if prev, dup := f.index[m]; dup {
				return nil, fmt.Errorf("%w: %s in %q and %q", ErrAmbiguousSeries, m, prev.family, fam.Name)
			}
			f.index[m] = position{family: fam.Name, rank: rank}
		}
	}
	return f, nil
}

// Rank returns the family and rank of a series.
func (f *Families) Rank(s string) (string, int, bool) {
	p, ok := f.index[normalize(s)]
	return p.family, p.rank, ok
}

// Compare implements Order.
func (f *Families) Compare(required, candidate string) Comparison {
	if normalize(required) == normalize(candidate) {
		return Comparison{Relation: Equal}
	}
	rp, rok := f.index[normalize(required)]
	cp, cok := f.index[normalize(candidate)]
	if !rok || !cok || rp.family != cp.family {
		return Comparison{Relation: Unrelated}
	}
	return Comparison{
		Relation:      Ranked,
		Family:        rp.family,
		RequiredRank:  rp.rank,
		CandidateRank: cp.rank,
	}
}

// TrailingDigits ranks series that share an alphabetic stem by their model
// digits: QCC30 < QCC51 within stem QCC. Series must look like
// <letters><digits>[<letters>]; anything after the digits has to match
// exactly for the two to be in one family.
type TrailingDigits struct{}

func splitModel(s string) (stem string, digits int, tail string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if i == 0 || j == i {
		return "", 0, "", false
	}
	n, err := strconv.Atoi(s[i:j])
	if err != nil {
		return "", 0, "", false
	}
	return s[:i], n, s[j:], true
}

// Compare implements Order.
func (TrailingDigits) Compare(required, candidate string) Comparison {
	r, c := normalize(required), normalize(candidate)
	if r == c {
		return Comparison{Relation: Equal}
	}
	rs, rn, rt, rok := splitModel(r)
	cs, cn, ct, cok := splitModel(c)
	if !rok || !cok || rs != cs || rt != ct {
		return Comparison{Relation: Unrelated}
	}
	return Comparison{
		Relation:      Ranked,
		Family:        rs,
		RequiredRank:  rn,
		CandidateRank: cn,
	}
}

// Chain tries each order in turn and returns the first result that is not
// Unrelated.
type Chain []Order

// Compare implements Order.
func (ch Chain) Compare(required, candidate string) Comparison {
	for _, o := range ch {
		if c := o.Compare(required, candidate); c.Relation != Unrelated {
			return c
		}
	}
	if normalize(required) == normalize(candidate) {
		return Comparison{Relation: Equal}
	}
	return Comparison{Relation: Unrelated}
}

// Compile-time interface satisfaction checks.
var (
	_ Order = Identity{}
	_ Order = (*Families)(nil)
	_ Order = TrailingDigits{}
	_ Order = Chain(nil)
)
