package lint

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpn-kit/mpn-go/pkg/catalog"
)

func ids(violations []Violation) []string {
	out := make([]string, len(violations))
	for i, v := range violations {
		out[i] = v.RuleID
	}
	return out
}

func TestBuiltinCatalogIsClean(t *testing.T) {
	vendors, err := catalog.BuiltinVendors()
	require.NoError(t, err)

	violations := NewDefaultRegistry().RunRules(vendors)
	for _, v := range violations {
		t.Errorf("unexpected violation: %s", v)
	}
}

func TestCAT001DuplicateOwner(t *testing.T) {
	vendors := []*catalog.Vendor{
		{Owner: "acme", Source: "a.yaml"},
		{Owner: "ACME", Source: "b.yaml"},
		{Owner: ""},
	}
	got := NewCAT001().Check(vendors)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, "a.yaml")
	assert.Equal(t, "b.yaml", got[0].Source)
	assert.Contains(t, got[1].Message, "no owner")
}

func TestCAT002ClaimOutsideSupportedTypes(t *testing.T) {
	v := &catalog.Vendor{
		Owner:          "acme",
		SupportedTypes: []string{"LOGIC_IC"},
		Prefixes:       []catalog.PrefixDef{{Prefix: "AC", Type: "logic_ic"}},
		Patterns:       []catalog.PatternDef{{Type: "MEMORY", Expr: "^AM"}},
	}
	got := NewCAT002().Check([]*catalog.Vendor{v})
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "MEMORY")

	// Derived supported types cannot disagree.
	v.SupportedTypes = nil
	assert.Empty(t, NewCAT002().Check([]*catalog.Vendor{v}))
}

func TestCAT003UnknownType(t *testing.T) {
	vendors := []*catalog.Vendor{
		{
			Owner: "a",
			Types: []catalog.TypeDef{
				{Name: "FAST_LOGIC", Refines: "CUSTOM_LOGIC"},
				{Name: "ORPHAN", Refines: "NOWHERE"},
			},
			Patterns: []catalog.PatternDef{{Type: "FAST_LOGIC", Expr: "^F"}, {Type: "GADGET", Expr: "^G"}},
		},
		{
			Owner: "b",
			Types: []catalog.TypeDef{{Name: "CUSTOM_LOGIC", Refines: "LOGIC_IC"}},
		},
	}
	got := NewCAT003().Check(vendors)
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, "NOWHERE")
	assert.Contains(t, got[1].Message, "GADGET")
}

func TestCAT003AgreesWithBuild(t *testing.T) {
	vendors := []*catalog.Vendor{
		{Owner: "a", Types: []catalog.TypeDef{{Name: "X", Refines: "IC"}}},
		{Owner: "b", Types: []catalog.TypeDef{{Name: "X", Refines: "CAPACITOR"}}},
	}
	_, err := catalog.Build(vendors...)
	require.Error(t, err)

	got := NewCAT003().Check(vendors)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Owner)
	assert.Contains(t, got[0].Message, "X")
	assert.Contains(t, got[0].Suggestion, "one parent")
	assert.True(t, HasErrors(got))
}

func TestCAT004KindConflict(t *testing.T) {
	vendors := []*catalog.Vendor{
		{Owner: "a", Capabilities: []catalog.CapabilityDef{{Name: "voltage", Kind: "numeric"}}},
		{Owner: "b", Capabilities: []catalog.CapabilityDef{
			{Name: "voltage", Kind: "ordinal"},
			{Name: "grade", Kind: "fuzzy"},
		}},
	}
	got := NewCAT004().Check(vendors)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Owner)
	assert.Contains(t, got[0].Message, "voltage")
	assert.Contains(t, got[1].Message, "grade")
}

func TestCAT005AmbiguousFamily(t *testing.T) {
	v := &catalog.Vendor{
		Owner: "a",
		Series: catalog.SeriesDef{
			Families: []catalog.FamilyDef{
				{Name: "x", Members: []string{"AB", "AC"}},
				{Name: "y", Members: []string{"ac"}},
				{Name: "z"},
			},
			Rank: "alphabetical",
		},
	}
	got := NewCAT005().Check([]*catalog.Vendor{v})
	require.Len(t, got, 3)
	assert.Contains(t, got[0].Message, "families x and y")
	assert.Contains(t, got[1].Message, "no members")
	assert.Contains(t, got[2].Message, "alphabetical")
}

func TestCAT006DuplicatePattern(t *testing.T) {
	v := &catalog.Vendor{
		Owner: "a",
		Patterns: []catalog.PatternDef{
			{Type: "LOGIC_IC", Expr: "^X"},
			{Type: "MEMORY", Expr: "^X"},
			{Type: "LOGIC_IC", Expr: "^Y"},
			{Type: "LOGIC_IC", Expr: "^Y"},
		},
	}
	got := NewCAT006().Check([]*catalog.Vendor{v})
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Message, "only the first is reachable")
	assert.Contains(t, got[1].Message, "more than once")
}

func TestCAT007PackageTable(t *testing.T) {
	v := &catalog.Vendor{
		Owner: "a",
		Packages: catalog.PackageDef{
			Strip:    []string{"r"},
			Suffixes: map[string]string{"R": "REEL", "D": "SOIC"},
			Group:    map[string]string{"SN": "SOIC-8"},
		},
	}
	got := NewCAT007().Check([]*catalog.Vendor{v})
	assert.Equal(t, []string{"CAT-007", "CAT-007"}, ids(got))

	v.Packages = catalog.PackageDef{Match: "-[A-Z]+$", Group: map[string]string{"SN": "SOIC-8"}}
	got = NewCAT007().Check([]*catalog.Vendor{v})
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "capture group")
}

func TestCAT008InertProvider(t *testing.T) {
	got := NewCAT008().Check([]*catalog.Vendor{
		{Owner: "a"},
		{Owner: "b", Prefixes: []catalog.PrefixDef{{Prefix: "B", Type: "IC"}}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Owner)
}

func TestCAT009InvalidExpression(t *testing.T) {
	v := &catalog.Vendor{
		Owner:    "a",
		Patterns: []catalog.PatternDef{{Type: "IC", Expr: "^(AB"}},
		Capabilities: []catalog.CapabilityDef{{
			Name:    "features",
			Kind:    "set",
			Members: []catalog.MemberDef{{Name: "X", Pattern: "[z-a]"}},
		}},
		CrossReferences: []catalog.CrossRefDef{
			{Required: "AB(1", Candidate: "^CD(2"},
		},
	}
	got := NewCAT009().Check([]*catalog.Vendor{v})
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0].Message, "patterns[0]"))
	assert.Contains(t, got[1].Message, "member X")
	assert.Contains(t, got[2].Message, "crossReferences[0].candidate")
}

func TestRegistrySeverityAndDisable(t *testing.T) {
	reg := NewDefaultRegistry()
	assert.Equal(t, 9, reg.Count())
	assert.Equal(t, []string{"capabilities", "packages", "patterns", "series", "structure", "types"}, reg.Categories())

	vendors := []*catalog.Vendor{{Owner: "a"}}
	got := reg.RunRules(vendors)
	assert.Equal(t, []string{"CAT-008"}, ids(got))
	assert.False(t, HasErrors(got))

	reg.SetSeverity("CAT-008", SeverityError)
	got = reg.RunRules(vendors)
	require.Len(t, got, 1)
	assert.True(t, HasErrors(got))

	reg.Disable("CAT-008")
	assert.False(t, reg.IsEnabled("CAT-008"))
	assert.Empty(t, reg.RunRules(vendors))
	assert.Len(t, reg.EnabledRules(), 8)
	assert.Len(t, reg.AllRules(), 9)
	assert.Nil(t, reg.GetRule("CAT-999"))
}

func TestFilterBySeverity(t *testing.T) {
	violations := []Violation{
		{RuleID: "A", Severity: SeverityError},
		{RuleID: "B", Severity: SeverityWarning},
		{RuleID: "C", Severity: SeverityInfo},
	}
	assert.Equal(t, []string{"A"}, ids(FilterBySeverity(violations, SeverityError)))
	assert.Equal(t, []string{"A", "B"}, ids(FilterBySeverity(violations, SeverityWarning)))
}

func TestViolationString(t *testing.T) {
	v := Violation{
		RuleID:     "CAT-001",
		Severity:   SeverityError,
		Message:    "owner x is already defined",
		Owner:      "x",
		Source:     "x.yaml",
		Suggestion: "rename",
	}
	assert.Equal(t, "[CAT-001] error: owner x is already defined (owner: x) [x.yaml] -> rename", v.String())
}

func TestParseSeverity(t *testing.T) {
	s, err := ParseSeverity("Warn")
	require.NoError(t, err)
	assert.Equal(t, SeverityWarning, s)
	_, err = ParseSeverity("loud")
	assert.Error(t, err)
}
