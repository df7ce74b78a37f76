package capability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"ordinal":      KindOrdinal,
		"SET":          KindSet,
		"numeric":      KindNumeric,
		"numericRange": KindNumeric,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("fuzzy")
	assert.Error(t, err)
}

func TestSetNormalizesMembers(t *testing.T) {
	a := Set("features", "hifi", "ANC", " anc ", "")
	assert.Equal(t, []string{"ANC", "HIFI"}, a.Members)
	assert.True(t, a.Has("anc"))
	assert.False(t, a.Has("LE_AUDIO"))
	assert.Equal(t, "features(set)={ANC,HIFI}", a.String())
}

func TestCompareOrdinal(t *testing.T) {
	req := []Attribute{Ordinal("version", 5)}

	r, err := Compare(req, []Attribute{Ordinal("version", 6)})
	require.NoError(t, err)
	assert.True(t, r.Satisfied)

	r, err = Compare(req, []Attribute{Ordinal("version", 5)})
	require.NoError(t, err)
	assert.True(t, r.Satisfied)

	r, err = Compare(req, []Attribute{Ordinal("version", 4)})
	require.NoError(t, err)
	assert.False(t, r.Satisfied)
	require.Len(t, r.Unmet, 1)
	assert.Equal(t, "version", r.Unmet[0].Name)
}

func TestCompareSetSuperset(t *testing.T) {
	req := []Attribute{Set("features", "ANC")}

	r, err := Compare(req, []Attribute{Set("features")})
	require.NoError(t, err)
	assert.False(t, r.Satisfied, "empty candidate set lacks ANC")
	assert.Contains(t, r.Unmet[0].Reason, "ANC")

	r, err = Compare(req, []Attribute{Set("features", "ANC", "HIFI")})
	require.NoError(t, err)
	assert.True(t, r.Satisfied, "extra candidate features are allowed")

	r, err = Compare([]Attribute{Set("features")}, []Attribute{Set("features")})
	require.NoError(t, err)
	assert.True(t, r.Satisfied, "empty required set is always satisfied")
}

func TestCompareNumeric(t *testing.T) {
	tests := []struct {
		name string
		req  Attribute
		cand Attribute
		want bool
	}{
		{"larger", Numeric("density", 256), Numeric("density", 512), true},
		{"equal", Numeric("density", 256), Numeric("density", 256), true},
		{"smaller", Numeric("density", 256), Numeric("density", 128), false},
		{"exact equal", ExactNumeric("case", 188), ExactNumeric("case", 188), true},
		{"exact larger", ExactNumeric("case", 188), ExactNumeric("case", 216), false},
		{"decoded rounding", Numeric("cap", 0.1*3), Numeric("cap", 0.3), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Compare([]Attribute{tt.req}, []Attribute{tt.cand})
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Satisfied)
		})
	}
}

func TestCompareFailsClosedOnMissingAttribute(t *testing.T) {
	r, err := Compare([]Attribute{Numeric("voltage", 50)}, nil)
	require.NoError(t, err)
	assert.False(t, r.Satisfied)
	assert.Equal(t, []Unmet{{Name: "voltage", Reason: "not declared by candidate"}}, r.Unmet)
}

func TestCompareIgnoresCandidateExtras(t *testing.T) {
	r, err := Compare(nil, []Attribute{Numeric("voltage", 50)})
	require.NoError(t, err)
	assert.True(t, r.Satisfied)
}

func TestCompareKindMismatch(t *testing.T) {
	_, err := Compare(
		[]Attribute{Ordinal("version", 5)},
		[]Attribute{Numeric("version", 5)},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKindMismatch))

	var kme *KindMismatchError
	require.True(t, errors.As(err, &kme))
	assert.Equal(t, "version", kme.Name)
	assert.Equal(t, KindOrdinal, kme.Required)
	assert.Equal(t, KindNumeric, kme.Candidate)
}

func TestCompareFirstDuplicateWins(t *testing.T) {
	r, err := Compare(
		[]Attribute{Ordinal("version", 5), Ordinal("version", 9)},
		[]Attribute{Ordinal("version", 6)},
	)
	require.NoError(t, err)
	assert.True(t, r.Satisfied)
}

func TestCloneIsDeep(t *testing.T) {
	orig := []Attribute{Set("features", "ANC")}
	c := Clone(orig)
	c[0].Members[0] = "X"
	assert.Equal(t, "ANC", orig[0].Members[0])
	assert.Nil(t, Clone(nil))
}

func TestCompareReflexiveProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		attrs := []Attribute{
			Ordinal("version", rapid.Int64Range(-10, 100).Draw(rt, "version")),
			Numeric("density", rapid.Float64Range(0, 1e6).Draw(rt, "density")),
			ExactNumeric("case", float64(rapid.IntRange(0, 9999).Draw(rt, "case"))),
			Set("features", rapid.SliceOf(rapid.SampledFrom([]string{"ANC", "HIFI", "LE"})).Draw(rt, "features")...),
		}
		r, err := Compare(attrs, Clone(attrs))
		if err != nil {
			rt.Fatalf("Compare: %v", err)
		}
		if !r.Satisfied {
			rt.Fatalf("attributes must dominate themselves: %v", r.Unmet)
		}
	})
}

func TestCompareOrdinalTransitiveProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int64Range(0, 50).Draw(rt, "a")
		b := rapid.Int64Range(0, 50).Draw(rt, "b")
		c := rapid.Int64Range(0, 50).Draw(rt, "c")

		ab, _ := Compare([]Attribute{Ordinal("v", a)}, []Attribute{Ordinal("v", b)})
		bc, _ := Compare([]Attribute{Ordinal("v", b)}, []Attribute{Ordinal("v", c)})
		ac, _ := Compare([]Attribute{Ordinal("v", a)}, []Attribute{Ordinal("v", c)})
		if ab.Satisfied && bc.Satisfied && !ac.Satisfied {
			rt.Fatalf("ordinal dominance not transitive for %d <= %d <= %d", a, b, c)
		}
	})
}
