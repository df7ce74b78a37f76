package series

import (
	"errors"
	"strconv"
	"testing"

	"pgregory.net/rapid"
)

func TestIdentity(t *testing.T) {
	var o Identity
	if c := o.Compare("GRM", "grm"); c.Relation != Equal || !c.Admits() {
		t.Errorf("Compare(GRM, grm) = %+v, want Equal", c)
	}
	if c := o.Compare("GRM", "GRJ"); c.Relation != Unrelated || c.Admits() {
		t.Errorf("Compare(GRM, GRJ) = %+v, want Unrelated", c)
	}
	if c := o.Compare("", ""); c.Relation != Equal {
		t.Errorf("empty series should compare equal, got %v", c.Relation)
	}
}

func TestFamilies(t *testing.T) {
	f, err := NewFamilies(
		Family{Name: "logic", Members: []string{"SN74LS", "SN74HC", "SN74LVC"}},
		Family{Name: "eeprom", Members: []string{"24AA", "24LC"}},
	)
	if err != nil {
		t.Fatalf("NewFamilies: %v", err)
	}

	tests := []struct {
		req, cand string
		rel       Relation
		admits    bool
	}{
		{"SN74HC", "SN74HC", Equal, true},
		{"SN74HC", "SN74LVC", Ranked, true},
		{"SN74LVC", "SN74HC", Ranked, false},
		{"SN74HC", "24LC", Unrelated, false},
		{"SN74HC", "CD74HC", Unrelated, false},
		{"24aa", "24LC", Ranked, true},
	}
	for _, tt := range tests {
		c := f.Compare(tt.req, tt.cand)
		if c.Relation != tt.rel || c.Admits() != tt.admits {
			t.Errorf("Compare(%s, %s) = %v admits=%v, want %v admits=%v",
				tt.req, tt.cand, c.Relation, c.Admits(), tt.rel, tt.admits)
		}
	}

	if fam, rank, ok := f.Rank("SN74LVC"); !ok || fam != "logic" || rank != 2 {
		t.Errorf("Rank(SN74LVC) = %s/%d/%v", fam, rank, ok)
	}
	if d := f.Compare("SN74LS", "SN74LVC").Distance(); d != 2 {
		t.Errorf("Distance = %d, want 2", d)
	}
}

func TestFamiliesRejectsAmbiguousMembers(t *testing.T) {
	_, err := NewFamilies(
		Family{Name: "a", Members: []string{"X1", "X2"}},
		Family{Name: "b", Members: []string{"x2"}},
	)
	if !errors.Is(err, ErrAmbiguousSeries) {
		t.Errorf("got %v, want ErrAmbiguousSeries", err)
	}
}

func TestTrailingDigits(t *testing.T) {
	var o TrailingDigits
	tests := []struct {
		req, cand string
		rel       Relation
		admits    bool
	}{
		{"QCC30", "QCC51", Ranked, true},
		{"QCC51", "QCC30", Ranked, false},
		{"QCC30", "QCC30", Equal, true},
		{"QCC30", "CSR86", Unrelated, false},
		{"LM358A", "LM2904A", Ranked, true},
		{"LM358A", "LM2904", Unrelated, false},
		{"GRM", "GRT", Unrelated, false},
		{"24LC", "24AA", Unrelated, false},
	}
	for _, tt := range tests {
		c := o.Compare(tt.req, tt.cand)
		if c.Relation != tt.rel || c.Admits() != tt.admits {
			t.Errorf("Compare(%s, %s) = %v admits=%v, want %v admits=%v",
				tt.req, tt.cand, c.Relation, c.Admits(), tt.rel, tt.admits)
		}
	}
}

func TestChain(t *testing.T) {
	fams, err := NewFamilies(Family{Name: "grm", Members: []string{"GRM", "GRT"}})
	if err != nil {
		t.Fatal(err)
	}
	ch := Chain{fams, TrailingDigits{}}

	if c := ch.Compare("GRM", "GRT"); c.Relation != Ranked || c.Family != "grm" {
		t.Errorf("family lookup should win: %+v", c)
	}
	if c := ch.Compare("QCC30", "QCC51"); c.Relation != Ranked || c.Family != "QCC" {
		t.Errorf("trailing digits fallback: %+v", c)
	}
	if c := ch.Compare("GRM", "QCC30"); c.Relation != Unrelated {
		t.Errorf("unrelated: %+v", c)
	}
	if c := (Chain{}).Compare("A", "a"); c.Relation != Equal {
		t.Errorf("empty chain should still detect equality: %+v", c)
	}
}

func TestRankedTransitiveProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		gen := rapid.IntRange(1, 99)
		a, b, c := gen.Draw(rt, "a"), gen.Draw(rt, "b"), gen.Draw(rt, "c")
		s := func(n int) string { return "QCC" + strconv.Itoa(n) }

		var o TrailingDigits
		ab := o.Compare(s(a), s(b)).Admits()
		bc := o.Compare(s(b), s(c)).Admits()
		ac := o.Compare(s(a), s(c)).Admits()
		if ab && bc && !ac {
			rt.Fatalf("not transitive: %d -> %d -> %d", a, b, c)
		}
		if a != b && ab && o.Compare(s(b), s(a)).Admits() {
			rt.Fatalf("distinct ranks admitted both ways: %d, %d", a, b)
		}
	})
}
