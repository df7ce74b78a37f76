package component

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"capacitor-ceramic", CapacitorCeramic},
		{"Logic IC", LogicIC},
		{"  motor_driver ", MotorDriver},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultTaxonomyBases(t *testing.T) {
	tx := Default()

	tests := []struct {
		typ  Type
		base Type
	}{
		{IC, IC},
		{LogicIC, IC},
		{MotorDriver, IC},
		{CapacitorCeramic, Capacitor},
		{Connector, Connector},
	}
	for _, tt := range tests {
		got, ok := tx.Base(tt.typ)
		if !ok {
			t.Fatalf("Base(%s): not found", tt.typ)
		}
		if got != tt.base {
			t.Errorf("Base(%s) = %s, want %s", tt.typ, got, tt.base)
		}
	}

	if !tx.IsBase(IC) {
		t.Error("IC should be a base type")
	}
	if tx.IsBase(LogicIC) {
		t.Error("LOGIC_IC should not be a base type")
	}
}

func TestRefinementChain(t *testing.T) {
	b := NewBuilder()
	if err := b.AddRefinement("TI_LITTLE_LOGIC", LogicIC); err != nil {
		t.Fatalf("AddRefinement: %v", err)
	}
	tx := b.Build()

	const little Type = "TI_LITTLE_LOGIC"
	if base, _ := tx.Base(little); base != IC {
		t.Errorf("Base(%s) = %s, want IC", little, base)
	}
	if d := tx.Depth(little); d != 2 {
		t.Errorf("Depth(%s) = %d, want 2", little, d)
	}
	if !tx.Is(little, LogicIC) || !tx.Is(little, IC) || !tx.Is(little, little) {
		t.Error("refinement should satisfy every ancestor")
	}
	if tx.Is(LogicIC, little) {
		t.Error("parent must not satisfy its refinement")
	}
	if tx.Is(little, Capacitor) {
		t.Error("unrelated base must not match")
	}

	got := tx.Ancestors(little)
	want := []Type{little, LogicIC, IC}
	if len(got) != len(want) {
		t.Fatalf("Ancestors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ancestors[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestAddRefinementErrors(t *testing.T) {
	b := NewBuilder()

	if err := b.AddRefinement("FOO", "NOT_A_TYPE"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown parent: got %v, want ErrUnknownType", err)
	}
	if err := b.AddRefinement("FOO", "FOO"); !errors.Is(err, ErrConflictingParent) {
		t.Errorf("self parent: got %v, want ErrConflictingParent", err)
	}
	if err := b.AddRefinement(LogicIC, Capacitor); !errors.Is(err, ErrConflictingParent) {
		t.Errorf("reparent: got %v, want ErrConflictingParent", err)
	}
	if err := b.AddRefinement(LogicIC, IC); err != nil {
		t.Errorf("redeclare with same parent should succeed, got %v", err)
	}
	if err := b.AddBase(LogicIC); !errors.Is(err, ErrConflictingParent) {
		t.Errorf("AddBase on refinement: got %v, want ErrConflictingParent", err)
	}
}

func TestBuildIsSnapshot(t *testing.T) {
	b := NewBuilder()
	tx := b.Build()
	if err := b.AddBase("SENSOR"); err != nil {
		t.Fatalf("AddBase: %v", err)
	}
	if tx.Known("SENSOR") {
		t.Error("taxonomy must not observe later builder changes")
	}
	if !b.Build().Known("SENSOR") {
		t.Error("new build should contain SENSOR")
	}
}

func TestParse(t *testing.T) {
	tx := Default()
	got, err := tx.Parse("capacitor ceramic")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != CapacitorCeramic {
		t.Errorf("Parse = %s, want %s", got, CapacitorCeramic)
	}
	if _, err := tx.Parse("flux capacitor"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Parse unknown: got %v, want ErrUnknownType", err)
	}
}

func TestRefinements(t *testing.T) {
	tx := Default()
	got := tx.Refinements(Capacitor)
	if len(got) != 2 || got[0] != CapacitorCeramic || got[1] != CapacitorElectrolytic {
		t.Errorf("Refinements(CAPACITOR) = %v", got)
	}
}
