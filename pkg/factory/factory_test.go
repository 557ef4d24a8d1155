package factory

import (
	"fmt"
	"testing"
)

func vecFactory() *Factory {
	return New("vec2").
		Field("x", Value(0.0)).
		Field("y", Value(0.0)).
		Preset("unit_x", Overrides{"x": 1.0, "y": 0.0}).
		Preset("pythagorean", Overrides{"x": 3.0, "y": 4.0})
}

func TestBuild_Defaults(t *testing.T) {
	rec, err := vecFactory().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["x"] != 0.0 || rec["y"] != 0.0 {
		t.Errorf("expected zero defaults, got %v", rec)
	}
}

func TestBuild_Overrides(t *testing.T) {
	rec, err := vecFactory().Build(Overrides{"x": 7.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["x"] != 7.0 {
		t.Errorf("expected overridden x=7, got %v", rec["x"])
	}
	if rec["y"] != 0.0 {
		t.Errorf("expected default y=0, got %v", rec["y"])
	}
}

func TestBuild_UnknownFieldErrors(t *testing.T) {
	if _, err := vecFactory().Build(Overrides{"z": 1.0}); err == nil {
		t.Error("expected an error for an unregistered field")
	}
}

func TestBuildWith_Preset(t *testing.T) {
	f := vecFactory()

	rec, err := f.BuildWith("pythagorean")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["x"] != 3.0 || rec["y"] != 4.0 {
		t.Errorf("expected the 3-4 preset, got %v", rec)
	}

	// Explicit overrides win over the preset.
	rec, err = f.BuildWith("pythagorean", Overrides{"y": 0.0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec["x"] != 3.0 || rec["y"] != 0.0 {
		t.Errorf("expected override to beat preset, got %v", rec)
	}
}

func TestBuildWith_UnknownPresetErrors(t *testing.T) {
	if _, err := vecFactory().BuildWith("unit_z"); err == nil {
		t.Error("expected an error for an unregistered preset")
	}
}

func TestMustBuild_PanicsOnBadOverride(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected MustBuild to panic")
		}
	}()
	vecFactory().MustBuild(Overrides{"z": 1.0})
}

func TestSeq(t *testing.T) {
	f := New("user").
		Field("id", Seq(func(n int) any { return n })).
		Field("email", Seq(func(n int) any { return fmt.Sprintf("user%d@example.com", n) }))

	first := f.MustBuild()
	second := f.MustBuild()

	if first["id"] != 1 || second["id"] != 2 {
		t.Errorf("expected ids 1 and 2, got %v and %v", first["id"], second["id"])
	}
	if second["email"] != "user2@example.com" {
		t.Errorf("unexpected email %v", second["email"])
	}

	f.Reset()
	if got := f.MustBuild()["id"]; got != 1 {
		t.Errorf("expected the sequence to restart at 1 after Reset, got %v", got)
	}
}

func TestLazy(t *testing.T) {
	calls := 0
	f := New("stamp").Field("n", Lazy(func() any {
		calls++
		return calls
	}))

	f.MustBuild()
	f.MustBuild()
	if calls != 2 {
		t.Errorf("expected the lazy generator to run per build, ran %d times", calls)
	}
}

func TestBuildList(t *testing.T) {
	f := New("user").Field("id", Seq(func(n int) any { return n }))

	records, err := f.BuildList(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, rec := range records {
		if rec["id"] != i+1 {
			t.Errorf("record %d: expected id %d, got %v", i, i+1, rec["id"])
		}
	}
}

func TestField_ReplacementKeepsOrder(t *testing.T) {
	f := New("v").
		Field("a", Value(1)).
		Field("b", Value(2)).
		Field("a", Value(10))

	rec := f.MustBuild()
	if rec["a"] != 10 {
		t.Errorf("expected the re-registered generator, got %v", rec["a"])
	}
	if len(f.order) != 2 {
		t.Errorf("expected 2 ordered fields, got %v", f.order)
	}
}
