package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatch_NewSnapshotIsWritten(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)
	m.SetCurrentTest("vec_test.go", "Vec2 > add::adds componentwise")

	res, err := m.Match(map[string]float64{"x": 4, "y": 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Matched || !res.IsNew {
		t.Errorf("expected a new matched snapshot, got %+v", res)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vec_test.snap.json"))
	if err != nil {
		t.Fatalf("expected the snapshot file to exist: %v", err)
	}
	if !strings.Contains(string(data), "Vec2 > add::adds componentwise") {
		t.Errorf("expected the snapshot key in the file, got %s", data)
	}
}

func TestMatch_EqualValue(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)
	m.SetCurrentTest("vec_test.go", "t")

	if _, err := m.Match([]int{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same value again, from a fresh manager reading the stored file.
	m2 := NewManager(dir, false)
	m2.SetCurrentTest("vec_test.go", "t")
	res, err := m2.Match([]int{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Matched || res.IsNew {
		t.Errorf("expected a plain match against the stored snapshot, got %+v", res)
	}
}

func TestMatch_MismatchProducesDiff(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)
	m.SetCurrentTest("vec_test.go", "t")

	m.Match(map[string]int{"x": 1})

	m2 := NewManager(dir, false)
	m2.SetCurrentTest("vec_test.go", "t")
	res, err := m2.Match(map[string]int{"x": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Matched {
		t.Fatal("expected a mismatch")
	}
	if !strings.Contains(res.Diff, `- "x": 1`) || !strings.Contains(res.Diff, `+ "x": 2`) {
		t.Errorf("expected a line diff, got %q", res.Diff)
	}
}

func TestMatch_UpdateModeOverwrites(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)
	m.SetCurrentTest("vec_test.go", "t")
	m.Match("old value")

	up := NewManager(dir, true)
	up.SetCurrentTest("vec_test.go", "t")
	res, err := up.Match("new value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Matched || !res.WasUpdated {
		t.Errorf("expected the snapshot to be updated, got %+v", res)
	}

	m3 := NewManager(dir, false)
	m3.SetCurrentTest("vec_test.go", "t")
	res, err = m3.Match("new value")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Matched || res.IsNew {
		t.Errorf("expected the updated value to be stored, got %+v", res)
	}
}

func TestMatch_AutoNumberedKeys(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)
	m.SetCurrentTest("vec_test.go", "multi")

	m.Match(1)
	m.Match(2)
	m.Match(3)

	snaps, err := m.load("vec_test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"multi", "multi_1", "multi_2"} {
		if _, ok := snaps[key]; !ok {
			t.Errorf("expected key %q, have %v", key, snaps)
		}
	}
}

func TestMatch_ExplicitName(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)
	m.SetCurrentTest("vec_test.go", "t")

	m.Match("payload", "custom name")

	snaps, _ := m.load("vec_test")
	if _, ok := snaps["custom name"]; !ok {
		t.Errorf("expected the explicit key, have %v", snaps)
	}
}

func TestMatch_CounterResetsPerTest(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)

	m.SetCurrentTest("vec_test.go", "t")
	m.Match(1)
	m.SetCurrentTest("vec_test.go", "t")
	res, err := m.Match(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Back on the unnumbered key, so this compares against the first
	// stored value instead of creating t_1.
	if !res.Matched || res.IsNew {
		t.Errorf("expected a match on the reused key, got %+v", res)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir, false)
	m.SetCurrentTest("vec_test.go", "t")

	if err := m.Check("stable"); err != nil {
		t.Fatalf("unexpected error on first check: %v", err)
	}
	if err := m.Check("stable", "named"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m2 := NewManager(dir, false)
	m2.SetCurrentTest("vec_test.go", "t")
	if err := m2.Check("changed"); err == nil {
		t.Error("expected a mismatch error")
	} else if !strings.Contains(err.Error(), "snapshot mismatch") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSerialize_Deterministic(t *testing.T) {
	a, err := serialize(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := serialize(map[string]int{"c": 3, "a": 1, "b": 2})
	if a != b {
		t.Errorf("expected deterministic serialization, got %q vs %q", a, b)
	}
	if strings.Index(a, `"a"`) > strings.Index(a, `"b"`) {
		t.Errorf("expected sorted keys, got %q", a)
	}
}

func TestLineDiff(t *testing.T) {
	diff := lineDiff("a\nb\nc", "a\nx\nc\nd")
	want := "- b\n+ x\n+ d"
	if diff != want {
		t.Errorf("expected %q, got %q", want, diff)
	}
}
