// Package snapshot compares values against stored JSON snapshots for
// regression testing. Snapshots live in one file per suite
// (<suite>.snap.json) with deterministic serialization, so they diff
// cleanly under version control.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Result reports one snapshot comparison.
type Result struct {
	Matched    bool
	Expected   string
	Actual     string
	Diff       string
	IsNew      bool
	WasUpdated bool
}

// Manager stores and compares snapshots under a directory.
type Manager struct {
	dir    string
	update bool

	snaps map[string]map[string]string // suite key -> snapshot name -> serialized value

	curSuite string
	curTest  string
	counters map[string]int
}

// NewManager returns a manager writing under dir. With update true,
// mismatching snapshots are overwritten instead of reported.
func NewManager(dir string, update bool) *Manager {
	return &Manager{
		dir:      dir,
		update:   update,
		snaps:    make(map[string]map[string]string),
		counters: make(map[string]int),
	}
}

// SetCurrentTest sets the test context used for default snapshot
// naming. The runner calls this through Reporter before each test.
func (m *Manager) SetCurrentTest(suiteFile, testName string) {
	m.curSuite = suiteKey(suiteFile)
	m.curTest = testName
	m.counters[m.curSuite+"::"+testName] = 0
}

// Match compares value against its stored snapshot. Without an explicit
// name the snapshot is keyed by the current test, with repeat matches
// numbered _1, _2 and so on. A missing snapshot is written and reported
// as new; in update mode a mismatch is overwritten.
func (m *Manager) Match(value any, name ...string) (Result, error) {
	actual, err := serialize(value)
	if err != nil {
		return Result{}, fmt.Errorf("serialize snapshot value: %w", err)
	}

	suite := m.curSuite
	if suite == "" {
		suite = "default"
	}
	key := m.snapshotKey(suite, name)

	snaps, err := m.load(suite)
	if err != nil {
		return Result{}, err
	}

	expected, exists := snaps[key]
	if !exists {
		snaps[key] = actual
		if err := m.save(suite); err != nil {
			return Result{}, err
		}
		return Result{Matched: true, Actual: actual, IsNew: true}, nil
	}

	if expected == actual {
		return Result{Matched: true, Expected: expected, Actual: actual}, nil
	}

	if m.update {
		snaps[key] = actual
		if err := m.save(suite); err != nil {
			return Result{}, err
		}
		return Result{Matched: true, Expected: expected, Actual: actual, WasUpdated: true}, nil
	}

	return Result{
		Matched:  false,
		Expected: expected,
		Actual:   actual,
		Diff:     lineDiff(expected, actual),
	}, nil
}

// Check is Match as an assertion: it returns an error on mismatch,
// suitable for returning straight from a test body.
func (m *Manager) Check(value any, name ...string) error {
	res, err := m.Match(value, name...)
	if err != nil {
		return err
	}
	if !res.Matched {
		return fmt.Errorf("snapshot mismatch:\n%s", res.Diff)
	}
	return nil
}

func (m *Manager) snapshotKey(suite string, name []string) string {
	if len(name) > 0 && name[0] != "" {
		return name[0]
	}
	test := m.curTest
	if test == "" {
		test = "snapshot"
	}
	counterKey := suite + "::" + test
	n := m.counters[counterKey]
	m.counters[counterKey] = n + 1
	if n == 0 {
		return test
	}
	return fmt.Sprintf("%s_%d", test, n)
}

func (m *Manager) load(suite string) (map[string]string, error) {
	if snaps, ok := m.snaps[suite]; ok {
		return snaps, nil
	}
	snaps := make(map[string]string)
	data, err := os.ReadFile(m.file(suite))
	if err == nil {
		if err := json.Unmarshal(data, &snaps); err != nil {
			return nil, fmt.Errorf("parse snapshot file for %s: %w", suite, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read snapshot file for %s: %w", suite, err)
	}
	m.snaps[suite] = snaps
	return snaps, nil
}

func (m *Manager) save(suite string) error {
	data, err := json.MarshalIndent(m.snaps[suite], "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshots: %w", err)
	}
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	return os.WriteFile(m.file(suite), data, 0644)
}

func (m *Manager) file(suite string) string {
	return filepath.Join(m.dir, suite+".snap.json")
}

func suiteKey(suiteFile string) string {
	base := filepath.Base(suiteFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// serialize renders a value deterministically: JSON with sorted map
// keys and stable indentation.
func serialize(value any) (string, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// lineDiff renders a minimal line-oriented diff of two serializations.
func lineDiff(expected, actual string) string {
	el := strings.Split(expected, "\n")
	al := strings.Split(actual, "\n")

	var b strings.Builder
	for i := 0; i < len(el) || i < len(al); i++ {
		switch {
		case i >= len(el):
			fmt.Fprintf(&b, "+ %s\n", al[i])
		case i >= len(al):
			fmt.Fprintf(&b, "- %s\n", el[i])
		case el[i] != al[i]:
			fmt.Fprintf(&b, "- %s\n+ %s\n", el[i], al[i])
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
