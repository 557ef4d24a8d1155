// Package selection computes the subset of registered tests admitted to
// run: by source location, by name pattern and by tags. Active filters
// compose by set intersection.
package selection

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apotema/pzspec/pkg/spec"
)

// Spec describes the optional filters supplied by the caller. A zero
// Spec admits every registered test.
type Spec struct {
	// File and Line target a test or context by source position.
	File string
	Line int

	// Pattern filters by full hierarchical name. With Regex false it is
	// a boolean expression ("Vec2 and add", "not slow"); with Regex true
	// it is a case-insensitive regular expression.
	Pattern string
	Regex   bool

	// IncludeTags admits tests carrying at least one of these tags.
	// ExcludeTags rejects tests carrying any of them.
	IncludeTags []string
	ExcludeTags []string
}

// HasLocation reports whether a file:line target is set.
func (s Spec) HasLocation() bool { return s.File != "" && s.Line > 0 }

// HasPattern reports whether a name pattern is set.
func (s Spec) HasPattern() bool { return s.Pattern != "" }

// HasTags reports whether any tag filter is set.
func (s Spec) HasTags() bool { return len(s.IncludeTags) > 0 || len(s.ExcludeTags) > 0 }

// Active reports whether any filter is set. Callers use this to tell
// "no tests matched the filter" apart from "no tests registered".
func (s Spec) Active() bool { return s.HasLocation() || s.HasPattern() || s.HasTags() }

// Set is the admitted set: test identities selected to run. A nil Set
// admits everything.
type Set map[*spec.TestCase]struct{}

// Has reports whether the test is admitted. A nil set admits all tests.
func (s Set) Has(t *spec.TestCase) bool {
	if s == nil {
		return true
	}
	_, ok := s[t]
	return ok
}

// Select walks the tree and returns the admitted set for the given
// filters. It returns a nil Set when no filter is active. An empty
// result is not an error here; the caller decides how to surface it.
func Select(root *spec.Context, sp Spec) (Set, error) {
	if !sp.Active() {
		return nil, nil
	}

	admitted := make(Set)
	root.EachTest(func(_ *spec.Context, t *spec.TestCase) {
		admitted[t] = struct{}{}
	})

	if sp.HasLocation() {
		intersect(admitted, selectByLocation(root, sp.File, sp.Line))
	}

	if sp.HasPattern() {
		match, err := newMatcher(sp.Pattern, sp.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", sp.Pattern, err)
		}
		byName := make(Set)
		root.EachTest(func(ctx *spec.Context, t *spec.TestCase) {
			if match(ctx.QualifiedName(t)) {
				byName[t] = struct{}{}
			}
		})
		intersect(admitted, byName)
	}

	if sp.HasTags() {
		byTags := make(Set)
		root.EachTest(func(_ *spec.Context, t *spec.TestCase) {
			if tagsAdmit(t, sp.IncludeTags, sp.ExcludeTags) {
				byTags[t] = struct{}{}
			}
		})
		intersect(admitted, byTags)
	}

	return admitted, nil
}

func intersect(dst, other Set) {
	for t := range dst {
		if _, ok := other[t]; !ok {
			delete(dst, t)
		}
	}
}

func tagsAdmit(t *spec.TestCase, include, exclude []string) bool {
	for _, tag := range exclude {
		if t.HasTag(tag) {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, tag := range include {
		if t.HasTag(tag) {
			return true
		}
	}
	return false
}

// selectByLocation resolves a file:line target, in precedence order:
// a context declared exactly at that line admits its whole subtree; a
// test whose declaration span covers the line admits that single test;
// otherwise the innermost context declared at or before the line admits
// its subtree; otherwise nothing.
func selectByLocation(root *spec.Context, file string, line int) Set {
	result := make(Set)

	// Context-level targeting: exact line match.
	var exact []*spec.Context
	walkContexts(root, func(c *spec.Context) {
		if sameFile(c.Loc.File, file) && c.Loc.Line == line {
			exact = append(exact, c)
		}
	})
	if len(exact) > 0 {
		for _, c := range exact {
			c.EachTest(func(_ *spec.Context, t *spec.TestCase) {
				result[t] = struct{}{}
			})
		}
		return result
	}

	// Test-level targeting: the test declared at the greatest line at or
	// before the target line in that file.
	var inFile []*spec.TestCase
	root.EachTest(func(_ *spec.Context, t *spec.TestCase) {
		if sameFile(t.Loc.File, file) {
			inFile = append(inFile, t)
		}
	})
	sort.SliceStable(inFile, func(i, j int) bool {
		return inFile[i].Loc.Line < inFile[j].Loc.Line
	})
	var target *spec.TestCase
	for _, t := range inFile {
		if t.Loc.Line <= line {
			target = t
		}
	}
	if target != nil {
		result[target] = struct{}{}
		return result
	}

	// Fallback: innermost context declared at or before the line.
	var enclosing *spec.Context
	walkContexts(root, func(c *spec.Context) {
		if !sameFile(c.Loc.File, file) || c.Loc.Line > line {
			return
		}
		if enclosing == nil || c.Loc.Line > enclosing.Loc.Line {
			enclosing = c
		}
	})
	if enclosing != nil {
		enclosing.EachTest(func(_ *spec.Context, t *spec.TestCase) {
			result[t] = struct{}{}
		})
	}
	return result
}

func walkContexts(c *spec.Context, fn func(*spec.Context)) {
	fn(c)
	for _, child := range c.Children() {
		walkContexts(child, fn)
	}
}

// sameFile matches captured absolute paths against possibly relative
// caller-supplied ones by comparing component-aligned suffixes.
func sameFile(captured, requested string) bool {
	if captured == "" || requested == "" {
		return false
	}
	a := filepath.ToSlash(filepath.Clean(captured))
	b := filepath.ToSlash(filepath.Clean(requested))
	b = strings.TrimPrefix(b, "./")
	if a == b {
		return true
	}
	return strings.HasSuffix(a, "/"+b) || strings.HasSuffix(b, "/"+a)
}
