package spec

import (
	"reflect"
	"testing"
)

func TestContext_FullName(t *testing.T) {
	s := NewSession()
	s.Describe("Vec2", func() {
		s.Describe("normalize", func() {
			s.Describe("zero vector", func() {})
		})
	})

	vec2 := s.Root().Children()[0]
	norm := vec2.Children()[0]
	zero := norm.Children()[0]

	tests := []struct {
		name     string
		ctx      *Context
		expected string
	}{
		{"root is unnamed", s.Root(), ""},
		{"top level", vec2, "Vec2"},
		{"nested", norm, "Vec2 > normalize"},
		{"deeply nested", zero, "Vec2 > normalize > zero vector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ctx.FullName(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestContext_QualifiedName(t *testing.T) {
	s := NewSession()
	s.It("root level test", nil)
	s.Describe("Vec2", func() {
		s.Describe("add", func() {
			s.It("adds componentwise", nil)
		})
	})

	root := s.Root()
	if got := root.QualifiedName(root.Tests()[0]); got != "root level test" {
		t.Errorf("root-level test should use its bare name, got %q", got)
	}

	add := root.Children()[0].Children()[0]
	want := "Vec2 > add::adds componentwise"
	if got := add.QualifiedName(add.Tests()[0]); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestContext_EffectiveHookOrder(t *testing.T) {
	var log []string
	mark := func(name string) Action {
		return func() error {
			log = append(log, name)
			return nil
		}
	}

	s := NewSession()
	s.BeforeEach(mark("root.before"))
	s.AfterEach(mark("root.after"))
	s.Describe("outer", func() {
		s.BeforeEach(mark("outer.before"))
		s.AfterEach(mark("outer.after"))
		s.Describe("inner", func() {
			s.BeforeEach(mark("inner.before"))
			s.AfterEach(mark("inner.after"))
		})
	})

	inner := s.Root().Children()[0].Children()[0]

	log = nil
	for _, h := range inner.EffectiveBeforeEach() {
		h()
	}
	wantBefore := []string{"root.before", "outer.before", "inner.before"}
	if !reflect.DeepEqual(log, wantBefore) {
		t.Errorf("before-each order: expected %v, got %v", wantBefore, log)
	}

	log = nil
	for _, h := range inner.EffectiveAfterEach() {
		h()
	}
	wantAfter := []string{"inner.after", "outer.after", "root.after"}
	if !reflect.DeepEqual(log, wantAfter) {
		t.Errorf("after-each order: expected %v, got %v", wantAfter, log)
	}
}

func TestContext_EachTestOrder(t *testing.T) {
	s := NewSession()
	s.Describe("a", func() {
		s.It("a1", nil)
		s.Describe("b", func() {
			s.It("b1", nil)
		})
		s.It("a2", nil)
	})

	var names []string
	s.Root().EachTest(func(ctx *Context, tc *TestCase) {
		names = append(names, ctx.QualifiedName(tc))
	})

	// own tests first, then children, depth first
	want := []string{"a::a1", "a::a2", "a > b::b1"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}
