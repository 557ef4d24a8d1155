package spec

import (
	"fmt"
	"runtime"
	"strings"
)

// Reserved convenience tags. The engine assigns no meaning to them;
// callers express skip/focus policy through tag filters.
const (
	TagSkip  = "skip"
	TagFocus = "focus"
	TagSlow  = "slow"
)

// Session is the registration facade. It owns the context tree and the
// "current context" cursor used while test files register themselves.
// Registration is single-threaded with strict nesting, which Describe
// guarantees by construction (the body closure is pushed and popped
// around its execution).
type Session struct {
	root    *Context
	current *Context
	sealed  bool
}

// NewSession returns a session with an empty root context.
func NewSession() *Session {
	root := &Context{}
	s := &Session{root: root, current: root}
	root.session = s
	return s
}

// Root returns the session's root context.
func (s *Session) Root() *Context { return s.root }

// Seal closes the session for registration. Any Describe/It/hook call
// after Seal panics; the runner seals the session before executing so a
// test body cannot re-enter registration.
func (s *Session) Seal() { s.sealed = true }

// Sealed reports whether the session is closed for registration.
func (s *Session) Sealed() bool { return s.sealed }

// Describe opens a child context under the current one, runs body to
// register its contents, and pops back to the previous context. Tags
// are merged with the enclosing context's tags.
func (s *Session) Describe(name string, body func(), tags ...string) {
	s.ensureOpen("Describe")
	if name == "" {
		panic("pzspec: Describe requires a non-empty name")
	}
	ctx := &Context{
		Name:   name,
		Loc:    callerLocation(),
		parent: s.current,
		tags:   mergeTags(s.current.tags, tags),
	}
	s.current.children = append(s.current.children, ctx)

	prev := s.current
	s.current = ctx
	defer func() { s.current = prev }()

	if body != nil {
		body()
	}
}

// It appends a test case to the current context. The test's tags are
// the union of the context's tags and its own declared tags, and its
// location is the author's call site (facade frames are skipped).
func (s *Session) It(name string, action Action, tags ...string) {
	s.ensureOpen("It")
	s.current.tests = append(s.current.tests, &TestCase{
		Name:   name,
		Action: action,
		Loc:    callerLocation(),
		Tags:   mergeTags(s.current.tags, tags),
	})
}

// XIt registers a test tagged "skip".
func (s *Session) XIt(name string, action Action, tags ...string) {
	s.It(name, action, append([]string{TagSkip}, tags...)...)
}

// FIt registers a test tagged "focus".
func (s *Session) FIt(name string, action Action, tags ...string) {
	s.It(name, action, append([]string{TagFocus}, tags...)...)
}

// SlowIt registers a test tagged "slow".
func (s *Session) SlowIt(name string, action Action, tags ...string) {
	s.It(name, action, append([]string{TagSlow}, tags...)...)
}

// BeforeAll adds a hook run once before all tests in the current context.
func (s *Session) BeforeAll(hook Action) {
	s.ensureOpen("BeforeAll")
	s.current.beforeAll = append(s.current.beforeAll, hook)
}

// AfterAll adds a hook run once after all tests in the current context.
func (s *Session) AfterAll(hook Action) {
	s.ensureOpen("AfterAll")
	s.current.afterAll = append(s.current.afterAll, hook)
}

// BeforeEach adds a hook run before each test in the current context
// and its descendants.
func (s *Session) BeforeEach(hook Action) {
	s.ensureOpen("BeforeEach")
	s.current.beforeEach = append(s.current.beforeEach, hook)
}

// AfterEach adds a hook run after each test in the current context and
// its descendants.
func (s *Session) AfterEach(hook Action) {
	s.ensureOpen("AfterEach")
	s.current.afterEach = append(s.current.afterEach, hook)
}

func (s *Session) ensureOpen(op string) {
	if s.sealed {
		panic(fmt.Sprintf("pzspec: %s called after the session was sealed (registration from a running test?)", op))
	}
}

func mergeTags(inherited, declared []string) []string {
	if len(inherited) == 0 && len(declared) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(inherited)+len(declared))
	merged := make([]string, 0, len(inherited)+len(declared))
	for _, t := range inherited {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	for _, t := range declared {
		if !seen[t] {
			seen[t] = true
			merged = append(merged, t)
		}
	}
	return merged
}

const modulePath = "github.com/apotema/pzspec"

// callerLocation returns the first caller frame outside the framework,
// so the location attributed to a test or context is where the author
// wrote it rather than an internal trampoline.
func callerLocation() Location {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && !frameworkFrame(frame) {
			return Location{File: frame.File, Line: frame.Line}
		}
		if !more {
			return Location{}
		}
	}
}

// frameworkFrame reports whether a frame belongs to the registration
// facade itself: this package or the module's root DSL package. Frames
// from _test.go files are never treated as facade frames so this
// package's own tests keep their call sites.
func frameworkFrame(f runtime.Frame) bool {
	if strings.HasSuffix(f.File, "_test.go") {
		return false
	}
	rest, ok := strings.CutPrefix(f.Function, modulePath)
	if !ok {
		return false
	}
	return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, "/pkg/spec.")
}
