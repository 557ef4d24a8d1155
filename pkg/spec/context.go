package spec

// Context is a nestable grouping of tests and hooks (a describe block).
// The tree is rooted at a session's unnamed root context; every other
// node has exactly one parent and a non-empty name.
type Context struct {
	Name string
	Loc  Location

	parent   *Context
	children []*Context
	tests    []*TestCase
	session  *Session // set on the root by NewSession

	beforeAll  []Action
	afterAll   []Action
	beforeEach []Action
	afterEach  []Action

	tags []string
}

// Parent returns the enclosing context, or nil for the root.
func (c *Context) Parent() *Context { return c.parent }

// Session returns the session that owns this context tree, nil for a
// tree built without one.
func (c *Context) Session() *Session {
	if c.parent != nil {
		return c.parent.Session()
	}
	return c.session
}

// Children returns the child contexts in declaration order.
func (c *Context) Children() []*Context { return c.children }

// Tests returns the context's own test cases in declaration order.
func (c *Context) Tests() []*TestCase { return c.tests }

// Tags returns the tags applied to this context, including inherited ones.
func (c *Context) Tags() []string { return c.tags }

// BeforeAll returns the context's own before-all hooks.
func (c *Context) BeforeAll() []Action { return c.beforeAll }

// AfterAll returns the context's own after-all hooks.
func (c *Context) AfterAll() []Action { return c.afterAll }

// FullName returns the " > "-joined chain of non-empty ancestor names
// plus this context's own name.
func (c *Context) FullName() string {
	if c.parent != nil && c.parent.Name != "" {
		return c.parent.FullName() + " > " + c.Name
	}
	return c.Name
}

// QualifiedName returns the full hierarchical name of a test in this
// context, as used in result records and pattern matching.
func (c *Context) QualifiedName(t *TestCase) string {
	if full := c.FullName(); full != "" {
		return full + "::" + t.Name
	}
	return t.Name
}

// Depth returns the nesting depth, 0 for the root.
func (c *Context) Depth() int {
	if c.parent == nil {
		return 0
	}
	return c.parent.Depth() + 1
}

// EffectiveBeforeEach returns the before-each hooks to run for tests in
// this context: ancestors first (root to self), then its own.
func (c *Context) EffectiveBeforeEach() []Action {
	var hooks []Action
	if c.parent != nil {
		hooks = c.parent.EffectiveBeforeEach()
	}
	return append(hooks, c.beforeEach...)
}

// EffectiveAfterEach returns the after-each hooks to run for tests in
// this context: its own first, then ancestors (self to root).
func (c *Context) EffectiveAfterEach() []Action {
	hooks := append([]Action(nil), c.afterEach...)
	if c.parent != nil {
		hooks = append(hooks, c.parent.EffectiveAfterEach()...)
	}
	return hooks
}

// CountTests returns the number of tests in this context and all
// descendants.
func (c *Context) CountTests() int {
	n := len(c.tests)
	for _, child := range c.children {
		n += child.CountTests()
	}
	return n
}

// EachTest walks the subtree depth-first in declaration order, calling
// fn with each test and its owning context.
func (c *Context) EachTest(fn func(ctx *Context, t *TestCase)) {
	for _, t := range c.tests {
		fn(c, t)
	}
	for _, child := range c.children {
		child.EachTest(fn)
	}
}
