// Package pzspec is a small test framework with nested contexts, setup
// and teardown hooks, tags, and selective execution. Test programs
// register suites through the package-level DSL and hand control to
// Main, which exposes the run/list/failures/history CLI.
package pzspec

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/apotema/pzspec/internal/cli"
	"github.com/apotema/pzspec/internal/cli/commands"
	"github.com/apotema/pzspec/internal/config"
	"github.com/apotema/pzspec/pkg/spec"
)

var version = "dev"

var defaultSession = spec.NewSession()

// Default returns the session the package-level DSL registers into.
func Default() *spec.Session { return defaultSession }

// Reset replaces the default session with a fresh one. Meant for test
// programs that build several independent trees in a single process.
func Reset() { defaultSession = spec.NewSession() }

// Describe opens a named context and runs body inside it. Nested
// Describe calls build the context tree.
func Describe(name string, body func(), tags ...string) {
	defaultSession.Describe(name, body, tags...)
}

// It registers a test in the current context.
func It(name string, action spec.Action, tags ...string) {
	defaultSession.It(name, action, tags...)
}

// XIt registers a test tagged as skipped.
func XIt(name string, action spec.Action, tags ...string) {
	defaultSession.XIt(name, action, tags...)
}

// FIt registers a test tagged as focused.
func FIt(name string, action spec.Action, tags ...string) {
	defaultSession.FIt(name, action, tags...)
}

// SlowIt registers a test tagged as slow.
func SlowIt(name string, action spec.Action, tags ...string) {
	defaultSession.SlowIt(name, action, tags...)
}

// BeforeAll registers a hook that runs once before the current
// context's tests.
func BeforeAll(hook spec.Action) { defaultSession.BeforeAll(hook) }

// AfterAll registers a hook that runs once after the current context's
// tests and children.
func AfterAll(hook spec.Action) { defaultSession.AfterAll(hook) }

// BeforeEach registers a hook that runs before every test in the
// current context and its descendants.
func BeforeEach(hook spec.Action) { defaultSession.BeforeEach(hook) }

// AfterEach registers a hook that runs after every test in the current
// context and its descendants.
func AfterEach(hook spec.Action) { defaultSession.AfterEach(hook) }

// Main runs the CLI against the default session and exits the process
// on failure. Call it from the test program's main after all suites
// are registered.
func Main() {
	rootCmd := &cobra.Command{
		Use:     "pzspec",
		Short:   "Hierarchical test runner",
		Long:    `A test runner for suites built from nested contexts with setup and teardown hooks. Supports selective execution by source location, name pattern and tags.`,
		Version: version,
	}

	cfg := config.New()

	var flags cli.Flags

	cmds := commands.NewCommands(cfg, defaultSession)
	cmds.Register(rootCmd, &flags, cfg)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
