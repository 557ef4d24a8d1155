package pzspec

import (
	"strings"
	"testing"

	"github.com/apotema/pzspec/pkg/runner"
)

func TestDSL_RegistersIntoDefaultSession(t *testing.T) {
	Reset()
	defer Reset()

	var ran []string
	Describe("Vec2", func() {
		BeforeEach(func() error {
			ran = append(ran, "before")
			return nil
		})
		It("adds", func() error {
			ran = append(ran, "adds")
			return nil
		})
		XIt("pending", func() error {
			ran = append(ran, "pending")
			return nil
		})
	})

	root := Default().Root()
	if root.CountTests() != 2 {
		t.Fatalf("expected 2 registered tests, got %d", root.CountTests())
	}

	sum := runner.New().Run(root, nil)
	if sum.Total() != 2 || !sum.OK() {
		t.Errorf("unexpected summary %+v", sum)
	}
	// XIt only tags; without a tag filter the test still runs.
	if strings.Join(ran, ",") != "before,adds,before,pending" {
		t.Errorf("unexpected execution log %v", ran)
	}
}

func TestDSL_CapturesRegistrationSites(t *testing.T) {
	Reset()
	defer Reset()

	Describe("located", func() {
		It("here", nil)
	})

	ctx := Default().Root().Children()[0]
	if !strings.HasSuffix(ctx.Loc.File, "pzspec_test.go") {
		t.Errorf("expected the context location in this file, got %s", ctx.Loc.File)
	}
	tc := ctx.Tests()[0]
	if !strings.HasSuffix(tc.Loc.File, "pzspec_test.go") {
		t.Errorf("expected the test location in this file, got %s", tc.Loc.File)
	}
}

func TestReset_ReplacesSession(t *testing.T) {
	Reset()
	Describe("old", func() { It("a", nil) })

	Reset()
	if n := Default().Root().CountTests(); n != 0 {
		t.Errorf("expected an empty session after Reset, got %d tests", n)
	}
}
