package e2e

import (
	"testing"

	"github.com/AliceAlbano/vgrep/test/e2e/framework"
)

var fixture = map[string]string{
	"main.go":        "package main\n\nfunc main() {\n\t// TODO: greet\n\tprintln(\"hi\")\n}\n",
	"lib/util.go":    "package lib\n\n// TODO: util\nfunc Util() {}\n",
	"lib/sub/deep.c": "int deep(void) { return 0; } /* TODO */\n",
}

func setup(t *testing.T) *framework.Framework {
	t.Helper()
	f := framework.NewFramework()
	if err := f.Setup(fixture); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(f.Cleanup)
	return f
}

func run(t *testing.T, f *framework.Framework, tc framework.TestCase) {
	t.Helper()
	result := f.RunTest(tc)
	if !result.Passed {
		t.Errorf("Test '%s' failed: %s\noutput:\n%s", tc.Name, result.Error, result.Output)
	}
}

func TestSearchPrintsTable(t *testing.T) {
	f := setup(t)
	run(t, f, framework.TestCase{
		Name:           "search prints table",
		Args:           []string{"TODO"},
		ExpectedOutput: "3 matches for \"TODO\"",
	})
}

func TestResumeSession(t *testing.T) {
	f := setup(t)

	results := f.RunTests([]framework.TestCase{
		{
			Name:           "search",
			Args:           []string{"TODO"},
			ExpectedOutput: "lib/util.go",
		},
		{
			Name:           "resume with files view",
			Args:           []string{"-s", "f"},
			ExpectedOutput: "1 main.go",
		},
		{
			Name:           "resume from another directory",
			Dir:            "lib",
			ExpectedOutput: "session was captured in",
		},
	})
	f.PrintSummary(results)

	for _, result := range results {
		if !result.Passed {
			t.Errorf("Test '%s' failed: %s\noutput:\n%s", result.Name, result.Error, result.Output)
		}
	}
}

func TestInteractiveDelete(t *testing.T) {
	f := setup(t)
	run(t, f, framework.TestCase{
		Name:           "search",
		Args:           []string{"TODO"},
		ExpectedOutput: "main.go",
	})
	run(t, f, framework.TestCase{
		Name:           "delete then print",
		Args:           []string{"-i"},
		Lines:          []string{"0-1d", "p", "q"},
		ExpectedOutput: "1 match for \"TODO\"",
	})
}

func TestBadSelector(t *testing.T) {
	f := setup(t)
	run(t, f, framework.TestCase{
		Name:           "out of range",
		Args:           []string{"-s", "7p", "TODO"},
		ExpectedOutput: "vgrep: ",
	})
}
