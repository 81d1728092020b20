package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden loads a scenario, executes it and compares the rendered
// trace against a golden file in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden traces are the source of truth for expected stamp evolution;
// every trace line includes the resulting stamp's text form, so a change
// anywhere in the algebra shows up as a diff.
func RunWithGolden(t *testing.T, path string) *Result {
	t.Helper()

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	res, err := Run(sc)
	if err != nil {
		t.Fatalf("run scenario: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, sc.Name, []byte(strings.Join(res.Trace, "\n")+"\n"))

	return res
}
