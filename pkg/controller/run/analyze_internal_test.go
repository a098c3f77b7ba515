package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/config"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
)

func TestController_analyzeAll(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	sol := testSolution("example.com/a", "example.com/b", "example.com/c")
	diagnosticsByProject := map[string][]analyzer.Diagnostic{
		"example.com/a": {
			{RuleID: "X002", Severity: analyzer.SeverityWarning, FilePath: "a.go", Line: 5, Message: "second"},
			{RuleID: "X001", Severity: analyzer.SeverityError, FilePath: "a.go", Line: 3, Message: "first"},
			{RuleID: "X999", Severity: analyzer.SeverityError, FilePath: "a.go", Line: 7, Message: "unsupported rule"},
		},
		"example.com/b": {},
		"example.com/c": {
			{RuleID: "X001", Severity: analyzer.SeverityError, FilePath: "c.go", Line: 1, Message: "third"},
		},
	}
	projectAnalyzer := &mockProjectAnalyzer{
		analyzeFunc: func(_ context.Context, proj *solution.Project, _ []*analyzer.Descriptor) ([]analyzer.Diagnostic, error) {
			return diagnosticsByProject[proj.Name], nil
		},
	}
	stdout := &bytes.Buffer{}
	ctrl := New(nil, nil, projectAnalyzer, nil, afero.NewMemMapFs(), nil, nil, &ParamRun{Output: true, Stdout: stdout})

	results, err := ctrl.analyzeAll(t.Context(), logE, sol, testDescriptors())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expNames := []string{"example.com/a", "example.com/b", "example.com/c"}
	gotNames := make([]string, len(results))
	for i, result := range results {
		gotNames[i] = result.Project.Name
	}
	if diff := cmp.Diff(expNames, gotNames); diff != "" {
		t.Errorf("results must keep the solution order (-want +got):\n%s", diff)
	}

	expDiagnostics := []analyzer.Diagnostic{
		{RuleID: "X001", Severity: analyzer.SeverityError, FilePath: "a.go", Line: 3, Message: "first"},
		{RuleID: "X002", Severity: analyzer.SeverityWarning, FilePath: "a.go", Line: 5, Message: "second"},
	}
	if diff := cmp.Diff(expDiagnostics, results[0].Diagnostics); diff != "" {
		t.Errorf("unsupported rule ids must be dropped (-want +got):\n%s", diff)
	}

	out := stdout.String()
	for _, caption := range []string{
		"Found 2 diagnostic in project 'example.com/a'\n",
		"Found 0 diagnostic in project 'example.com/b'\n",
		"Found 1 diagnostic in project 'example.com/c'\n",
	} {
		if n := strings.Count(out, caption); n != 1 {
			t.Errorf("caption %q: wanted once, got %d times", caption, n)
		}
	}
}

func TestController_analyzeAll_failedProject(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	sol := testSolution("example.com/a", "example.com/b", "example.com/c")
	wantErr := errors.New("analysis failed")
	projectAnalyzer := &mockProjectAnalyzer{
		analyzeFunc: func(_ context.Context, proj *solution.Project, _ []*analyzer.Descriptor) ([]analyzer.Diagnostic, error) {
			if proj.Name == "example.com/b" {
				return nil, wantErr
			}
			return []analyzer.Diagnostic{
				{RuleID: "X001", Severity: analyzer.SeverityError, FilePath: "a.go", Message: fmt.Sprintf("finding of %s", proj.Name)},
			}, nil
		},
	}
	ctrl := New(nil, nil, projectAnalyzer, nil, afero.NewMemMapFs(), nil, nil, &ParamRun{})

	results, err := ctrl.analyzeAll(t.Context(), logE, sol, testDescriptors())
	if err != nil {
		t.Fatalf("a single project failure must not fail the whole analysis: %v", err)
	}
	if !errors.Is(results[1].Err, wantErr) {
		t.Errorf("the failure must be kept in the project's result, got %v", results[1].Err)
	}
	if len(results[1].Diagnostics) != 0 {
		t.Error("a failed project must not have diagnostics")
	}
	for _, i := range []int{0, 2} {
		if results[i].Err != nil {
			t.Errorf("project %s must not be affected by a sibling failure: %v", results[i].Project.Name, results[i].Err)
		}
		if len(results[i].Diagnostics) != 1 {
			t.Errorf("project %s diagnostics: wanted 1, got %d", results[i].Project.Name, len(results[i].Diagnostics))
		}
	}
}

func TestController_analyzeAll_noAnalyzers(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	sol := testSolution("example.com/a", "example.com/b")
	projectAnalyzer := &mockProjectAnalyzer{
		analyzeFunc: func(_ context.Context, _ *solution.Project, _ []*analyzer.Descriptor) ([]analyzer.Diagnostic, error) {
			return []analyzer.Diagnostic{
				{RuleID: "X001", Severity: analyzer.SeverityError, FilePath: "a.go", Message: "finding"},
			}, nil
		},
	}
	ctrl := New(nil, nil, projectAnalyzer, nil, afero.NewMemMapFs(), nil, nil, &ParamRun{})

	results, err := ctrl.analyzeAll(t.Context(), logE, sol, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results length: wanted 2, got %d", len(results))
	}
	for _, result := range results {
		if len(result.Diagnostics) != 0 {
			t.Errorf("project %s: every diagnostic must be dropped when no analyzer is loaded, got %d", result.Project.Name, len(result.Diagnostics))
		}
	}
}

func TestController_filterDiagnostics_ignore(t *testing.T) {
	t.Parallel()
	logE := logrus.NewEntry(logrus.New())
	cfg := &config.Config{
		IgnoreDiagnostics: []*config.IgnoreDiagnostic{
			{Rule: "X001", RuleFormat: "fixed_string", Path: "internal/*", PathFormat: "glob"},
		},
	}
	for _, ignore := range cfg.IgnoreDiagnostics {
		if err := ignore.Init(); err != nil {
			t.Fatal(err)
		}
	}
	c := &Controller{cfg: cfg, param: &ParamRun{}}
	allowed := map[string]struct{}{"X001": {}, "X002": {}}
	diagnostics := []analyzer.Diagnostic{
		{RuleID: "X001", FilePath: "internal/gen.go", Message: "ignored by configuration"},
		{RuleID: "X001", FilePath: "pkg/foo.go", Message: "kept, path doesn't match"},
		{RuleID: "X002", FilePath: "internal/gen.go", Message: "kept, rule doesn't match"},
		{RuleID: "X999", FilePath: "pkg/foo.go", Message: "dropped, unsupported rule"},
	}
	got := c.filterDiagnostics(logE, diagnostics, allowed)
	exp := []analyzer.Diagnostic{
		{RuleID: "X001", FilePath: "pkg/foo.go", Message: "kept, path doesn't match"},
		{RuleID: "X002", FilePath: "internal/gen.go", Message: "kept, rule doesn't match"},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("unexpected diagnostics (-want +got):\n%s", diff)
	}
}
