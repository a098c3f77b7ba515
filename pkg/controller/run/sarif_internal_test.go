package run

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/sarif"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
	"golang.org/x/tools/go/analysis"
)

func sarifFixtures() ([]*Result, []*analyzer.Descriptor) {
	results := []*Result{
		{
			Project: &solution.Project{Name: "example.com/a"},
			Diagnostics: []analyzer.Diagnostic{
				{RuleID: "X001", Severity: analyzer.SeverityError, FilePath: "a.go", Line: 3, Message: "first finding"},
			},
		},
		{
			Project: &solution.Project{Name: "example.com/b"},
			Diagnostics: []analyzer.Diagnostic{
				{RuleID: "X002", Severity: analyzer.SeverityWarning, Message: "project wide finding"},
			},
		},
	}
	descriptors := []*analyzer.Descriptor{
		{
			Analyzer: &analysis.Analyzer{Name: "checker"},
			Rules: []analyzer.Rule{
				{ID: "X002", Severity: analyzer.SeverityWarning, Description: "second rule"},
				{ID: "X001", Severity: analyzer.SeverityError, Description: "first rule"},
			},
		},
		{
			Analyzer: &analysis.Analyzer{Name: "other"},
			Rules: []analyzer.Rule{
				{ID: "X001", Severity: analyzer.SeverityInfo, Description: "duplicate declaration"},
			},
		},
	}
	return results, descriptors
}

func TestController_outputSARIF(t *testing.T) {
	t.Parallel()
	results, descriptors := sarifFixtures()
	stdout := &bytes.Buffer{}
	c := &Controller{
		fs:    afero.NewMemMapFs(),
		param: &ParamRun{SARIFPath: "-", Stdout: stdout},
	}
	if err := c.outputSARIF(results, descriptors); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := sarif.Log{}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode the SARIF output: %v", err)
	}
	exp := sarif.Log{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "anrun",
						InformationURI: "https://github.com/suzuki-shunsuke/anrun",
						Rules: []sarif.Rule{
							{
								ID:                   "X001",
								ShortDescription:     sarif.Message{Text: "first rule"},
								DefaultConfiguration: &sarif.ReportingConfiguration{Level: "error"},
							},
							{
								ID:                   "X002",
								ShortDescription:     sarif.Message{Text: "second rule"},
								DefaultConfiguration: &sarif.ReportingConfiguration{Level: "warning"},
							},
						},
					},
				},
				Results: []sarif.Result{
					{
						RuleID:  "X001",
						Level:   "error",
						Message: sarif.Message{Text: "first finding"},
						Locations: []sarif.Location{
							{
								PhysicalLocation: sarif.PhysicalLocation{
									ArtifactLocation: sarif.ArtifactLocation{URI: "a.go"},
									Region:           sarif.Region{StartLine: 3},
								},
							},
						},
					},
					{
						RuleID:  "X002",
						Level:   "warning",
						Message: sarif.Message{Text: "project wide finding"},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("unexpected SARIF log (-want +got):\n%s", diff)
	}
}

func TestController_outputSARIF_file(t *testing.T) {
	t.Parallel()
	results, descriptors := sarifFixtures()
	fs := afero.NewMemMapFs()
	c := &Controller{
		fs:    fs,
		param: &ParamRun{SARIFPath: "result.sarif"},
	}
	if err := c.outputSARIF(results, descriptors); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := afero.ReadFile(fs, "result.sarif")
	if err != nil {
		t.Fatalf("read the SARIF file: %v", err)
	}
	got := sarif.Log{}
	if err := json.Unmarshal(content, &got); err != nil {
		t.Fatalf("decode the SARIF file: %v", err)
	}
	if got.Version != "2.1.0" {
		t.Errorf("version: wanted %q, got %q", "2.1.0", got.Version)
	}
}

func Test_severityToLevel(t *testing.T) {
	t.Parallel()
	data := []struct {
		name     string
		severity analyzer.Severity
		exp      string
	}{
		{name: "error", severity: analyzer.SeverityError, exp: "error"},
		{name: "warning", severity: analyzer.SeverityWarning, exp: "warning"},
		{name: "info", severity: analyzer.SeverityInfo, exp: "note"},
		{name: "hidden", severity: analyzer.SeverityHidden, exp: "none"},
		{name: "unknown", severity: analyzer.Severity(99), exp: "warning"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if got := severityToLevel(d.severity); got != d.exp {
				t.Errorf("wanted %q, got %q", d.exp, got)
			}
		})
	}
}
