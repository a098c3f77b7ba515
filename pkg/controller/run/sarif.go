package run

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/sarif"
)

// outputSARIF outputs diagnostics in SARIF format to a file, or to stdout if
// the path is "-".
func (c *Controller) outputSARIF(results []*Result, descriptors []*analyzer.Descriptor) error {
	log := sarif.Log{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "anrun",
						InformationURI: "https://github.com/suzuki-shunsuke/anrun",
						Rules:          buildSARIFRules(descriptors),
					},
				},
				Results: buildSARIFResults(results),
			},
		},
	}

	if c.param.SARIFPath == "-" {
		return encodeSARIF(c.param.Stdout, &log)
	}
	f, err := c.fs.Create(c.param.SARIFPath)
	if err != nil {
		return fmt.Errorf("create a SARIF file: %w", err)
	}
	defer f.Close()
	return encodeSARIF(f, &log)
}

func encodeSARIF(w io.Writer, log *sarif.Log) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func buildSARIFRules(descriptors []*analyzer.Descriptor) []sarif.Rule {
	m := map[string]sarif.Rule{}
	for _, d := range descriptors {
		for _, rule := range d.Rules {
			if _, ok := m[rule.ID]; ok {
				continue
			}
			m[rule.ID] = sarif.Rule{
				ID: rule.ID,
				ShortDescription: sarif.Message{
					Text: rule.Description,
				},
				DefaultConfiguration: &sarif.ReportingConfiguration{
					Level: severityToLevel(rule.Severity),
				},
			}
		}
	}
	rules := make([]sarif.Rule, 0, len(m))
	for _, rule := range m {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

func buildSARIFResults(results []*Result) []sarif.Result {
	n := 0
	for _, result := range results {
		n += len(result.Diagnostics)
	}
	out := make([]sarif.Result, 0, n)
	for _, result := range results {
		for _, diag := range result.Diagnostics {
			r := sarif.Result{
				RuleID:  diag.RuleID,
				Level:   severityToLevel(diag.Severity),
				Message: sarif.Message{Text: diag.Message},
			}
			if diag.FilePath != "" {
				r.Locations = []sarif.Location{
					{
						PhysicalLocation: sarif.PhysicalLocation{
							ArtifactLocation: sarif.ArtifactLocation{
								URI: diag.FilePath,
							},
							Region: sarif.Region{
								StartLine: diag.Line,
							},
						},
					},
				}
			}
			out = append(out, r)
		}
	}
	return out
}

func severityToLevel(severity analyzer.Severity) string {
	switch severity {
	case analyzer.SeverityError:
		return "error"
	case analyzer.SeverityWarning:
		return "warning"
	case analyzer.SeverityInfo:
		return "note"
	case analyzer.SeverityHidden:
		return "none"
	}
	return "warning"
}
