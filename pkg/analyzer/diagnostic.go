package analyzer

import "sort"

// Diagnostic represents a single finding an analyzer reported in a project.
// A diagnostic is immutable once produced. FilePath is empty for diagnostics
// that aren't tied to a location such as project wide findings.
type Diagnostic struct {
	RuleID      string
	Severity    Severity
	FilePath    string
	StartOffset int
	Line        int
	Message     string
}

// SortDiagnostics sorts diagnostics by rule id, file path, and start offset.
// Diagnostics without a file path come before diagnostics with one under the
// same rule because the empty string sorts first.
func SortDiagnostics(diagnostics []Diagnostic) {
	sort.Slice(diagnostics, func(i, j int) bool {
		a, b := diagnostics[i], diagnostics[j]
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.StartOffset < b.StartOffset
	})
}
