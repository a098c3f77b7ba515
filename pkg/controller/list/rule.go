package list

// RuleInfo contains information about a rule of a loaded analyzer.
// It is used for template rendering.
type RuleInfo struct {
	AnalyzerName string // Name of the analyzer that owns the rule
	RuleID       string // Rule id
	Severity     string // Default severity (hidden, info, warning, error)
	Description  string // Short description of the rule
}
