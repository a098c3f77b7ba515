// Package analyzer defines the analyzer and diagnostic model of anrun.
// An analyzer is a golang.org/x/tools/go/analysis Analyzer wrapped in a
// Descriptor that declares which rule ids the analyzer can emit and how
// severe each rule is. Descriptors come from two sources, the built-in
// registry and plugin files, and are shared by all projects of a run.
package analyzer

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/tools/go/analysis"
)

// RuleIDTypecheck is the rule id of diagnostics converted from package load
// and type check errors. Like every other rule id it is dropped by the
// diagnostic filter unless an analyzer declares it.
const RuleIDTypecheck = "typecheck"

// Rule is one diagnostic kind an analyzer can emit.
type Rule struct {
	ID          string
	Severity    Severity
	Description string
}

// Descriptor couples an analyzer with the rules it supports.
type Descriptor struct {
	Analyzer *analysis.Analyzer
	Rules    []Rule
}

func (d *Descriptor) Name() string {
	if d.Analyzer == nil {
		return ""
	}
	return d.Analyzer.Name
}

func (d *Descriptor) Validate() error {
	if d.Analyzer == nil {
		return errors.New("analyzer is required")
	}
	if d.Analyzer.Name == "" {
		return errors.New("analyzer name is required")
	}
	if len(d.Rules) == 0 {
		return fmt.Errorf("analyzer %s doesn't declare any rules", d.Analyzer.Name)
	}
	for _, rule := range d.Rules {
		if rule.ID == "" {
			return fmt.Errorf("analyzer %s declares a rule without an id", d.Analyzer.Name)
		}
	}
	return nil
}

// RuleIDUnion returns the set of rule ids the given descriptors support.
// Diagnostics whose rule id isn't in this set are dropped by the filter.
func RuleIDUnion(descriptors []*Descriptor) map[string]struct{} {
	union := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		for _, rule := range d.Rules {
			union[rule.ID] = struct{}{}
		}
	}
	return union
}

// Severities returns the declared severity per rule id.
// If two descriptors declare the same rule id, the higher severity wins.
func Severities(descriptors []*Descriptor) map[string]Severity {
	severities := make(map[string]Severity, len(descriptors))
	for _, d := range descriptors {
		for _, rule := range d.Rules {
			if sev, ok := severities[rule.ID]; ok && sev >= rule.Severity {
				continue
			}
			severities[rule.ID] = rule.Severity
		}
	}
	return severities
}

// SortDescriptors sorts descriptors by analyzer name.
func SortDescriptors(descriptors []*Descriptor) {
	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name() < descriptors[j].Name()
	})
}
