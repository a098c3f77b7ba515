package list

import (
	"context"
	"fmt"
	"text/template"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
)

// List executes the main list operation.
// It loads analyzers and outputs their rule information.
func (c *Controller) List(_ context.Context, logE *logrus.Entry) error {
	descriptors, err := c.analyzerLoader.Load(c.param.PluginPaths, c.param.Builtin)
	if err != nil {
		return fmt.Errorf("load analyzers: %w", err)
	}
	analyzer.SortDescriptors(descriptors)

	tmpl, err := c.parseTemplate()
	if err != nil {
		return err
	}

	for _, d := range descriptors {
		for _, rule := range d.Rules {
			if c.excludeRule(rule.ID) {
				logE.WithField("rule_id", rule.ID).Debug("exclude the rule")
				continue
			}
			if c.excludeByIncludes(rule.ID) {
				logE.WithField("rule_id", rule.ID).Debug("exclude the rule by includes")
				continue
			}
			info := &RuleInfo{
				AnalyzerName: d.Name(),
				RuleID:       rule.ID,
				Severity:     rule.Severity.String(),
				Description:  rule.Description,
			}
			if err := c.output(info, tmpl); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Controller) parseTemplate() (*template.Template, error) {
	if c.param.LineTemplate == "" {
		return nil, nil //nolint:nilnil
	}
	tmpl, err := template.New("line").Parse(c.param.LineTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse line template: %w", err)
	}
	return tmpl, nil
}

func (c *Controller) output(info *RuleInfo, tmpl *template.Template) error {
	if tmpl != nil {
		if err := tmpl.Execute(c.stdout, info); err != nil {
			return fmt.Errorf("execute template: %w", err)
		}
		fmt.Fprintln(c.stdout)
		return nil
	}
	// Default CSV format: <AnalyzerName>,<RuleID>,<Severity>,<Description>
	fmt.Fprintf(c.stdout, "%s,%s,%s,%s\n", info.AnalyzerName, info.RuleID, info.Severity, info.Description)
	return nil
}

func (c *Controller) excludeRule(ruleID string) bool {
	for _, exclude := range c.param.Excludes {
		if exclude.MatchString(ruleID) {
			return true
		}
	}
	return false
}

func (c *Controller) excludeByIncludes(ruleID string) bool {
	if len(c.param.Includes) == 0 {
		return false
	}
	for _, include := range c.param.Includes {
		if include.MatchString(ruleID) {
			return false
		}
	}
	return true
}
