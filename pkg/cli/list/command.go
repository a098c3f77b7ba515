package list

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/controller/list"
	"github.com/suzuki-shunsuke/anrun/pkg/log"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry) *cli.Command {
	r := &runner{
		logE: logE,
	}
	return r.Command()
}

type runner struct {
	logE *logrus.Entry
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the rules of analyzers",
		Description: `List the rules of loaded analyzers.

$ anrun list

Output format (default CSV):
<AnalyzerName>,<RuleID>,<Severity>,<Description>

Custom output format using Go template:
$ anrun list --line-template "{{.AnalyzerName}}: {{.RuleID}}"

Available template fields:
  AnalyzerName - Name of the analyzer that owns the rule
  RuleID       - Rule id
  Severity     - Default severity (hidden, info, warning, error)
  Description  - Short description of the rule
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "analyzer",
				Aliases: []string{"a"},
				Usage:   "Analyzer plugin file path",
			},
			&cli.BoolFlag{
				Name:  "builtin",
				Usage: "List the built-in analyzers",
				Value: true,
			},
			&cli.StringFlag{
				Name:  "line-template",
				Usage: "Go text/template format for each line",
			},
			&cli.StringSliceFlag{
				Name:    "include",
				Aliases: []string{"i"},
				Usage:   "A regular expression to include rules",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "A regular expression to exclude rules",
			},
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)

	includes, err := compilePatterns(c.StringSlice("include"))
	if err != nil {
		return fmt.Errorf("compile include patterns: %w", err)
	}
	excludes, err := compilePatterns(c.StringSlice("exclude"))
	if err != nil {
		return fmt.Errorf("compile exclude patterns: %w", err)
	}

	param := &list.Param{
		PluginPaths:  c.StringSlice("analyzer"),
		Builtin:      c.Bool("builtin"),
		LineTemplate: c.String("line-template"),
		Includes:     includes,
		Excludes:     excludes,
	}
	ctrl := list.New(analyzer.NewLoader(), param, os.Stdout)
	return ctrl.List(ctx, r.logE) //nolint:wrapcheck
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	result := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile regex %q: %w", pattern, err)
		}
		result = append(result, re)
	}
	return result, nil
}
