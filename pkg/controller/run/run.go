package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/config"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

type ParamRun struct {
	// SolutionPath is the solution root directory.
	SolutionPath string
	// Patterns are package patterns passed as positional arguments.
	// They take precedence over the patterns of the configuration file.
	Patterns []string
	// PluginPaths are analyzer plugin files.
	PluginPaths []string
	// Builtin also runs the built-in analyzers.
	Builtin bool
	// Tests also analyzes test packages.
	Tests bool
	// Output enables the console sink.
	Output bool
	// LogFilePath enables the log file sink. The file is appended to.
	LogFilePath string
	// SARIFPath writes a SARIF report to a file, or to standard output if
	// the path is "-".
	SARIFPath string
	// Check makes the run fail with ErrDiagnosticsFound if any diagnostic
	// is found.
	Check           bool
	ConfigFilePath  string
	PWD             string
	IsGitHubActions bool
	Stdout          io.Writer
	Review          *Review
}

// ErrDiagnosticsFound is returned in check mode when the run found
// diagnostics. main treats it as exit code 1 without an error log.
var ErrDiagnosticsFound = errors.New("diagnostics are found")

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	if err := c.readConfig(); err != nil {
		return err
	}
	descriptors, err := c.analyzerLoader.Load(c.param.PluginPaths, c.param.Builtin)
	if err != nil {
		return fmt.Errorf("load analyzers: %w", err)
	}
	sol, err := c.loadSolution(ctx, logE)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := c.analyzeAll(ctx, logE, sol, descriptors)
	if err != nil {
		return err
	}
	total := 0
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		}
		total += len(result.Diagnostics)
	}
	logE.WithFields(logrus.Fields{
		"projects":    len(results),
		"diagnostics": total,
		"duration":    time.Since(start).String(),
	}).Info("analyzed the solution")

	if c.param.SARIFPath != "" {
		if err := c.outputSARIF(results, descriptors); err != nil {
			return fmt.Errorf("output SARIF: %w", err)
		}
	}
	if c.param.Review != nil {
		c.reviewResults(ctx, logE, results)
	}
	if failed > 0 {
		return logerr.WithFields(errors.New("some projects failed to be analyzed"), logrus.Fields{ //nolint:wrapcheck
			"failed_projects": failed,
		})
	}
	if c.param.Check && total > 0 {
		return ErrDiagnosticsFound
	}
	return nil
}

func (c *Controller) readConfig() error {
	p, err := c.cfgFinder.Find(c.param.ConfigFilePath)
	if err != nil {
		return fmt.Errorf("find a configuration file: %w", err)
	}
	c.param.ConfigFilePath = p
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, c.param.ConfigFilePath); err != nil {
		return fmt.Errorf("read a config file: %w", err)
	}
	c.cfg = cfg
	return nil
}

func (c *Controller) loadSolution(ctx context.Context, logE *logrus.Entry) (*solution.Solution, error) {
	start := time.Now()
	sol, err := c.solutionLoader.Load(ctx, &solution.ParamLoad{
		Root:     c.param.SolutionPath,
		Patterns: c.targetPatterns(),
		Tests:    c.param.Tests,
	})
	if err != nil {
		return nil, fmt.Errorf("load a solution: %w", err)
	}
	logE.WithFields(logrus.Fields{
		"projects":  len(sol.Projects),
		"documents": sol.Documents,
		"duration":  time.Since(start).String(),
	}).Info("loaded the solution")
	return sol, nil
}

func (c *Controller) targetPatterns() []string {
	if len(c.param.Patterns) != 0 {
		return c.param.Patterns
	}
	patterns := make([]string, 0, len(c.cfg.Targets))
	for _, target := range c.cfg.Targets {
		patterns = append(patterns, target.Pattern)
	}
	return patterns
}
