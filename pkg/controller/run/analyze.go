package run

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"golang.org/x/sync/errgroup"
)

// analyzeAll analyzes every project of the solution concurrently, one
// goroutine per project. Each project is dispatched exactly once and reported
// exactly once, as soon as its diagnostics are known. The returned results
// are index addressed, so their order is the solution order no matter which
// project finished first.
//
// An analysis failure of one project doesn't affect its siblings. The failure
// is kept in Result.Err and turned into one error after the whole run.
func (c *Controller) analyzeAll(ctx context.Context, logE *logrus.Entry, sol *solution.Solution, descriptors []*analyzer.Descriptor) ([]*Result, error) {
	allowed := analyzer.RuleIDUnion(descriptors)
	results := make([]*Result, len(sol.Projects))
	g, gctx := errgroup.WithContext(ctx)
	for i, proj := range sol.Projects {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err() //nolint:wrapcheck
			default:
			}
			logE := logE.WithField("project", proj.Name)
			diagnostics, err := c.projectAnalyzer.Analyze(gctx, proj, descriptors)
			if err != nil {
				logerr.WithError(logE, err).Error("analyze a project")
				results[i] = &Result{Project: proj, Err: err}
				return nil
			}
			diagnostics = c.filterDiagnostics(logE, diagnostics, allowed)
			c.reporter.Report(logE, proj, diagnostics)
			results[i] = &Result{Project: proj, Diagnostics: diagnostics}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze projects: %w", err)
	}
	return results, nil
}

// filterDiagnostics drops diagnostics whose rule id no loaded analyzer
// supports, including typecheck diagnostics of broken packages, and
// diagnostics matched by ignore_diagnostics entries of the configuration.
func (c *Controller) filterDiagnostics(logE *logrus.Entry, diagnostics []analyzer.Diagnostic, allowed map[string]struct{}) []analyzer.Diagnostic {
	filtered := make([]analyzer.Diagnostic, 0, len(diagnostics))
	for _, diagnostic := range diagnostics {
		if _, ok := allowed[diagnostic.RuleID]; !ok {
			continue
		}
		if c.ignoreDiagnostic(logE, diagnostic) {
			continue
		}
		filtered = append(filtered, diagnostic)
	}
	return filtered
}

func (c *Controller) ignoreDiagnostic(logE *logrus.Entry, diagnostic analyzer.Diagnostic) bool {
	for _, ignore := range c.cfg.IgnoreDiagnostics {
		f, err := ignore.Match(diagnostic.RuleID, diagnostic.FilePath)
		if err != nil {
			// Broken entries are reported once by config validation, so a
			// match failure here only keeps the diagnostic.
			logerr.WithError(logE, err).Warn("match a diagnostic with ignore_diagnostics")
			continue
		}
		if f {
			logE.WithFields(logrus.Fields{
				"rule":      diagnostic.RuleID,
				"file_path": diagnostic.FilePath,
			}).Debug("ignore a diagnostic")
			return true
		}
	}
	return false
}
