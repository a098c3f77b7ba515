// Package run implements the core business logic of anrun.
// This package contains the main controller that orchestrates a whole
// analysis, loading the solution, fanning analyzer execution out across its
// projects, filtering diagnostics down to the rule ids the loaded analyzers
// support, and reporting results to the configured sinks while the run is
// still in flight. It handles the check mode used by CI, SARIF output, and
// pull request reviews. The package provides a clean separation between the
// CLI layer and the analysis work, coordinating with the analysis driver,
// GitHub services, and filesystem operations through narrow interfaces.
package run

import (
	"context"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/config"
	"github.com/suzuki-shunsuke/anrun/pkg/github"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
)

type Controller struct {
	analyzerLoader      AnalyzerLoader
	solutionLoader      SolutionLoader
	projectAnalyzer     ProjectAnalyzer
	pullRequestsService PullRequestsService
	fs                  afero.Fs
	cfg                 *config.Config
	param               *ParamRun
	cfgFinder           ConfigFinder
	cfgReader           ConfigReader
	reporter            *Reporter
}

// AnalyzerLoader loads analyzer descriptors from plugin files and the
// built-in registry.
type AnalyzerLoader interface {
	Load(pluginPaths []string, builtin bool) ([]*analyzer.Descriptor, error)
}

// SolutionLoader opens a solution directory and loads its projects.
type SolutionLoader interface {
	Load(ctx context.Context, param *solution.ParamLoad) (*solution.Solution, error)
}

// ProjectAnalyzer runs analyzers against one project and returns the
// unfiltered diagnostics. Implementations must be safe for concurrent calls
// on distinct projects.
type ProjectAnalyzer interface {
	Analyze(ctx context.Context, proj *solution.Project, descriptors []*analyzer.Descriptor) ([]analyzer.Diagnostic, error)
}

type PullRequestsService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.PullRequestComment) (*github.PullRequestComment, *github.Response, error)
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

func New(analyzerLoader AnalyzerLoader, solutionLoader SolutionLoader, projectAnalyzer ProjectAnalyzer, pullRequestsService PullRequestsService, fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, param *ParamRun) *Controller {
	return &Controller{
		analyzerLoader:      analyzerLoader,
		solutionLoader:      solutionLoader,
		projectAnalyzer:     projectAnalyzer,
		pullRequestsService: pullRequestsService,
		param:               param,
		fs:                  fs,
		cfgFinder:           cfgFinder,
		cfgReader:           cfgReader,
		cfg:                 &config.Config{},
		reporter:            NewReporter(fs, param),
	}
}
