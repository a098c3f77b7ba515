// Package list implements the 'anrun list' command.
// This package provides functionality to list the rules of loaded analyzers,
// with support for filtering by rule id and custom output formatting.
package list

import (
	"io"
	"regexp"

	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
)

// Controller handles the list command operations.
type Controller struct {
	analyzerLoader AnalyzerLoader
	param          *Param
	stdout         io.Writer
}

// AnalyzerLoader loads analyzer descriptors from plugin files and the
// built-in registry.
type AnalyzerLoader interface {
	Load(pluginPaths []string, builtin bool) ([]*analyzer.Descriptor, error)
}

// Param contains parameters for the list command.
type Param struct {
	PluginPaths  []string
	Builtin      bool
	LineTemplate string
	Includes     []*regexp.Regexp
	Excludes     []*regexp.Regexp
}

// New creates a new Controller for running list operations.
func New(analyzerLoader AnalyzerLoader, param *Param, stdout io.Writer) *Controller {
	return &Controller{
		analyzerLoader: analyzerLoader,
		param:          param,
		stdout:         stdout,
	}
}
