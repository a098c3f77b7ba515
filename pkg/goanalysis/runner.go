// Package goanalysis runs golang.org/x/tools/go/analysis analyzers against a
// single project. The runner expands the Requires closure of the requested
// analyzers, executes them in dependency order with an in-memory pass per
// analyzer, and converts reported findings and package errors to diagnostics.
//
// Facts are kept per analyzer and per run. Facts of imported packages aren't
// available because projects are analyzed independently, so analyzers that
// depend on cross package facts see fewer facts than under go vet.
//
// A Runner is stateless. Calling Analyze concurrently for distinct projects
// is safe.
package goanalysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"
)

type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// Analyze runs the analyzers of the given descriptors against one project and
// returns every produced diagnostic without filtering. Package load and type
// check errors are returned as typecheck diagnostics, and like go vet,
// analyzers that don't declare RunDespiteErrors are skipped when the package
// has such errors.
func (r *Runner) Analyze(ctx context.Context, proj *solution.Project, descriptors []*analyzer.Descriptor) ([]analyzer.Diagnostic, error) {
	p, err := buildPlan(descriptors)
	if err != nil {
		return nil, err
	}

	c := newCollector(proj, analyzer.Severities(descriptors))
	c.addPackageErrors(proj.Pkg)

	hasErrors := len(proj.Pkg.Errors) > 0 || len(proj.Pkg.TypeErrors) > 0
	results := make(map[*analysis.Analyzer]any, len(p.order))
	skipped := make(map[*analysis.Analyzer]struct{})
	for _, a := range p.order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if hasErrors && !a.RunDespiteErrors || requireSkipped(a, skipped) {
			skipped[a] = struct{}{}
			continue
		}
		result, err := r.runAnalyzer(proj, a, p.roots, results, c)
		if err != nil {
			return nil, err
		}
		results[a] = result
	}
	return c.diagnostics(), nil
}

func requireSkipped(a *analysis.Analyzer, skipped map[*analysis.Analyzer]struct{}) bool {
	for _, req := range a.Requires {
		if _, ok := skipped[req]; ok {
			return true
		}
	}
	return false
}

type plan struct {
	// order holds the Requires closure in dependency order.
	order []*analysis.Analyzer
	// roots are the requested analyzers. Only their diagnostics are kept.
	roots map[*analysis.Analyzer]struct{}
}

func buildPlan(descriptors []*analyzer.Descriptor) (*plan, error) {
	p := &plan{
		roots: make(map[*analysis.Analyzer]struct{}, len(descriptors)),
	}
	visited := map[*analysis.Analyzer]int{}
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if err := p.visit(d.Analyzer, visited); err != nil {
			return nil, err
		}
		p.roots[d.Analyzer] = struct{}{}
	}
	if err := analysis.Validate(p.order); err != nil {
		return nil, fmt.Errorf("validate analyzers: %w", err)
	}
	return p, nil
}

const (
	visiting = 1
	done     = 2
)

func (p *plan) visit(a *analysis.Analyzer, visited map[*analysis.Analyzer]int) error {
	if a == nil {
		return errors.New("analyzer must not be nil")
	}
	switch visited[a] {
	case visiting:
		return fmt.Errorf("analyzer dependency cycle involving %s", a.Name)
	case done:
		return nil
	}
	visited[a] = visiting
	for _, req := range a.Requires {
		if err := p.visit(req, visited); err != nil {
			return err
		}
	}
	visited[a] = done
	p.order = append(p.order, a)
	return nil
}

func (r *Runner) runAnalyzer(proj *solution.Project, a *analysis.Analyzer, roots map[*analysis.Analyzer]struct{}, results map[*analysis.Analyzer]any, c *collector) (any, error) {
	resultOf := make(map[*analysis.Analyzer]any, len(a.Requires))
	for _, req := range a.Requires {
		resultOf[req] = results[req]
	}
	_, isRoot := roots[a]
	facts := newFactStore(proj.Pkg.Types)
	pass := &analysis.Pass{
		Analyzer:          a,
		Fset:              proj.Fset,
		Files:             proj.Pkg.Syntax,
		OtherFiles:        proj.Pkg.OtherFiles,
		IgnoredFiles:      proj.Pkg.IgnoredFiles,
		Pkg:               proj.Pkg.Types,
		TypesInfo:         proj.Pkg.TypesInfo,
		TypesSizes:        proj.Pkg.TypesSizes,
		TypeErrors:        proj.Pkg.TypeErrors,
		Module:            passModule(proj.Pkg),
		ReadFile:          os.ReadFile,
		ResultOf:          resultOf,
		Report:            c.reportFunc(a, isRoot),
		ImportObjectFact:  facts.importObjectFact,
		ExportObjectFact:  facts.exportObjectFact,
		ImportPackageFact: facts.importPackageFact,
		ExportPackageFact: facts.exportPackageFact,
		AllObjectFacts:    facts.allObjectFacts,
		AllPackageFacts:   facts.allPackageFacts,
	}
	result, err := runWithRecover(a, pass)
	if err != nil {
		return nil, err
	}
	if a.ResultType != nil {
		if got := reflect.TypeOf(result); got != a.ResultType {
			return nil, fmt.Errorf("analyzer %s returned a %v, want a %v", a.Name, got, a.ResultType)
		}
	}
	return result, nil
}

// runWithRecover converts an analyzer panic to an error so a broken analyzer
// fails its own project instead of the whole process.
func runWithRecover(a *analysis.Analyzer, pass *analysis.Pass) (result any, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("analyzer %s panicked: %v", a.Name, v)
		}
	}()
	result, err = a.Run(pass)
	if err != nil {
		return nil, fmt.Errorf("run analyzer %s: %w", a.Name, err)
	}
	return result, nil
}

func passModule(pkg *packages.Package) *analysis.Module {
	if pkg.Module == nil {
		return nil
	}
	return &analysis.Module{
		Path:      pkg.Module.Path,
		Version:   pkg.Module.Version,
		GoVersion: pkg.Module.GoVersion,
	}
}

// parsePos splits a position of the form file:line:col or file:line.
// Positions are parsed from the right because file may contain colons on
// Windows.
func parsePos(pos string) (string, int) {
	if pos == "" || pos == "-" {
		return "", 0
	}
	file := pos
	line := 0
	i := strings.LastIndex(file, ":")
	if i < 0 {
		return file, 0
	}
	n, err := strconv.Atoi(file[i+1:])
	if err != nil {
		return file, 0
	}
	line = n
	file = file[:i]
	// If another numeric segment precedes, n was the column.
	if j := strings.LastIndex(file, ":"); j >= 0 {
		if m, err := strconv.Atoi(file[j+1:]); err == nil {
			line = m
			file = file[:j]
		}
	}
	return file, line
}
