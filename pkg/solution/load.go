package solution

import (
	"context"
	"fmt"
	"go/token"

	"golang.org/x/tools/go/packages"
)

// loadMode loads everything analyzers consume, syntax, types, and type
// information of the target packages and their dependencies.
const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes |
	packages.NeedModule

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

type ParamLoad struct {
	// Root is the solution root directory holding go.mod or go.work.
	Root string
	// Patterns are package patterns such as ./... . If empty, ./... is used.
	Patterns []string
	// Tests also loads test packages.
	Tests bool
}

// Load opens the solution and loads its projects.
// Package load and type check errors don't fail the load. They are attached
// to the package and converted to diagnostics during analysis.
func (l *Loader) Load(ctx context.Context, param *ParamLoad) (*Solution, error) {
	patterns := param.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     param.Root,
		Fset:    fset,
		Tests:   param.Tests,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	return newSolution(param.Root, fset, pkgs), nil
}
