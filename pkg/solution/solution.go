// Package solution models the unit anrun analyzes.
// A solution is a Go module or workspace rooted at a directory. Each package
// of the solution is a project. Projects are analyzed independently and
// concurrently, so a project carries everything per project analysis needs,
// the loaded package and the file set the package positions refer to.
package solution

import (
	"go/token"
	"path/filepath"
	"sort"

	"golang.org/x/tools/go/packages"
)

// Project is one Go package of a solution.
type Project struct {
	// Name is the display name of the project, the package path.
	Name string
	// Dir is the directory holding the project's Go files.
	Dir string
	// Pkg is the loaded package with syntax and type information.
	Pkg *packages.Package
	// Fset maps the package positions to file names, lines, and offsets.
	Fset *token.FileSet
}

// Solution is the set of projects under a root directory.
// Projects are sorted by package path. This order is stable across runs and
// defines the order aggregated results are returned in.
type Solution struct {
	Root      string
	Projects  []*Project
	Documents int
}

func newSolution(root string, fset *token.FileSet, pkgs []*packages.Package) *Solution {
	sort.Slice(pkgs, func(i, j int) bool {
		if pkgs[i].PkgPath != pkgs[j].PkgPath {
			return pkgs[i].PkgPath < pkgs[j].PkgPath
		}
		return pkgs[i].ID < pkgs[j].ID
	})
	sol := &Solution{
		Root:     root,
		Projects: make([]*Project, 0, len(pkgs)),
	}
	for _, pkg := range pkgs {
		dir := ""
		if len(pkg.GoFiles) > 0 {
			dir = filepath.Dir(pkg.GoFiles[0])
		}
		sol.Projects = append(sol.Projects, &Project{
			Name: pkg.PkgPath,
			Dir:  dir,
			Pkg:  pkg,
			Fset: fset,
		})
		sol.Documents += len(pkg.GoFiles)
	}
	return sol
}
