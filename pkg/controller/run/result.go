package run

import (
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
)

// Result is the outcome of analyzing one project.
// Err is set when the project's analysis failed. A failed project has no
// diagnostics.
type Result struct {
	Project     *solution.Project
	Diagnostics []analyzer.Diagnostic
	Err         error
}
