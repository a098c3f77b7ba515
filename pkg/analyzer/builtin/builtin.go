// Package builtin registers the built-in analyzers.
// The set is a curated subset of golang.org/x/tools/go/analysis/passes,
// roughly the go vet suite. Import this package for its side effect and
// load the descriptors with analyzer.Registered.
package builtin

import (
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
)

func init() { //nolint:gochecknoinits
	for _, d := range descriptors() {
		analyzer.Register(d)
	}
}

func descriptors() []*analyzer.Descriptor {
	return []*analyzer.Descriptor{
		desc(assign.Analyzer, analyzer.SeverityWarning, "Check for useless assignments"),
		desc(atomic.Analyzer, analyzer.SeverityError, "Check for common mistakes using the sync/atomic package"),
		desc(bools.Analyzer, analyzer.SeverityWarning, "Check for common mistakes involving boolean operators"),
		desc(copylock.Analyzer, analyzer.SeverityError, "Check for locks erroneously passed by value"),
		desc(errorsas.Analyzer, analyzer.SeverityError, "Check that the second argument to errors.As is a pointer to a type implementing error"),
		desc(httpresponse.Analyzer, analyzer.SeverityWarning, "Check for mistakes using HTTP responses"),
		desc(loopclosure.Analyzer, analyzer.SeverityWarning, "Check references to loop variables from within nested functions"),
		desc(lostcancel.Analyzer, analyzer.SeverityWarning, "Check cancel functions returned by context.WithCancel are called"),
		desc(nilfunc.Analyzer, analyzer.SeverityWarning, "Check for useless comparisons between functions and nil"),
		desc(nilness.Analyzer, analyzer.SeverityWarning, "Check for redundant or impossible nil comparisons"),
		desc(printf.Analyzer, analyzer.SeverityWarning, "Check consistency of Printf format strings and arguments"),
		desc(shift.Analyzer, analyzer.SeverityWarning, "Check for shifts that equal or exceed the width of the integer"),
		desc(sigchanyzer.Analyzer, analyzer.SeverityWarning, "Check for unbuffered channels of os.Signal"),
		desc(stdmethods.Analyzer, analyzer.SeverityWarning, "Check signatures of methods of well-known interfaces"),
		desc(stringintconv.Analyzer, analyzer.SeverityWarning, "Check for string(int) conversions"),
		desc(structtag.Analyzer, analyzer.SeverityWarning, "Check that struct field tags conform to reflect.StructTag.Get"),
		desc(tests.Analyzer, analyzer.SeverityWarning, "Check for common mistaken usages of tests and examples"),
		desc(unmarshal.Analyzer, analyzer.SeverityWarning, "Check for passing non-pointer or non-interface values to unmarshal"),
		desc(unreachable.Analyzer, analyzer.SeverityWarning, "Check for unreachable code"),
		desc(unusedresult.Analyzer, analyzer.SeverityWarning, "Check for unused results of calls to some pure functions"),
	}
}

func desc(a *analysis.Analyzer, severity analyzer.Severity, description string) *analyzer.Descriptor {
	return &analyzer.Descriptor{
		Analyzer: a,
		Rules: []analyzer.Rule{
			{
				ID:          a.Name,
				Severity:    severity,
				Description: description,
			},
		},
	}
}
