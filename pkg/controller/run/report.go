package run

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

type colorFunc func(a ...interface{}) string

const filePermission os.FileMode = 0o644

// Reporter renders each project's diagnostics to the console and appends them
// to a log file. Each sink is serialized independently so reports from
// concurrently analyzed projects never interleave.
type Reporter struct {
	fs        afero.Fs
	param     *ParamRun
	consoleMu sync.Mutex
	logMu     sync.Mutex
	red       colorFunc
	yellow    colorFunc
	cyan      colorFunc
}

func NewReporter(fs afero.Fs, param *ParamRun) *Reporter {
	return &Reporter{
		fs:     fs,
		param:  param,
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		cyan:   color.New(color.FgCyan).SprintFunc(),
	}
}

// Report renders one project's diagnostics to the active sinks.
// Diagnostics are sorted in place first so output is reproducible regardless
// of the order analyzers emitted them. Log file write failures are logged
// and don't stop the run.
func (r *Reporter) Report(logE *logrus.Entry, proj *solution.Project, diagnostics []analyzer.Diagnostic) {
	analyzer.SortDiagnostics(diagnostics)
	if r.param.Output {
		r.reportConsole(proj, diagnostics)
	}
	if r.param.LogFilePath != "" {
		if err := r.appendLog(proj, diagnostics); err != nil {
			logerr.WithError(logE.WithField("log_file", r.param.LogFilePath), err).Error("write diagnostics to a log file")
		}
	}
}

func (r *Reporter) reportConsole(proj *solution.Project, diagnostics []analyzer.Diagnostic) {
	r.consoleMu.Lock()
	defer r.consoleMu.Unlock()
	fmt.Fprintf(r.param.Stdout, "Found %d diagnostic in project '%s'\n", len(diagnostics), proj.Name)
	for _, diag := range diagnostics {
		if diag.Severity == analyzer.SeverityHidden {
			continue
		}
		fmt.Fprintln(r.param.Stdout, r.colorize(diag))
	}
}

func (r *Reporter) colorize(diag analyzer.Diagnostic) string {
	line := formatDiagnostic(diag)
	switch diag.Severity {
	case analyzer.SeverityError:
		return r.red(line)
	case analyzer.SeverityWarning:
		return r.yellow(line)
	case analyzer.SeverityInfo:
		return r.cyan(line)
	}
	return line
}

func formatDiagnostic(diag analyzer.Diagnostic) string {
	if diag.FilePath == "" {
		return fmt.Sprintf("%s %s: %s", diag.Severity, diag.RuleID, diag.Message)
	}
	return fmt.Sprintf("%s:%d: %s %s: %s", diag.FilePath, diag.Line, diag.Severity, diag.RuleID, diag.Message)
}

func (r *Reporter) appendLog(proj *solution.Project, diagnostics []analyzer.Diagnostic) error {
	r.logMu.Lock()
	defer r.logMu.Unlock()
	f, err := r.fs.OpenFile(r.param.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermission)
	if err != nil {
		return fmt.Errorf("open a log file: %w", err)
	}
	defer f.Close()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d diagnostic in project '%s'\n", len(diagnostics), proj.Name)
	for _, diag := range diagnostics {
		sb.WriteString(formatDiagnostic(diag))
		sb.WriteByte('\n')
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("append diagnostics to a log file: %w", err)
	}
	return nil
}
