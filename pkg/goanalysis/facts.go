package goanalysis

import (
	"go/types"
	"reflect"
	"sync"

	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"
)

// collector gathers diagnostics of one Analyze call.
// Report may be called from goroutines an analyzer spawns, hence the mutex.
type collector struct {
	mu         sync.Mutex
	proj       *solution.Project
	severities map[string]analyzer.Severity
	diags      []analyzer.Diagnostic
}

func newCollector(proj *solution.Project, severities map[string]analyzer.Severity) *collector {
	return &collector{
		proj:       proj,
		severities: severities,
	}
}

// reportFunc returns the Report implementation for one analyzer.
// Diagnostics of dependency analyzers are discarded. Only the analyzers a
// caller requested report.
func (c *collector) reportFunc(a *analysis.Analyzer, isRoot bool) func(analysis.Diagnostic) {
	if !isRoot {
		return func(analysis.Diagnostic) {}
	}
	return func(d analysis.Diagnostic) {
		ruleID := d.Category
		if ruleID == "" {
			ruleID = a.Name
		}
		pos := c.proj.Fset.Position(d.Pos)
		c.add(analyzer.Diagnostic{
			RuleID:      ruleID,
			Severity:    c.severity(ruleID, analyzer.SeverityWarning),
			FilePath:    pos.Filename,
			StartOffset: pos.Offset,
			Line:        pos.Line,
			Message:     d.Message,
		})
	}
}

// addPackageErrors converts package load and type check errors to typecheck
// diagnostics so they flow through the same filter as analyzer diagnostics.
func (c *collector) addPackageErrors(pkg *packages.Package) {
	for _, perr := range pkg.Errors {
		file, line := parsePos(perr.Pos)
		c.add(analyzer.Diagnostic{
			RuleID:   analyzer.RuleIDTypecheck,
			Severity: c.severity(analyzer.RuleIDTypecheck, analyzer.SeverityError),
			FilePath: file,
			Line:     line,
			Message:  perr.Msg,
		})
	}
}

func (c *collector) severity(ruleID string, fallback analyzer.Severity) analyzer.Severity {
	if sev, ok := c.severities[ruleID]; ok {
		return sev
	}
	return fallback
}

func (c *collector) add(d analyzer.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

func (c *collector) diagnostics() []analyzer.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.diags
}

type objectFactKey struct {
	obj types.Object
	typ reflect.Type
}

type packageFactKey struct {
	pkg *types.Package
	typ reflect.Type
}

// factStore implements the fact fields of analysis.Pass for one analyzer.
// Facts exported by the analyzer are visible to the same analyzer within the
// same run. Facts of imported packages are never found.
type factStore struct {
	mu           sync.Mutex
	pkg          *types.Package
	objectFacts  map[objectFactKey]analysis.Fact
	packageFacts map[packageFactKey]analysis.Fact
}

func newFactStore(pkg *types.Package) *factStore {
	return &factStore{
		pkg:          pkg,
		objectFacts:  map[objectFactKey]analysis.Fact{},
		packageFacts: map[packageFactKey]analysis.Fact{},
	}
}

func (s *factStore) importObjectFact(obj types.Object, fact analysis.Fact) bool {
	if obj == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.objectFacts[objectFactKey{obj: obj, typ: reflect.TypeOf(fact)}]
	if !ok {
		return false
	}
	reflect.ValueOf(fact).Elem().Set(reflect.ValueOf(v).Elem())
	return true
}

func (s *factStore) exportObjectFact(obj types.Object, fact analysis.Fact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objectFacts[objectFactKey{obj: obj, typ: reflect.TypeOf(fact)}] = fact
}

func (s *factStore) importPackageFact(pkg *types.Package, fact analysis.Fact) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.packageFacts[packageFactKey{pkg: pkg, typ: reflect.TypeOf(fact)}]
	if !ok {
		return false
	}
	reflect.ValueOf(fact).Elem().Set(reflect.ValueOf(v).Elem())
	return true
}

func (s *factStore) exportPackageFact(fact analysis.Fact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packageFacts[packageFactKey{pkg: s.pkg, typ: reflect.TypeOf(fact)}] = fact
}

func (s *factStore) allObjectFacts() []analysis.ObjectFact {
	s.mu.Lock()
	defer s.mu.Unlock()
	facts := make([]analysis.ObjectFact, 0, len(s.objectFacts))
	for key, fact := range s.objectFacts {
		facts = append(facts, analysis.ObjectFact{Object: key.obj, Fact: fact})
	}
	return facts
}

func (s *factStore) allPackageFacts() []analysis.PackageFact {
	s.mu.Lock()
	defer s.mu.Unlock()
	facts := make([]analysis.PackageFact, 0, len(s.packageFacts))
	for key, fact := range s.packageFacts {
		facts = append(facts, analysis.PackageFact{Package: key.pkg, Fact: fact})
	}
	return facts
}
