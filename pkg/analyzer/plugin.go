package analyzer

import (
	"fmt"
	"plugin"

	"github.com/hashicorp/go-version"
)

// PluginAPIVersion is the analyzer plugin API version of this binary.
// A plugin may export `var APIVersion string` to declare the API version it
// was built against. Plugins with a different major version are rejected.
const PluginAPIVersion = "1.0.0"

// Plugins must export one of these symbols.
const (
	pluginSymbolNew       = "New"
	pluginSymbolAnalyzers = "Analyzers"
	pluginSymbolVersion   = "APIVersion"
)

// NewFunc is the constructor signature a plugin may export as `New`.
type NewFunc func() ([]*Descriptor, error)

// Loader loads analyzers from plugin files and the built-in registry.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load returns the descriptors of all requested analyzer sources.
// Analyzer names must be unique across plugins and built-ins.
func (l *Loader) Load(pluginPaths []string, builtin bool) ([]*Descriptor, error) {
	descriptors := []*Descriptor{}
	if builtin {
		descriptors = append(descriptors, Registered()...)
	}
	for _, p := range pluginPaths {
		ds, err := LoadPlugin(p)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, ds...)
	}
	names := make(map[string]struct{}, len(descriptors))
	for _, d := range descriptors {
		name := d.Name()
		if _, ok := names[name]; ok {
			return nil, fmt.Errorf("analyzer %s is loaded twice", name)
		}
		names[name] = struct{}{}
	}
	return descriptors, nil
}

// LoadPlugin loads analyzer descriptors from a Go plugin file.
// The plugin must export either a constructor `New func() ([]*analyzer.Descriptor, error)`
// or a variable `Analyzers []*analyzer.Descriptor`. An error returned by the
// constructor is wrapped, not replaced, so callers can inspect the plugin's
// own error with errors.Is and errors.As.
func LoadPlugin(path string) ([]*Descriptor, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open a plugin file %s: %w", path, err)
	}
	descriptors, err := extractDescriptors(p)
	if err != nil {
		return nil, fmt.Errorf("load analyzers from a plugin %s: %w", path, err)
	}
	return descriptors, nil
}

// symbolLookuper is the part of *plugin.Plugin the extraction needs.
type symbolLookuper interface {
	Lookup(symName string) (plugin.Symbol, error)
}

func extractDescriptors(p symbolLookuper) ([]*Descriptor, error) {
	if err := checkPluginAPIVersion(p); err != nil {
		return nil, err
	}
	descriptors, err := lookupDescriptors(p)
	if err != nil {
		return nil, err
	}
	for _, d := range descriptors {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	return descriptors, nil
}

func lookupDescriptors(p symbolLookuper) ([]*Descriptor, error) {
	if sym, err := p.Lookup(pluginSymbolNew); err == nil {
		newFunc, ok := sym.(func() ([]*Descriptor, error))
		if !ok {
			return nil, fmt.Errorf("plugin symbol %s must be a func() ([]*analyzer.Descriptor, error)", pluginSymbolNew)
		}
		descriptors, err := newFunc()
		if err != nil {
			return nil, fmt.Errorf("initialize analyzers: %w", err)
		}
		return descriptors, nil
	}
	sym, err := p.Lookup(pluginSymbolAnalyzers)
	if err != nil {
		return nil, fmt.Errorf("a plugin must export either %s or %s", pluginSymbolNew, pluginSymbolAnalyzers)
	}
	descriptors, ok := sym.(*[]*Descriptor)
	if !ok {
		return nil, fmt.Errorf("plugin symbol %s must be a []*analyzer.Descriptor", pluginSymbolAnalyzers)
	}
	return *descriptors, nil
}

func checkPluginAPIVersion(p symbolLookuper) error {
	sym, err := p.Lookup(pluginSymbolVersion)
	if err != nil {
		// The symbol is optional.
		return nil //nolint:nilerr
	}
	v, ok := sym.(*string)
	if !ok {
		return fmt.Errorf("plugin symbol %s must be a string", pluginSymbolVersion)
	}
	pv, err := version.NewVersion(*v)
	if err != nil {
		return fmt.Errorf("parse the plugin API version %s: %w", *v, err)
	}
	sv := version.Must(version.NewVersion(PluginAPIVersion))
	if pv.Segments()[0] != sv.Segments()[0] {
		return fmt.Errorf("the plugin API version %s is incompatible with %s", *v, PluginAPIVersion)
	}
	return nil
}
