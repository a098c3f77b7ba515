package config

import (
	"errors"
	"fmt"
	"path"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Version           int                 `json:"version,omitempty" jsonschema:"enum=1"`
	Targets           []*Target           `json:"targets,omitempty" jsonschema:"description=Target package patterns. If patterns are passed via positional command line arguments, this is ignored"`
	IgnoreDiagnostics []*IgnoreDiagnostic `json:"ignore_diagnostics,omitempty" yaml:"ignore_diagnostics" jsonschema:"description=Diagnostics that anrun drops after rule id filtering"`
}

type Target struct {
	Pattern string `json:"pattern" jsonschema:"description=A Go package pattern such as ./..."`
}

const (
	formatFixedString = "fixed_string"
	formatGlob        = "glob"
	formatRegexp      = "regexp"
)

func (t *Target) Init() error {
	if t.Pattern == "" {
		return errors.New("pattern is required")
	}
	return nil
}

type IgnoreDiagnostic struct {
	Rule       string `json:"rule"`
	Path       string `json:"path,omitempty"`
	RuleFormat string `json:"rule_format" yaml:"rule_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp"`
	PathFormat string `json:"path_format,omitempty" yaml:"path_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp"`
	ruleRegexp *regexp.Regexp
	pathRegexp *regexp.Regexp
}

func initFormat(value, format string) (*regexp.Regexp, error) {
	switch format {
	case formatFixedString:
		return nil, nil //nolint:nilnil
	case formatGlob:
		if _, err := path.Match(value, "a"); err != nil {
			return nil, fmt.Errorf("parse as a glob: %w", err)
		}
		return nil, nil //nolint:nilnil
	case formatRegexp:
		r, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("compile as a regular expression: %w", err)
		}
		return r, nil
	default:
		return nil, errors.New("format must be fixed_string, glob, or regexp")
	}
}

func (id *IgnoreDiagnostic) initRule() error {
	if id.Rule == "" {
		return errors.New("rule is required")
	}
	if id.RuleFormat == "" {
		return errors.New("rule_format is required")
	}
	var err error
	id.ruleRegexp, err = initFormat(id.Rule, id.RuleFormat)
	return err
}

func (id *IgnoreDiagnostic) initPath() error {
	if id.Path == "" {
		return nil
	}
	if id.PathFormat == "" {
		return errors.New("path_format is required if path is specified")
	}
	var err error
	id.pathRegexp, err = initFormat(id.Path, id.PathFormat)
	return err
}

func (id *IgnoreDiagnostic) Init() error {
	if err := id.initRule(); err != nil {
		return err
	}
	if err := id.initPath(); err != nil {
		return err
	}
	return nil
}

func match(value, pattern, format string, r *regexp.Regexp) (bool, error) {
	switch format {
	case formatFixedString:
		return pattern == value, nil
	case formatGlob:
		f, err := path.Match(pattern, value)
		if err != nil {
			return false, fmt.Errorf("match as a glob: %w", err)
		}
		return f, nil
	case formatRegexp:
		return r.MatchString(value), nil
	default:
		return false, errors.New("unexpected format: " + format)
	}
}

// Match reports whether a diagnostic with the given rule id and file path
// should be ignored. An entry without a path matches every file path.
func (id *IgnoreDiagnostic) Match(ruleID, filePath string) (bool, error) {
	f, err := match(ruleID, id.Rule, id.RuleFormat, id.ruleRegexp)
	if err != nil {
		return false, fmt.Errorf("match rule: %w", err)
	}
	if !f {
		return false, nil
	}

	if id.Path == "" {
		return true, nil
	}

	f, err = match(filePath, id.Path, id.PathFormat, id.pathRegexp)
	if err != nil {
		return false, fmt.Errorf("match path: %w", err)
	}
	if !f {
		return false, nil
	}
	return true, nil
}

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".anrun.yaml", ".github/anrun.yaml", ".anrun.yml", ".github/anrun.yml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	return "", nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	p, err := getConfigPath(f.fs)
	if err != nil {
		return "", err
	}
	return p, nil
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	for _, target := range cfg.Targets {
		if err := target.Init(); err != nil {
			return fmt.Errorf("initialize target: %w", err)
		}
	}
	for _, id := range cfg.IgnoreDiagnostics {
		if err := id.Init(); err != nil {
			return fmt.Errorf("initialize ignore_diagnostic: %w", err)
		}
	}
	return nil
}
