package config

import (
	"testing"

	"github.com/spf13/afero"
)

func TestTarget_Init(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		target  *Target
		wantErr bool
	}{
		{name: "valid pattern", target: &Target{Pattern: "./..."}, wantErr: false},
		{name: "empty pattern", target: &Target{Pattern: ""}, wantErr: true},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			err := d.target.Init()
			if d.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !d.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestIgnoreDiagnostic_Init(t *testing.T) {
	t.Parallel()
	data := []struct {
		name    string
		id      *IgnoreDiagnostic
		wantErr bool
	}{
		{name: "valid", id: &IgnoreDiagnostic{Rule: "printf", RuleFormat: "fixed_string"}, wantErr: false},
		{name: "valid with path", id: &IgnoreDiagnostic{Rule: "printf", RuleFormat: "fixed_string", Path: "internal/*", PathFormat: "glob"}, wantErr: false},
		{name: "empty rule", id: &IgnoreDiagnostic{Rule: "", RuleFormat: "fixed_string"}, wantErr: true},
		{name: "empty rule_format", id: &IgnoreDiagnostic{Rule: "printf"}, wantErr: true},
		{name: "path without path_format", id: &IgnoreDiagnostic{Rule: "printf", RuleFormat: "fixed_string", Path: "internal/*"}, wantErr: true},
		{name: "invalid rule regexp", id: &IgnoreDiagnostic{Rule: "[invalid", RuleFormat: "regexp"}, wantErr: true},
		{name: "invalid path glob", id: &IgnoreDiagnostic{Rule: "printf", RuleFormat: "fixed_string", Path: "[invalid", PathFormat: "glob"}, wantErr: true},
		{name: "unknown format", id: &IgnoreDiagnostic{Rule: "printf", RuleFormat: "prefix"}, wantErr: true},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			err := d.id.Init()
			if d.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !d.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFinder_Find(t *testing.T) {
	t.Parallel()
	t.Run("explicit path", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		finder := NewFinder(fs)
		got, err := finder.Find("/custom/path.yaml")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "/custom/path.yaml" {
			t.Errorf("wanted %q, got %q", "/custom/path.yaml", got)
		}
	})

	t.Run("search default paths", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, ".github/anrun.yaml", []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
		finder := NewFinder(fs)
		got, err := finder.Find("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != ".github/anrun.yaml" {
			t.Errorf("wanted %q, got %q", ".github/anrun.yaml", got)
		}
	})
}

func TestReader_Read(t *testing.T) {
	t.Parallel()
	t.Run("empty path", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		reader := NewReader(fs)
		cfg := &Config{}
		if err := reader.Read(cfg, ""); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		content := `version: 1
targets:
  - pattern: "./..."
ignore_diagnostics:
  - rule: printf
    rule_format: fixed_string
`
		if err := afero.WriteFile(fs, ".anrun.yaml", []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		reader := NewReader(fs)
		cfg := &Config{}
		if err := reader.Read(cfg, ".anrun.yaml"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Version != 1 {
			t.Errorf("Version: wanted 1, got %d", cfg.Version)
		}
		if len(cfg.Targets) != 1 {
			t.Errorf("Targets length: wanted 1, got %d", len(cfg.Targets))
		}
		if len(cfg.IgnoreDiagnostics) != 1 {
			t.Errorf("IgnoreDiagnostics length: wanted 1, got %d", len(cfg.IgnoreDiagnostics))
		}
	})

	t.Run("file not found", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		reader := NewReader(fs)
		cfg := &Config{}
		if err := reader.Read(cfg, "nonexistent.yaml"); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		if err := afero.WriteFile(fs, ".anrun.yaml", []byte("invalid: yaml: content:"), 0o644); err != nil {
			t.Fatal(err)
		}
		reader := NewReader(fs)
		cfg := &Config{}
		if err := reader.Read(cfg, ".anrun.yaml"); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("invalid ignore_diagnostic", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		content := `ignore_diagnostics:
  - rule: printf
`
		if err := afero.WriteFile(fs, ".anrun.yaml", []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		reader := NewReader(fs)
		cfg := &Config{}
		if err := reader.Read(cfg, ".anrun.yaml"); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		fs := afero.NewMemMapFs()
		content := `targets:
  - pattern: ""
`
		if err := afero.WriteFile(fs, ".anrun.yaml", []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		reader := NewReader(fs)
		cfg := &Config{}
		if err := reader.Read(cfg, ".anrun.yaml"); err == nil {
			t.Error("expected error, got nil")
		}
	})
}

func Test_getConfigPath(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		paths []string
		exp   string
	}{
		{
			name:  "no config",
			paths: []string{},
			exp:   "",
		},
		{
			name:  "primary",
			paths: []string{".anrun.yaml"},
			exp:   ".anrun.yaml",
		},
		{
			name:  "another",
			paths: []string{".github/anrun.yaml"},
			exp:   ".github/anrun.yaml",
		},
		{
			name:  "both primary and others",
			paths: []string{".anrun.yaml", ".github/anrun.yaml"},
			exp:   ".anrun.yaml",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			for _, path := range d.paths {
				if err := afero.WriteFile(fs, path, []byte(""), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			got, err := getConfigPath(fs)
			if err != nil {
				t.Fatal(err)
			}
			if got != d.exp {
				t.Fatalf(`wanted %s, got %s`, d.exp, got)
			}
		})
	}
}
