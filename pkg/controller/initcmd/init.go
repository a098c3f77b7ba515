package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/suzuki-shunsuke/anrun/refs/heads/main/json-schema/anrun.json
# anrun - https://github.com/suzuki-shunsuke/anrun
version: 1
# targets:
#   - pattern: ./...
#   - pattern: ./cmd/...

ignore_diagnostics:
# - rule: printf
#   rule_format: fixed_string
#   path: internal/generated/.*
#   path_format: regexp
# - rule: structtag
#   rule_format: fixed_string
# - rule: SA\d+
#   rule_format: regexp
`
	filePermission os.FileMode = 0o644
)

// Init creates a new anrun configuration file if it doesn't exist.
// It checks if the configuration file already exists and creates it with
// a template configuration if it doesn't exist.
//
// Parameters:
//   - configFilePath: path where the configuration file should be created
//
// Returns an error if file operations fail, nil if successful or file already exists.
func (c *Controller) Init(configFilePath string) error {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return nil
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return fmt.Errorf("create a configuration file: %w", err)
	}
	return nil
}
