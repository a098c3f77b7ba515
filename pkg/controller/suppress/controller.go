// Package suppress implements the 'anrun suppress' command.
// This package adds ignore_diagnostics entries to the configuration file so
// that known diagnostics can be silenced without editing YAML by hand. The
// configuration file is edited through the YAML AST, preserving comments and
// the existing structure.
package suppress

import (
	"github.com/spf13/afero"
)

type Controller struct {
	fs        afero.Fs
	param     *Param
	cfgFinder ConfigFinder
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type Param struct {
	ConfigFilePath string
	// RuleIDs are rule ids to suppress.
	RuleIDs []string
	// Path restricts the suppression to one file path.
	Path string
}

func New(fs afero.Fs, cfgFinder ConfigFinder, param *Param) *Controller {
	return &Controller{
		param:     param,
		fs:        fs,
		cfgFinder: cfgFinder,
	}
}
