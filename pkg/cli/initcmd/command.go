// Package initcmd implements the 'anrun init' command.
// This package is responsible for generating anrun configuration files
// (.anrun.yaml) with default settings to help users quickly set up anrun in
// their repositories. It creates configuration templates that define target
// package patterns and diagnostic ignore patterns.
package initcmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/anrun/pkg/controller/initcmd"
	"github.com/suzuki-shunsuke/anrun/pkg/log"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry) *cli.Command {
	r := &runner{
		logE: logE,
	}
	return r.Command()
}

type runner struct {
	logE *logrus.Entry
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create .anrun.yaml if it doesn't exist",
		Description: `Create .anrun.yaml if it doesn't exist

$ anrun init

You can also pass configuration file path.

e.g.

$ anrun init .github/anrun.yaml
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	ctrl := initcmd.New(afero.NewOsFs())
	configFilePath := c.Args().First()
	if configFilePath == "" {
		configFilePath = c.String("config")
	}
	if configFilePath == "" {
		configFilePath = ".anrun.yaml"
	}
	return ctrl.Init(configFilePath) //nolint:wrapcheck
}
