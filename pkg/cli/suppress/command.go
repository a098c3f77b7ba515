package suppress

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/anrun/pkg/config"
	"github.com/suzuki-shunsuke/anrun/pkg/controller/suppress"
	"github.com/suzuki-shunsuke/anrun/pkg/log"
	"github.com/urfave/cli/v3"
)

type runner struct {
	logE *logrus.Entry
}

func New(logE *logrus.Entry) *cli.Command {
	r := runner{
		logE: logE,
	}
	return r.Command()
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "suppress",
		Usage: "Add ignore_diagnostics entries to .anrun.yaml",
		Description: `Add ignore_diagnostics entries to the configuration file.

$ anrun suppress printf structtag

You can restrict the suppression to one file path.

e.g.

$ anrun suppress --path pkg/foo/foo.go printf
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Restrict the suppression to one file path",
			},
		},
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	fs := afero.NewOsFs()
	ctrl := suppress.New(fs, config.NewFinder(fs), &suppress.Param{
		ConfigFilePath: c.String("config"),
		RuleIDs:        c.Args().Slice(),
		Path:           c.String("path"),
	})
	return ctrl.Suppress(r.logE) //nolint:wrapcheck
}
