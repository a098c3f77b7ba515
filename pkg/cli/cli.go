// Package cli assembles the anrun command-line interface.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/cli/initcmd"
	"github.com/suzuki-shunsuke/anrun/pkg/cli/list"
	"github.com/suzuki-shunsuke/anrun/pkg/cli/run"
	"github.com/suzuki-shunsuke/anrun/pkg/cli/suppress"
	"github.com/suzuki-shunsuke/anrun/pkg/cli/token"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"

	_ "github.com/suzuki-shunsuke/anrun/pkg/analyzer/builtin"
)

func Run(ctx context.Context, logE *logrus.Entry, ldFlags *urfave.LDFlags, args ...string) error {
	cmd := &cli.Command{
		Name:    "anrun",
		Usage:   "Run static analyzers against a Go solution. https://github.com/suzuki-shunsuke/anrun",
		Version: ldFlags.Version + " (" + ldFlags.Commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level",
				Sources: cli.EnvVars("ANRUN_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name: "config",
				Aliases: []string{
					"c",
				},
				Usage:   "configuration file path",
				Sources: cli.EnvVars("ANRUN_CONFIG"),
			},
		},
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			initcmd.New(logE),
			run.New(logE),
			list.New(logE),
			suppress.New(logE),
			token.New(logE),
			newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
