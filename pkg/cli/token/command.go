// Package token implements the 'anrun token' command for secure GitHub token management.
// This package provides functionality to store and remove GitHub access tokens
// using the operating system's native credential storage (Windows Credential Manager,
// macOS Keychain, or GNOME Keyring). It offers a secure alternative to environment
// variables for managing authentication credentials, allowing users to persist tokens
// safely across sessions without exposing them in shell configurations.
package token

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/controller/token"
	"github.com/suzuki-shunsuke/anrun/pkg/github"
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
		Name:  "token",
		Usage: "Manage a GitHub access token in the secret store",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Store a GitHub access token in the secret store",
				Description: `Store a GitHub access token in the secret store.

$ echo "$GITHUB_TOKEN" | anrun token set
`,
				Action: r.setAction,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a GitHub access token from the secret store",
				Action:  r.removeAction,
			},
		},
	}
}

func (r *runner) setAction(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	ctrl := token.New(&token.Param{Stdin: os.Stdin}, github.NewTokenManager())
	return ctrl.Set() //nolint:wrapcheck
}

func (r *runner) removeAction(_ context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	ctrl := token.New(&token.Param{}, github.NewTokenManager())
	return ctrl.Remove() //nolint:wrapcheck
}
