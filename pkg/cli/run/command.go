package run

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/config"
	"github.com/suzuki-shunsuke/anrun/pkg/controller/run"
	"github.com/suzuki-shunsuke/anrun/pkg/github"
	"github.com/suzuki-shunsuke/anrun/pkg/goanalysis"
	"github.com/suzuki-shunsuke/anrun/pkg/log"
	"github.com/suzuki-shunsuke/anrun/pkg/solution"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
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
		Name:  "run",
		Usage: "Run analyzers against a solution",
		Description: `Run analyzers against every project in a solution and report diagnostics.

$ anrun run -s .

You can also pass package patterns as arguments.

e.g.

$ anrun run -s . ./pkg/... ./cmd/...
`,
		Action: r.action,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "solution",
				Aliases: []string{"s"},
				Usage:   "Solution path. A directory containing go.mod or go.work, or the file itself",
			},
			&cli.StringSliceFlag{
				Name:    "analyzer",
				Aliases: []string{"a"},
				Usage:   "Analyzer plugin file path",
			},
			&cli.BoolFlag{
				Name:  "builtin",
				Usage: "Run the built-in analyzers",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Usage:   "Append diagnostics to a log file",
			},
			&cli.BoolFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Print diagnostics to the console",
				Value:   true,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Exit with a non-zero status code if diagnostics are found",
			},
			&cli.BoolFlag{
				Name:  "tests",
				Usage: "Also analyze test packages",
			},
			&cli.StringFlag{
				Name:  "sarif",
				Usage: `Write a SARIF report to a file. If "-" is set, the report is written to stdout`,
			},
			&cli.BoolFlag{
				Name:  "review",
				Usage: "Create reviews",
			},
			&cli.StringFlag{
				Name:    "repo-owner",
				Usage:   "GitHub repository owner",
				Sources: cli.EnvVars("GITHUB_REPOSITORY_OWNER"),
			},
			&cli.StringFlag{
				Name:  "repo-name",
				Usage: "GitHub repository name",
			},
			&cli.StringFlag{
				Name:  "sha",
				Usage: "Commit SHA to be reviewed",
			},
			&cli.IntFlag{
				Name:  "pr",
				Usage: "GitHub pull request number",
			},
		},
	}
}

type Event struct {
	PullRequest *PullRequest `json:"pull_request"`
	Issue       *Issue       `json:"issue"`
}

func (e *Event) PRNumber() int {
	if e == nil {
		return 0
	}
	if e.PullRequest != nil {
		return e.PullRequest.Number
	}
	if e.Issue != nil {
		return e.Issue.Number
	}
	return 0
}

func (e *Event) SHA() string {
	if e == nil {
		return ""
	}
	if e.PullRequest != nil && e.PullRequest.Head != nil {
		return e.PullRequest.Head.SHA
	}
	return ""
}

type Issue struct {
	Number int `json:"number"`
}

type PullRequest struct {
	Number int   `json:"number"`
	Head   *Head `json:"head"`
}

type Head struct {
	SHA string `json:"sha"`
}

func (r *runner) action(ctx context.Context, c *cli.Command) error {
	log.SetLevel(c.String("log-level"), r.logE)
	if c.Bool("verbose") {
		log.SetLevel("debug", r.logE)
	}
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get the current directory: %w", err)
	}

	fs := afero.NewOsFs()
	solutionPath, err := normalizeSolutionPath(fs, c.String("solution"))
	if err != nil {
		return err
	}
	pluginPaths := c.StringSlice("analyzer")
	for _, pluginPath := range pluginPaths {
		if _, err := fs.Stat(pluginPath); err != nil {
			return fmt.Errorf("an analyzer plugin isn't found: %w", err)
		}
	}
	builtin := c.Bool("builtin")
	if len(pluginPaths) == 0 && !builtin {
		return errors.New("at least one analyzer is required. Set -a option or -builtin")
	}

	isGitHubActions := os.Getenv("GITHUB_ACTIONS") == "true"

	gh := github.New(ctx, r.logE)
	var review *run.Review
	if c.Bool("review") {
		review = &run.Review{
			RepoOwner:   c.String("repo-owner"),
			RepoName:    c.String("repo-name"),
			PullRequest: c.Int("pr"),
			SHA:         c.String("sha"),
		}
		if isGitHubActions {
			if err := r.setReview(fs, review); err != nil {
				logerr.WithError(r.logE, err).Error("set review information")
			}
		}
		if !review.Valid() {
			r.logE.Warn("skip creating reviews because the review information is invalid")
			review = nil
		}
	}
	param := &run.ParamRun{
		SolutionPath:    solutionPath,
		Patterns:        c.Args().Slice(),
		PluginPaths:     pluginPaths,
		Builtin:         builtin,
		Tests:           c.Bool("tests"),
		Output:          c.Bool("output"),
		LogFilePath:     c.String("log"),
		SARIFPath:       c.String("sarif"),
		Check:           c.Bool("check"),
		ConfigFilePath:  c.String("config"),
		PWD:             pwd,
		IsGitHubActions: isGitHubActions,
		Stdout:          os.Stdout,
		Review:          review,
	}
	ctrl := run.New(analyzer.NewLoader(), solution.NewLoader(), goanalysis.NewRunner(), gh.PullRequests, fs, config.NewFinder(fs), config.NewReader(fs), param)
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}

// normalizeSolutionPath validates the solution path and resolves it to the
// solution root directory.
func normalizeSolutionPath(fs afero.Fs, p string) (string, error) {
	if p == "" {
		return "", errors.New("the solution path is required. Set -s option")
	}
	info, err := fs.Stat(p)
	if err != nil {
		return "", fmt.Errorf("the solution isn't found: %w", err)
	}
	if info.IsDir() {
		return p, nil
	}
	base := filepath.Base(p)
	if base != "go.mod" && base != "go.work" {
		return "", errors.New("the solution must be a directory containing go.mod or go.work, or the file itself")
	}
	return filepath.Dir(p), nil
}

func (r *runner) setReview(fs afero.Fs, review *run.Review) error {
	if review.RepoName == "" {
		repo := os.Getenv("GITHUB_REPOSITORY")
		_, repoName, ok := strings.Cut(repo, "/")
		if !ok || repoName == "" {
			return fmt.Errorf("GITHUB_REPOSITORY is not set or invalid: %s", repo)
		}
		review.RepoName = repoName
	}
	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return nil
	}
	var ev *Event
	if review.PullRequest == 0 {
		ev = &Event{}
		if err := r.readEvent(fs, ev, eventPath); err != nil {
			return err
		}
		review.PullRequest = ev.PRNumber()
	}
	if review.SHA != "" {
		return nil
	}
	if ev == nil {
		ev = &Event{}
		if err := r.readEvent(fs, ev, eventPath); err != nil {
			return err
		}
	}
	review.SHA = ev.SHA()
	return nil
}

func (r *runner) readEvent(fs afero.Fs, ev *Event, eventPath string) error {
	event, err := fs.Open(eventPath)
	if err != nil {
		return fmt.Errorf("read GITHUB_EVENT_PATH: %w", err)
	}
	defer event.Close()
	if err := json.NewDecoder(event).Decode(ev); err != nil {
		return fmt.Errorf("unmarshal GITHUB_EVENT_PATH: %w", err)
	}
	return nil
}
