package run

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/anrun/pkg/analyzer"
	"github.com/suzuki-shunsuke/anrun/pkg/github"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// Review is the pull request that review comments are posted to.
type Review struct {
	RepoOwner   string
	RepoName    string
	PullRequest int
	SHA         string
}

func (r *Review) Valid() bool {
	return r.RepoOwner != "" && r.RepoName != "" && r.PullRequest > 0
}

// reviewResults creates a pull request review comment per diagnostic.
// Diagnostics without a location and hidden diagnostics are skipped.
// Failures are logged and don't stop the run.
func (c *Controller) reviewResults(ctx context.Context, logE *logrus.Entry, results []*Result) {
	for _, result := range results {
		for _, diag := range result.Diagnostics {
			if diag.FilePath == "" || diag.Severity == analyzer.SeverityHidden {
				continue
			}
			code, err := c.review(ctx, diag)
			if err != nil {
				logerr.WithError(logE.WithFields(logrus.Fields{
					"project":     result.Project.Name,
					"rule_id":     diag.RuleID,
					"status_code": code,
				}), err).Error("create a review comment")
			}
		}
	}
}

// review creates a pull request review comment for one diagnostic.
// Returns the HTTP status code and any error.
func (c *Controller) review(ctx context.Context, diag analyzer.Diagnostic) (int, error) {
	const header = "Reviewed by [anrun](https://github.com/suzuki-shunsuke/anrun)"
	cmt := &github.PullRequestComment{
		Body: github.Ptr(fmt.Sprintf("%s\n`%s` (%s): %s", header, diag.RuleID, diag.Severity, diag.Message)),
		Path: github.Ptr(diag.FilePath),
		Line: github.Ptr(diag.Line),
	}
	if c.param.Review.SHA != "" {
		cmt.CommitID = github.Ptr(c.param.Review.SHA)
	}
	_, resp, err := c.pullRequestsService.CreateComment(ctx, c.param.Review.RepoOwner, c.param.Review.RepoName, c.param.Review.PullRequest, cmt)
	code := 0
	if resp != nil {
		code = resp.StatusCode
	}
	if err != nil {
		return code, fmt.Errorf("create a review comment: %w", err)
	}
	return code, nil
}
