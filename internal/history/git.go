package history

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/grokify/changelogconductor/pkg/model"
)

// GitCLI implements Provider by shelling out to the git command line.
type GitCLI struct {
	// RepoPath is the working tree to query. Empty means the current directory.
	RepoPath string
}

// NewGitCLI creates a provider for the repository at path.
func NewGitCLI(path string) *GitCLI {
	return &GitCLI{RepoPath: path}
}

// ListTags returns all tag names ordered by version, descending.
func (g *GitCLI) ListTags(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "tag", "--sort=-version:refname")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// Commits returns the commits selected by rangeSpec, newest first. Each
// commit line is formatted as id|subject|body by git.
func (g *GitCLI) Commits(ctx context.Context, rangeSpec string, opts LogOptions) ([]model.Commit, error) {
	args := []string{"log", rangeSpec, "--pretty=format:%h|%s|%b"}
	if !opts.IncludeMerges {
		args = append(args, "--no-merges")
	}
	if opts.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxCount))
	}

	out, err := g.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits for %s: %w", rangeSpec, err)
	}

	return ParseCommitLog(out), nil
}

// ParseCommitLog parses pipe-delimited commit lines. Lines without an id and
// subject are dropped; this tolerates multi-line commit bodies bleeding into
// the log output.
func ParseCommitLog(raw string) []model.Commit {
	var commits []model.Commit
	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) < 2 || parts[0] == "" {
			continue
		}
		subject := strings.TrimSpace(parts[1])
		if subject == "" {
			continue
		}
		commit := model.Commit{
			ID:         strings.TrimSpace(parts[0]),
			Subject:    subject,
			Category:   model.CategoryOther,
			Importance: 1,
		}
		if len(parts) > 2 {
			commit.Body = strings.TrimSpace(parts[2])
		}
		commits = append(commits, commit)
	}
	return commits
}

func (g *GitCLI) run(ctx context.Context, args ...string) (string, error) {
	if g.RepoPath != "" {
		args = append([]string{"-C", g.RepoPath}, args...)
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return string(out), nil
}
