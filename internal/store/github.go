package store

import (
	"context"
	"fmt"

	"github.com/google/go-github/v84/github"
	"github.com/grokify/gogithub/auth"
	"github.com/grokify/gogithub/release"

	"github.com/grokify/changelogconductor/pkg/model"
)

// GitHubStore implements ReleaseStore for GitHub releases.
type GitHubStore struct {
	client *github.Client
	repo   model.RepoRef
}

// NewGitHubStore creates a new GitHub release store.
func NewGitHubStore(token string, repo model.RepoRef) *GitHubStore {
	ctx := context.Background()
	client := auth.NewGitHubClient(ctx, token)
	return &GitHubStore{
		client: client,
		repo:   repo,
	}
}

// ListReleases returns every release for the repository, exhausting all
// pages before returning.
func (s *GitHubStore) ListReleases(ctx context.Context) ([]model.ReleaseTarget, error) {
	var targets []model.ReleaseTarget

	opt := &github.ListOptions{PerPage: 100}
	for {
		releases, resp, err := s.client.Repositories.ListReleases(ctx, s.repo.Owner, s.repo.Name, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list releases: %w", err)
		}

		for _, r := range releases {
			targets = append(targets, s.convert(r))
		}

		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	return targets, nil
}

// GetByTag fetches the release for a tag.
func (s *GitHubStore) GetByTag(ctx context.Context, tag string) (*model.ReleaseTarget, error) {
	r, _, err := s.client.Repositories.GetReleaseByTag(ctx, s.repo.Owner, s.repo.Name, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to get release for tag %s: %w", tag, err)
	}

	target := s.convert(r)
	return &target, nil
}

// GetByID fetches a release by its storage ID.
func (s *GitHubStore) GetByID(ctx context.Context, id int64) (*model.ReleaseTarget, error) {
	r, _, err := s.client.Repositories.GetRelease(ctx, s.repo.Owner, s.repo.Name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get release %d: %w", id, err)
	}

	target := s.convert(r)
	return &target, nil
}

// Latest returns the most recent release.
func (s *GitHubStore) Latest(ctx context.Context) (*model.ReleaseTarget, error) {
	r, err := release.GetLatestRelease(ctx, s.client, s.repo.Owner, s.repo.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}

	target := s.convert(r)
	return &target, nil
}

// UpdateBody replaces a release's body.
func (s *GitHubStore) UpdateBody(ctx context.Context, id int64, body string) error {
	_, _, err := s.client.Repositories.EditRelease(ctx, s.repo.Owner, s.repo.Name, id,
		&github.RepositoryRelease{Body: github.Ptr(body)})
	if err != nil {
		return fmt.Errorf("failed to update release %d: %w", id, err)
	}
	return nil
}

// convert converts a GitHub release to our model.
func (s *GitHubStore) convert(r *github.RepositoryRelease) model.ReleaseTarget {
	return model.ReleaseTarget{
		Tag:          r.GetTagName(),
		StorageID:    r.GetID(),
		ExistingBody: r.GetBody(),
		Repo:         s.repo,
	}
}
