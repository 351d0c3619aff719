package store

import (
	"context"

	"github.com/grokify/changelogconductor/pkg/model"
)

// ReleaseStore defines the boundary to the external release storage.
type ReleaseStore interface {
	// ListReleases returns every release, exhausting all pages before
	// returning, in the store's listing order.
	ListReleases(ctx context.Context) ([]model.ReleaseTarget, error)

	// GetByTag fetches the release for a tag.
	GetByTag(ctx context.Context, tag string) (*model.ReleaseTarget, error)

	// GetByID fetches a release by its storage ID.
	GetByID(ctx context.Context, id int64) (*model.ReleaseTarget, error)

	// Latest returns the most recent release.
	Latest(ctx context.Context) (*model.ReleaseTarget, error)

	// UpdateBody replaces a release's body. A single write; retries, if
	// any, belong to the caller.
	UpdateBody(ctx context.Context, id int64, body string) error
}

// NewGitHub creates a GitHub-backed release store with the given token.
func NewGitHub(token string, repo model.RepoRef) ReleaseStore {
	return NewGitHubStore(token, repo)
}
