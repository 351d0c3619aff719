package history

import (
	"context"

	"github.com/grokify/changelogconductor/pkg/model"
)

// LogOptions controls a commit listing query.
type LogOptions struct {
	// IncludeMerges includes merge commits in the listing.
	IncludeMerges bool

	// MaxCount limits the number of commits returned. Zero means no limit.
	MaxCount int
}

// Provider reads tags and commits from repository history.
type Provider interface {
	// ListTags returns all tag names ordered by version, descending.
	ListTags(ctx context.Context) ([]string, error)

	// Commits returns the commits selected by a revision range such as
	// "v1.0.0..v1.1.0" or a single ref, newest first.
	Commits(ctx context.Context, rangeSpec string, opts LogOptions) ([]model.Commit, error)
}
