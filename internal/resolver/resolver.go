// Package resolver derives the commit range belonging to a release tag.
package resolver

import (
	"context"
	"fmt"

	"github.com/grokify/changelogconductor/internal/history"
	"github.com/grokify/changelogconductor/pkg/model"
)

// Resolved is the outcome of commit-range resolution for one tag. An empty
// Commits slice is a valid result, not an error: empty and point releases
// are reported as values.
type Resolved struct {
	// PreviousTag is the next older version-shaped tag, or empty when the
	// target is the first release or is not tagged yet.
	PreviousTag string

	// Commits are the commits in the resolved range, newest first.
	Commits []model.Commit

	// RangeLabel describes the range that produced the commits, including
	// any fallback that was applied.
	RangeLabel string
}

// Resolver determines commit ranges between release tags.
type Resolver struct {
	History history.Provider
}

// New creates a resolver backed by the given history provider.
func New(provider history.Provider) *Resolver {
	return &Resolver{History: provider}
}

// PreviousTag finds the version-shaped tag immediately older than targetTag.
// Tags are ordered by descending version; the previous tag is the first tag
// after the target's position that is strictly older. The second return
// value is false when the target has no older conforming tag, including
// when the target itself is not in the list.
func PreviousTag(targetTag string, allTags []string) (string, bool) {
	versions := sortVersionsDesc(allTags)

	targetIdx := -1
	for i, v := range versions {
		if v.Tag == targetTag {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return "", false
	}

	target := versions[targetIdx]
	for _, v := range versions[targetIdx+1:] {
		if v.Compare(target) < 0 {
			return v.Tag, true
		}
	}
	return "", false
}

// Resolve produces the commit list for targetTag. When the range between the
// previous tag and the target is empty, the query is progressively widened:
// first including merge commits, then narrowing to the single commit at the
// tag, and finally reporting an explicit empty result.
func (r *Resolver) Resolve(ctx context.Context, targetTag string) (*Resolved, error) {
	tags, err := r.History.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commit range for %s: %w", targetTag, err)
	}

	prev, _ := PreviousTag(targetTag, tags)

	rangeSpec := targetTag
	label := fmt.Sprintf("initial version to %s", targetTag)
	if prev != "" {
		rangeSpec = prev + ".." + targetTag
		label = rangeSpec
	}

	commits, err := r.History.Commits(ctx, rangeSpec, history.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve commit range for %s: %w", targetTag, err)
	}

	if len(commits) == 0 {
		commits, err = r.History.Commits(ctx, rangeSpec, history.LogOptions{IncludeMerges: true})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve commit range for %s: %w", targetTag, err)
		}
	}

	if len(commits) == 0 {
		commits, err = r.History.Commits(ctx, targetTag, history.LogOptions{IncludeMerges: true, MaxCount: 1})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve commit range for %s: %w", targetTag, err)
		}
		if len(commits) > 0 {
			label = fmt.Sprintf("%s (single commit)", targetTag)
		}
	}

	return &Resolved{
		PreviousTag: prev,
		Commits:     commits,
		RangeLabel:  label,
	}, nil
}
