package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/grokify/changelogconductor/internal/history"
	"github.com/grokify/changelogconductor/pkg/model"
)

// fakeHistory returns canned results keyed by range spec and merge inclusion,
// and records every Commits call.
type fakeHistory struct {
	tags    []string
	tagsErr error

	commits    map[string][]model.Commit // key: rangeSpec + "|" + merges flag
	commitsErr error

	calls []history.LogOptions
	specs []string
}

func (f *fakeHistory) ListTags(ctx context.Context) ([]string, error) {
	return f.tags, f.tagsErr
}

func (f *fakeHistory) Commits(ctx context.Context, rangeSpec string, opts history.LogOptions) ([]model.Commit, error) {
	f.calls = append(f.calls, opts)
	f.specs = append(f.specs, rangeSpec)
	if f.commitsErr != nil {
		return nil, f.commitsErr
	}
	key := rangeSpec + "|false"
	if opts.IncludeMerges {
		key = rangeSpec + "|true"
	}
	return f.commits[key], nil
}

func TestResolver_Resolve_BetweenTags(t *testing.T) {
	fake := &fakeHistory{
		tags: []string{"v1.1.0", "v1.0.0"},
		commits: map[string][]model.Commit{
			"v1.0.0..v1.1.0|false": {
				{ID: "abc1234", Subject: "feat: add thing"},
				{ID: "def5678", Subject: "fix: repair thing"},
			},
		},
	}

	resolved, err := New(fake).Resolve(context.Background(), "v1.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved.PreviousTag != "v1.0.0" {
		t.Errorf("expected previous tag v1.0.0, got %s", resolved.PreviousTag)
	}
	if len(resolved.Commits) != 2 {
		t.Errorf("expected 2 commits, got %d", len(resolved.Commits))
	}
	if resolved.RangeLabel != "v1.0.0..v1.1.0" {
		t.Errorf("unexpected range label %q", resolved.RangeLabel)
	}
	if len(fake.calls) != 1 {
		t.Errorf("expected a single history query, got %d", len(fake.calls))
	}
}

func TestResolver_Resolve_InitialVersion(t *testing.T) {
	fake := &fakeHistory{
		tags: []string{"v1.0.0"},
		commits: map[string][]model.Commit{
			"v1.0.0|false": {{ID: "abc1234", Subject: "initial commit"}},
		},
	}

	resolved, err := New(fake).Resolve(context.Background(), "v1.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolved.PreviousTag != "" {
		t.Errorf("expected no previous tag, got %s", resolved.PreviousTag)
	}
	if resolved.RangeLabel != "initial version to v1.0.0" {
		t.Errorf("unexpected range label %q", resolved.RangeLabel)
	}
	if fake.specs[0] != "v1.0.0" {
		t.Errorf("expected query for the bare tag, got %q", fake.specs[0])
	}
}

func TestResolver_Resolve_WidensToMerges(t *testing.T) {
	// Merge-only range: the first no-merge query is empty, the widened one
	// finds the merge commit.
	fake := &fakeHistory{
		tags: []string{"v1.1.0", "v1.0.0"},
		commits: map[string][]model.Commit{
			"v1.0.0..v1.1.0|true": {{ID: "abc1234", Subject: "Merge pull request #42"}},
		},
	}

	resolved, err := New(fake).Resolve(context.Background(), "v1.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved.Commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(resolved.Commits))
	}
	if len(fake.calls) != 2 {
		t.Fatalf("expected 2 history queries, got %d", len(fake.calls))
	}
	if fake.calls[0].IncludeMerges || !fake.calls[1].IncludeMerges {
		t.Errorf("expected no-merges first then merges, got %+v", fake.calls)
	}
}

func TestResolver_Resolve_WidensToSingleCommit(t *testing.T) {
	fake := &fakeHistory{
		tags: []string{"v1.1.0", "v1.0.0"},
		commits: map[string][]model.Commit{
			"v1.1.0|true": {{ID: "abc1234", Subject: "retagged release"}},
		},
	}

	resolved, err := New(fake).Resolve(context.Background(), "v1.1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resolved.Commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(resolved.Commits))
	}
	if resolved.RangeLabel != "v1.1.0 (single commit)" {
		t.Errorf("unexpected range label %q", resolved.RangeLabel)
	}

	if len(fake.calls) != 3 {
		t.Fatalf("expected 3 history queries, got %d", len(fake.calls))
	}
	last := fake.calls[2]
	if !last.IncludeMerges || last.MaxCount != 1 {
		t.Errorf("expected single-commit fallback options, got %+v", last)
	}
	if fake.specs[2] != "v1.1.0" {
		t.Errorf("expected fallback query for the bare tag, got %q", fake.specs[2])
	}
}

func TestResolver_Resolve_EmptyIsNotAnError(t *testing.T) {
	fake := &fakeHistory{
		tags:    []string{"v1.1.0", "v1.0.0"},
		commits: map[string][]model.Commit{},
	}

	resolved, err := New(fake).Resolve(context.Background(), "v1.1.0")
	if err != nil {
		t.Fatalf("expected empty result as a value, got error: %v", err)
	}
	if len(resolved.Commits) != 0 {
		t.Errorf("expected no commits, got %d", len(resolved.Commits))
	}
}

func TestResolver_Resolve_ProviderError(t *testing.T) {
	fake := &fakeHistory{
		tags:       []string{"v1.1.0", "v1.0.0"},
		commitsErr: errors.New("not a git repository"),
	}

	if _, err := New(fake).Resolve(context.Background(), "v1.1.0"); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}
