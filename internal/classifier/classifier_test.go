package classifier

import (
	"testing"

	"github.com/grokify/changelogconductor/internal/config"
	"github.com/grokify/changelogconductor/pkg/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("failed to load default config: %v", err)
	}
	return cfg
}

func TestClassify(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{
		{ID: "a1", Subject: "feat: add export command"},
		{ID: "a2", Subject: "fix(parser): handle empty input"},
		{ID: "a3", Subject: "update docs"},
	}

	classified := Classify(commits, cfg)

	if n := len(classified[model.CategoryFeature]); n != 1 {
		t.Errorf("expected 1 FEATURE commit, got %d", n)
	}
	if n := len(classified[model.CategoryFix]); n != 1 {
		t.Errorf("expected 1 FIX commit, got %d", n)
	}
	// "update docs" does not start with a docs prefix, so it is uncategorized.
	if n := len(classified[model.CategoryOther]); n != 1 {
		t.Errorf("expected 1 OTHER commit, got %d", n)
	}
}

func TestClassify_EveryCommitExactlyOnce(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{
		{ID: "a1", Subject: "feat: one"},
		{ID: "a2", Subject: "fix: two"},
		{ID: "a3", Subject: "perf: three"},
		{ID: "a4", Subject: "docs: four"},
		{ID: "a5", Subject: "something else entirely"},
	}

	classified := Classify(commits, cfg)

	if classified.Total() != len(commits) {
		t.Errorf("expected %d classified commits, got %d", len(commits), classified.Total())
	}

	// Every configured category must be present as a key, empty or not.
	for _, tag := range cfg.CategoryOrder {
		if _, ok := classified[tag]; !ok {
			t.Errorf("expected category %s to be present", tag)
		}
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	cfg := testConfig(t)

	// "feat" sorts before "fix" in the default order; a subject matching
	// FEATURE never reaches the FIX pattern.
	commits := []model.Commit{{ID: "a1", Subject: "feat: fix the fixer"}}

	classified := Classify(commits, cfg)

	if n := len(classified[model.CategoryFeature]); n != 1 {
		t.Fatalf("expected the commit in FEATURE, got %d there", n)
	}
	if n := len(classified[model.CategoryFix]); n != 0 {
		t.Errorf("expected FIX empty, got %d", n)
	}
	if got := classified[model.CategoryFeature][0].Category; got != model.CategoryFeature {
		t.Errorf("expected commit category FEATURE, got %s", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{{ID: "a1", Subject: "Fix: Repair The Thing"}}

	classified := Classify(commits, cfg)
	if n := len(classified[model.CategoryFix]); n != 1 {
		t.Errorf("expected case-insensitive match into FIX, got %d", n)
	}
}

func TestClassify_Empty(t *testing.T) {
	cfg := testConfig(t)

	classified := Classify(nil, cfg)
	if classified.Total() != 0 {
		t.Errorf("expected empty set, got %d commits", classified.Total())
	}
	if len(classified) != len(cfg.CategoryOrder) {
		t.Errorf("expected %d category keys, got %d", len(cfg.CategoryOrder), len(classified))
	}
}
