// Package classifier assigns commits to changelog categories by pattern.
package classifier

import (
	"github.com/grokify/changelogconductor/internal/config"
	"github.com/grokify/changelogconductor/pkg/model"
)

// Classify partitions commits into categories. Each commit's subject is
// tested against the configured category patterns in priority order; the
// first match wins and no further categories are tried. Commits matching no
// pattern land in OTHER. The returned set contains every configured category
// key even when empty, and every input commit exactly once.
func Classify(commits []model.Commit, cfg *config.Config) model.ClassifiedSet {
	classified := make(model.ClassifiedSet, len(cfg.CategoryOrder))
	for _, tag := range cfg.CategoryOrder {
		classified[tag] = nil
	}

	order := cfg.MatchOrder()

	for _, commit := range commits {
		tag := model.CategoryOther
		for _, candidate := range order {
			if cfg.CategoryPattern(candidate).MatchString(commit.Subject) {
				tag = candidate
				break
			}
		}
		commit.Category = tag
		classified[tag] = append(classified[tag], commit)
	}

	return classified
}
