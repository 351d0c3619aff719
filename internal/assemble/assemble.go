// Package assemble renders changelog documents from classified commits,
// optionally enriched by an AI analysis result.
package assemble

import (
	"sort"
	"strings"

	"github.com/grokify/changelogconductor/internal/config"
	"github.com/grokify/changelogconductor/pkg/model"
)

// Assembler renders changelog documents from configured templates. Output is
// deterministic: identical inputs always produce byte-identical documents.
type Assembler struct {
	cfg *config.Config
}

// New creates an assembler using a validated configuration.
func New(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg}
}

// Assemble renders the changelog for a version. When analysis is non-nil the
// AI rendering path is used; otherwise the rule-based path. Both paths end
// with a collapsible appendix regenerated verbatim from the resolved commit
// list; any previously existing release body is discarded, never merged.
func (a *Assembler) Assemble(version string, classified model.ClassifiedSet, analysis *model.AnalysisResult, commits []model.Commit) string {
	var sb strings.Builder

	if analysis != nil {
		a.renderAI(&sb, version, analysis)
	} else {
		a.renderBasic(&sb, version, classified)
	}

	a.renderAppendix(&sb, commits)

	return sb.String()
}

func (a *Assembler) renderAI(sb *strings.Builder, version string, analysis *model.AnalysisResult) {
	t := a.cfg.Templates.AI

	summary := analysis.Summary
	if summary == "" {
		summary = a.cfg.Templates.DefaultSummary
	}

	sb.WriteString(expand(t.Header, "{version}", version))
	sb.WriteString("\n\n")
	sb.WriteString(expand(t.Overview, "{summary}", summary))

	if len(analysis.Highlights) > 0 && t.Highlights != "" {
		var lines []string
		for _, h := range analysis.Highlights {
			lines = append(lines, "- "+h)
		}
		sb.WriteString(expand(t.Highlights, "{highlights}", strings.Join(lines, "\n")))
	}

	sb.WriteString(t.Divider)

	for _, tag := range a.cfg.CategoryOrder {
		items := analysis.Categories[tag]
		if len(items) == 0 {
			continue
		}

		sb.WriteString("\n")
		sb.WriteString(expand(t.CategoryHeader, "{title}", a.cfg.Title(tag)))
		sb.WriteString("\n")

		sorted := make([]model.AnalyzedCommit, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Importance > sorted[j].Importance
		})

		for _, item := range sorted {
			sb.WriteString(expand(t.Item,
				"{icon}", a.cfg.Icon(item.Importance),
				"{message}", item.Message,
				"{hash}", item.Hash,
			))
		}
	}
}

func (a *Assembler) renderBasic(sb *strings.Builder, version string, classified model.ClassifiedSet) {
	t := a.cfg.Templates.Basic

	sb.WriteString(expand(t.Header, "{version}", version))
	sb.WriteString("\n\n")
	sb.WriteString(t.Overview)
	sb.WriteString(t.Divider)

	for _, tag := range a.cfg.CategoryOrder {
		commits := classified[tag]
		if len(commits) == 0 {
			continue
		}

		sb.WriteString("\n")
		sb.WriteString(expand(t.CategoryHeader, "{title}", a.cfg.Title(tag)))
		sb.WriteString("\n")

		for _, commit := range commits {
			sb.WriteString(expand(t.Item,
				"{message}", a.cleanSubject(commit.Subject),
				"{hash}", commit.ID,
			))
		}
	}
}

// cleanSubject strips the configured prefix patterns from a commit subject.
// If stripping empties the message, the original subject is used instead.
func (a *Assembler) cleanSubject(subject string) string {
	cleaned := subject
	for _, re := range a.cfg.CleanupRegexps() {
		cleaned = re.ReplaceAllString(cleaned, "")
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return subject
	}
	return cleaned
}

// renderAppendix writes the collapsible verbatim commit listing. It derives
// strictly from the resolved commit list, so regenerating the same range
// always reproduces the same appendix.
func (a *Assembler) renderAppendix(sb *strings.Builder, commits []model.Commit) {
	sb.WriteString("\n\n<details>\n<summary>")
	sb.WriteString(a.cfg.Templates.AppendixSummary)
	sb.WriteString("</summary>\n\n")

	if len(commits) == 0 {
		sb.WriteString(a.cfg.Templates.AppendixEmpty)
	} else {
		lines := make([]string, 0, len(commits))
		for _, c := range commits {
			lines = append(lines, "- "+c.Subject+" ("+c.ID+")")
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}

	sb.WriteString("\n\n</details>")
}

// expand substitutes placeholder/value pairs into a template fragment.
func expand(template string, pairs ...string) string {
	return strings.NewReplacer(pairs...).Replace(template)
}
