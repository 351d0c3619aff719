package assemble

import (
	"strings"
	"testing"

	"github.com/grokify/changelogconductor/internal/classifier"
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

func TestAssembler_Assemble_Basic(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{
		{ID: "abc1234", Subject: "feat: add X"},
		{ID: "def5678", Subject: "fix: bug Y"},
	}
	classified := classifier.Classify(commits, cfg)

	doc := New(cfg).Assemble("v1.2.0", classified, nil, commits)

	if !strings.Contains(doc, "v1.2.0") {
		t.Error("expected version in the document")
	}
	// Prefixes are stripped in rule-based rendering.
	if !strings.Contains(doc, "- add X (abc1234)") {
		t.Errorf("expected cleaned feature entry, got:\n%s", doc)
	}
	if !strings.Contains(doc, "- bug Y (def5678)") {
		t.Errorf("expected cleaned fix entry, got:\n%s", doc)
	}
	// Empty categories are omitted.
	if strings.Contains(doc, cfg.Title(model.CategoryDocs)) {
		t.Error("expected empty DOCS category to be omitted")
	}
}

func TestAssembler_Assemble_AI(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{{ID: "abc1234", Subject: "feat: add X"}}
	classified := classifier.Classify(commits, cfg)

	analysis := &model.AnalysisResult{
		Summary:    "A focused release.",
		Highlights: []string{"Export support"},
		Categories: map[model.CategoryTag][]model.AnalyzedCommit{
			model.CategoryFeature: {
				{Hash: "abc1234", Message: "Add data export", Importance: 3},
			},
		},
	}

	doc := New(cfg).Assemble("v1.2.0", classified, analysis, commits)

	if !strings.Contains(doc, "A focused release.") {
		t.Error("expected summary in the document")
	}
	if !strings.Contains(doc, "- Export support") {
		t.Error("expected highlight line in the document")
	}
	if !strings.Contains(doc, "🔥 Add data export (abc1234)") {
		t.Errorf("expected analyzed entry with importance icon, got:\n%s", doc)
	}
	// The optimized marker must be present so reprocessing skips this body.
	if !strings.Contains(doc, cfg.Templates.OptimizedMarker) {
		t.Error("expected the optimized marker in AI output")
	}
}

func TestAssembler_Assemble_AISummaryDefaulted(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{{ID: "abc1234", Subject: "feat: add X"}}
	classified := classifier.Classify(commits, cfg)

	doc := New(cfg).Assemble("v1.2.0", classified, &model.AnalysisResult{
		Categories: map[model.CategoryTag][]model.AnalyzedCommit{},
	}, commits)

	if !strings.Contains(doc, cfg.Templates.DefaultSummary) {
		t.Error("expected the default summary when the analysis omits one")
	}
}

func TestAssembler_Assemble_ImportanceOrdering(t *testing.T) {
	cfg := testConfig(t)

	analysis := &model.AnalysisResult{
		Summary: "s",
		Categories: map[model.CategoryTag][]model.AnalyzedCommit{
			model.CategoryFeature: {
				{Hash: "a1", Message: "minor first", Importance: 1},
				{Hash: "a2", Message: "major second", Importance: 3},
				{Hash: "a3", Message: "also minor", Importance: 1},
			},
		},
	}

	doc := New(cfg).Assemble("v1.0.0", model.ClassifiedSet{}, analysis, nil)

	major := strings.Index(doc, "major second")
	minor := strings.Index(doc, "minor first")
	alsoMinor := strings.Index(doc, "also minor")
	if major < 0 || minor < 0 || alsoMinor < 0 {
		t.Fatalf("missing entries in document:\n%s", doc)
	}
	if major > minor {
		t.Error("expected higher importance to render first")
	}
	// The sort is stable: equal importance keeps input order.
	if minor > alsoMinor {
		t.Error("expected stable order among equal importance")
	}
}

func TestAssembler_Assemble_Deterministic(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{
		{ID: "a1", Subject: "feat: one"},
		{ID: "a2", Subject: "fix: two"},
		{ID: "a3", Subject: "misc three"},
	}
	classified := classifier.Classify(commits, cfg)
	asm := New(cfg)

	first := asm.Assemble("v1.0.0", classified, nil, commits)
	for i := 0; i < 10; i++ {
		if got := asm.Assemble("v1.0.0", classifier.Classify(commits, cfg), nil, commits); got != first {
			t.Fatal("expected byte-identical output for identical inputs")
		}
	}
}

func TestAssembler_Assemble_Appendix(t *testing.T) {
	cfg := testConfig(t)

	commits := []model.Commit{{ID: "abc1234", Subject: "feat: add X"}}
	classified := classifier.Classify(commits, cfg)

	doc := New(cfg).Assemble("v1.0.0", classified, nil, commits)

	if !strings.Contains(doc, "<details>") || !strings.Contains(doc, "</details>") {
		t.Fatal("expected a collapsible appendix")
	}
	// The appendix lists the raw subject, not the cleaned one.
	if !strings.Contains(doc, "- feat: add X (abc1234)") {
		t.Errorf("expected verbatim commit line in the appendix, got:\n%s", doc)
	}
}

func TestAssembler_Assemble_AppendixEmpty(t *testing.T) {
	cfg := testConfig(t)

	doc := New(cfg).Assemble("v1.0.0", model.ClassifiedSet{}, nil, nil)
	if !strings.Contains(doc, cfg.Templates.AppendixEmpty) {
		t.Errorf("expected empty-appendix placeholder, got:\n%s", doc)
	}
}

func TestAssembler_CleanSubject(t *testing.T) {
	cfg := testConfig(t)
	asm := New(cfg)

	tests := []struct {
		subject string
		want    string
	}{
		{"feat: add X", "add X"},
		{"fix(parser): handle empty input", "handle empty input"},
		{"docs: update readme", "update readme"},
		{"no prefix at all", "no prefix at all"},
		// Stripping must never yield an empty message.
		{"feat:", "feat:"},
	}

	for _, tt := range tests {
		if got := asm.cleanSubject(tt.subject); got != tt.want {
			t.Errorf("cleanSubject(%q) = %q, want %q", tt.subject, got, tt.want)
		}
	}
}

func TestConfig_IconFallback(t *testing.T) {
	cfg := testConfig(t)

	if got := cfg.Icon(3); got != "🔥" {
		t.Errorf("expected 🔥 for importance 3, got %s", got)
	}
	if got := cfg.Icon(0); got != cfg.DefaultIcon {
		t.Errorf("expected default icon for unknown importance, got %s", got)
	}
	if got := cfg.Icon(99); got != cfg.DefaultIcon {
		t.Errorf("expected default icon for out-of-range importance, got %s", got)
	}
}
