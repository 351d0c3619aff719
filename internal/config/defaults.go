package config

import "github.com/grokify/changelogconductor/pkg/model"

// Default returns the built-in configuration. A user config file overrides
// individual fields on top of these values.
func Default() *Config {
	return &Config{
		Categories: map[model.CategoryTag]CategoryConfig{
			model.CategoryFeature: {
				Title:   "✨ New Features",
				Pattern: `^(feat|feature)(\(.+\))?[:\s]`,
			},
			model.CategoryFix: {
				Title:   "🐛 Bug Fixes",
				Pattern: `^(fix|bugfix|hotfix)(\(.+\))?[:\s]`,
			},
			model.CategoryPerformance: {
				Title:   "⚡ Performance",
				Pattern: `^perf(\(.+\))?[:\s]`,
			},
			model.CategoryStyle: {
				Title:   "💄 Styling",
				Pattern: `^style(\(.+\))?[:\s]`,
			},
			model.CategoryRefactor: {
				Title:   "♻️ Refactoring",
				Pattern: `^refactor(\(.+\))?[:\s]`,
			},
			model.CategoryDocs: {
				Title:   "📝 Documentation",
				Pattern: `^docs?(\(.+\))?[:\s]`,
			},
			model.CategoryBuild: {
				Title:   "📦 Build & CI",
				Pattern: `^(build|ci|chore)(\(.+\))?[:\s]`,
			},
			model.CategoryOther: {
				Title: "🔧 Other Changes",
			},
		},
		CategoryOrder: model.CategoryOrder,
		CleanupPatterns: []string{
			`^feat(\(.+\))?[:\s]+`,
			`^fix(\(.+\))?[:\s]+`,
			`^style(\(.+\))?[:\s]+`,
			`^refactor(\(.+\))?[:\s]+`,
			`^perf(\(.+\))?[:\s]+`,
			`^docs?(\(.+\))?[:\s]+`,
			`^build(\(.+\))?[:\s]+`,
		},
		ImportanceIcons: map[int]string{
			3: "🔥",
			2: "⭐",
			1: "🔹",
		},
		DefaultIcon: "•",
		Templates: TemplatesConfig{
			AI: DocumentTemplates{
				Header:         "# 🚀 {version} Release Notes",
				Overview:       "## 🤖 AI-Generated Changelog Summary\n\n{summary}\n",
				Highlights:     "\n### ✨ Highlights\n\n{highlights}\n",
				CategoryHeader: "### {title}",
				Item:           "- {icon} {message} ({hash})\n",
				Divider:        "\n---\n",
			},
			Basic: DocumentTemplates{
				Header:         "# 📋 {version} Release Notes",
				Overview:       "Changes in this release, categorized from commit history.\n",
				CategoryHeader: "### {title}",
				Item:           "- {message} ({hash})\n",
				Divider:        "\n---\n",
			},
			AppendixSummary: "View original commit log",
			AppendixEmpty:   "No commits recorded",
			OptimizedMarker: "AI-Generated Changelog Summary",
			DefaultSummary:  "AI-assisted summary of the changes in this release.",
		},
		Prompts: PromptsConfig{
			System: "You are a release-notes assistant. You receive a list of git commits, " +
				"one per line, formatted as hash|subject. Categorize every commit into exactly one of: " +
				"FEATURE, FIX, PERFORMANCE, STYLE, REFACTOR, DOCS, BUILD, OTHER. " +
				"Rewrite each subject as a concise, user-facing change description and rate its " +
				"importance from 1 (minor) to 3 (major). Respond with a single JSON object of the form " +
				`{"categories": {"TAG": [{"hash": "...", "message": "...", "importance": 1}]}, ` +
				`"summary": "...", "highlights": ["..."]}` + " and nothing else.",
			UserTemplate: "Analyze the following commits and produce the JSON described in your instructions.\n\n{commits}",
		},
		API: APIConfig{
			BaseURL:        "https://api.deepseek.com/v1",
			Model:          "deepseek-chat",
			Temperature:    0.7,
			MaxTokens:      4000,
			TimeoutSeconds: 120,
			MaxRetries:     3,
		},
		Batch: BatchConfig{
			DelaySeconds:     2,
			SuccessThreshold: 0.8,
		},
	}
}
