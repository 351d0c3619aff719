package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/grokify/changelogconductor/pkg/model"
)

// CategoryConfig describes one changelog category: its display title and the
// subject-line pattern used for rule-based classification. OTHER is the
// catch-all and must not define a pattern.
type CategoryConfig struct {
	Title   string `yaml:"title"`
	Pattern string `yaml:"pattern,omitempty"`
}

// DocumentTemplates holds the fragments for one changelog rendering path.
// Fragments use named placeholders: {version}, {summary}, {highlights},
// {title}, {icon}, {message}, {hash}.
type DocumentTemplates struct {
	Header         string `yaml:"header"`
	Overview       string `yaml:"overview"`
	Highlights     string `yaml:"highlights,omitempty"`
	CategoryHeader string `yaml:"category_header"`
	Item           string `yaml:"item"`
	Divider        string `yaml:"divider"`
}

// TemplatesConfig holds both rendering paths plus shared fragments.
type TemplatesConfig struct {
	AI              DocumentTemplates `yaml:"ai"`
	Basic           DocumentTemplates `yaml:"basic"`
	AppendixSummary string            `yaml:"appendix_summary"`
	AppendixEmpty   string            `yaml:"appendix_empty"`
	OptimizedMarker string            `yaml:"optimized_marker"`
	DefaultSummary  string            `yaml:"default_summary"`
}

// PromptsConfig holds the analysis service prompts. UserTemplate must contain
// the {commits} placeholder, replaced with the id|subject commit digest.
type PromptsConfig struct {
	System       string `yaml:"system"`
	UserTemplate string `yaml:"user_template"`
}

// APIConfig holds analysis service parameters.
type APIConfig struct {
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxRetries     int     `yaml:"max_retries"`
}

// Timeout returns the request timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BatchConfig holds batch processing parameters.
type BatchConfig struct {
	DelaySeconds     int     `yaml:"delay_seconds"`
	SuccessThreshold float64 `yaml:"success_threshold"`
}

// Delay returns the inter-release delay as a duration.
func (c BatchConfig) Delay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// Config is the full changelog content configuration. It is loaded once at
// startup and validated completely before any network activity.
type Config struct {
	Categories      map[model.CategoryTag]CategoryConfig `yaml:"categories"`
	CategoryOrder   []model.CategoryTag                  `yaml:"category_order"`
	CleanupPatterns []string                             `yaml:"cleanup_patterns"`
	ImportanceIcons map[int]string                       `yaml:"importance_icons"`
	DefaultIcon     string                               `yaml:"default_icon"`
	Templates       TemplatesConfig                      `yaml:"templates"`
	Prompts         PromptsConfig                        `yaml:"prompts"`
	API             APIConfig                            `yaml:"api"`
	Batch           BatchConfig                          `yaml:"batch"`

	categoryRegexps map[model.CategoryTag]*regexp.Regexp
	cleanupRegexps  []*regexp.Regexp
}

// Load reads a configuration file on top of the built-in defaults and
// validates the result. An empty path returns the validated defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		cleanPath := filepath.Clean(path)
		data, err := os.ReadFile(cleanPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration exhaustively and compiles all patterns.
// Failures here abort startup.
func (c *Config) Validate() error {
	if len(c.CategoryOrder) == 0 {
		return fmt.Errorf("category_order must not be empty")
	}

	seen := make(map[model.CategoryTag]bool)
	for _, tag := range c.CategoryOrder {
		if seen[tag] {
			return fmt.Errorf("category %s appears twice in category_order", tag)
		}
		seen[tag] = true
	}
	if !seen[model.CategoryOther] {
		return fmt.Errorf("category_order must include %s", model.CategoryOther)
	}

	c.categoryRegexps = make(map[model.CategoryTag]*regexp.Regexp)
	for _, tag := range c.CategoryOrder {
		cat, ok := c.Categories[tag]
		if !ok {
			return fmt.Errorf("category %s in category_order has no definition", tag)
		}
		if cat.Title == "" {
			return fmt.Errorf("category %s has no title", tag)
		}
		if tag == model.CategoryOther {
			if cat.Pattern != "" {
				return fmt.Errorf("category %s is the catch-all and must not define a pattern", tag)
			}
			continue
		}
		if cat.Pattern == "" {
			return fmt.Errorf("category %s has no pattern", tag)
		}
		re, err := regexp.Compile("(?i)" + cat.Pattern)
		if err != nil {
			return fmt.Errorf("category %s has invalid pattern: %w", tag, err)
		}
		c.categoryRegexps[tag] = re
	}

	c.cleanupRegexps = c.cleanupRegexps[:0]
	for _, pattern := range c.CleanupPatterns {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return fmt.Errorf("invalid cleanup pattern %q: %w", pattern, err)
		}
		c.cleanupRegexps = append(c.cleanupRegexps, re)
	}

	if c.DefaultIcon == "" {
		return fmt.Errorf("default_icon must not be empty")
	}

	if err := validateTemplates("ai", c.Templates.AI); err != nil {
		return err
	}
	if err := validateTemplates("basic", c.Templates.Basic); err != nil {
		return err
	}
	if c.Templates.AppendixSummary == "" {
		return fmt.Errorf("templates.appendix_summary must not be empty")
	}
	if c.Templates.OptimizedMarker == "" {
		return fmt.Errorf("templates.optimized_marker must not be empty")
	}

	if c.Prompts.System == "" {
		return fmt.Errorf("prompts.system must not be empty")
	}
	if !strings.Contains(c.Prompts.UserTemplate, "{commits}") {
		return fmt.Errorf("prompts.user_template must contain the {commits} placeholder")
	}

	if c.API.Model == "" {
		return fmt.Errorf("api.model must not be empty")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.MaxTokens <= 0 {
		return fmt.Errorf("api.max_tokens must be positive")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}

	if c.Batch.SuccessThreshold <= 0 || c.Batch.SuccessThreshold > 1 {
		return fmt.Errorf("batch.success_threshold must be in (0, 1]")
	}
	if c.Batch.DelaySeconds < 0 {
		return fmt.Errorf("batch.delay_seconds must not be negative")
	}

	return nil
}

func validateTemplates(name string, t DocumentTemplates) error {
	required := map[string]string{
		"header":          t.Header,
		"overview":        t.Overview,
		"category_header": t.CategoryHeader,
		"item":            t.Item,
		"divider":         t.Divider,
	}
	for field, value := range required {
		if value == "" {
			return fmt.Errorf("templates.%s.%s must not be empty", name, field)
		}
	}
	if !strings.Contains(t.Header, "{version}") {
		return fmt.Errorf("templates.%s.header must contain the {version} placeholder", name)
	}
	return nil
}

// MatchOrder returns the classification priority order, excluding OTHER.
func (c *Config) MatchOrder() []model.CategoryTag {
	order := make([]model.CategoryTag, 0, len(c.CategoryOrder))
	for _, tag := range c.CategoryOrder {
		if tag != model.CategoryOther {
			order = append(order, tag)
		}
	}
	return order
}

// CategoryPattern returns the compiled pattern for a category, or nil for
// OTHER and unknown tags. Only valid after Validate.
func (c *Config) CategoryPattern(tag model.CategoryTag) *regexp.Regexp {
	return c.categoryRegexps[tag]
}

// CleanupRegexps returns the compiled subject-cleanup patterns.
// Only valid after Validate.
func (c *Config) CleanupRegexps() []*regexp.Regexp {
	return c.cleanupRegexps
}

// Icon returns the icon for an importance level, falling back to the
// default icon for unrecognized levels.
func (c *Config) Icon(importance int) string {
	if icon, ok := c.ImportanceIcons[importance]; ok {
		return icon
	}
	return c.DefaultIcon
}

// Title returns the display title for a category tag.
func (c *Config) Title(tag model.CategoryTag) string {
	return c.Categories[tag].Title
}
