package analysis

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/grokify/changelogconductor/pkg/model"
)

// analysisDoc is the wire shape of an analysis response document.
type analysisDoc struct {
	Categories map[model.CategoryTag][]model.AnalyzedCommit `json:"categories"`
	Summary    string                                       `json:"summary"`
	Highlights []string                                     `json:"highlights"`
}

var (
	labeledFenceRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFenceRe     = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// strategies are tried in order; the first success wins. Each strategy
// extracts candidate document text from the raw response, or reports that
// it does not apply.
var strategies = []func(string) (string, bool){
	func(raw string) (string, bool) {
		return raw, true
	},
	func(raw string) (string, bool) {
		m := labeledFenceRe.FindStringSubmatch(raw)
		if m == nil {
			return "", false
		}
		return m[1], true
	},
	func(raw string) (string, bool) {
		m := anyFenceRe.FindStringSubmatch(raw)
		if m == nil {
			return "", false
		}
		return m[1], true
	},
}

// Interpret parses an untrusted analysis response into a structured result.
// It tries increasingly permissive strategies: the whole text as JSON, the
// interior of a ```json fence, then the interior of any fence. It never
// fails with an error; when no strategy yields a document the second return
// value is false and the caller falls back to rule-based assembly.
func Interpret(raw string) (*model.AnalysisResult, bool) {
	for _, extract := range strategies {
		candidate, ok := extract(raw)
		if !ok {
			continue
		}
		if doc, ok := parseDoc(candidate); ok {
			return doc, true
		}
	}
	return nil, false
}

// parseDoc parses candidate text as a JSON document and fills defaulted
// fields. A document with no categories is still a valid result.
func parseDoc(candidate string) (*model.AnalysisResult, bool) {
	trimmed := strings.TrimSpace(candidate)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var doc analysisDoc
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, false
	}

	result := &model.AnalysisResult{
		Categories: doc.Categories,
		Summary:    doc.Summary,
		Highlights: doc.Highlights,
	}
	if result.Categories == nil {
		result.Categories = map[model.CategoryTag][]model.AnalyzedCommit{}
	}
	if result.Highlights == nil {
		result.Highlights = []string{}
	}
	return result, true
}
