package model

// Commit represents a single commit parsed from repository history.
type Commit struct {
	ID         string      `json:"id"`
	Subject    string      `json:"subject"`
	Body       string      `json:"body,omitempty"`
	Category   CategoryTag `json:"category"`
	Importance int         `json:"importance"`
}

// CategoryTag identifies a changelog category.
type CategoryTag string

const (
	CategoryFeature     CategoryTag = "FEATURE"
	CategoryFix         CategoryTag = "FIX"
	CategoryPerformance CategoryTag = "PERFORMANCE"
	CategoryStyle       CategoryTag = "STYLE"
	CategoryRefactor    CategoryTag = "REFACTOR"
	CategoryDocs        CategoryTag = "DOCS"
	CategoryBuild       CategoryTag = "BUILD"
	CategoryOther       CategoryTag = "OTHER"
)

// CategoryOrder is the fixed rendering priority for changelog sections.
// OTHER is always last; it is the catch-all and never carries a match pattern.
var CategoryOrder = []CategoryTag{
	CategoryFeature,
	CategoryFix,
	CategoryPerformance,
	CategoryStyle,
	CategoryRefactor,
	CategoryDocs,
	CategoryBuild,
	CategoryOther,
}

// ClassifiedSet maps every category to its commits in history order.
// Every category key is present even when its slice is empty, and each
// input commit appears in exactly one category.
type ClassifiedSet map[CategoryTag][]Commit

// Total returns the number of commits across all categories.
func (s ClassifiedSet) Total() int {
	n := 0
	for _, commits := range s {
		n += len(commits)
	}
	return n
}

// Counts returns the per-category commit counts, omitting empty categories.
func (s ClassifiedSet) Counts() map[CategoryTag]int {
	counts := make(map[CategoryTag]int)
	for tag, commits := range s {
		if len(commits) > 0 {
			counts[tag] = len(commits)
		}
	}
	return counts
}
