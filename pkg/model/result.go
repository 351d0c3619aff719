package model

import "time"

// AnalyzedCommit is one commit entry inside an AI analysis result.
type AnalyzedCommit struct {
	Hash       string `json:"hash"`
	Message    string `json:"message"`
	Importance int    `json:"importance"`
}

// AnalysisResult is a successfully interpreted AI analysis response.
// It is produced whole or not at all; a failed interpretation yields no
// result and the pipeline falls back to rule-based assembly.
type AnalysisResult struct {
	Categories map[CategoryTag][]AnalyzedCommit `json:"categories"`
	Summary    string                           `json:"summary"`
	Highlights []string                         `json:"highlights"`
}

// OutcomeStatus is the terminal state of processing one release.
type OutcomeStatus string

const (
	OutcomeSucceeded OutcomeStatus = "succeeded"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// Skip reasons recorded on skipped releases.
const (
	SkipReasonNoOptimization = "no optimization needed"
	SkipReasonEmptyRange     = "empty commit range"
)

// ReleaseOutcome records the result of processing a single release.
type ReleaseOutcome struct {
	Tag            string              `json:"tag"`
	ReleaseID      int64               `json:"releaseId"`
	Status         OutcomeStatus       `json:"status"`
	AIUsed         bool                `json:"aiUsed"`
	Reason         string              `json:"reason,omitempty"`
	Error          string              `json:"error,omitempty"`
	CommitCount    int                 `json:"commitCount"`
	RangeLabel     string              `json:"rangeLabel,omitempty"`
	CategoryCounts map[CategoryTag]int `json:"categoryCounts,omitempty"`
}

// BatchStats accumulates counters across one batch run. It is threaded
// through the batch loop as a value, never shared.
type BatchStats struct {
	TotalReleases int       `json:"totalReleases"`
	Processed     int       `json:"processed"`
	Succeeded     int       `json:"succeeded"`
	AISucceeded   int       `json:"aiSucceeded"`
	Skipped       int       `json:"skipped"`
	Failed        int       `json:"failed"`
	TotalCommits  int       `json:"totalCommits"`
	StartTime     time.Time `json:"startTime"`
}

// Record folds one release outcome into the stats and returns the result.
func (s BatchStats) Record(outcome ReleaseOutcome) BatchStats {
	s.Processed++
	s.TotalCommits += outcome.CommitCount
	switch outcome.Status {
	case OutcomeSucceeded:
		s.Succeeded++
		if outcome.AIUsed {
			s.AISucceeded++
		}
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
	return s
}

// SuccessRate returns succeeded/total, or 1 when there were no releases.
func (s BatchStats) SuccessRate() float64 {
	if s.TotalReleases == 0 {
		return 1
	}
	return float64(s.Succeeded) / float64(s.TotalReleases)
}

// BatchResult contains the results of a full batch run.
type BatchResult struct {
	Timestamp time.Time        `json:"timestamp"`
	Stats     BatchStats       `json:"stats"`
	Outcomes  []ReleaseOutcome `json:"outcomes,omitempty"`
	Success   bool             `json:"success"`
}

// RunResult contains the result of a single-release run.
type RunResult struct {
	Timestamp time.Time      `json:"timestamp"`
	Mode      RunMode        `json:"mode"`
	Outcome   ReleaseOutcome `json:"outcome"`
}

// Success reports whether the single run completed without failure.
// A skipped release is a valid, successful outcome.
func (r RunResult) Success() bool {
	return r.Outcome.Status != OutcomeFailed
}
