package model

import (
	"testing"
)

func TestBatchStats_Record(t *testing.T) {
	stats := BatchStats{TotalReleases: 3}

	stats = stats.Record(ReleaseOutcome{Status: OutcomeSucceeded, AIUsed: true, CommitCount: 5})
	stats = stats.Record(ReleaseOutcome{Status: OutcomeSkipped, Reason: SkipReasonNoOptimization})
	stats = stats.Record(ReleaseOutcome{Status: OutcomeFailed, Error: "boom", CommitCount: 2})

	if stats.Processed != 3 {
		t.Errorf("expected 3 processed, got %d", stats.Processed)
	}
	if stats.Succeeded != 1 || stats.AISucceeded != 1 {
		t.Errorf("unexpected success counters %+v", stats)
	}
	if stats.Skipped != 1 || stats.Failed != 1 {
		t.Errorf("unexpected skip/fail counters %+v", stats)
	}
	if stats.TotalCommits != 7 {
		t.Errorf("expected 7 total commits, got %d", stats.TotalCommits)
	}
}

func TestBatchStats_SuccessRate(t *testing.T) {
	tests := []struct {
		total     int
		succeeded int
		want      float64
	}{
		{0, 0, 1},
		{5, 5, 1},
		{5, 4, 0.8},
		{5, 0, 0},
	}

	for _, tt := range tests {
		stats := BatchStats{TotalReleases: tt.total, Succeeded: tt.succeeded}
		if got := stats.SuccessRate(); got != tt.want {
			t.Errorf("SuccessRate(%d/%d) = %v, want %v", tt.succeeded, tt.total, got, tt.want)
		}
	}
}

func TestRunResult_Success(t *testing.T) {
	if !(RunResult{Outcome: ReleaseOutcome{Status: OutcomeSucceeded}}).Success() {
		t.Error("expected succeeded run to be a success")
	}
	// A skipped release is a valid terminal state, not a failure.
	if !(RunResult{Outcome: ReleaseOutcome{Status: OutcomeSkipped}}).Success() {
		t.Error("expected skipped run to be a success")
	}
	if (RunResult{Outcome: ReleaseOutcome{Status: OutcomeFailed}}).Success() {
		t.Error("expected failed run to not be a success")
	}
}

func TestClassifiedSet_Counts(t *testing.T) {
	set := ClassifiedSet{
		CategoryFeature: {{ID: "a1"}, {ID: "a2"}},
		CategoryFix:     nil,
		CategoryOther:   {{ID: "a3"}},
	}

	if set.Total() != 3 {
		t.Errorf("expected total 3, got %d", set.Total())
	}

	counts := set.Counts()
	if counts[CategoryFeature] != 2 || counts[CategoryOther] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
	if _, ok := counts[CategoryFix]; ok {
		t.Error("expected empty categories to be omitted from counts")
	}
}
