package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/grokify/changelogconductor/internal/report"
	"github.com/grokify/changelogconductor/pkg/model"
)

// BatchController processes every release in sequence, tolerating
// per-release failure. Stats are threaded through the loop as a value and
// per-release outcomes are recorded; processing always continues to the
// next release.
type BatchController struct {
	Pipeline *Pipeline

	// Delay is waited between releases to respect external rate limits.
	// It is not applied after the last release.
	Delay time.Duration

	// SuccessThreshold is the succeeded/total ratio at or above which the
	// batch run counts as an aggregate success.
	SuccessThreshold float64

	sleep func(time.Duration)
}

// NewBatchController creates a controller configured from the pipeline's
// batch settings.
func NewBatchController(p *Pipeline) *BatchController {
	return &BatchController{
		Pipeline:         p,
		Delay:            p.Config.Batch.Delay(),
		SuccessThreshold: p.Config.Batch.SuccessThreshold,
		sleep:            time.Sleep,
	}
}

// Run enumerates every release and processes each in listing order. Only
// enumeration failure aborts the run; everything downstream is recorded as
// a per-release outcome. An empty release list is a successful run.
func (c *BatchController) Run(ctx context.Context) (*model.BatchResult, error) {
	releases, err := c.Pipeline.Store.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate releases: %w", err)
	}

	stats := model.BatchStats{
		TotalReleases: len(releases),
		StartTime:     time.Now(),
	}

	c.Pipeline.Sink.Emit(report.Event{
		Type:  report.EventBatchStart,
		Mode:  model.ModeBatch,
		Total: len(releases),
	})

	outcomes := make([]model.ReleaseOutcome, 0, len(releases))
	for i, release := range releases {
		if ctx.Err() != nil {
			break
		}

		outcome := c.Pipeline.ProcessRelease(ctx, release, false)
		stats = stats.Record(outcome)
		outcomes = append(outcomes, outcome)

		c.Pipeline.Sink.Emit(report.Event{
			Type:    report.EventRelease,
			Mode:    model.ModeBatch,
			Current: i + 1,
			Total:   len(releases),
			Outcome: &outcome,
			Stats:   &stats,
		})

		if c.Delay > 0 && i < len(releases)-1 {
			c.sleep(c.Delay)
		}
	}

	result := &model.BatchResult{
		Timestamp: time.Now(),
		Stats:     stats,
		Outcomes:  outcomes,
		Success:   stats.SuccessRate() >= c.SuccessThreshold,
	}

	c.Pipeline.Sink.Emit(report.Event{
		Type:  report.EventBatchComplete,
		Mode:  model.ModeBatch,
		Batch: result,
	})

	return result, nil
}
