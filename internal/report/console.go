package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/grokify/changelogconductor/pkg/model"
)

// ConsoleSink renders progress events as human-readable text.
type ConsoleSink struct {
	writer io.Writer
}

// NewConsoleSink creates a console sink. A nil writer defaults to stderr.
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stderr
	}
	return &ConsoleSink{writer: w}
}

// Emit renders one event.
func (c *ConsoleSink) Emit(event Event) {
	switch event.Type {
	case EventBatchStart:
		fmt.Fprintf(c.writer, "Processing %d release(s)...\n", event.Total)
	case EventRelease:
		c.release(event)
	case EventBatchComplete:
		c.batchComplete(event)
	case EventRunComplete:
		c.runComplete(event)
	}
}

func (c *ConsoleSink) release(event Event) {
	outcome := event.Outcome
	if outcome == nil {
		return
	}

	switch outcome.Status {
	case model.OutcomeSucceeded:
		status := "basic"
		if outcome.AIUsed {
			status = "ai"
		}
		fmt.Fprintf(c.writer, "[%d/%d] %s: done (%s, %d commits)\n",
			event.Current, event.Total, outcome.Tag, status, outcome.CommitCount)
	case model.OutcomeSkipped:
		fmt.Fprintf(c.writer, "[%d/%d] %s: skipped (%s)\n",
			event.Current, event.Total, outcome.Tag, outcome.Reason)
	case model.OutcomeFailed:
		fmt.Fprintf(c.writer, "[%d/%d] %s: failed (%s)\n",
			event.Current, event.Total, outcome.Tag, outcome.Error)
	}

	if event.Stats != nil && event.Current < event.Total {
		elapsed := time.Since(event.Stats.StartTime)
		if event.Current > 0 {
			avg := elapsed / time.Duration(event.Current)
			remaining := avg * time.Duration(event.Total-event.Current)
			fmt.Fprintf(c.writer, "  elapsed %s, estimated remaining %s\n",
				elapsed.Round(time.Second), remaining.Round(time.Second))
		}
	}
}

func (c *ConsoleSink) batchComplete(event Event) {
	result := event.Batch
	if result == nil {
		return
	}
	stats := result.Stats

	fmt.Fprintf(c.writer, "\nBatch complete:\n")
	fmt.Fprintf(c.writer, "  Releases:   %d\n", stats.TotalReleases)
	fmt.Fprintf(c.writer, "  Succeeded:  %d (%d via AI)\n", stats.Succeeded, stats.AISucceeded)
	fmt.Fprintf(c.writer, "  Skipped:    %d\n", stats.Skipped)
	fmt.Fprintf(c.writer, "  Failed:     %d\n", stats.Failed)
	fmt.Fprintf(c.writer, "  Commits:    %d\n", stats.TotalCommits)
	fmt.Fprintf(c.writer, "  Rate:       %.1f%%\n", stats.SuccessRate()*100)
	fmt.Fprintf(c.writer, "  Duration:   %s\n", time.Since(stats.StartTime).Round(time.Second))
	if result.Success {
		fmt.Fprintf(c.writer, "  Result:     success\n")
	} else {
		fmt.Fprintf(c.writer, "  Result:     below success threshold\n")
	}
}

func (c *ConsoleSink) runComplete(event Event) {
	result := event.Run
	if result == nil {
		return
	}
	outcome := result.Outcome

	fmt.Fprintf(c.writer, "\nChangelog generation complete:\n")
	fmt.Fprintf(c.writer, "  Mode:       %s\n", result.Mode)
	fmt.Fprintf(c.writer, "  Version:    %s\n", outcome.Tag)
	fmt.Fprintf(c.writer, "  Release ID: %d\n", outcome.ReleaseID)

	switch outcome.Status {
	case model.OutcomeSucceeded:
		mode := "basic rules"
		if outcome.AIUsed {
			mode = "AI analysis"
		}
		fmt.Fprintf(c.writer, "  Generated:  %s (%d commits, range %s)\n",
			mode, outcome.CommitCount, outcome.RangeLabel)
		for _, tag := range model.CategoryOrder {
			if n := outcome.CategoryCounts[tag]; n > 0 {
				fmt.Fprintf(c.writer, "    %-12s %d\n", string(tag)+":", n)
			}
		}
	case model.OutcomeSkipped:
		fmt.Fprintf(c.writer, "  Skipped:    %s\n", outcome.Reason)
	case model.OutcomeFailed:
		fmt.Fprintf(c.writer, "  Failed:     %s\n", outcome.Error)
	}
}
