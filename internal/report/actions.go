package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/grokify/changelogconductor/pkg/model"
)

// ActionsSink writes results to GitHub Actions side channels: output
// variables to the key-value output file and a markdown report to the step
// summary file. Writes are best-effort; a missing file path disables the
// corresponding channel.
type ActionsSink struct {
	outputPath  string
	summaryPath string
}

// NewActionsSink creates a sink writing to the given files. Either path may
// be empty.
func NewActionsSink(outputPath, summaryPath string) *ActionsSink {
	return &ActionsSink{outputPath: outputPath, summaryPath: summaryPath}
}

// NewActionsSinkFromEnv creates a sink from the GITHUB_OUTPUT and
// GITHUB_STEP_SUMMARY environment variables.
func NewActionsSinkFromEnv() *ActionsSink {
	return NewActionsSink(os.Getenv("GITHUB_OUTPUT"), os.Getenv("GITHUB_STEP_SUMMARY"))
}

// Emit writes side-channel files for completed runs. Progress events are
// ignored.
func (a *ActionsSink) Emit(event Event) {
	switch event.Type {
	case EventRunComplete:
		if event.Run != nil {
			a.writeOutputs(runOutputs(event.Run))
			a.writeSummary(runSummary(event.Run))
		}
	case EventBatchComplete:
		if event.Batch != nil {
			a.writeOutputs(batchOutputs(event.Batch))
			a.writeSummary(batchSummary(event.Batch))
		}
	}
}

func runOutputs(result *model.RunResult) []string {
	mode := "basic"
	if result.Outcome.AIUsed {
		mode = "ai"
	}
	return []string{
		fmt.Sprintf("ai_success=%t", result.Outcome.AIUsed),
		fmt.Sprintf("total_commits=%d", result.Outcome.CommitCount),
		fmt.Sprintf("generation_mode=%s", mode),
	}
}

func batchOutputs(result *model.BatchResult) []string {
	return []string{
		fmt.Sprintf("ai_success=%t", result.Stats.AISucceeded > 0),
		fmt.Sprintf("total_commits=%d", result.Stats.TotalCommits),
		"generation_mode=batch",
		fmt.Sprintf("processed_releases=%d", result.Stats.Processed),
	}
}

func runSummary(result *model.RunResult) string {
	var sb strings.Builder
	outcome := result.Outcome

	sb.WriteString("# 🤖 AI Changelog Report\n\n")
	sb.WriteString("## Overview\n")
	sb.WriteString(fmt.Sprintf("- **Version**: `%s`\n", outcome.Tag))
	sb.WriteString(fmt.Sprintf("- **Mode**: `%s`\n", result.Mode))
	sb.WriteString(fmt.Sprintf("- **Release ID**: `%d`\n", outcome.ReleaseID))
	sb.WriteString(fmt.Sprintf("- **Status**: `%s`\n", outcome.Status))
	if outcome.Status == model.OutcomeSucceeded {
		generation := "📝 basic rules"
		if outcome.AIUsed {
			generation = "🧠 AI analysis"
		}
		sb.WriteString(fmt.Sprintf("- **Generation**: %s\n", generation))
		sb.WriteString(fmt.Sprintf("- **Commits**: `%d`\n", outcome.CommitCount))

		sb.WriteString("\n## Category Counts\n")
		for _, tag := range model.CategoryOrder {
			if n := outcome.CategoryCounts[tag]; n > 0 {
				sb.WriteString(fmt.Sprintf("- **%s**: %d\n", tag, n))
			}
		}
	}
	if outcome.Reason != "" {
		sb.WriteString(fmt.Sprintf("\nSkipped: %s\n", outcome.Reason))
	}
	if outcome.Error != "" {
		sb.WriteString(fmt.Sprintf("\nError: %s\n", outcome.Error))
	}

	return sb.String()
}

func batchSummary(result *model.BatchResult) string {
	var sb strings.Builder
	stats := result.Stats

	sb.WriteString("# 🔄 Batch AI Changelog Report\n\n")
	sb.WriteString("## Statistics\n")
	sb.WriteString(fmt.Sprintf("- **Total Releases**: `%d`\n", stats.TotalReleases))
	sb.WriteString(fmt.Sprintf("- **Succeeded**: `%d`\n", stats.Succeeded))
	sb.WriteString(fmt.Sprintf("- **AI Generated**: `%d`\n", stats.AISucceeded))
	sb.WriteString(fmt.Sprintf("- **Skipped**: `%d`\n", stats.Skipped))
	sb.WriteString(fmt.Sprintf("- **Failed**: `%d`\n", stats.Failed))
	sb.WriteString(fmt.Sprintf("- **Total Commits**: `%d`\n", stats.TotalCommits))
	sb.WriteString(fmt.Sprintf("- **Success Rate**: `%.1f%%`\n", stats.SuccessRate()*100))

	sb.WriteString("\n## Result\n")
	if result.Success {
		sb.WriteString("✅ Batch processing completed successfully\n")
	} else {
		sb.WriteString("⚠️ Batch processing finished below the success threshold\n")
	}

	return sb.String()
}

func (a *ActionsSink) writeOutputs(lines []string) {
	if a.outputPath == "" {
		return
	}

	f, err := os.OpenFile(a.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open output file: %v\n", err)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write output variables: %v\n", err)
	}
}

func (a *ActionsSink) writeSummary(content string) {
	if a.summaryPath == "" {
		return
	}

	if err := os.WriteFile(a.summaryPath, []byte(content), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write step summary: %v\n", err)
	}
}
