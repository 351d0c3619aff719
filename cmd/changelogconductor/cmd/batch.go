package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grokify/changelogconductor/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Reprocess the changelogs of every release",
	Long: `Process every release of the repository in sequence, regenerating each
changelog that has not already been optimized.

Individual failures do not stop the run. The command exits non-zero when
the fraction of succeeded releases falls below the configured success
threshold.

Examples:
  # Reprocess all releases
  changelogconductor batch --repo owner/repo

  # Rule-based only, without calling the analysis service
  changelogconductor batch --repo owner/repo --no-ai`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	p, err := buildPipeline()
	if err != nil {
		return err
	}

	result, err := pipeline.NewBatchController(p).Run(context.Background())
	if err != nil {
		return err
	}
	if !result.Success {
		return fmt.Errorf("batch run below success threshold: %d/%d releases succeeded",
			result.Stats.Succeeded, result.Stats.TotalReleases)
	}
	return nil
}
