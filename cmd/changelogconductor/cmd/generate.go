package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/changelogconductor/internal/analysis"
	"github.com/grokify/changelogconductor/internal/config"
	"github.com/grokify/changelogconductor/internal/history"
	"github.com/grokify/changelogconductor/internal/pipeline"
	"github.com/grokify/changelogconductor/internal/report"
	"github.com/grokify/changelogconductor/internal/resolver"
	"github.com/grokify/changelogconductor/internal/store"
	"github.com/grokify/changelogconductor/pkg/model"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and publish a changelog for one release",
	Long: `Generate a changelog for a single GitHub release and publish it as the
release body.

The release is selected by --version together with --release-id (automatic
modes), or by --target naming a tag, "latest", or "all" (manual mode).
A --target of "all" delegates to batch processing of every release.

Examples:
  # Regenerate the changelog for a specific tag
  changelogconductor generate --target v1.2.0 --repo owner/repo

  # Process the most recent release
  changelogconductor generate --target latest --repo owner/repo

  # Called from a release workflow with the release already known
  changelogconductor generate --event-name workflow_call --version v1.2.0 --release-id 12345`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("version", "", "Version tag of the release to process")
	generateCmd.Flags().Int64("release-id", 0, "Storage ID of the release to process")
	generateCmd.Flags().String("target", "", "Target tag, \"latest\", or \"all\"")
	generateCmd.Flags().String("tag", "", "Legacy spelling of --target")
	generateCmd.Flags().String("event-name", "", "Triggering event name (workflow_call for automatic mode)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	version, _ := cmd.Flags().GetString("version")
	releaseID, _ := cmd.Flags().GetInt64("release-id")
	target, _ := cmd.Flags().GetString("target")
	tag, _ := cmd.Flags().GetString("tag")
	eventName, _ := cmd.Flags().GetString("event-name")

	sel, err := pipeline.ResolveMode(pipeline.Params{
		EventName: eventName,
		Version:   version,
		ReleaseID: releaseID,
		Target:    target,
		Tag:       tag,
	})
	if err != nil {
		return err
	}

	p, err := buildPipeline()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if sel.Mode == model.ModeBatch {
		result, err := pipeline.NewBatchController(p).Run(ctx)
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("batch run below success threshold: %d/%d releases succeeded",
				result.Stats.Succeeded, result.Stats.TotalReleases)
		}
		return nil
	}

	result, err := p.RunSingle(ctx, sel)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("changelog generation failed for %s: %s", result.Outcome.Tag, result.Outcome.Error)
	}
	return nil
}

// buildPipeline assembles the pipeline from flags, environment, and the
// content config file.
func buildPipeline() (*pipeline.Pipeline, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, fmt.Errorf("GitHub token required: use --token flag or GITHUB_TOKEN env var")
	}

	repoName := viper.GetString("repo")
	if repoName == "" {
		return nil, fmt.Errorf("repository required: use --repo flag or GITHUB_REPOSITORY env var")
	}
	repo := model.ParseRepoRef(repoName)
	if repo.Owner == "" {
		return nil, fmt.Errorf("invalid repository %q: expected owner/repo format", repoName)
	}

	cfg, err := config.Load(viper.GetString("changelog-config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load changelog config: %w", err)
	}

	var analyzer analysis.Analyzer
	if !viper.GetBool("no-ai") {
		if apiKey := viper.GetString("api-key"); apiKey != "" {
			analyzer = analysis.NewClient(cfg, apiKey)
		} else {
			fmt.Fprintln(os.Stderr, "Warning: no API key set, falling back to rule-based generation")
		}
	}

	sinks := report.MultiSink{report.NewConsoleSink(nil), report.NewActionsSinkFromEnv()}
	if path := viper.GetString("result-json"); path != "" {
		sinks = append(sinks, report.NewJSONSink(path))
	}

	st := store.NewGitHub(token, repo)
	res := resolver.New(history.NewGitCLI(viper.GetString("repo-path")))

	return pipeline.New(st, res, analyzer, cfg, sinks), nil
}
