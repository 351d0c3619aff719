package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "changelogconductor",
	Short: "AI-assisted changelog generation for GitHub releases",
	Long: `ChangelogConductor turns a repository's commit history into structured,
human-readable changelogs attached to GitHub releases.

Features:
  - Resolve the commit range between release tags
  - Categorize commits by configurable subject patterns
  - Enrich changelogs with an AI analysis, with a deterministic
    rule-based fallback when the analysis is unavailable
  - Batch-reprocess every release with partial-failure tolerance

Part of the DevOpsOrchestra suite alongside VersionConductor.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.changelogconductor.yaml)")
	rootCmd.PersistentFlags().String("repo", "", "Repository (owner/repo format, or set GITHUB_REPOSITORY)")
	rootCmd.PersistentFlags().String("repo-path", "", "Path to the local git working tree (default is the current directory)")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().String("api-key", "", "Analysis service API key (or set DEEPSEEK_API_KEY env var)")
	rootCmd.PersistentFlags().String("changelog-config", "", "Changelog content config file (categories, templates, prompts)")
	rootCmd.PersistentFlags().String("result-json", "", "Write the machine-readable result to this file")
	rootCmd.PersistentFlags().Bool("no-ai", false, "Disable AI analysis and use rule-based generation only")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("repo", rootCmd.PersistentFlags().Lookup("repo"))
	_ = viper.BindPFlag("repo-path", rootCmd.PersistentFlags().Lookup("repo-path"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("api-key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("changelog-config", rootCmd.PersistentFlags().Lookup("changelog-config"))
	_ = viper.BindPFlag("result-json", rootCmd.PersistentFlags().Lookup("result-json"))
	_ = viper.BindPFlag("no-ai", rootCmd.PersistentFlags().Lookup("no-ai"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".changelogconductor" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".changelogconductor")
	}

	// Environment variables
	viper.SetEnvPrefix("CHANGELOGCONDUCTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Also check the conventional env vars directly
	if viper.GetString("token") == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			viper.Set("token", token)
		}
	}
	if viper.GetString("api-key") == "" {
		if key := os.Getenv("DEEPSEEK_API_KEY"); key != "" {
			viper.Set("api-key", key)
		}
	}
	if viper.GetString("repo") == "" {
		if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
			viper.Set("repo", repo)
		}
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
