package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/pubwatch/pubwatch/pkg/config"
	"github.com/pubwatch/pubwatch/pkg/logging"
	"github.com/pubwatch/pubwatch/pkg/pubwatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath     string
	dryRun         bool
	includeDevDeps bool
)

func main() {
	logging.Init()

	var rootCmd = &cobra.Command{
		Use:   "pubwatch",
		Short: "Pubwatch reports outdated Flutter SDK pins and pub dependencies across your repositories",
		Run: func(cmd *cobra.Command, _ []string) {
			// Local runs keep their credentials in a .env file; absence
			// is fine, the variables may come from the environment.
			_ = godotenv.Load()

			cfg, err := config.Load(configPath)
			if err != nil {
				logging.L().Fatal("Failed to load config", zap.Error(err))
			}
			if cmd.Flags().Changed("include-dev-deps") {
				cfg.Settings.IncludeDevDeps = includeDevDeps
			}

			slackToken := os.Getenv("SLACK_BOT_TOKEN")
			channelID := os.Getenv("SLACK_CHANNEL_ID")
			if !dryRun {
				if slackToken == "" {
					logging.L().Fatal("SLACK_BOT_TOKEN environment variable is not set")
				}
				if channelID == "" {
					logging.L().Fatal("SLACK_CHANNEL_ID environment variable is not set")
				}
			}

			w := pubwatch.New(cfg, pubwatch.Params{
				// GITHUB_TOKEN is optional; without it private
				// repositories fail their fetch and are reported as such.
				GitHubToken: os.Getenv("GITHUB_TOKEN"),
				SlackToken:  slackToken,
				ChannelID:   channelID,
				DryRun:      dryRun,
			})

			ctx := context.Background()
			w.RunWithLogging(ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/pubwatch.yaml", "Path to the config file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Write the workbook locally instead of posting to Slack")
	rootCmd.Flags().BoolVar(&includeDevDeps, "include-dev-deps", false, "Also check dev_dependencies (overrides the config setting)")

	if err := rootCmd.Execute(); err != nil {
		logging.L().Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}
