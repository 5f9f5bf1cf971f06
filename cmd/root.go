package cmd

import (
	"github.com/spf13/cobra"

	"archivestats/config"
	"archivestats/pkg/logger"
)

var (
	cfg *config.Config
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archivestats",
		Short: "Summarize a public bucket of daily archives",
		Long: `archivestats fetches the listing of a public object-storage bucket and prints
the total size of the listed files, how many there are and the date range
their filenames span.
Configuration is loaded from .env file or environment variables`,
		Example: `  # Summarize the OpenAQ archive bucket
  archivestats

  # Summarize a local fixture
  archivestats --url http://127.0.0.1:8080/listing.xml

  # Include the last entry in the date range
  archivestats --skip-trailing 0

  # List through the S3 API instead of a plain GET
  archivestats --source s3 --bucket openaq-data`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd)
		},
	}

	cmd.PersistentFlags().StringP("bucket", "b", "", "Override bucket name from config (s3 source)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")

	addStatsFlags(cmd)

	return cmd
}

func Execute(config *config.Config) error {
	cfg = config
	return rootCmd.Execute()
}

func configureLogging(cmd *cobra.Command) {
	level := cfg.LogLevel
	if flagLevel, _ := cmd.Flags().GetString("log-level"); flagLevel != "" {
		level = flagLevel
	}
	if isVerbose(cmd) {
		level = "debug"
	}
	logger.SetLevel(level)
}

func getBucketName(cmd *cobra.Command) string {
	bucket, _ := cmd.Flags().GetString("bucket")
	if bucket != "" {
		return bucket
	}
	return cfg.BucketName
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}
