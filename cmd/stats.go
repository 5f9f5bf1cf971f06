package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"archivestats/config"
	"archivestats/internal/fetcher"
	"archivestats/internal/listing"
	"archivestats/internal/models"
	"archivestats/internal/s3client"
	"archivestats/internal/stats"
	"archivestats/pkg/logger"
	"archivestats/pkg/utils"
)

const (
	sourceHTTP = "http"
	sourceS3   = "s3"

	outputText = "text"
	outputJSON = "json"
)

func addStatsFlags(cmd *cobra.Command) {
	// Unset flags fall back to the loaded config, so no default is shown here.
	cmd.Flags().String("url", "", fmt.Sprintf("Listing URL to fetch (http source) (default from LISTING_URL, else %s)", config.DefaultListingURL))
	cmd.Flags().Int("timeout", 0, fmt.Sprintf("Timeout in seconds for the request (default from REQUEST_TIMEOUT, else %d)", int(config.DefaultTimeout/time.Second)))
	cmd.Flags().Int("skip-trailing", 0, fmt.Sprintf("Entries at the end of the listing left out of the date range (default from TRAILING_SKIP, else %d)", config.DefaultTrailingSkip))
	cmd.Flags().String("source", sourceHTTP, "Where to list from: http (plain GET) or s3 (S3 API)")
	cmd.Flags().StringP("output", "o", outputText, "Output format: text or json")
}

type statsOptions struct {
	url          string
	timeout      time.Duration
	trailingSkip int
	source       string
	output       string
}

func resolveStatsOptions(cmd *cobra.Command) (*statsOptions, error) {
	opts := &statsOptions{
		url:          cfg.ListingURL,
		timeout:      cfg.Timeout,
		trailingSkip: cfg.TrailingSkip,
	}
	opts.source, _ = cmd.Flags().GetString("source")
	opts.output, _ = cmd.Flags().GetString("output")

	if cmd.Flags().Changed("url") {
		opts.url, _ = cmd.Flags().GetString("url")
	}
	if cmd.Flags().Changed("timeout") {
		seconds, _ := cmd.Flags().GetInt("timeout")
		if seconds <= 0 {
			return nil, fmt.Errorf("timeout must be greater than 0")
		}
		opts.timeout = time.Duration(seconds) * time.Second
	}
	if cmd.Flags().Changed("skip-trailing") {
		opts.trailingSkip, _ = cmd.Flags().GetInt("skip-trailing")
		if opts.trailingSkip < 0 {
			return nil, fmt.Errorf("skip-trailing must not be negative")
		}
	}

	if opts.source != sourceHTTP && opts.source != sourceS3 {
		return nil, fmt.Errorf("unknown source %q, want %s or %s", opts.source, sourceHTTP, sourceS3)
	}
	if opts.output != outputText && opts.output != outputJSON {
		return nil, fmt.Errorf("unknown output format %q, want %s or %s", opts.output, outputText, outputJSON)
	}

	return opts, nil
}

func runStats(cmd *cobra.Command) error {
	opts, err := resolveStatsOptions(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	result, err := loadListing(ctx, cmd, opts)
	if err != nil {
		return err
	}

	if result.IsTruncated {
		logger.Log.Warn().
			Str("listing", result.Name).
			Int("entries", len(result.Entries)).
			Msg("listing is truncated, only the first page is summarized")
	}

	summary, err := stats.Summarize(result.Entries, opts.trailingSkip)
	if err != nil {
		return err
	}

	logger.Log.Debug().
		Uint64("total_size_bytes", summary.TotalSizeBytes).
		Str("total_size_human", summary.TotalSizeHuman).
		Int("entries", summary.EntryCount).
		Msg("summary computed")

	if opts.output == outputJSON {
		return utils.PrintJSON(cmd.OutOrStdout(), summary)
	}
	return utils.PrintSummary(cmd.OutOrStdout(), summary)
}

func loadListing(ctx context.Context, cmd *cobra.Command, opts *statsOptions) (*models.Listing, error) {
	if opts.source == sourceS3 {
		bucket := getBucketName(cmd)
		logger.Log.Debug().Str("bucket", bucket).Msg("listing bucket through S3 API")

		client, err := s3client.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client.ListEntries(ctx, bucket)
	}

	logger.Log.Debug().Str("url", opts.url).Dur("timeout", opts.timeout).Msg("fetching listing")

	doc, err := fetcher.New(opts.url, opts.timeout).Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return listing.Parse(doc)
}
