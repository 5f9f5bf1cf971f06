package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"archivestats/pkg/logger"
)

const (
	DefaultListingURL   = "http://openaq-data.s3.amazonaws.com/"
	DefaultBucketName   = "openaq-data"
	DefaultRegion       = "us-east-1"
	DefaultTimeout      = 60 * time.Second
	DefaultTrailingSkip = 1
)

type Config struct {
	ListingURL string
	Timeout    time.Duration
	// TrailingSkip is how many entries at the end of the listing are left out
	// of the date range. The OpenAQ bucket ends with a non-data object.
	TrailingSkip int
	ApiURL       string
	BucketName   string
	Region       string
	LogLevel     string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug().Msg(".env file not found, using environment variables only")
	}

	timeout, err := getEnvInt("REQUEST_TIMEOUT", int(DefaultTimeout/time.Second))
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be greater than 0, got %d", timeout)
	}

	skip, err := getEnvInt("TRAILING_SKIP", DefaultTrailingSkip)
	if err != nil {
		return nil, err
	}
	if skip < 0 {
		return nil, fmt.Errorf("TRAILING_SKIP must not be negative, got %d", skip)
	}

	config := &Config{
		ListingURL:   getEnv("LISTING_URL", DefaultListingURL),
		Timeout:      time.Duration(timeout) * time.Second,
		TrailingSkip: skip,
		ApiURL:       getEnv("API_URL", ""),
		BucketName:   getEnv("BUCKET_NAME", DefaultBucketName),
		Region:       getEnv("REGION", DefaultRegion),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
