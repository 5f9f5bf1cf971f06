package s3client

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	appConfig "archivestats/config"
	"archivestats/internal/models"
	"archivestats/pkg/logger"
)

// listObjectsAPI is the slice of the S3 client this package calls.
type listObjectsAPI interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type Client struct {
	s3Client listObjectsAPI
	config   *appConfig.Config
}

// New builds an anonymous client; the archive bucket is public.
func New(ctx context.Context, cfg *appConfig.Config) (*Client, error) {
	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Client *s3.Client
	if cfg.ApiURL != "" {
		s3Client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.ApiURL)
			o.UsePathStyle = true
		})
	} else {
		s3Client = s3.NewFromConfig(awsConfig)
	}

	return &Client{
		s3Client: s3Client,
		config:   cfg,
	}, nil
}

// ListEntries lists the first page of the configured bucket. Further pages
// are not requested.
func (c *Client) ListEntries(ctx context.Context, bucketName string) (*models.Listing, error) {
	resp, err := c.s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucketName),
	})
	if err != nil {
		return nil, &models.FetchError{URL: c.describe(bucketName), Err: describeAPIError(err)}
	}

	entries := make([]models.Entry, 0, len(resp.Contents))
	for i, obj := range resp.Contents {
		if obj.Key == nil {
			return nil, &models.DataShapeError{Reason: fmt.Sprintf("object %d has no key", i)}
		}
		if obj.Size == nil {
			return nil, &models.DataShapeError{Reason: fmt.Sprintf("object %d (%s) has no size", i, *obj.Key)}
		}
		if *obj.Size < 0 {
			return nil, &models.DataShapeError{Reason: fmt.Sprintf("object %d (%s) has negative size %d", i, *obj.Key, *obj.Size)}
		}
		entries = append(entries, models.Entry{Key: *obj.Key, Size: uint64(*obj.Size)})
	}

	listing := &models.Listing{
		Name:        aws.ToString(resp.Name),
		IsTruncated: aws.ToBool(resp.IsTruncated),
		Entries:     entries,
	}
	if listing.Name == "" {
		listing.Name = bucketName
	}

	logger.Log.Debug().
		Str("bucket", bucketName).
		Int("objects", len(entries)).
		Bool("truncated", listing.IsTruncated).
		Msg("listed objects")

	return listing, nil
}

func (c *Client) describe(bucketName string) string {
	if c.config.ApiURL != "" {
		return fmt.Sprintf("%s/%s", c.config.ApiURL, bucketName)
	}
	return "s3://" + bucketName
}

func describeAPIError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("failed to list objects: %s: %s: %w", apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}
	return fmt.Errorf("failed to list objects: %w", err)
}
