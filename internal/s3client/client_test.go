package s3client

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivestats/config"
	"archivestats/internal/models"
)

type mockS3Client struct {
	listObjectsV2Func func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	calls             int
}

func (m *mockS3Client) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	m.calls++
	return m.listObjectsV2Func(ctx, params, optFns...)
}

func newTestClient(m *mockS3Client) *Client {
	return &Client{s3Client: m, config: &config.Config{}}
}

func TestListEntries(t *testing.T) {
	m := &mockS3Client{
		listObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			assert.Equal(t, "openaq-data", aws.ToString(params.Bucket))
			return &s3.ListObjectsV2Output{
				Name:        aws.String("openaq-data"),
				IsTruncated: aws.Bool(true),
				Contents: []types.Object{
					{Key: aws.String("2020-01-01.csv"), Size: aws.Int64(1000000000)},
					{Key: aws.String("2020-01-02.csv"), Size: aws.Int64(2000000000)},
				},
			}, nil
		},
	}

	listing, err := newTestClient(m).ListEntries(context.Background(), "openaq-data")
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, "openaq-data", listing.Name)
	assert.True(t, listing.IsTruncated)
	assert.Equal(t, []models.Entry{
		{Key: "2020-01-01.csv", Size: 1000000000},
		{Key: "2020-01-02.csv", Size: 2000000000},
	}, listing.Entries)
}

func TestListEntriesErrors(t *testing.T) {
	tests := []struct {
		name      string
		output    *s3.ListObjectsV2Output
		err       error
		wantFetch bool
		wantShape bool
	}{
		{
			name:      "api error",
			err:       &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"},
			wantFetch: true,
		},
		{
			name:      "transport error",
			err:       errors.New("connection refused"),
			wantFetch: true,
		},
		{
			name: "missing size",
			output: &s3.ListObjectsV2Output{
				Contents: []types.Object{{Key: aws.String("a.csv")}},
			},
			wantShape: true,
		},
		{
			name: "missing key",
			output: &s3.ListObjectsV2Output{
				Contents: []types.Object{{Size: aws.Int64(1)}},
			},
			wantShape: true,
		},
		{
			name: "negative size",
			output: &s3.ListObjectsV2Output{
				Contents: []types.Object{{Key: aws.String("a.csv"), Size: aws.Int64(-1)}},
			},
			wantShape: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockS3Client{
				listObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
					return tt.output, tt.err
				},
			}

			listing, err := newTestClient(m).ListEntries(context.Background(), "bucket")
			require.Error(t, err)
			assert.Nil(t, listing)

			var fetchErr *models.FetchError
			var shapeErr *models.DataShapeError
			assert.Equal(t, tt.wantFetch, errors.As(err, &fetchErr))
			assert.Equal(t, tt.wantShape, errors.As(err, &shapeErr))
			if tt.wantFetch {
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, "s3://bucket", fetchErr.URL)
			}
		})
	}
}

func TestListEntriesDefaultsName(t *testing.T) {
	m := &mockS3Client{
		listObjectsV2Func: func(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
			return &s3.ListObjectsV2Output{}, nil
		},
	}

	listing, err := newTestClient(m).ListEntries(context.Background(), "bucket")
	require.NoError(t, err)
	assert.Equal(t, "bucket", listing.Name)
	assert.Empty(t, listing.Entries)
}

// Integration test against a real endpoint, skipped by default.
// To run it, set S3_INTEGRATION_TEST=true.
func TestListEntriesIntegration(t *testing.T) {
	if os.Getenv("S3_INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test; set S3_INTEGRATION_TEST=true to run")
	}

	cfg := &config.Config{
		BucketName: config.DefaultBucketName,
		Region:     config.DefaultRegion,
		ApiURL:     os.Getenv("TEST_API_URL"),
	}
	if bucket := os.Getenv("TEST_BUCKET_NAME"); bucket != "" {
		cfg.BucketName = bucket
	}

	client, err := New(context.Background(), cfg)
	require.NoError(t, err)

	listing, err := client.ListEntries(context.Background(), cfg.BucketName)
	require.NoError(t, err)
	assert.NotEmpty(t, listing.Entries)
}
