// Package storage provides S3-compatible object storage for snapshot
// archives.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/propledger/backend/internal/application/backup"
	"github.com/propledger/backend/internal/infrastructure/config"
)

// S3ArchiveStore implements backup.ArchiveStore against any S3-compatible
// endpoint (AWS, MinIO, Ceph RGW).
type S3ArchiveStore struct {
	client *s3.Client
	bucket string
}

var _ backup.ArchiveStore = (*S3ArchiveStore)(nil)

// NewS3ArchiveStore creates an archive store from the storage configuration
func NewS3ArchiveStore(ctx context.Context, cfg config.StorageConfig) (*S3ArchiveStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			scheme := "http"
			if cfg.UseSSL {
				scheme = "https"
			}
			o.BaseEndpoint = aws.String(fmt.Sprintf("%s://%s", scheme, cfg.Endpoint))
		}
		// MinIO and most self-hosted gateways require path-style addressing.
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3ArchiveStore{client: client, bucket: cfg.Bucket}, nil
}

// Upload stores data under key in the configured bucket
func (s *S3ArchiveStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object %s: %w", key, err)
	}
	return nil
}
