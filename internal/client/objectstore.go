package client

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/medvox-ai/intake-pipeline/internal/config"
)

// ObjectStore persists archived intake telemetry batches.
type ObjectStore interface {
	// Put uploads one object under the configured bucket.
	Put(ctx context.Context, objectName string, data []byte) error
}

// MinioStore is the S3-compatible ObjectStore implementation.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to the configured S3-compatible endpoint.
func NewMinioStore(cfg config.S3Config) (*MinioStore, error) {
	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object store client: %w", err)
	}
	return &MinioStore{client: cli, bucket: cfg.Bucket}, nil
}

// Put uploads one object under the configured bucket.
func (s *MinioStore) Put(ctx context.Context, objectName string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objectName, err)
	}
	return nil
}
