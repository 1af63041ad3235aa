package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/domain/repository"
	"github.com/PedroSmithhh/sistema-de-agendamento-de-exames/internal/infrastructure/config"
)

// MinioStore holds the MinIO client and bucket name
type MinioStore struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

var _ repository.ObjectStore = (*MinioStore)(nil)

// NewMinioStore connects to MinIO and creates the bucket when it is missing
func NewMinioStore(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (*MinioStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage endpoint, access key, secret key and bucket must be set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket '%s' exists: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket '%s': %w", cfg.Bucket, err)
		}
		logger.Info("Bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStore{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

func (s *MinioStore) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects under '%s': %w", prefix, obj.Err)
		}
		names = append(names, obj.Key)
	}
	return names, nil
}

func (s *MinioStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s': %w", name, err)
	}
	// GetObject is lazy; Stat surfaces a missing key before the caller reads
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("failed to stat object '%s': %w", name, err)
	}
	return obj, nil
}

func (s *MinioStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	info, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object (bucket: %s, object: %s): %w", s.bucket, name, err)
	}

	s.logger.Info("Object uploaded",
		zap.String("object", name),
		zap.Int64("size", info.Size),
		zap.String("etag", info.ETag),
	)
	return nil
}
