package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore writes photos to a MinIO bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
	base   string
}

// NewMinioStore connects to MinIO and ensures the bucket exists. A bucket it
// creates is given a public-read policy; an existing bucket is left as is.
func NewMinioStore(ctx context.Context, cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	bucket := cfg.bucket()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		policy, err := publicReadPolicy(bucket)
		if err != nil {
			return nil, err
		}
		// Letters keep a permanent photo URL, so objects must be readable anonymously.
		if err := client.SetBucketPolicy(ctx, bucket, policy); err != nil {
			return nil, fmt.Errorf("set bucket policy: %w", err)
		}
	}
	return &MinioStore{client: client, bucket: bucket, base: cfg.publicBase()}, nil
}

func (m *MinioStore) Upload(ctx context.Context, name string, body io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, name, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (m *MinioStore) PublicURL(name string) string {
	return objectURL(m.base, name)
}

// Ping checks that the bucket is still reachable.
func (m *MinioStore) Ping(ctx context.Context) error {
	if _, err := m.client.BucketExists(ctx, m.bucket); err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	return nil
}
