package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/gogotex/gogotex/backend/blog-service/internal/config"
)

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// MinIOStore keeps images in an S3-compatible bucket readable anonymously.
type MinIOStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIOStore creates a MinIO client and ensures the bucket exists with a public-read policy.
func NewMinIOStore(ctx context.Context, cfg config.MinIOConfig) (*MinIOStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}

	base := cfg.PublicURL
	if base == "" {
		base = strings.TrimRight(mc.EndpointURL().String(), "/")
	}
	s := &MinIOStore{client: mc, bucket: cfg.Bucket, baseURL: base}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	if err := mc.SetBucketPolicy(ctx, s.bucket, fmt.Sprintf(publicReadPolicy, s.bucket)); err != nil {
		return nil, fmt.Errorf("minio bucket policy: %w", err)
	}
	return s, nil
}

func (s *MinIOStore) Name() string { return "minio" }

func (s *MinIOStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("minio put: %w", err)
	}
	return s.objectURL(name), nil
}

func (s *MinIOStore) objectURL(name string) string {
	return s.baseURL + "/" + s.bucket + "/" + name
}

// Ping checks that the bucket is reachable.
func (s *MinIOStore) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q missing", s.bucket)
	}
	return nil
}
