package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"runboard/internal/platform/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// ObjectStore keeps uploaded files in a MinIO (S3 compatible) bucket.
type ObjectStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewObjectStore returns nil when MINIO_ENDPOINT is unset.
func NewObjectStore(cfg *config.Config) (*ObjectStore, error) {
	if cfg.MinioEndpoint == "" {
		return nil, nil
	}
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MinioBucket, err)
		}
	}

	logrus.WithField("bucket", cfg.MinioBucket).Info("Object storage ready")
	return &ObjectStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}, nil
}

// Put uploads r under name and returns its public URL.
func (s *ObjectStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, name), nil
}
