// internal/storage/objectstore.go
package storage

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/floritflats/opsboard/internal/config"
)

const workbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WorkbookStore archives generated workbooks in an S3-compatible bucket so
// a report can be re-downloaded after the run.
type WorkbookStore interface {
	UploadWorkbook(ctx context.Context, name string, data []byte) error
	PresignedURL(ctx context.Context, name string, expiry time.Duration) (string, error)
}

type minioStore struct {
	client *minio.Client
	bucket string
}

type noopStore struct{}

func NewWorkbookStore(cfg config.StorageConfig) (WorkbookStore, error) {
	if !cfg.Enabled {
		return &noopStore{}, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	s := &minioStore{client: client, bucket: cfg.Bucket}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func NewNoopWorkbookStore() WorkbookStore {
	return &noopStore{}
}

func (s *minioStore) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *minioStore) UploadWorkbook(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: workbookContentType,
	})
	return err
}

func (s *minioStore) PresignedURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, name, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (n *noopStore) UploadWorkbook(ctx context.Context, name string, data []byte) error {
	return nil
}

func (n *noopStore) PresignedURL(ctx context.Context, name string, expiry time.Duration) (string, error) {
	return "", nil
}
