package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioStore keeps uploads as objects in a single bucket.
type MinioStore struct {
	client *minio.Client
	bucket string
}

func NewMinioStore(cfg MinioConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	store := &MinioStore{client: client, bucket: cfg.Bucket}
	if err := store.ensureBucket(); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}
	return store, nil
}

// ensureBucket creates the bucket if it doesn't exist
func (m *MinioStore) ensureBucket() error {
	ctx := context.Background()

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("error checking if bucket exists: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("error creating bucket: %w", err)
		}
		log.Info().Str("bucket", m.bucket).Msg("created upload bucket")
	}
	return nil
}

func (m *MinioStore) Save(name string, r io.Reader, size int64, contentType string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = m.client.PutObject(context.Background(), m.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Remove stats first because S3 deletes of absent keys succeed silently.
func (m *MinioStore) Remove(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	ctx := context.Background()
	if _, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{}); err != nil {
		return translateMinioError(name, err)
	}
	return m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
}

func (m *MinioStore) Open(name string) (io.ReadSeekCloser, time.Time, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, time.Time{}, err
	}
	obj, err := m.client.GetObject(context.Background(), m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, time.Time{}, translateMinioError(name, err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, time.Time{}, translateMinioError(name, err)
	}
	return obj, info.LastModified, nil
}

func translateMinioError(name string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", name, fs.ErrNotExist)
	}
	return err
}
