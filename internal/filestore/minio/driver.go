// Package minio provides a MinIO implementation of filestore.Store.
//
// Usage:
//
//	cfg := &filestore.Config{
//	    Provider: filestore.ProviderMinIO, Endpoint: "localhost:9000",
//	    AccessKey: "minioadmin", SecretKey: "minioadmin", Bucket: "scaffold",
//	}
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
package minio

import (
	"bytes"
	"context"
	"path"

	"github.com/koustreak/schemagen/internal/errs"
	"github.com/koustreak/schemagen/internal/filestore"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store uploads artifacts into one MinIO bucket.
type Store struct {
	client *miniogo.Client
	bucket string
	prefix string
}

var _ filestore.Store = (*Store)(nil)

// New connects to MinIO using cfg and returns a Store.
// It calls Ping to check the bucket exists before returning.
func New(ctx context.Context, cfg *filestore.Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, errs.New(errs.ErrKindInvalidInput, "minio bucket is required")
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to create minio client", err)
	}

	s := &Store{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}

	if err := s.Ping(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// --- filestore.Store implementation ---

// Ping verifies the server is reachable and the bucket exists.
func (s *Store) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return mapError(err, "ping failed", errs.ErrKindConnectionFailed)
	}
	if !ok {
		return errs.Newf(errs.ErrKindNotFound, "bucket %q does not exist", s.bucket)
	}
	return nil
}

// Put uploads data as the object prefix/key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: filestore.ContentType(objectKey)})
	if err != nil {
		return mapError(err, "failed to upload "+objectKey, errs.ErrKindFilesystem)
	}
	return nil
}

// Location returns an s3:// URL for key.
func (s *Store) Location(key string) string {
	objectKey, err := s.objectKey(key)
	if err != nil {
		objectKey = key
	}
	return "s3://" + s.bucket + "/" + objectKey
}

// Close is a no-op; the SDK client holds no persistent connections.
func (s *Store) Close() error {
	return nil
}

func (s *Store) objectKey(key string) (string, error) {
	clean, err := filestore.CleanKey(key)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return clean, nil
	}
	return path.Join(s.prefix, clean), nil
}
