// Package storage wraps the MinIO SDK as the attachment blob collaborator:
// upload a stream, get back a durable URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/escusoft/escuela-backend/internal/config"
)

// AttachmentStore uploads and removes message attachments.
type AttachmentStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewAttachmentStore constructs an AttachmentStore from config.
func NewAttachmentStore(cfg *config.Config) (*AttachmentStore, error) {
	if strings.TrimSpace(cfg.MinioEndpoint) == "" {
		return nil, errors.New("minio endpoint is required")
	}
	if strings.TrimSpace(cfg.MinioBucket) == "" {
		return nil, errors.New("minio bucket is required")
	}

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	return &AttachmentStore{
		client:    client,
		bucket:    cfg.MinioBucket,
		publicURL: strings.TrimRight(cfg.MinioPublicURL, "/"),
	}, nil
}

// EnsureBucket ensures the configured bucket exists.
func (s *AttachmentStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Upload stores one attachment under a fresh UUID key, keeping the original
// extension, and returns its public URL.
func (s *AttachmentStore) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	key := uuid.New().String() + strings.ToLower(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.publicURL + "/" + key, nil
}

// Remove deletes the object an attachment URL points at. URLs from other
// hosts are ignored so stale rows cannot make deletes fail.
func (s *AttachmentStore) Remove(ctx context.Context, fileURL string) error {
	if !strings.HasPrefix(fileURL, s.publicURL+"/") {
		return nil
	}
	key := strings.TrimPrefix(fileURL, s.publicURL+"/")
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
