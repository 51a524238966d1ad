// Package storage uploads files to an S3-compatible bucket and hands back
// their public URLs. No business logic lives here; callers treat it as
// "given a file, return a URL".
package storage

import (
	"context"
	"io"
	"path/filepath"
	"regexp"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/uuid"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Uploader stores a file stream and returns the URL (or bucket key when no
// public base URL is configured) under which it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, size int64, filename, contentType, folder string) (string, error)
}

// Config holds the object-storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type s3Uploader struct {
	client *minio.Client
	cfg    Config
}

// NewS3Uploader connects to the configured S3-compatible endpoint.
func NewS3Uploader(cfg Config) (Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &s3Uploader{client: client, cfg: cfg}, nil
}

// Upload streams r into the bucket under folder/<uuid>-<sanitized name> and
// returns the public URL when one is configured, otherwise the object key.
func (u *s3Uploader) Upload(ctx context.Context, r io.Reader, size int64, filename, contentType, folder string) (string, error) {
	key := ObjectKey(filename, folder)

	_, err := u.client.PutObject(ctx, u.cfg.Bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return PublicURL(u.cfg.PublicURL, key), nil
}

// ObjectKey builds the bucket key for a file: the folder, a random unique
// id, and the original base name stripped of non-alphanumeric characters.
func ObjectKey(filename, folder string) string {
	ext := filepath.Ext(filename)
	base := filename[:len(filename)-len(ext)]
	sanitized := nonAlphanumeric.ReplaceAllString(base, "")
	return folder + "/" + uuid.New() + "-" + sanitized + ext
}

// PublicURL joins the configured public base URL with the object key, or
// returns the key alone when no base is configured.
func PublicURL(base, key string) string {
	if base == "" {
		return key
	}
	return base + "/" + key
}
