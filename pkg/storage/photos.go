// Package storage mirrors provider profile photos into object storage so
// the app serves its own copy instead of hotlinking OAuth CDN URLs.
package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Cross-Atlantic-Software/collegefinder-sub002/pkg/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// PhotoStore copies a remote photo into the bucket and removes stale
// objects when a user's photo is replaced.
type PhotoStore interface {
	Mirror(ctx context.Context, srcURL string, userID int64) (string, error)
	Delete(ctx context.Context, storedURL string) error
}

type minioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	http      *http.Client
	log       *zap.Logger
}

func NewPhotoStore(config utils.StorageConfig, log *zap.Logger) (PhotoStore, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init storage client: %w", err)
	}

	return &minioStore{
		client:    client,
		bucket:    config.Bucket,
		publicURL: strings.TrimRight(config.PublicURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
		log:       log.With(zap.String("component", "photo_store")),
	}, nil
}

func (s *minioStore) Mirror(ctx context.Context, srcURL string, userID int64) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", fmt.Errorf("build photo request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch provider photo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch provider photo: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectName := fmt.Sprintf("users/%d/%s", userID, uuid.New().String())

	_, err = s.client.PutObject(ctx, s.bucket, objectName, resp.Body, resp.ContentLength,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

// Delete removes the object behind a URL previously returned by Mirror.
// URLs outside our public prefix (legacy rows, provider CDN links) are
// skipped silently.
func (s *minioStore) Delete(ctx context.Context, storedURL string) error {
	prefix := s.publicURL + "/" + s.bucket + "/"
	if !strings.HasPrefix(storedURL, prefix) {
		s.log.Debug("Skipping delete of external photo URL", zap.String("url", storedURL))
		return nil
	}

	objectName, err := url.PathUnescape(strings.TrimPrefix(storedURL, prefix))
	if err != nil {
		return fmt.Errorf("parse stored photo URL: %w", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete photo %s: %w", objectName, err)
	}
	return nil
}
