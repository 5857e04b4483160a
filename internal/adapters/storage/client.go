package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOService implements PhotoStorage using MinIO.
type MinIOService struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	useSSL        bool
	endpoint      string
	maxFileSize   int64
}

// NewMinIOService creates a new MinIO storage service.
func NewMinIOService(cfg Config) (*MinIOService, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("MinIO is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &MinIOService{
		client:        client,
		bucket:        cfg.GetMinioBucketReportPhotos(),
		publicBaseURL: strings.TrimSuffix(cfg.GetMinIOPublicBaseURL(), "/"),
		useSSL:        cfg.GetMinIOUseSSL(),
		endpoint:      cfg.GetMinIOEndpoint(),
		maxFileSize:   cfg.GetMinIOMaxFileSize(),
	}, nil
}

// EnsureBucketExists creates the photo bucket if it doesn't exist.
func (s *MinIOService) EnsureBucketExists(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
	}

	return nil
}

// UploadPhoto stores one photo and returns its public download URL. The key
// combines report id, photo index, a timestamp and a random suffix so that
// concurrent uploads and retries cannot collide.
func (s *MinIOService) UploadPhoto(ctx context.Context, p PhotoUpload) (string, error) {
	if err := s.ValidateContentType(p.ContentType); err != nil {
		return "", err
	}
	if err := s.ValidateFileSize(p.Size); err != nil {
		return "", err
	}

	fileKey := photoKey(p.ReportID, p.Index, p.FileName)

	_, err := s.client.PutObject(ctx, s.bucket, fileKey, p.Reader, p.Size, minio.PutObjectOptions{
		ContentType: p.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo %s: %w", fileKey, err)
	}

	return s.downloadURL(fileKey), nil
}

// DeleteObject removes an object from storage.
func (s *MinIOService) DeleteObject(ctx context.Context, fileKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, fileKey, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", fileKey, err)
	}
	return nil
}

func photoKey(reportID string, index int, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("reports/%s/%d_%d_%s%s",
		reportID, index, time.Now().UnixNano(), uuid.New().String()[:8], ext)
}

func (s *MinIOService) downloadURL(fileKey string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, fileKey)
	}
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, fileKey)
}
