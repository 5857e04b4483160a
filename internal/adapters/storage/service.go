// Package storage adapts S3-compatible object storage for report photo
// uploads.
package storage

import (
	"context"
	"io"
)

// PhotoStorage is the slice of object storage the submission pipeline uses.
type PhotoStorage interface {
	// UploadPhoto stores one photo under a collision-resistant key scoped to
	// the report and returns its public download URL.
	UploadPhoto(ctx context.Context, p PhotoUpload) (string, error)

	// DeleteObject removes a previously uploaded object by its key.
	DeleteObject(ctx context.Context, fileKey string) error

	// EnsureBucketExists creates the photo bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context) error

	// ValidateContentType checks if the content type is allowed.
	ValidateContentType(contentType string) error

	// ValidateFileSize checks if the file size is within limits.
	ValidateFileSize(sizeBytes int64) error
}

// PhotoUpload describes one photo to store.
type PhotoUpload struct {
	ReportID    string
	Index       int
	FileName    string
	ContentType string
	Reader      io.Reader
	Size        int64
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketReportPhotos() string
	GetMinIOPublicBaseURL() string
	IsMinIOEnabled() bool
}
