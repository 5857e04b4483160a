package storage

import (
	"strings"
	"testing"
)

func TestValidateContentType(t *testing.T) {
	s := &MinIOService{maxFileSize: 1024}

	if err := s.ValidateContentType("image/jpeg"); err != nil {
		t.Fatalf("expected jpeg to be allowed: %v", err)
	}
	if err := s.ValidateContentType("application/pdf"); err == nil {
		t.Fatal("expected pdf to be rejected for report photos")
	}
}

func TestValidateFileSize(t *testing.T) {
	s := &MinIOService{maxFileSize: 1024}

	if err := s.ValidateFileSize(512); err != nil {
		t.Fatalf("expected size within limit to pass: %v", err)
	}
	if err := s.ValidateFileSize(2048); err == nil {
		t.Fatal("expected oversized file to be rejected")
	}
	if err := s.ValidateFileSize(0); err == nil {
		t.Fatal("expected empty file to be rejected")
	}
}

func TestPhotoKey(t *testing.T) {
	first := photoKey("report-1", 0, "street.JPG")
	second := photoKey("report-1", 0, "street.JPG")

	if !strings.HasPrefix(first, "reports/report-1/0_") {
		t.Fatalf("unexpected key prefix: %s", first)
	}
	if !strings.HasSuffix(first, ".jpg") {
		t.Fatalf("expected lowercased extension: %s", first)
	}
	if first == second {
		t.Fatal("keys for repeated uploads must not collide")
	}
}
