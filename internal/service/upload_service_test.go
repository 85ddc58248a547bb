package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/aangan-site/aangan-api/internal/config"
	"github.com/aangan-site/aangan-api/internal/constants"
)

func newUploadService(t *testing.T) *UploadService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.MaxSize = 1 << 20
	cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	cfg.Upload.AllowedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	cfg.Upload.MaxWidth = 64
	cfg.Upload.MaxHeight = 64

	svc, err := NewUploadService(cfg)
	if err != nil {
		t.Fatalf("upload service failed: %v", err)
	}
	return svc
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png failed: %v", err)
	}
	return buf.Bytes()
}

func TestSaveBytesValidation(t *testing.T) {
	svc := newUploadService(t)
	ctx := context.Background()

	oversize := make([]byte, 2<<20)
	if _, err := svc.SaveBytes(ctx, oversize, "big.png", constants.UploadSceneBlog); err != ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}

	if _, err := svc.SaveBytes(ctx, encodePNG(t, 1, 1), "notes.txt", constants.UploadSceneBlog); err != ErrUnsupportedFileType {
		t.Fatalf("expected ErrUnsupportedFileType for extension, got %v", err)
	}

	// Extension lies about the content.
	if _, err := svc.SaveBytes(ctx, []byte("plain text body"), "fake.png", constants.UploadSceneBlog); err != ErrUnsupportedFileType {
		t.Fatalf("expected ErrUnsupportedFileType for content, got %v", err)
	}

	if _, err := svc.SaveBytes(ctx, encodePNG(t, 100, 10), "wide.png", constants.UploadSceneBlog); err != ErrImageTooLarge {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestSaveBytesWritesLocalFile(t *testing.T) {
	t.Chdir(t.TempDir())
	svc := newUploadService(t)

	url, err := svc.SaveBytes(context.Background(), encodePNG(t, 2, 2), "pic.png", constants.UploadSceneBlog)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/blog/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url: %q", url)
	}

	// Unknown scenes fall back to the common bucket.
	url, err = svc.SaveBytes(context.Background(), encodePNG(t, 2, 2), "pic.png", "weird")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/common/") {
		t.Fatalf("expected common scene fallback, got %q", url)
	}
}
