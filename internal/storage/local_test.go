package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalService_UploadAndDelete(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	svc, err := NewLocalService(root, "http://localhost:8080/images/")
	if err != nil {
		t.Fatalf("NewLocalService error: %v", err)
	}

	ctx := context.Background()
	url, err := svc.Upload(ctx, "track.jpg", "image/jpeg", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	if url != "http://localhost:8080/images/track.jpg" {
		t.Fatalf("unexpected url: %q", url)
	}

	data, err := os.ReadFile(filepath.Join(root, "track.jpg"))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if err := svc.Delete(ctx, "track.jpg"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "track.jpg")); !os.IsNotExist(err) {
		t.Fatalf("file should be gone, stat err: %v", err)
	}

	// deleting a missing key is fine
	if err := svc.Delete(ctx, "track.jpg"); err != nil {
		t.Fatalf("repeated Delete error: %v", err)
	}
}

func TestLocalService_RejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	svc, err := NewLocalService(t.TempDir(), "http://localhost/images")
	if err != nil {
		t.Fatalf("NewLocalService error: %v", err)
	}

	for _, key := range []string{"", "   ", "../escape.jpg", "../../etc/passwd"} {
		if _, err := svc.Upload(context.Background(), key, "", strings.NewReader("x")); err == nil {
			t.Fatalf("key %q must be rejected", key)
		}
	}
}
