package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalService stores files on the local filesystem under a single root
// directory and serves them from a configured base URL.
type LocalService struct {
	root    string
	baseURL string
}

func NewLocalService(root, baseURL string) (*LocalService, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalService{
		root:    filepath.Clean(root),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalService) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	clean, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	f, err := os.Create(clean)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", clean, err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(clean)
		return "", fmt.Errorf("write file %s: %w", clean, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file %s: %w", clean, err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

func (s *LocalService) Delete(ctx context.Context, key string) error {
	clean, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %s: %w", clean, err)
	}
	return nil
}

// resolve joins key onto the root and rejects anything escaping it.
func (s *LocalService) resolve(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("storage key is required")
	}
	clean := filepath.Join(s.root, filepath.FromSlash(key))
	if rel, err := filepath.Rel(s.root, clean); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return clean, nil
}

var _ Service = (*LocalService)(nil)
