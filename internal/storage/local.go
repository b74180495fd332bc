package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps images on the local filesystem and serves them
// through the API under baseURL.
type LocalStorage struct {
	baseURL   string // e.g. "http://localhost:8080/images"
	imagesDir string
}

// NewLocalStorage creates the image directory if needed.
func NewLocalStorage(baseURL, uploadsDir string) (*LocalStorage, error) {
	imagesDir := filepath.Join(uploadsDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create images directory: %w", err)
	}
	return &LocalStorage{
		baseURL:   strings.TrimRight(baseURL, "/"),
		imagesDir: imagesDir,
	}, nil
}

func (s *LocalStorage) SaveFile(ctx context.Context, key, contentType string, reader io.Reader) (string, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directories: %w", err)
	}

	// Write to a temp file first so readers never see a partial image.
	tmp, err := os.CreateTemp(filepath.Dir(fullPath), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *LocalStorage) ReadFile(key string) (io.ReadCloser, error) {
	fullPath, err := s.path(key)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	fullPath, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// path resolves key inside the images directory, rejecting keys that
// would escape it.
func (s *LocalStorage) path(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty storage key")
	}
	fullPath := filepath.Join(s.imagesDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.imagesDir, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return fullPath, nil
}
