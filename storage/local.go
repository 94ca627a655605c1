package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes into Dir/<purpose>/<key>; the HTTP layer serves Dir
// under BaseURL.
type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: baseURL}
}

func (s *LocalStorage) Put(ctx context.Context, purpose, key string, body io.Reader, size int64, contentType string) (string, error) {
	if !ValidPurpose(purpose) {
		return "", ErrUnknownPurpose
	}
	dir := filepath.Join(s.Dir, purpose)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, filepath.Base(key)))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return strings.TrimRight(s.BaseURL, "/") + "/" + purpose + "/" + filepath.Base(key), nil
}
