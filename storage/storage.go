// Package storage keeps uploaded files on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	PurposeAvatars   = "avatars"
	PurposeDocuments = "documents"
	PurposeEvents    = "events"
)

var ErrUnknownPurpose = errors.New("unknown upload purpose")

// Storage persists a file under purpose/key and returns the public URL.
type Storage interface {
	Put(ctx context.Context, purpose, key string, body io.Reader, size int64, contentType string) (string, error)
}

func ValidPurpose(purpose string) bool {
	switch purpose {
	case PurposeAvatars, PurposeDocuments, PurposeEvents:
		return true
	}
	return false
}

// NewKey returns a random file name keeping the extension of original.
func NewKey(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return uuid.NewString() + ext
}
