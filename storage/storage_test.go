package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyKeepsExtension(t *testing.T) {
	key := NewKey("Photo.JPG")
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, NewKey("Photo.JPG"))
}

func TestLocalStoragePut(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads")

	url, err := s.Put(context.Background(), PurposeAvatars, "a.png", strings.NewReader("img"), 3, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/avatars/a.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "avatars", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
}

func TestLocalStorageAbsoluteBaseURL(t *testing.T) {
	for _, base := range []string{"http://host:8000/uploads", "http://host:8000/uploads/"} {
		s := NewLocalStorage(t.TempDir(), base)

		url, err := s.Put(context.Background(), PurposeEvents, "b.jpg", strings.NewReader("img"), 3, "image/jpeg")
		require.NoError(t, err)
		assert.Equal(t, "http://host:8000/uploads/events/b.jpg", url)
	}
}

func TestLocalStorageRejectsUnknownPurpose(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "/uploads")
	_, err := s.Put(context.Background(), "secrets", "a.png", strings.NewReader(""), 0, "")
	assert.ErrorIs(t, err, ErrUnknownPurpose)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = input
	b, _ := io.ReadAll(input.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoragePut(t *testing.T) {
	client := &fakeS3{}
	s := &S3Storage{client: client, bucket: "media", baseURL: "https://cdn.example.com"}

	url, err := s.Put(context.Background(), PurposeDocuments, "x.pdf", strings.NewReader("pdf"), 3, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/documents/x.pdf", url)
	assert.Equal(t, "documents/x.pdf", *client.input.Key)
	assert.Equal(t, "media", *client.input.Bucket)
	assert.Equal(t, "pdf", client.body)
}
