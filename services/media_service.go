package services

import (
	"BabyTracker/models"
	"BabyTracker/storage"
	"context"
	"fmt"
	"mime/multipart"
)

const MaxUploadBytes = 10 << 20

type MediaService struct {
	Storage storage.Storage
}

func NewMediaService(store storage.Storage) *MediaService {
	return &MediaService{Storage: store}
}

// Upload stores the file under a random name and returns it as an attachment.
func (s *MediaService) Upload(ctx context.Context, purpose string, file *multipart.FileHeader) (*models.Attachment, error) {
	if !storage.ValidPurpose(purpose) {
		return nil, BadRequest("Unknown upload type " + purpose)
	}
	if file.Size > MaxUploadBytes {
		return nil, BadRequest(fmt.Sprintf("File exceeds %d MB", MaxUploadBytes>>20))
	}

	src, err := file.Open()
	if err != nil {
		return nil, BadRequest("Could not read uploaded file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	url, err := s.Storage.Put(ctx, purpose, storage.NewKey(file.Filename), src, file.Size, contentType)
	if err != nil {
		return nil, err
	}
	return &models.Attachment{URL: url, Type: contentType, Name: file.Filename}, nil
}
