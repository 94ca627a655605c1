package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Client is the subset of *s3.Client used here.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Storage struct {
	client  s3Client
	bucket  string
	baseURL string
}

// NewS3Storage loads the default AWS credential chain. When publicURL is empty
// objects are addressed through the virtual-hosted bucket endpoint.
func NewS3Storage(ctx context.Context, bucket, region, publicURL string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Storage{
		client:  s3.NewFromConfig(cfg),
		bucket:  bucket,
		baseURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, purpose, key string, body io.Reader, size int64, contentType string) (string, error) {
	if !ValidPurpose(purpose) {
		return "", ErrUnknownPurpose
	}
	objectKey := purpose + "/" + key
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return s.baseURL + "/" + objectKey, nil
}
