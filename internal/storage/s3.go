package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Service stores image files in Amazon S3 (or compatible APIs).
type S3Service struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
	baseURL   string
}

// NewS3Service builds a service writing under the given bucket and key
// prefix. When baseURL is empty, object URLs use the default
// bucket.s3.region.amazonaws.com form.
func NewS3Service(client *s3.Client, bucket, keyPrefix, region, baseURL string) (*S3Service, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Service{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *S3Service) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   body,
		ACL:    types.ObjectCannedACLPrivate,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, objectKey), nil
}

func (s *S3Service) Delete(ctx context.Context, key string) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("delete %s: %w", objectKey, err)
	}
	return nil
}

func (s *S3Service) objectKey(key string) (string, error) {
	key = strings.Trim(key, "/")
	if key == "" {
		return "", fmt.Errorf("storage key is required")
	}
	if s.keyPrefix == "" {
		return key, nil
	}
	return s.keyPrefix + "/" + key, nil
}

var _ Service = (*S3Service)(nil)
