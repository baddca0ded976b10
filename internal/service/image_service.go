package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/google/uuid"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
	"nzwalks-api/internal/storage"
)

// maxImageSize caps uploads at 10 MiB.
const maxImageSize = 10 * 1024 * 1024

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// ImageUpload carries one multipart image upload.
type ImageUpload struct {
	FileName        string
	FileDescription string
	FileExtension   string
	SizeBytes       int64
	Body            io.Reader
}

// ImageService validates image uploads, stores the bytes and records the
// metadata.
type ImageService interface {
	Upload(ctx context.Context, upload ImageUpload) (*domain.Image, error)
	List(ctx context.Context) ([]domain.Image, error)
}

type imageService struct {
	images repository.ImageRepository
	store  storage.Service
}

func NewImageService(images repository.ImageRepository, store storage.Service) ImageService {
	return &imageService{
		images: images,
		store:  store,
	}
}

func (s *imageService) Upload(ctx context.Context, upload ImageUpload) (*domain.Image, error) {
	if err := validateUpload(upload); err != nil {
		return nil, err
	}

	image := &domain.Image{
		ID:              uuid.NewString(),
		FileName:        upload.FileName,
		FileDescription: upload.FileDescription,
		FileExtension:   strings.ToLower(upload.FileExtension),
		SizeBytes:       upload.SizeBytes,
	}

	key := fmt.Sprintf("%s%s", image.FileName, image.FileExtension)
	contentType := mime.TypeByExtension(image.FileExtension)

	url, err := s.store.Upload(ctx, key, contentType, io.LimitReader(upload.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	image.URL = url

	if err := s.images.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageService) List(ctx context.Context) ([]domain.Image, error) {
	return s.images.List(ctx)
}

func validateUpload(upload ImageUpload) error {
	var verrs domain.ValidationErrors
	if strings.TrimSpace(upload.FileName) == "" {
		verrs.Add("fileName is required")
	}
	if _, ok := allowedImageExtensions[strings.ToLower(upload.FileExtension)]; !ok {
		verrs.Add("unsupported file extension, allowed: .jpg, .jpeg, .png")
	}
	if upload.SizeBytes > maxImageSize {
		verrs.Add("file size cannot exceed 10MB")
	}
	if upload.Body == nil {
		verrs.Add("file is required")
	}
	if verrs.Any() {
		return &verrs
	}
	return nil
}
