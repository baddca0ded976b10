package repository

import (
	"context"

	"nzwalks-api/internal/domain"
)

// ImageRepository defines persistence operations for uploaded image metadata.
type ImageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, image *domain.Image) error
	List(ctx context.Context) ([]domain.Image, error)
}
