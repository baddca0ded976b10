package repository

import (
	"context"

	"nzwalks-api/internal/domain"
)

// WalkRepository defines persistence operations for Walk entities. List
// returns the full collection with region and difficulty loaded; filtering,
// sorting and pagination happen in the query engine.
type WalkRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, walk *domain.Walk) error
	Get(ctx context.Context, id string) (*domain.Walk, error)
	List(ctx context.Context) ([]domain.Walk, error)
	Update(ctx context.Context, walk *domain.Walk) error
	Delete(ctx context.Context, id string) error
}

// RegionRepository defines persistence operations for Region entities.
type RegionRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, region *domain.Region) error
	Get(ctx context.Context, id string) (*domain.Region, error)
	List(ctx context.Context) ([]domain.Region, error)
	Update(ctx context.Context, region *domain.Region) error
	Delete(ctx context.Context, id string) error
}

// DifficultyRepository exposes the seeded, immutable difficulty grades.
type DifficultyRepository interface {
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.Difficulty, error)
}
