package service

import (
	"context"

	"github.com/google/uuid"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/query"
	"nzwalks-api/internal/repository"
)

// WalkService coordinates walk catalogue operations backed by the walk
// repository and the query engine.
type WalkService interface {
	Create(ctx context.Context, walk *domain.Walk) (*domain.Walk, error)
	Get(ctx context.Context, id string) (*domain.Walk, error)
	List(ctx context.Context, spec query.Spec) ([]domain.Walk, error)
	Update(ctx context.Context, id string, walk *domain.Walk) (*domain.Walk, error)
	Delete(ctx context.Context, id string) (*domain.Walk, error)
}

type walkService struct {
	walks repository.WalkRepository
}

func NewWalkService(walks repository.WalkRepository) WalkService {
	return &walkService{walks: walks}
}

func (s *walkService) Create(ctx context.Context, walk *domain.Walk) (*domain.Walk, error) {
	if err := validateWalk(walk); err != nil {
		return nil, err
	}

	walk.ID = uuid.NewString()
	if err := s.walks.Create(ctx, walk); err != nil {
		return nil, err
	}
	return s.walks.Get(ctx, walk.ID)
}

func (s *walkService) Get(ctx context.Context, id string) (*domain.Walk, error) {
	return s.walks.Get(ctx, id)
}

// List loads the full collection and applies the filter/sort/page spec in
// memory; the result is deterministic for a fixed spec and collection.
func (s *walkService) List(ctx context.Context, spec query.Spec) ([]domain.Walk, error) {
	walks, err := s.walks.List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Apply(spec, walks), nil
}

func (s *walkService) Update(ctx context.Context, id string, walk *domain.Walk) (*domain.Walk, error) {
	if err := validateWalk(walk); err != nil {
		return nil, err
	}

	walk.ID = id
	if err := s.walks.Update(ctx, walk); err != nil {
		return nil, err
	}
	return s.walks.Get(ctx, id)
}

func (s *walkService) Delete(ctx context.Context, id string) (*domain.Walk, error) {
	walk, err := s.walks.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.walks.Delete(ctx, id); err != nil {
		return nil, err
	}
	return walk, nil
}

func validateWalk(walk *domain.Walk) error {
	var verrs domain.ValidationErrors
	if walk.Name == "" {
		verrs.Add("name is required")
	}
	if walk.LengthKm <= 0 {
		verrs.Add("lengthKm must be positive")
	}
	if walk.DifficultyID == "" {
		verrs.Add("difficultyId is required")
	}
	if walk.RegionID == "" {
		verrs.Add("regionId is required")
	}
	if verrs.Any() {
		return &verrs
	}
	return nil
}
