package service

import (
	"context"

	"github.com/google/uuid"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

// RegionService coordinates region catalogue operations.
type RegionService interface {
	Create(ctx context.Context, region *domain.Region) (*domain.Region, error)
	Get(ctx context.Context, id string) (*domain.Region, error)
	List(ctx context.Context) ([]domain.Region, error)
	Update(ctx context.Context, id string, region *domain.Region) (*domain.Region, error)
	Delete(ctx context.Context, id string) (*domain.Region, error)
}

type regionService struct {
	regions repository.RegionRepository
}

func NewRegionService(regions repository.RegionRepository) RegionService {
	return &regionService{regions: regions}
}

func (s *regionService) Create(ctx context.Context, region *domain.Region) (*domain.Region, error) {
	if err := validateRegion(region); err != nil {
		return nil, err
	}

	region.ID = uuid.NewString()
	if err := s.regions.Create(ctx, region); err != nil {
		return nil, err
	}
	return s.regions.Get(ctx, region.ID)
}

func (s *regionService) Get(ctx context.Context, id string) (*domain.Region, error) {
	return s.regions.Get(ctx, id)
}

func (s *regionService) List(ctx context.Context) ([]domain.Region, error) {
	return s.regions.List(ctx)
}

func (s *regionService) Update(ctx context.Context, id string, region *domain.Region) (*domain.Region, error) {
	if err := validateRegion(region); err != nil {
		return nil, err
	}

	region.ID = id
	if err := s.regions.Update(ctx, region); err != nil {
		return nil, err
	}
	return s.regions.Get(ctx, id)
}

func (s *regionService) Delete(ctx context.Context, id string) (*domain.Region, error) {
	region, err := s.regions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.regions.Delete(ctx, id); err != nil {
		return nil, err
	}
	return region, nil
}

func validateRegion(region *domain.Region) error {
	var verrs domain.ValidationErrors
	if region.Code == "" {
		verrs.Add("code is required")
	} else if len(region.Code) != 3 {
		verrs.Add("code must be exactly 3 characters")
	}
	if region.Name == "" {
		verrs.Add("name is required")
	}
	if verrs.Any() {
		return &verrs
	}
	return nil
}
