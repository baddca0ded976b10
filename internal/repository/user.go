package repository

import (
	"context"

	"nzwalks-api/internal/domain"
)

// UserRepository defines persistence operations for User entities and their
// role memberships.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	AssignRoles(ctx context.Context, userID int64, roles []domain.Role) error
	ListRoles(ctx context.Context, userID int64) ([]domain.Role, error)
}
