package sqlite

import (
	"context"
	"errors"
	"testing"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Username: "a@x.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a generated id")
	}

	byName, err := repo.GetByUsername(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if byName.ID != id || byName.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", byName)
	}

	byID, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if byID.Username != "a@x.com" {
		t.Fatalf("unexpected user: %+v", byID)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Username: "a@x.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	_, err := repo.Create(ctx, &domain.User{Username: "a@x.com", PasswordHash: "h"})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))

	_, err := repo.GetByUsername(context.Background(), "nobody@x.com")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_AssignRoles(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Username: "a@x.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	roles := []domain.Role{domain.RoleReader, domain.RoleWriter}
	if err := repo.AssignRoles(ctx, id, roles); err != nil {
		t.Fatalf("AssignRoles error: %v", err)
	}
	// assigning again is a no-op, not an error
	if err := repo.AssignRoles(ctx, id, roles); err != nil {
		t.Fatalf("repeated AssignRoles error: %v", err)
	}

	got, err := repo.ListRoles(ctx, id)
	if err != nil {
		t.Fatalf("ListRoles error: %v", err)
	}
	if len(got) != 2 || got[0] != domain.RoleReader || got[1] != domain.RoleWriter {
		t.Fatalf("unexpected roles: %v", got)
	}
}

func TestUserRepository_NoRolesIsEmpty(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Username: "a@x.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.ListRoles(ctx, id)
	if err != nil {
		t.Fatalf("ListRoles error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no roles, got %v", got)
	}
}
