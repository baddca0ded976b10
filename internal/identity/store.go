package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

// ErrInvalidCredentials covers both unknown usernames and wrong passwords so
// callers cannot enumerate accounts from the response.
var ErrInvalidCredentials = errors.New("invalid credentials")

// minPasswordLength is the only password policy enforced; composition rules
// are deliberately not required.
const minPasswordLength = 6

// Store is the credential store: it owns password hashing, credential
// verification, and role membership for user identities.
type Store interface {
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*domain.User, error)
	AssignRoles(ctx context.Context, userID int64, roles []domain.Role) error
	Roles(ctx context.Context, userID int64) ([]domain.Role, error)
}

type store struct {
	users repository.UserRepository
}

func NewStore(users repository.UserRepository) Store {
	return &store{users: users}
}

// CreateUser validates the candidate identity, hashes the password and
// persists the user. Policy and uniqueness failures come back as
// ValidationErrors with field-level messages.
func (s *store) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)

	var verrs domain.ValidationErrors
	if username == "" {
		verrs.Add("username is required")
	} else if _, err := mail.ParseAddress(username); err != nil {
		verrs.Add("username must be a valid email address")
	}
	if password == "" {
		verrs.Add("password is required")
	} else if len(password) < minPasswordLength {
		verrs.Add(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if verrs.Any() {
		return nil, &verrs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			verrs.Add(fmt.Sprintf("username %s is already taken", username))
			return nil, &verrs
		}
		return nil, err
	}

	return sanitize(user), nil
}

// VerifyPassword looks the user up and compares the password against the
// stored bcrypt hash. Lookup misses and hash mismatches are
// indistinguishable to the caller.
func (s *store) VerifyPassword(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitize(user), nil
}

func (s *store) AssignRoles(ctx context.Context, userID int64, roles []domain.Role) error {
	return s.users.AssignRoles(ctx, userID, roles)
}

func (s *store) Roles(ctx context.Context, userID int64) ([]domain.Role, error) {
	return s.users.ListRoles(ctx, userID)
}

func sanitize(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
