package service

import (
	"context"
	"fmt"

	"nzwalks-api/internal/auth"
	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/identity"
)

// RegisterResult reports the outcome of a successful registration.
type RegisterResult struct {
	Message string
}

// AuthService orchestrates registration and login against the credential
// store and the token issuer.
type AuthService interface {
	Register(ctx context.Context, username, password string, roleNames []string) (*RegisterResult, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	store  identity.Store
	issuer *auth.Issuer
}

func NewAuthService(store identity.Store, issuer *auth.Issuer) AuthService {
	return &authService{
		store:  store,
		issuer: issuer,
	}
}

// Register creates an identity and, when roles were requested, assigns them.
// Role names are validated before the identity is created so a typo cannot
// mint an unreachable role. If role assignment itself fails the identity
// stays persisted and the underlying errors are returned; callers see the
// partial state rather than a silent success.
func (s *authService) Register(ctx context.Context, username, password string, roleNames []string) (*RegisterResult, error) {
	roles, err := domain.ParseRoles(roleNames)
	if err != nil {
		verrs := &domain.ValidationErrors{}
		verrs.Add(err.Error())
		return nil, verrs
	}

	user, err := s.store.CreateUser(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		return &RegisterResult{Message: "user registered"}, nil
	}

	if err := s.store.AssignRoles(ctx, user.ID, roles); err != nil {
		verrs := &domain.ValidationErrors{}
		verrs.Add(fmt.Sprintf("user registered but role assignment failed: %v", err))
		return nil, verrs
	}

	return &RegisterResult{Message: "user registered with roles, please log in"}, nil
}

// Login verifies the credentials, resolves role claims and issues a signed
// token. Unknown usernames and wrong passwords both return
// identity.ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.store.VerifyPassword(ctx, username, password)
	if err != nil {
		return "", err
	}

	// an empty role list is valid; the token simply carries no role claims
	roles, err := s.store.Roles(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("resolve roles: %w", err)
	}

	token, err := s.issuer.Issue(user, roles)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
