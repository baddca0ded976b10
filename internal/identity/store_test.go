package identity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users  map[string]*domain.User
	roles  map[int64][]domain.Role
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: map[string]*domain.User{},
		roles: map[int64][]domain.Role{},
	}
}

func (f *fakeUserRepo) Init(ctx context.Context) error { return nil }

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	if _, exists := f.users[user.Username]; exists {
		return 0, fmt.Errorf("user %s: %w", user.Username, repository.ErrDuplicate)
	}
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.Username] = &clone
	return user.ID, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
}

func (f *fakeUserRepo) AssignRoles(ctx context.Context, userID int64, roles []domain.Role) error {
	f.roles[userID] = append(f.roles[userID], roles...)
	return nil
}

func (f *fakeUserRepo) ListRoles(ctx context.Context, userID int64) ([]domain.Role, error) {
	return f.roles[userID], nil
}

func TestCreateUser_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	store := NewStore(repo)

	user, err := store.CreateUser(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatal("returned user must not carry the password hash")
	}

	stored := repo.users["a@x.com"]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatal("stored password must be hashed")
	}
}

func TestCreateUser_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret1"},
		{"not an email", "not-an-email", "secret1"},
		{"empty password", "a@x.com", ""},
		{"short password", "a@x.com", "abc"},
	}

	store := NewStore(newFakeUserRepo())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := store.CreateUser(context.Background(), tc.username, tc.password)
			var verrs *domain.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			if !verrs.Any() {
				t.Fatal("expected at least one validation message")
			}
		})
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	t.Parallel()

	store := NewStore(newFakeUserRepo())
	if _, err := store.CreateUser(context.Background(), "a@x.com", "secret1"); err != nil {
		t.Fatalf("first CreateUser error: %v", err)
	}

	_, err := store.CreateUser(context.Background(), "a@x.com", "secret1")
	var verrs *domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors for duplicate, got %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	store := NewStore(repo)
	if _, err := store.CreateUser(context.Background(), "a@x.com", "secret1"); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	user, err := store.VerifyPassword(context.Background(), "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("VerifyPassword error: %v", err)
	}
	if user.Username != "a@x.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	// wrong password and unknown user must be indistinguishable
	_, wrongErr := store.VerifyPassword(context.Background(), "a@x.com", "wrong")
	_, unknownErr := store.VerifyPassword(context.Background(), "b@x.com", "secret1")
	if !errors.Is(wrongErr, ErrInvalidCredentials) || !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Fatalf("both failures must be ErrInvalidCredentials: %v / %v", wrongErr, unknownErr)
	}
}
