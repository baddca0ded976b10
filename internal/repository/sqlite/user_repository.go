package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

const createUsersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS roles (
	name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS user_roles (
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	role_name TEXT NOT NULL REFERENCES roles(name),
	PRIMARY KEY (user_id, role_name)
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

// Init creates the identity tables and seeds the fixed role set.
func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersSchema); err != nil {
		return fmt.Errorf("create users schema: %w", err)
	}
	for _, role := range domain.AllRoles() {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO roles (name) VALUES (?)`, string(role)); err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, password_hash, created_at, updated_at)
VALUES (?, ?, ?, ?)`,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("user %s: %w", user.Username, repository.ErrDuplicate)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at, updated_at
FROM users
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, password_hash, created_at, updated_at
FROM users
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

// AssignRoles adds the user to each role. Duplicate memberships are ignored
// so re-assigning an existing role is not an error.
func (r *UserRepository) AssignRoles(ctx context.Context, userID int64, roles []domain.Role) error {
	if len(roles) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, role := range roles {
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO user_roles (user_id, role_name)
VALUES (?, ?)`,
			userID, string(role),
		); err != nil {
			return fmt.Errorf("assign role %s: %w", role, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit role assignment: %w", err)
	}
	return nil
}

func (r *UserRepository) ListRoles(ctx context.Context, userID int64) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT role_name
FROM user_roles
WHERE user_id = ?
ORDER BY role_name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query user roles: %w", err)
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, domain.Role(name))
	}
	return roles, rows.Err()
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
