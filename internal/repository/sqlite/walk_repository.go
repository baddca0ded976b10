package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

const createWalksSchema = `
CREATE TABLE IF NOT EXISTS difficulties (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS walks (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	length_km REAL NOT NULL DEFAULT 0,
	image_url TEXT NOT NULL DEFAULT '',
	difficulty_id TEXT NOT NULL REFERENCES difficulties(id),
	region_id TEXT NOT NULL REFERENCES regions(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// Seeded difficulty grades. The set is fixed; walks reference these by id.
var seedDifficulties = []domain.Difficulty{
	{ID: "70f5a843-15c3-42d9-ac99-a4343b56ca92", Name: "Easy"},
	{ID: "0c8bac97-5527-4b0c-8e8a-e88b06bbc409", Name: "Medium"},
	{ID: "31996f53-0d32-4892-b51c-622f6b7948f8", Name: "Hard"},
}

const selectWalk = `
SELECT w.id, w.name, w.description, w.length_km, w.image_url,
	w.difficulty_id, w.region_id, w.created_at, w.updated_at,
	d.name,
	r.code, r.name, r.image_url
FROM walks w
JOIN difficulties d ON d.id = w.difficulty_id
JOIN regions r ON r.id = w.region_id
`

type WalkRepository struct {
	db *sql.DB
}

func NewWalkRepository(db *sql.DB) repository.WalkRepository {
	return &WalkRepository{db: db}
}

func (r *WalkRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createWalksSchema); err != nil {
		return fmt.Errorf("create walks schema: %w", err)
	}
	for _, d := range seedDifficulties {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO difficulties (id, name) VALUES (?, ?)`,
			d.ID, d.Name,
		); err != nil {
			return fmt.Errorf("seed difficulty %s: %w", d.Name, err)
		}
	}
	return nil
}

func (r *WalkRepository) Create(ctx context.Context, walk *domain.Walk) error {
	now := time.Now().UTC()
	walk.CreatedAt = now
	walk.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO walks (id, name, description, length_km, image_url, difficulty_id, region_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		walk.ID,
		walk.Name,
		walk.Description,
		walk.LengthKm,
		walk.ImageURL,
		walk.DifficultyID,
		walk.RegionID,
		walk.CreatedAt,
		walk.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert walk: %w", err)
	}
	return nil
}

func (r *WalkRepository) Get(ctx context.Context, id string) (*domain.Walk, error) {
	row := r.db.QueryRowContext(ctx, selectWalk+`WHERE w.id = ?`, id)
	return scanWalk(row)
}

func (r *WalkRepository) List(ctx context.Context) ([]domain.Walk, error) {
	rows, err := r.db.QueryContext(ctx, selectWalk+`ORDER BY w.created_at, w.id`)
	if err != nil {
		return nil, fmt.Errorf("query walks: %w", err)
	}
	defer rows.Close()

	var walks []domain.Walk
	for rows.Next() {
		walk, err := scanWalk(rows)
		if err != nil {
			return nil, err
		}
		walks = append(walks, *walk)
	}
	return walks, rows.Err()
}

func (r *WalkRepository) Update(ctx context.Context, walk *domain.Walk) error {
	walk.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE walks
SET name=?, description=?, length_km=?, image_url=?, difficulty_id=?, region_id=?, updated_at=?
WHERE id=?`,
		walk.Name,
		walk.Description,
		walk.LengthKm,
		walk.ImageURL,
		walk.DifficultyID,
		walk.RegionID,
		walk.UpdatedAt,
		walk.ID,
	)
	if err != nil {
		return fmt.Errorf("update walk: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("walk update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("walk %s: %w", walk.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *WalkRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM walks WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete walk: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("walk delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("walk %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func scanWalk(scanner interface {
	Scan(dest ...any) error
}) (*domain.Walk, error) {
	var (
		walk       domain.Walk
		difficulty domain.Difficulty
		region     domain.Region
	)

	if err := scanner.Scan(
		&walk.ID,
		&walk.Name,
		&walk.Description,
		&walk.LengthKm,
		&walk.ImageURL,
		&walk.DifficultyID,
		&walk.RegionID,
		&walk.CreatedAt,
		&walk.UpdatedAt,
		&difficulty.Name,
		&region.Code,
		&region.Name,
		&region.ImageURL,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("walk: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan walk: %w", err)
	}

	difficulty.ID = walk.DifficultyID
	region.ID = walk.RegionID
	walk.Difficulty = &difficulty
	walk.Region = &region
	return &walk, nil
}
