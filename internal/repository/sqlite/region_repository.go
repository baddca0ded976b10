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

const createRegionsSchema = `
CREATE TABLE IF NOT EXISTS regions (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	image_url TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

var seedRegions = []domain.Region{
	{ID: "d4ebc14b-5c40-41da-ae8f-9e8d666f99f3", Code: "AKL", Name: "Auckland"},
	{ID: "c068d38a-2d3a-43a4-99ec-25303f74acf1", Code: "NTL", Name: "Northland"},
	{ID: "f9a601d4-3fd5-4d6e-9b74-2209aaccb352", Code: "BOP", Name: "Bay Of Plenty"},
	{ID: "978ec598-fac3-4f8e-98d3-0282a20369f8", Code: "WGN", Name: "Wellington"},
	{ID: "c054fafb-b830-4d77-a46d-9abcbe4f2997", Code: "NSN", Name: "Nelson"},
	{ID: "5d89cc85-e9b3-4388-8598-71a25e659440", Code: "STL", Name: "Southland"},
}

type RegionRepository struct {
	db *sql.DB
}

func NewRegionRepository(db *sql.DB) repository.RegionRepository {
	return &RegionRepository{db: db}
}

// Init creates the regions table and seeds the well-known region set so a
// fresh database starts queryable.
func (r *RegionRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRegionsSchema); err != nil {
		return fmt.Errorf("create regions schema: %w", err)
	}
	now := time.Now().UTC()
	for _, region := range seedRegions {
		if _, err := r.db.ExecContext(ctx, `
INSERT OR IGNORE INTO regions (id, code, name, image_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
			region.ID, region.Code, region.Name, region.ImageURL, now, now,
		); err != nil {
			return fmt.Errorf("seed region %s: %w", region.Code, err)
		}
	}
	return nil
}

func (r *RegionRepository) Create(ctx context.Context, region *domain.Region) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO regions (id, code, name, image_url, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		region.ID,
		region.Code,
		region.Name,
		region.ImageURL,
		now,
		now,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("region %s: %w", region.Code, repository.ErrDuplicate)
		}
		return fmt.Errorf("insert region: %w", err)
	}
	return nil
}

func (r *RegionRepository) Get(ctx context.Context, id string) (*domain.Region, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, code, name, image_url
FROM regions
WHERE id = ?`,
		id,
	)
	return scanRegion(row)
}

func (r *RegionRepository) List(ctx context.Context) ([]domain.Region, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, code, name, image_url
FROM regions
ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	var regions []domain.Region
	for rows.Next() {
		region, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		regions = append(regions, *region)
	}
	return regions, rows.Err()
}

func (r *RegionRepository) Update(ctx context.Context, region *domain.Region) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE regions
SET code=?, name=?, image_url=?, updated_at=?
WHERE id=?`,
		region.Code,
		region.Name,
		region.ImageURL,
		time.Now().UTC(),
		region.ID,
	)
	if err != nil {
		return fmt.Errorf("update region: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("region update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("region %s: %w", region.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *RegionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM regions WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete region: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("region delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("region %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func scanRegion(row interface {
	Scan(dest ...any) error
}) (*domain.Region, error) {
	var region domain.Region
	if err := row.Scan(
		&region.ID,
		&region.Code,
		&region.Name,
		&region.ImageURL,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("region: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan region: %w", err)
	}
	return &region, nil
}
