package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

const createImagesSchema = `
CREATE TABLE IF NOT EXISTS images (
	id TEXT PRIMARY KEY,
	file_name TEXT NOT NULL,
	file_description TEXT NOT NULL DEFAULT '',
	file_extension TEXT NOT NULL,
	size_bytes INTEGER NOT NULL,
	url TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
`

type ImageRepository struct {
	db *sql.DB
}

func NewImageRepository(db *sql.DB) repository.ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createImagesSchema); err != nil {
		return fmt.Errorf("create images schema: %w", err)
	}
	return nil
}

func (r *ImageRepository) Create(ctx context.Context, image *domain.Image) error {
	image.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO images (id, file_name, file_description, file_extension, size_bytes, url, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		image.ID,
		image.FileName,
		image.FileDescription,
		image.FileExtension,
		image.SizeBytes,
		image.URL,
		image.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

func (r *ImageRepository) List(ctx context.Context) ([]domain.Image, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, file_name, file_description, file_extension, size_bytes, url, created_at
FROM images
ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query images: %w", err)
	}
	defer rows.Close()

	var images []domain.Image
	for rows.Next() {
		var image domain.Image
		if err := rows.Scan(
			&image.ID,
			&image.FileName,
			&image.FileDescription,
			&image.FileExtension,
			&image.SizeBytes,
			&image.URL,
			&image.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
