package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/repository"
)

// DifficultyRepository reads the seeded difficulty grades. Seeding happens in
// WalkRepository.Init, which owns the walks schema.
type DifficultyRepository struct {
	db *sql.DB
}

func NewDifficultyRepository(db *sql.DB) repository.DifficultyRepository {
	return &DifficultyRepository{db: db}
}

func (r *DifficultyRepository) Init(ctx context.Context) error {
	return nil
}

func (r *DifficultyRepository) List(ctx context.Context) ([]domain.Difficulty, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name
FROM difficulties
ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query difficulties: %w", err)
	}
	defer rows.Close()

	var difficulties []domain.Difficulty
	for rows.Next() {
		var d domain.Difficulty
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, fmt.Errorf("scan difficulty: %w", err)
		}
		difficulties = append(difficulties, d)
	}
	return difficulties, rows.Err()
}
