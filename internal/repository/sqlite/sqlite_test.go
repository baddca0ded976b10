package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// openTestDB opens a throwaway database with the full schema applied and all
// seed data in place.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	inits := []struct {
		name string
		init func(context.Context) error
	}{
		{"users", NewUserRepository(db).Init},
		{"regions", NewRegionRepository(db).Init},
		{"walks", NewWalkRepository(db).Init},
		{"images", NewImageRepository(db).Init},
	}
	for _, step := range inits {
		if err := step.init(ctx); err != nil {
			t.Fatalf("init %s: %v", step.name, err)
		}
	}
	return db
}
