package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies every .sql file in dir in lexical order. Files must be
// idempotent since they run on every start.
func Migrate(ctx context.Context, db *pgxpool.Pool, dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			return 0, fmt.Errorf("read migration %s: %w", filepath.Base(f), err)
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return 0, fmt.Errorf("apply migration %s: %w", filepath.Base(f), err)
		}
	}
	return len(files), nil
}
