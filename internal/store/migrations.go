package store

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; the index plus one is the schema version
// a migration brings the database to.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS favorites (
		recipe_id TEXT PRIMARY KEY,
		name      TEXT NOT NULL,
		category  TEXT NOT NULL DEFAULT '',
		area      TEXT NOT NULL DEFAULT '',
		added_at  TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS ratings (
		recipe_id  TEXT PRIMARY KEY,
		stars      INTEGER NOT NULL CHECK (stars BETWEEN 1 AND 5),
		updated_at TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_favorites_added ON favorites(added_at);`,
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER NOT NULL)`); err != nil {
		return 0, err
	}

	var v int
	err := db.QueryRowContext(ctx, `SELECT version FROM schema_migrations`).Scan(&v)
	if err == sql.ErrNoRows {
		if _, err := db.ExecContext(ctx, `INSERT INTO schema_migrations(version) VALUES(0)`); err != nil {
			return 0, err
		}
		return 0, nil
	}
	return v, err
}

// migrate brings the schema up to the latest version
func migrate(ctx context.Context, db *sql.DB) error {
	cur, err := schemaVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := cur + 1; v <= len(migrations); v++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[v-1]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate up to v%d: %w", v, err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE schema_migrations SET version=?`, v); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate up to v%d: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}
	return nil
}
