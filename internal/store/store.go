// Package store persists favorites and ratings in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"recipebox/internal/domain"
	"recipebox/internal/eventbus"
)

// ErrInvalidRating is returned for ratings outside 1..5
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// timeFormat is fixed width so stored timestamps sort as text
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store holds the user's favorites and ratings
type Store struct {
	db  *sql.DB
	bus eventbus.EventBus
	now func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
// bus may be nil.
func Open(ctx context.Context, path string, bus eventbus.EventBus) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, bus: bus, now: time.Now}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// ToggleFavorite stars the recipe if it is not starred and unstars it
// otherwise. It returns the new state.
func (s *Store) ToggleFavorite(ctx context.Context, r domain.Recipe) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE recipe_id = ?`, r.ID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite %s: %w", r.ID, err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	favorite := removed == 0
	if favorite {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO favorites(recipe_id, name, category, area, added_at) VALUES(?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Category, r.Area, s.now().UTC().Format(timeFormat))
		if err != nil {
			return false, fmt.Errorf("toggle favorite %s: %w", r.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.FavoriteToggledEvent{RecipeID: r.ID, Favorite: favorite})
	}
	return favorite, nil
}

// IsFavorite reports whether the recipe is starred
func (s *Store) IsFavorite(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM favorites WHERE recipe_id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Favorites lists starred recipes, most recently added first
func (s *Store) Favorites(ctx context.Context) ([]domain.Favorite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recipe_id, name, category, area, added_at FROM favorites ORDER BY added_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var out []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		var added string
		if err := rows.Scan(&f.RecipeID, &f.Name, &f.Category, &f.Area, &added); err != nil {
			return nil, err
		}
		if f.AddedAt, err = time.Parse(timeFormat, added); err != nil {
			return nil, fmt.Errorf("favorite %s: bad timestamp %q: %w", f.RecipeID, added, err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// FavoriteIDs returns the set of starred recipe IDs
func (s *Store) FavoriteIDs(ctx context.Context) (map[string]bool, error) {
	favs, err := s.Favorites(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(favs))
	for _, f := range favs {
		out[f.RecipeID] = true
	}
	return out, nil
}

// SetRating stores a 1..5 star rating, replacing any previous one
func (s *Store) SetRating(ctx context.Context, id string, stars int) error {
	if stars < domain.MinRating || stars > domain.MaxRating {
		return fmt.Errorf("rate %s with %d: %w", id, stars, ErrInvalidRating)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ratings(recipe_id, stars, updated_at) VALUES(?, ?, ?)
		 ON CONFLICT(recipe_id) DO UPDATE SET stars = excluded.stars, updated_at = excluded.updated_at`,
		id, stars, s.now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("rate %s: %w", id, err)
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.RatingChangedEvent{RecipeID: id, Stars: stars})
	}
	return nil
}

// ClearRating removes the recipe's rating. Clearing an unrated recipe is not
// an error.
func (s *Store) ClearRating(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM ratings WHERE recipe_id = ?`, id); err != nil {
		return fmt.Errorf("clear rating %s: %w", id, err)
	}
	if s.bus != nil {
		s.bus.Publish(eventbus.RatingChangedEvent{RecipeID: id, Stars: 0})
	}
	return nil
}

// Rating returns the recipe's stars, 0 when unrated
func (s *Store) Rating(ctx context.Context, id string) (int, error) {
	var stars int
	err := s.db.QueryRowContext(ctx, `SELECT stars FROM ratings WHERE recipe_id = ?`, id).Scan(&stars)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return stars, err
}

// Ratings returns every rating keyed by recipe ID
func (s *Store) Ratings(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT recipe_id, stars FROM ratings`)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var stars int
		if err := rows.Scan(&id, &stars); err != nil {
			return nil, err
		}
		out[id] = stars
	}
	return out, rows.Err()
}
