package infrastructure

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/glebarez/go-sqlite"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS movies (
	id    INTEGER PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	year  INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS cast_members (
	movie_id INTEGER NOT NULL REFERENCES movies(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	actor    TEXT NOT NULL,
	PRIMARY KEY (movie_id, position)
);
CREATE INDEX IF NOT EXISTS cast_members_actor ON cast_members(actor);
`

// SQLite stores the movie dataset in a single database file
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database file and its schema
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open SQLite database '%s': %w", path, err)
	}
	// SQLite has a single writer
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create SQLite schema: %w", err)
	}
	log.Info().Str("path", path).Msg("Using SQLite database")

	return &SQLite{
		db: db,
	}, nil
}

func (s SQLite) Close() error {
	return s.db.Close()
}

// GetMovies returns the stored movies in insertion order, casts in credit order.
// A database error gives an empty dataset.
func (s SQLite) GetMovies(ctx context.Context) []model.Movie {
	movies, err := s.getMovies(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Could not load movie dataset from SQLite")
		return nil
	}
	return movies
}

func (s SQLite) getMovies(ctx context.Context) ([]model.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.title, m.year, c.actor
		FROM movies m
		LEFT JOIN cast_members c ON c.movie_id = m.id
		ORDER BY m.id, c.position`)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving movies from DB: %w", err)
	}
	defer rows.Close()

	var (
		movies []model.Movie
		lastID int64 = -1
	)
	for rows.Next() {
		var (
			id    int64
			movie model.Movie
			actor sql.NullString
		)
		if err = rows.Scan(&id, &movie.Title, &movie.Year, &actor); err != nil {
			return nil, fmt.Errorf("error while decoding movie from DB: %w", err)
		}
		if id != lastID {
			movies = append(movies, movie)
			lastID = id
		}
		if actor.Valid {
			current := &movies[len(movies)-1]
			current.Cast = append(current.Cast, actor.String)
		}
	}
	return movies, rows.Err()
}

// ReplaceMovies removes every stored movie and inserts the new ones, in a single transaction
func (s SQLite) ReplaceMovies(ctx context.Context, movies []model.Movie) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, "DELETE FROM cast_members"); err != nil {
		return fmt.Errorf("could not remove previous cast: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movies"); err != nil {
		return fmt.Errorf("could not remove previous movies: %w", err)
	}

	movieStmt, err := tx.PrepareContext(ctx, "INSERT INTO movies (id, title, year) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer movieStmt.Close()
	castStmt, err := tx.PrepareContext(ctx, "INSERT INTO cast_members (movie_id, position, actor) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer castStmt.Close()

	for i, movie := range movies {
		id := i + 1
		if _, err = movieStmt.ExecContext(ctx, id, movie.Title, movie.Year); err != nil {
			return fmt.Errorf("could not insert movie '%s': %w", movie.Title, err)
		}
		for position, actor := range movie.Cast {
			if _, err = castStmt.ExecContext(ctx, id, position, actor); err != nil {
				return fmt.Errorf("could not insert cast of movie '%s': %w", movie.Title, err)
			}
		}
	}

	return tx.Commit()
}
