// Package store backs the venue list with a sqlite database. This is an
// external collaborator of the matching engine: the engine only sees the
// api.VenueSource surface.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fieldtrack/geomatch/geolib"
)

type SQLiteStore struct {
	db *sql.DB
}

func (s *SQLiteStore) Venues(ctx context.Context) ([]geolib.VenueQuery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(hospital_name, ''), COALESCE(region, '') FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("cannot query projects: %w", err)
	}

	defer rows.Close()

	var venues []geolib.VenueQuery

	for rows.Next() {
		venue := geolib.VenueQuery{}

		if err := rows.Scan(&venue.ID, &venue.DisplayName,
			&venue.HospitalName, &venue.CityHint); err != nil {
			return nil, fmt.Errorf("cannot scan a project row: %w", err)
		}

		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot iterate project rows: %w", err)
	}

	return venues, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open database %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()

		return nil, fmt.Errorf("cannot ping database %s: %w", path, err)
	}

	return &SQLiteStore{db: db}, nil
}
