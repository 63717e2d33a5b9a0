package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-log-service/internal/domain"
)

// SQLite backed cache mapping location strings to geocoded places.
// Address keys are expected to be consistent (e.g., normalized)
// by the caller.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch the cached place for the given address. The second return value
// reports whether the address was present.
func (s *SqliteGeocodeCache) Get(ctx context.Context, address string) (domain.Place, bool, error) {
	if s.DB == nil {
		return domain.Place{}, false, errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Place{}, false, nil
	}

	q := `
	SELECT lon, lat, display_name
    FROM geocode_cache
    WHERE address = ?;
	`

	var lon, lat float64
	var displayName string
	err := s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat, &displayName)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Place{}, false, nil
	}
	if err != nil {
		return domain.Place{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Place{
		Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
		DisplayName: displayName,
		City:        domain.CityFromDisplayName(displayName),
	}, true, nil
}

// Store an address -> place mapping in the cache.
func (s *SqliteGeocodeCache) Put(ctx context.Context, address string, place domain.Place) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT OR REPLACE INTO geocode_cache (
        address,
        lon,
        lat,
        display_name
    )
    VALUES (?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q,
		address,
		place.Coordinates.Lon,
		place.Coordinates.Lat,
		place.DisplayName,
	); err != nil {
		return fmt.Errorf("insert geocode cache address=%q: %w", address, err)
	}

	return nil
}
