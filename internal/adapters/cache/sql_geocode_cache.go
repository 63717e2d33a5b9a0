package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-log-service/internal/domain"
	"trip-log-service/internal/platform/obs"
)

// SQLGeocodeCache is a Postgres-backed cache mapping location strings to
// geocoded places.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached place for the given address.
func (s *SQLGeocodeCache) Get(ctx context.Context, address string) (_ domain.Place, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

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
    WHERE address = $1;
	`

	var lon, lat float64
	var displayName string
	scanErr := s.DB.QueryRowContext(ctx, q, address).Scan(&lon, &lat, &displayName)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return domain.Place{}, false, nil
	}
	if scanErr != nil {
		err = fmt.Errorf("get geocode cache: query geocode_cache table: %w", scanErr)
		return domain.Place{}, false, err
	}

	return domain.Place{
		Coordinates: domain.Coordinates{Lon: lon, Lat: lat},
		DisplayName: displayName,
		City:        domain.CityFromDisplayName(displayName),
	}, true, nil
}

// Store an address -> place mapping in the cache.
func (s *SQLGeocodeCache) Put(ctx context.Context, address string, place domain.Place) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, lon, lat, display_name)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (address) DO UPDATE
	SET lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		display_name = EXCLUDED.display_name;
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
