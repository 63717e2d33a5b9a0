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

// SQLRouteCache is a Postgres-backed cache mapping waypoint coordinate
// keys to computed routes.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

// Fetch the cached route for the given coordinate key.
func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return domain.Route{}, false, errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return domain.Route{}, false, nil
	}

	q := `
	SELECT payload
    FROM route_cache
    WHERE coords_key = $1;
	`

	var payload []byte
	scanErr := s.DB.QueryRowContext(ctx, q, key).Scan(&payload)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return domain.Route{}, false, nil
	}
	if scanErr != nil {
		err = fmt.Errorf("get route cache: query route_cache table: %w", scanErr)
		return domain.Route{}, false, err
	}

	route, decodeErr := decodeRoute(payload)
	if decodeErr != nil {
		err = fmt.Errorf("get route cache key=%q: %w", key, decodeErr)
		return domain.Route{}, false, err
	}
	return route, true, nil
}

// Store a coordinate key -> route mapping in the cache.
func (s *SQLRouteCache) Put(ctx context.Context, key string, route domain.Route) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("insert route cache: empty coordinate key")
	}

	payload, err := encodeRoute(route)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	q := `
	INSERT INTO route_cache (coords_key, payload)
    VALUES ($1, $2)
	ON CONFLICT (coords_key) DO UPDATE
	SET payload = EXCLUDED.payload;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, payload); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
