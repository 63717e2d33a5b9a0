package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"trip-log-service/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSqliteSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteGeocodeCacheRoundTrip(t *testing.T) {
	c := NewSqliteGeocodeCache(openTestDB(t))
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "Chicago, IL"); err != nil || ok {
		t.Fatalf("empty cache Get = ok=%v err=%v", ok, err)
	}

	place := domain.Place{
		Coordinates: domain.Coordinates{Lon: -87.6244, Lat: 41.8756},
		DisplayName: "Chicago, Cook County, Illinois, United States",
		City:        "Chicago, Cook County",
	}
	if err := c.Put(ctx, "Chicago, IL", place); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "Chicago, IL")
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if got != place {
		t.Fatalf("got %+v, want %+v", got, place)
	}

	// Overwriting the same address keeps the latest result.
	place.DisplayName = "Chicago, Illinois, United States"
	place.City = "Chicago, Illinois"
	if err := c.Put(ctx, "Chicago, IL", place); err != nil {
		t.Fatalf("second put: %v", err)
	}
	got, ok, err = c.Get(ctx, "Chicago, IL")
	if err != nil || !ok {
		t.Fatalf("get after overwrite: ok=%v err=%v", ok, err)
	}
	if got.City != "Chicago, Illinois" {
		t.Fatalf("city = %q after overwrite", got.City)
	}
}

func TestSqliteRouteCacheRoundTrip(t *testing.T) {
	c := NewSqliteRouteCache(openTestDB(t))
	ctx := context.Background()

	key := "-87.624400,41.875600;-93.265000,44.977800"

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("empty cache Get = ok=%v err=%v", ok, err)
	}

	route := domain.Route{
		DistanceMeters:  804670.5,
		DurationSeconds: 32400,
		Geometry:        json.RawMessage(`{"type":"LineString","coordinates":[[-87.62,41.88]]}`),
		Legs: []domain.RouteLeg{
			{DistanceMeters: 148059, DurationSeconds: 5400},
			{DistanceMeters: 656611.5, DurationSeconds: 27000},
		},
	}
	if err := c.Put(ctx, key, route); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get after put: ok=%v err=%v", ok, err)
	}
	if got.DistanceMeters != route.DistanceMeters || got.DurationSeconds != route.DurationSeconds {
		t.Fatalf("totals = %v m / %v s", got.DistanceMeters, got.DurationSeconds)
	}
	if len(got.Legs) != 2 || got.Legs[1].DistanceMeters != 656611.5 {
		t.Fatalf("legs = %+v", got.Legs)
	}
	if string(got.Geometry) != string(route.Geometry) {
		t.Fatalf("geometry = %s", got.Geometry)
	}
}

func TestRoutePayloadCodec(t *testing.T) {
	route := domain.Route{
		DistanceMeters:  100,
		DurationSeconds: 200,
		Geometry:        json.RawMessage(`{"type":"LineString","coordinates":[]}`),
		Legs: []domain.RouteLeg{
			// Leg names are deliberately not persisted.
			{From: "Chicago", To: "Milwaukee", DistanceMeters: 100, DurationSeconds: 200},
		},
	}

	b, err := encodeRoute(route)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := decodeRoute(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Legs[0].From != "" || got.Legs[0].To != "" {
		t.Fatalf("leg names survived the codec: %+v", got.Legs[0])
	}
	if got.Legs[0].DistanceMeters != 100 || got.DistanceMeters != 100 {
		t.Fatalf("decoded %+v", got)
	}
}
