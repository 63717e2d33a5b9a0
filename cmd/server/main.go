package main

import (
	"database/sql"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"trip-log-service/internal/adapters/cache"
	"trip-log-service/internal/adapters/geocode"
	"trip-log-service/internal/adapters/routing"
	"trip-log-service/internal/api"
	"trip-log-service/internal/config"
	"trip-log-service/internal/eldlog"
	"trip-log-service/internal/platform/db"
	"trip-log-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, OSRM, SQL caches) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	nominatimURL := config.Get("NOMINATIM_URL", "")
	osrmURL := config.Get("OSRM_URL", "")

	geocodeCache, routeCache, closeDB, err := openCaches()
	if err != nil {
		log.Fatal(err)
	}
	defer closeDB()

	geocoder := geocode.NewNominatimGeocoder(nominatimURL, geocodeCache)
	routes := routing.NewOSRMRouteProvider(osrmURL, routeCache)

	// A scanned form template can be supplied via LOG_TEMPLATE_PATH;
	// otherwise the built-in blank form is drawn.
	var template image.Image
	if path := strings.TrimSpace(os.Getenv("LOG_TEMPLATE_PATH")); path != "" {
		template, err = eldlog.LoadTemplate(path)
		if err != nil {
			log.Fatal(err)
		}
	}
	renderer, err := eldlog.NewRenderer(template)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(geocoder, routes, renderer, services.DefaultScheduleConfig())

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openCaches selects the cache backend: Postgres when DATABASE_URL is set,
// SQLite at DB_PATH otherwise.
func openCaches() (geocode.Cache, routing.Cache, func(), error) {
	if databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL")); databaseURL != "" {
		pg, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := cache.InitSQLSchema(pg); err != nil {
			pg.Close()
			return nil, nil, nil, err
		}
		return cache.NewSQLGeocodeCache(pg), cache.NewSQLRouteCache(pg), func() { pg.Close() }, nil
	}

	dbPath := config.Get("DB_PATH", "data/cache.db")
	lite, err := openSqlite(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cache.InitSqliteSchema(lite); err != nil {
		lite.Close()
		return nil, nil, nil, err
	}
	return cache.NewSqliteGeocodeCache(lite), cache.NewSqliteRouteCache(lite), func() { lite.Close() }, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openSqlite: open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("openSqlite: verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}
