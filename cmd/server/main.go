package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	_ "modernc.org/sqlite"

	"dispatch-strategy-service/internal/adapters/advisor"
	"dispatch-strategy-service/internal/adapters/cache"
	"dispatch-strategy-service/internal/adapters/graphsource"
	"dispatch-strategy-service/internal/adapters/repositories"
	"dispatch-strategy-service/internal/api"
	"dispatch-strategy-service/internal/config"
	"dispatch-strategy-service/internal/domain"
	"dispatch-strategy-service/internal/metrics"
	"dispatch-strategy-service/internal/platform/obs"
	"dispatch-strategy-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, JSON graph, Redis, advisor) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(db, cfg.SeedPath); err != nil {
		log.Fatal(err)
	}

	graphs, err := graphsource.NewJSONGraphProvider(cfg.GraphPath)
	if err != nil {
		log.Fatal(err)
	}

	m := metrics.New()
	obs.SetRecorder(m.ObserveOp)

	// Redis is optional: without it shortest-path queries just recompute.
	var pathCache ports.PathCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		pathCache = cache.NewRedisPathCache(client, time.Duration(cfg.PathCacheTTL))
	}

	// The advisor is a best-effort collaborator; skip it when unconfigured.
	var adv ports.Advisor
	if cfg.AdvisorURL != "" {
		adv, err = advisor.NewHTTPAdvisor(cfg.AdvisorURL, cfg.AdvisorAPIKey)
		if err != nil {
			log.Fatal(err)
		}
	}

	repo := repositories.NewSqliteOrderRepository(db)
	router := api.NewRouter(api.RouterDeps{
		Graphs:          graphs,
		Repo:            repo,
		Cache:           pathCache,
		Advisor:         adv,
		Metrics:         m,
		DefaultDepotID:  cfg.DepotID,
		DefaultCapacity: cfg.TruckCapacity,
		DefaultCosts:    domain.CostParams{PerKm: cfg.CostPerKm, PerTruck: cfg.CostPerTruck},
		CompareLimiter:  rate.NewLimiter(rate.Limit(cfg.CompareRatePerSec), cfg.CompareBurst),
	})

	// Timeouts are tuned for whole-fleet comparison runs on large graphs.
	log.Printf("Server listening addr=:%s depot=%s", cfg.Port, cfg.DepotID)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}

func initAndSeed(db *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
