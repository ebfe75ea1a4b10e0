package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration accepts "10m"-style strings in YAML, which yaml.v3 does not do
// for time.Duration itself.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Config holds everything the server needs to start. Values come from an
// optional YAML file, with environment variables taking precedence.
type Config struct {
	Port string `yaml:"port"`

	DBPath    string `yaml:"db_path"`
	SeedPath  string `yaml:"seed_path"`
	GraphPath string `yaml:"graph_path"`

	DepotID       string  `yaml:"depot_id"`
	TruckCapacity int     `yaml:"truck_capacity"`
	CostPerKm     float64 `yaml:"cost_per_km"`
	CostPerTruck  float64 `yaml:"cost_per_truck"`

	RedisAddr    string   `yaml:"redis_addr"`
	PathCacheTTL Duration `yaml:"path_cache_ttl"`

	AdvisorURL    string `yaml:"advisor_url"`
	AdvisorAPIKey string `yaml:"advisor_api_key"`

	CompareRatePerSec float64 `yaml:"compare_rate_per_sec"`
	CompareBurst      int     `yaml:"compare_burst"`
}

func defaults() Config {
	return Config{
		Port:              "8080",
		DBPath:            "data/app.db",
		SeedPath:          "data/seeds/orders.json",
		GraphPath:         "data/graph.json",
		DepotID:           "depot",
		TruckCapacity:     10,
		CostPerKm:         1.2,
		CostPerTruck:      50,
		PathCacheTTL:      Duration(10 * time.Minute),
		CompareRatePerSec: 2,
		CompareBurst:      4,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then environment
// variables.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Optional file; env and defaults still apply.
		case err != nil:
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
			}
		}
	}

	cfg.Port = Get("PORT", cfg.Port)
	cfg.DBPath = Get("DB_PATH", cfg.DBPath)
	cfg.SeedPath = Get("SEED_PATH", cfg.SeedPath)
	cfg.GraphPath = Get("GRAPH_PATH", cfg.GraphPath)
	cfg.DepotID = Get("DEPOT_ID", cfg.DepotID)
	cfg.RedisAddr = Get("REDIS_ADDR", cfg.RedisAddr)
	cfg.AdvisorURL = Get("ADVISOR_URL", cfg.AdvisorURL)
	cfg.AdvisorAPIKey = Get("ADVISOR_API_KEY", cfg.AdvisorAPIKey)

	var err error
	if cfg.TruckCapacity, err = getInt("TRUCK_CAPACITY", cfg.TruckCapacity); err != nil {
		return Config{}, err
	}
	if cfg.CostPerKm, err = getFloat("COST_PER_KM", cfg.CostPerKm); err != nil {
		return Config{}, err
	}
	if cfg.CostPerTruck, err = getFloat("COST_PER_TRUCK", cfg.CostPerTruck); err != nil {
		return Config{}, err
	}

	if cfg.TruckCapacity < 1 {
		return Config{}, fmt.Errorf("load config: truck capacity must be positive, got %d", cfg.TruckCapacity)
	}
	if cfg.CostPerKm < 0 || cfg.CostPerTruck < 0 {
		return Config{}, errors.New("load config: cost rates must not be negative")
	}

	return cfg, nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("load config: %s=%q is not an integer: %w", key, v, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: %s=%q is not a number: %w", key, v, err)
	}
	return f, nil
}
