package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/junaidrashid-git/storefront/logger"
)

var log = logger.New("config")

// Config is read once at startup from the environment (and .env when present).
type Config struct {
	Port            string
	BackendEndpoint string
	BackendTimeout  time.Duration
	DatabaseURL     string
	SQLitePath      string
	VisitorSecret   string
	SearchDebounce  time.Duration
	AllowedOrigins  []string
	PageIdleTTL     time.Duration
	MaxPages        int
}

func Load() Config {
	// Load environment variables
	_ = godotenv.Load()

	cfg := Config{
		Port:            getenv("PORT", "8080"),
		BackendEndpoint: strings.TrimRight(getenv("BACKEND_ENDPOINT", "http://localhost:8082/api/v1"), "/"),
		BackendTimeout:  duration("BACKEND_TIMEOUT", 10*time.Second),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      getenv("SQLITE_PATH", "storefront.db"),
		VisitorSecret:   os.Getenv("VISITOR_SECRET"),
		SearchDebounce:  duration("SEARCH_DEBOUNCE", 500*time.Millisecond),
		AllowedOrigins:  []string{"*"},
		PageIdleTTL:     duration("PAGE_IDLE_TTL", 30*time.Minute),
		MaxPages:        number("MAX_PAGES", 10000),
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}
	if cfg.VisitorSecret == "" {
		log.Warning("VISITOR_SECRET is not set, using an insecure development secret")
		cfg.VisitorSecret = "storefront-dev-secret"
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warning("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func number(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Warning("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
