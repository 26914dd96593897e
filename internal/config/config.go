package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	CatalogMemory   = "memory"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
	CatalogRemote   = "remote"

	CartMemory   = "memory"
	CartFile     = "file"
	CartSQLite   = "sqlite"
	CartRedis    = "redis"
	CartPostgres = "postgres"

	minProfileSecret = 32
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Port     string
	LogLevel string

	CatalogSource string
	CatalogFile   string
	CatalogURL    string

	CartBackend string
	CartDir     string
	SQLitePath  string
	RedisAddr   string

	DatabaseURL string

	ProfileSecret string

	MetricsEnabled   bool
	MetricsTokenHash string

	AssetsDir           string
	MutationLimitPerMin int
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any variable source.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(k, def string) string {
		if v, ok := lookup(k); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	limit, err := strconv.Atoi(get("MUTATION_LIMIT_PER_MIN", "120"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: MUTATION_LIMIT_PER_MIN: %v", ErrInvalid, err)
	}
	metricsOn, err := strconv.ParseBool(get("METRICS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("%w: METRICS_ENABLED: %v", ErrInvalid, err)
	}

	c := Config{
		Port:     get("PORT", "8080"),
		LogLevel: get("LOG_LEVEL", "info"),

		CatalogSource: strings.ToLower(get("CATALOG_SOURCE", CatalogMemory)),
		CatalogFile:   get("CATALOG_FILE", ""),
		CatalogURL:    get("CATALOG_URL", ""),

		CartBackend: strings.ToLower(get("CART_BACKEND", CartMemory)),
		CartDir:     get("CART_DIR", "data/carts"),
		SQLitePath:  get("SQLITE_PATH", "data/carts.db"),
		RedisAddr:   get("REDIS_ADDR", "localhost:6379"),

		DatabaseURL: get("DATABASE_URL", ""),

		ProfileSecret: get("PROFILE_SECRET", ""),

		MetricsEnabled:   metricsOn,
		MetricsTokenHash: get("METRICS_TOKEN_HASH", ""),

		AssetsDir:           get("ASSETS_DIR", "web/assets"),
		MutationLimitPerMin: limit,
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.CatalogSource {
	case CatalogMemory:
	case CatalogFile:
		if c.CatalogFile == "" {
			return fmt.Errorf("%w: CATALOG_FILE required for file catalog", ErrInvalid)
		}
	case CatalogPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL required for postgres catalog", ErrInvalid)
		}
	case CatalogRemote:
		if c.CatalogURL == "" {
			return fmt.Errorf("%w: CATALOG_URL required for remote catalog", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown CATALOG_SOURCE %q", ErrInvalid, c.CatalogSource)
	}

	switch c.CartBackend {
	case CartMemory, CartFile, CartSQLite, CartRedis:
	case CartPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL required for postgres carts", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown CART_BACKEND %q", ErrInvalid, c.CartBackend)
	}

	if len(c.ProfileSecret) < minProfileSecret {
		return fmt.Errorf("%w: PROFILE_SECRET is required and must be at least %d chars", ErrInvalid, minProfileSecret)
	}
	if c.MetricsEnabled && c.MetricsTokenHash == "" {
		return fmt.Errorf("%w: METRICS_TOKEN_HASH required when METRICS_ENABLED", ErrInvalid)
	}
	if c.MutationLimitPerMin < 0 {
		return fmt.Errorf("%w: MUTATION_LIMIT_PER_MIN must not be negative", ErrInvalid)
	}
	return nil
}

// NeedsPostgres reports whether any component reads DATABASE_URL.
func (c Config) NeedsPostgres() bool {
	return c.CatalogSource == CatalogPostgres || c.CartBackend == CartPostgres
}
