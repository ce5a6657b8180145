package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults mirror the server's development setup.
const (
	DefaultAPIURL   = "http://localhost:8081/api"
	DefaultPageSize = 5
	DefaultTimeout  = 10 * time.Second
)

// Config holds everything the client reads from the environment.
type Config struct {
	APIURL       string        // base URL of the report API
	Debug        bool          // structured request/response logging
	TokenKey     string        // credential-cache key for the bearer token
	UserKey      string        // credential-cache key for the serialized user
	DBPath       string        // path of the sqlite credential cache
	PageSize     int           // default page size for list and search views
	PagedTimeout time.Duration // client-side timeout for the paged list fetch
}

// Load reads configuration from a .env file (if present) and the process
// environment.
func Load() (*Config, error) {
	// A missing .env file is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:       getenv("DAYREP_API_URL", DefaultAPIURL),
		Debug:        os.Getenv("DAYREP_DEBUG") == "true",
		TokenKey:     getenv("DAYREP_TOKEN_KEY", "token"),
		UserKey:      getenv("DAYREP_USER_KEY", "user"),
		PageSize:     DefaultPageSize,
		PagedTimeout: DefaultTimeout,
	}

	if v := os.Getenv("DAYREP_PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid DAYREP_PAGE_SIZE %q", v)
		}
		cfg.PageSize = size
	}

	if v := os.Getenv("DAYREP_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid DAYREP_TIMEOUT_SECONDS %q", v)
		}
		cfg.PagedTimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("DAYREP_DB_PATH"); v != "" {
		cfg.DBPath = v
	} else {
		path, err := defaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve cache path: %w", err)
		}
		cfg.DBPath = path
	}

	return cfg, nil
}

// defaultDBPath returns the path of the credential cache database.
func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".dayrep", "dayrep.db"), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
