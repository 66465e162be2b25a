// File path: internal/sqlite/config.go
package sqlite

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config controls the SQLite catalog connection pool.
type Config struct {
	Path string

	BusyTimeout     time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// LoadConfig reads catalog settings from the environment and applies defaults.
func LoadConfig() (Config, error) {
	cfg := Config{}
	if path := strings.TrimSpace(os.Getenv("CATALOG_PATH")); path != "" {
		cfg.Path = path
	}
	if timeout := strings.TrimSpace(os.Getenv("CATALOG_BUSY_TIMEOUT")); timeout != "" {
		if parsed, err := time.ParseDuration(timeout); err == nil {
			cfg.BusyTimeout = parsed
		}
	}
	if maxOpen := strings.TrimSpace(os.Getenv("CATALOG_MAX_OPEN_CONNS")); maxOpen != "" {
		if value, err := strconv.Atoi(maxOpen); err == nil && value > 0 {
			cfg.MaxOpenConns = value
		}
	}
	if maxIdle := strings.TrimSpace(os.Getenv("CATALOG_MAX_IDLE_CONNS")); maxIdle != "" {
		if value, err := strconv.Atoi(maxIdle); err == nil && value > 0 {
			cfg.MaxIdleConns = value
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Path) == "" {
		c.Path = filepath.Join("data", "catalog.db")
	}
	if c.BusyTimeout <= 0 {
		c.BusyTimeout = 5 * time.Second
	}
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = 4
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = time.Hour
	}
	if c.ConnMaxIdleTime <= 0 {
		c.ConnMaxIdleTime = 10 * time.Minute
	}
}
