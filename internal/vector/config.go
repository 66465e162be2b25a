// File path: internal/vector/config.go
package vector

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host       string
	Port       string
	Scheme     string
	Collection string
	APIKey     string

	Timeout time.Duration

	HTTPMaxIdleConns    int
	HTTPMaxIdlePerHost  int
	HTTPMaxConnsPerHost int
	HTTPIdleConnTimeout time.Duration
}

// LoadConfig reads the CHROMADB_* environment and fills in defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		Host:       strings.TrimSpace(os.Getenv("CHROMADB_HOST")),
		Port:       strings.TrimSpace(os.Getenv("CHROMADB_PORT")),
		Scheme:     strings.TrimSpace(os.Getenv("CHROMADB_SCHEME")),
		Collection: strings.TrimSpace(os.Getenv("CHROMADB_COLLECTION")),
		APIKey:     strings.TrimSpace(os.Getenv("CHROMADB_API_KEY")),
	}
	var err error
	if cfg.Timeout, err = envDuration("CHROMADB_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if cfg.HTTPIdleConnTimeout, err = envDuration("CHROMADB_HTTP_IDLE_CONN_TIMEOUT"); err != nil {
		return Config{}, err
	}
	if cfg.HTTPMaxIdleConns, err = envInt("CHROMADB_HTTP_MAX_IDLE_CONNS"); err != nil {
		return Config{}, err
	}
	if cfg.HTTPMaxIdlePerHost, err = envInt("CHROMADB_HTTP_MAX_IDLE_PER_HOST"); err != nil {
		return Config{}, err
	}
	if cfg.HTTPMaxConnsPerHost, err = envInt("CHROMADB_HTTP_MAX_CONNS_PER_HOST"); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == "" {
		c.Port = "8000"
	}
	if c.Scheme == "" {
		c.Scheme = "http"
	}
	if c.Collection == "" {
		c.Collection = "commerce_kb"
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.HTTPMaxIdleConns <= 0 {
		c.HTTPMaxIdleConns = 64
	}
	if c.HTTPMaxIdlePerHost <= 0 {
		c.HTTPMaxIdlePerHost = 16
	}
	if c.HTTPIdleConnTimeout <= 0 {
		c.HTTPIdleConnTimeout = 90 * time.Second
	}
}

func envDuration(key string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, nil
}

func envInt(key string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
