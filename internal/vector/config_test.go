// File path: internal/vector/config_test.go
package vector

import (
	"testing"
	"time"
)

func clearChromaEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CHROMADB_HOST", "CHROMADB_PORT", "CHROMADB_SCHEME", "CHROMADB_COLLECTION",
		"CHROMADB_API_KEY", "CHROMADB_TIMEOUT", "CHROMADB_HTTP_IDLE_CONN_TIMEOUT",
		"CHROMADB_HTTP_MAX_IDLE_CONNS", "CHROMADB_HTTP_MAX_IDLE_PER_HOST",
		"CHROMADB_HTTP_MAX_CONNS_PER_HOST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearChromaEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Host != "localhost" || cfg.Port != "8000" || cfg.Scheme != "http" {
		t.Fatalf("unexpected endpoint defaults: %+v", cfg)
	}
	if cfg.Collection != "commerce_kb" {
		t.Fatalf("unexpected default collection: %q", cfg.Collection)
	}
	if cfg.Timeout != 10*time.Second || cfg.HTTPIdleConnTimeout != 90*time.Second {
		t.Fatalf("unexpected timeout defaults: %+v", cfg)
	}
	if cfg.HTTPMaxIdleConns != 64 || cfg.HTTPMaxIdlePerHost != 16 {
		t.Fatalf("unexpected pool defaults: %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearChromaEnv(t)
	t.Setenv("CHROMADB_HOST", "vector.internal")
	t.Setenv("CHROMADB_PORT", "9000")
	t.Setenv("CHROMADB_COLLECTION", "staging_kb")
	t.Setenv("CHROMADB_TIMEOUT", "3s")
	t.Setenv("CHROMADB_HTTP_MAX_IDLE_CONNS", "8")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Host != "vector.internal" || cfg.Port != "9000" {
		t.Fatalf("env endpoint not applied: %+v", cfg)
	}
	if cfg.Collection != "staging_kb" || cfg.Timeout != 3*time.Second || cfg.HTTPMaxIdleConns != 8 {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	clearChromaEnv(t)
	t.Setenv("CHROMADB_TIMEOUT", "soon")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid timeout")
	}
	clearChromaEnv(t)
	t.Setenv("CHROMADB_HTTP_MAX_IDLE_CONNS", "many")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for invalid pool size")
	}
}
