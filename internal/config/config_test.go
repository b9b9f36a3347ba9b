package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Errorf("expected :8080, got %s", cfg.HTTPAddr)
	}
	if cfg.StorageBackend != BackendRedis {
		t.Errorf("expected redis backend by default, got %s", cfg.StorageBackend)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected 5s shutdown timeout, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STORAGE_BACKEND", BackendMySQL)
	t.Setenv("SHUTDOWN_TIMEOUT", "30")
	t.Setenv("CATALOG_KEY", "alt:products")

	cfg := Load()
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.StorageBackend != BackendMySQL {
		t.Errorf("expected mysql backend, got %s", cfg.StorageBackend)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected 30s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.CatalogKey != "alt:products" {
		t.Errorf("expected alt:products, got %s", cfg.CatalogKey)
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected default 5s on bad value, got %s", cfg.ShutdownTimeout)
	}
}
