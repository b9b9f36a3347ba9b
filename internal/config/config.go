// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Backend selects which blob store adapter backs the collections.
const (
	BackendRedis = "redis"
	BackendMySQL = "mysql"
)

// Config holds configuration knobs for the HTTP server and storage.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	StorageBackend string
	RedisAddr      string
	MySQLDSN       string

	CatalogKey string
	LedgerKey  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durenvs(key string, defSec int) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return time.Duration(defSec) * time.Second
	}
	sec, err := strconv.Atoi(v)
	if err != nil {
		return time.Duration(defSec) * time.Second
	}
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 5),
		StorageBackend:  getenv("STORAGE_BACKEND", BackendRedis),
		RedisAddr:       getenv("REDIS_ADDR", "localhost:6379"),
		MySQLDSN:        getenv("MYSQL_DSN", "root:root@tcp(localhost:3306)/stockledger?parseTime=true"),
		CatalogKey:      getenv("CATALOG_KEY", ""),
		LedgerKey:       getenv("LEDGER_KEY", ""),
	}
}
