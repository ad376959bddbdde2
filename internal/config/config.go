package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	CatalogAddress    string
	AuthSecret        string
	RemovalConfirmTTL time.Duration
	SyncWorkers       int
	SyncQueueSize     int
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress        = ":8080"
	defaultAuthSecret        = "change-me-in-production"
	defaultRemovalConfirmTTL = 3 * time.Second
	defaultSyncWorkers       = 2
	defaultSyncQueueSize     = 64
	defaultShutdownTimeout   = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		CatalogAddress:    getString(lookup, "CATALOG_ADDRESS", ""),
		AuthSecret:        getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		RemovalConfirmTTL: getDuration(lookup, "REMOVAL_CONFIRM_TTL", defaultRemovalConfirmTTL),
		SyncWorkers:       getInt(lookup, "SYNC_WORKERS", defaultSyncWorkers),
		SyncQueueSize:     getInt(lookup, "SYNC_QUEUE_SIZE", defaultSyncQueueSize),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("freshmarket", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		removalTTLStr      = cfg.RemovalConfirmTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.CatalogAddress, "c", cfg.CatalogAddress, "Product catalog base URL")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&removalTTLStr, "removal-ttl", removalTTLStr, "How long a pending line removal stays armed")
	fs.IntVar(&cfg.SyncWorkers, "sync-workers", cfg.SyncWorkers, "Number of concurrent cart sync workers")
	fs.IntVar(&cfg.SyncQueueSize, "sync-queue", cfg.SyncQueueSize, "Capacity of the cart sync queue")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RemovalConfirmTTL, err = time.ParseDuration(removalTTLStr); err != nil {
		return nil, fmt.Errorf("invalid removal ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.RemovalConfirmTTL <= 0 {
		cfg.RemovalConfirmTTL = defaultRemovalConfirmTTL
	}

	if cfg.SyncWorkers <= 0 {
		cfg.SyncWorkers = defaultSyncWorkers
	}

	if cfg.SyncQueueSize <= 0 {
		cfg.SyncQueueSize = defaultSyncQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.CatalogAddress == "" {
		return nil, fmt.Errorf("catalog address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
