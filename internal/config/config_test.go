package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/freshmarket",
		"CATALOG_ADDRESS": "http://catalog:9090",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.RemovalConfirmTTL != 3*time.Second {
		t.Fatalf("unexpected removal ttl %s", cfg.RemovalConfirmTTL)
	}
	if cfg.SyncWorkers != defaultSyncWorkers || cfg.SyncQueueSize != defaultSyncQueueSize {
		t.Fatalf("unexpected sync defaults %d/%d", cfg.SyncWorkers, cfg.SyncQueueSize)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, lookupFrom(map[string]string{"CATALOG_ADDRESS": "http://catalog"})); err == nil {
		t.Fatal("expected error when database URI is missing")
	}
}

func TestLoadRequiresCatalogAddress(t *testing.T) {
	if _, err := load(nil, lookupFrom(map[string]string{"DATABASE_URI": "postgres://db"})); err == nil {
		t.Fatal("expected error when catalog address is missing")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	cfg, err := load(
		[]string{"-a", ":9999", "-removal-ttl", "5s", "-sync-workers", "8"},
		lookupFrom(map[string]string{
			"DATABASE_URI":    "postgres://db",
			"CATALOG_ADDRESS": "http://catalog",
			"RUN_ADDRESS":     ":8081",
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9999" {
		t.Fatalf("expected flag to win, got %q", cfg.RunAddress)
	}
	if cfg.RemovalConfirmTTL != 5*time.Second {
		t.Fatalf("unexpected removal ttl %s", cfg.RemovalConfirmTTL)
	}
	if cfg.SyncWorkers != 8 {
		t.Fatalf("unexpected sync workers %d", cfg.SyncWorkers)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	_, err := load([]string{"-removal-ttl", "soon"}, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://db",
		"CATALOG_ADDRESS": "http://catalog",
	}))
	if err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestLoadReadsSecretFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secret")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	cfg, err := load(nil, lookupFrom(map[string]string{
		"DATABASE_URI":     "postgres://db",
		"CATALOG_ADDRESS":  "http://catalog",
		"AUTH_SECRET_FILE": path,
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AuthSecret != "from-file" {
		t.Fatalf("expected secret from file, got %q", cfg.AuthSecret)
	}
}

func TestLoadNonPositiveValuesFallBack(t *testing.T) {
	cfg, err := load([]string{"-sync-workers", "-1", "-sync-queue", "0"}, lookupFrom(map[string]string{
		"DATABASE_URI":    "postgres://db",
		"CATALOG_ADDRESS": "http://catalog",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SyncWorkers != defaultSyncWorkers {
		t.Fatalf("expected workers fallback, got %d", cfg.SyncWorkers)
	}
	if cfg.SyncQueueSize != defaultSyncQueueSize {
		t.Fatalf("expected queue fallback, got %d", cfg.SyncQueueSize)
	}
}
