package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DB_DSN", "SHUTDOWN_TIMEOUT_SECONDS", "CORS_ALLOW_ORIGINS", "FREE_SHIPPING_THRESHOLD", "FLAT_SHIPPING_RATE", "CATALOG_PAGE_SIZE"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Zero(t, cfg.FreeShippingThresholdCents)
	assert.Zero(t, cfg.CatalogPageSize)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://shop.example.com, http://localhost:5173,")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "150")
	t.Setenv("FLAT_SHIPPING_RATE", "7.5")
	t.Setenv("CATALOG_PAGE_SIZE", "12")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, int64(15000), cfg.FreeShippingThresholdCents)
	assert.Equal(t, int64(750), cfg.FlatShippingRateCents)
	assert.Equal(t, 12, cfg.CatalogPageSize)
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "soon")
	t.Setenv("FLAT_SHIPPING_RATE", "-1")
	t.Setenv("CATALOG_PAGE_SIZE", "0")
	cfg := FromEnv()
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Zero(t, cfg.FlatShippingRateCents)
	assert.Zero(t, cfg.CatalogPageSize)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ADMIN_JWT_SECRET=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("ADMIN_JWT_SECRET", "")
	os.Unsetenv("ADMIN_JWT_SECRET")

	LoadDotEnv(path)
	assert.Equal(t, "from-dotenv", FromEnv().AdminJWTSecret)
	LoadDotEnv(filepath.Join(dir, "missing.env"))
}
