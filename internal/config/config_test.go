package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8081"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 120*time.Second, cfg.Cache.ProductListTTL)
	assert.Equal(t, 10, cfg.Catalog.LowStockThreshold)
	assert.Equal(t, 18, cfg.Catalog.PublicPageLimit)
	assert.Equal(t, 10, cfg.Catalog.AdminPageLimit)
	assert.Equal(t, 8, cfg.Catalog.HighlightLimit)
	assert.Equal(t, 4.0, cfg.Catalog.FeaturedMinRating)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://shop.example.com , https://admin.example.com")
	t.Setenv("CACHE_TTL_PRODUCT_DETAIL", "1m")
	t.Setenv("CATALOG_LOW_STOCK_THRESHOLD", "3")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.Cache.ProductDetailTTL)
	assert.Equal(t, 3, cfg.Catalog.LowStockThreshold)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SERVER_REQUEST_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "SERVER_REQUEST_TIMEOUT")
}

func TestLoad_NegativeLowStockThreshold(t *testing.T) {
	t.Setenv("CATALOG_LOW_STOCK_THRESHOLD", "-1")

	_, err := Load()
	assert.ErrorContains(t, err, "CATALOG_LOW_STOCK_THRESHOLD")
}

func TestConfig_GetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: "5432", User: "u", Password: "p", Name: "catalog", SSLMode: "disable",
	}}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=catalog sslmode=disable", cfg.GetDSN())
}

func TestConfig_GetRedisAddr(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "cache", Port: "6380"}}

	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
}
