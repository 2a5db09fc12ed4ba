package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.noroff.dev/api/v1", cfg.APIBase)
	assert.Equal(t, "https://api.noroff.dev/api/v1/online-shop", cfg.OnlineShopBase)
	assert.Equal(t, "https://v2.api.noroff.dev/auth", cfg.AuthBase)
	assert.Equal(t, "https://api.noroff.dev/api/v1/auth", cfg.AuthLegacyBase)

	assert.Equal(t, "the-shop-cart", cfg.StorageKeys.Cart)
	assert.Equal(t, "theShopToken", cfg.StorageKeys.Token)
	assert.Equal(t, "theShopUser", cfg.StorageKeys.Profile)
	assert.Equal(t, "the-shop-last-order", cfg.StorageKeys.Order)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SHOP_AUTH_BASE", "https://staging.example.com/auth")
	t.Setenv("SHOP_STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com/auth", cfg.AuthBase)
	assert.Equal(t, "memory", cfg.StorageBackend)
}

func TestAppendPath(t *testing.T) {
	assert.Equal(t, "https://a/x", AppendPath("https://a", "x"))
	assert.Equal(t, "https://a/x", AppendPath("https://a", "/x"))
	assert.Equal(t, "https://a", AppendPath("https://a", ""))
	assert.Equal(t, "x", AppendPath("", "x"))
	assert.Equal(t, "https://other/y", AppendPath("https://a", "https://other/y"),
		"absolute URLs pass through")
}

func TestAuthEndpoints(t *testing.T) {
	cfg := &Config{
		AuthBase:       "https://v2.example.com/auth",
		AuthLegacyBase: "https://example.com/api/v1/auth",
	}

	assert.Equal(t, []string{
		"https://v2.example.com/auth/login",
		"https://example.com/api/v1/auth/login",
	}, cfg.AuthEndpoints("login"))

	t.Run("Duplicate bases collapse", func(t *testing.T) {
		same := &Config{AuthBase: "https://a/auth", AuthLegacyBase: "https://a/auth"}
		assert.Equal(t, []string{"https://a/auth/login"}, same.AuthEndpoints("login"))
	})

	t.Run("Missing bases are skipped", func(t *testing.T) {
		legacyOnly := &Config{AuthLegacyBase: "https://a/auth"}
		assert.Equal(t, []string{"https://a/auth/register"}, legacyOnly.AuthEndpoints("register"))
	})
}
