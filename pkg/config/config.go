package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// StorageKeys names the entries the stores read and write in the
// key/value storage backend.
type StorageKeys struct {
	Cart    string `envconfig:"STORAGE_KEY_CART" default:"the-shop-cart"`
	Token   string `envconfig:"STORAGE_KEY_TOKEN" default:"theShopToken"`
	Profile string `envconfig:"STORAGE_KEY_PROFILE" default:"theShopUser"`
	Order   string `envconfig:"STORAGE_KEY_ORDER" default:"the-shop-last-order"`
}

// Config carries the fixed base URLs, storage key names and backend
// selection for the whole application. Values come from SHOP_* environment
// variables with the defaults below.
type Config struct {
	APIBase        string `envconfig:"API_BASE" default:"https://api.noroff.dev/api/v1"`
	OnlineShopBase string `envconfig:"ONLINE_SHOP_BASE" default:"https://api.noroff.dev/api/v1/online-shop"`
	AuthBase       string `envconfig:"AUTH_BASE" default:"https://v2.api.noroff.dev/auth"`
	AuthLegacyBase string `envconfig:"AUTH_LEGACY_BASE" default:"https://api.noroff.dev/api/v1/auth"`

	StorageKeys StorageKeys

	// StorageBackend selects where state lives: memory, file or mysql.
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"file"`
	StoragePath    string `envconfig:"STORAGE_PATH" default:"the-shop.json"`
	StorageDSN     string `envconfig:"STORAGE_DSN"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	Currency    string        `envconfig:"CURRENCY" default:"USD"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("shop", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AppendPath joins a base URL and a path. Absolute paths pass through
// untouched so callers can hand in a full URL when they already have one.
func AppendPath(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	if strings.HasPrefix(path, "/") {
		return base + path
	}
	return base + "/" + path
}

// OnlineShopURL resolves a path against the product catalog base.
func (c *Config) OnlineShopURL(path string) string {
	return AppendPath(c.OnlineShopBase, path)
}

// AuthEndpoints returns the ordered candidate URLs for an authentication
// path: the current auth API first, the legacy base second. Duplicates are
// dropped so a misconfigured pair of identical bases yields one attempt.
func (c *Config) AuthEndpoints(path string) []string {
	var urls []string
	for _, base := range []string{c.AuthBase, c.AuthLegacyBase} {
		if base == "" {
			continue
		}
		candidate := AppendPath(base, path)
		if candidate == "" {
			continue
		}
		duplicate := false
		for _, seen := range urls {
			if seen == candidate {
				duplicate = true
				break
			}
		}
		if !duplicate {
			urls = append(urls, candidate)
		}
	}
	return urls
}
