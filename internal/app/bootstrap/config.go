// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for MemeDeck.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, meme_api_url, etc.
//   - Environment variables: MEMEDECK_MONGO_URI, MEMEDECK_MEME_API_URL, etc.
//   - Command-line flags: --mongo_uri, --meme_api_url, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "memedeck", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Meme prompt provider
	{Name: "meme_api_url", Default: "https://api.imgflip.com", Desc: "Base URL of the meme image API"},
	{Name: "meme_fetch_timeout", Default: "5s", Desc: "Per-request timeout for prompt image fetches (e.g., 5s, 10s)"},

	// Base URL for QR-encoded join links
	{Name: "base_url", Default: "http://localhost:3000", Desc: "Public base URL of this deployment"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, MEMEDECK_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "MEMEDECK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		MemeAPIURL:       appValues.String("meme_api_url"),
		MemeFetchTimeout: appValues.Duration("meme_fetch_timeout", 5*time.Second),

		BaseURL: appValues.String("base_url"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// MemeDeck validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MemeAPIURL == "" {
		return fmt.Errorf("meme_api_url must be set")
	}
	if appCfg.MemeFetchTimeout <= 0 {
		return fmt.Errorf("meme_fetch_timeout must be positive")
	}
	return nil
}
