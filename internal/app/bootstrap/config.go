// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for wayfarer.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, datapool_path, etc.
//   - Environment variables: WAYFARER_MONGO_URI, WAYFARER_DATAPOOL_PATH, etc.
//   - Command-line flags: --mongo_uri, --datapool_path, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "wayfarer", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Datapool configuration
	{Name: "datapool_path", Default: "./datapool.json", Desc: "Path to the datapool JSON file"},
	{Name: "datapool_watch", Default: true, Desc: "Reload the datapool when the file is edited externally"},

	// Store operation timeouts
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single-document reads"},
	{Name: "timeout_medium", Default: "10s", Desc: "Timeout for writes and multi-step operations"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, WAYFARER_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	bridgeListenPort(logger)

	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "WAYFARER", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		DatapoolPath:  appValues.String("datapool_path"),
		DatapoolWatch: appValues.Bool("datapool_watch"),

		TimeoutShort:  appValues.Duration("timeout_short", 5*time.Second),
		TimeoutMedium: appValues.Duration("timeout_medium", 10*time.Second),
	}

	// Legacy hosting platforms exported the Mongo URI under provider names.
	// Honor them when mongo_uri itself was not configured.
	if appCfg.MongoURI == "mongodb://localhost:27017" {
		for _, envKey := range []string{"MONGOLAB_URI", "MONGOHQ_URL"} {
			if uri := os.Getenv(envKey); uri != "" {
				logger.Info("using legacy Mongo URI variable", zap.String("var", envKey))
				appCfg.MongoURI = uri
				break
			}
		}
	}

	return coreCfg, appCfg, nil
}

// bridgeListenPort maps the hosting platform's PORT variable into the core
// config layer, which owns the HTTP listener. Heroku-style platforms hand
// the assigned port to the process as PORT; without it the service listens
// on 5000, the port this deployment has always used. An explicit
// WAFFLE_HTTP_PORT wins over both.
func bridgeListenPort(logger *zap.Logger) {
	if os.Getenv("WAFFLE_HTTP_PORT") != "" {
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	} else if _, err := strconv.Atoi(port); err != nil {
		logger.Warn("ignoring non-numeric PORT variable", zap.String("value", port))
		port = "5000"
	} else {
		logger.Info("using platform listen port", zap.String("port", port))
	}

	os.Setenv("WAFFLE_HTTP_PORT", port)
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// Wayfarer validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.DatapoolPath == "" {
		return fmt.Errorf("datapool_path must not be empty")
	}

	return nil
}
