// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: CoreConfig handles ports,
// TLS, log level and the rest of the framework surface.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Datapool: the shared flat-file JSON blob served at /datapool.
	DatapoolPath  string // path to the backing file; seeded with {} when absent
	DatapoolWatch bool   // reload the file when it is edited outside the process

	// Per-operation store timeouts. Zero keeps the defaults.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
}
