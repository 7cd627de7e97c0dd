// Package config provides configuration management for worlddb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
//   - Default config (from New()) is always valid - no validation needed
//   - All mutations go through Option functions
//   - Invalid options are rejected with gn.Warn() - config remains valid
//   - ToOptions() converts persistent fields (those in config.yaml)
//
// # Environment Variables
//
// Use the WORLDDB_ prefix with underscores for nesting:
//
//	WORLDDB_DATABASE_HOST=localhost
//	WORLDDB_DATABASE_PORT=5432
//	WORLDDB_LOG_LEVEL=info
package config

// Config represents the complete worlddb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Seed contains settings for the dataset seeding phase.
	Seed SeedConfig `mapstructure:"seed" yaml:"seed"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and log directories reside.
	// It is set by the CLI during init; there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// SeedConfig contains settings specific to the install/seed phase.
type SeedConfig struct {
	// BatchSize is the number of rows inserted per statement during
	// bulk seeding of states and cities. It bounds peak memory and
	// per-statement payload size.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// HTTPTimeoutSec is the timeout for downloading remote datasets,
	// in seconds. The cities dataset is tens of megabytes, so this
	// default is generous.
	HTTPTimeoutSec int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "worlddb",
			SSLMode:  "disable",
		},
		Seed: SeedConfig{
			BatchSize:      500,
			HTTPTimeoutSec: 180,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
	}

	return res
}
