package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// Add other server settings as needed (e.g., timeouts)
}

// StorageConfig selects and locates the durable record backend.
type StorageConfig struct {
	// Backend picks the record store implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`

	// Path is the data directory for the file backend, or the database
	// file for the sqlite backend.
	Path string `mapstructure:"path" validate:"required"`
}
