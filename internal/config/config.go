package config

import "time"

// Config holds all daemon configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Client  ClientConfig  `mapstructure:"client" validate:"required"`
}

// ServerConfig contains the HTTP ingestion server settings and the level of
// the daemon's own diagnostics.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// BackendConfig selects the sinks of the logging backend.
type BackendConfig struct {
	WorkerName  string        `mapstructure:"worker_name" validate:"required"`
	Stdout      bool          `mapstructure:"stdout"`
	Folder      string        `mapstructure:"folder" validate:"omitempty,dir"`
	RecvTimeout time.Duration `mapstructure:"recv_timeout" validate:"gt=0"`
}

// ClientConfig configures the daemon's own client of the backend.
type ClientConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Threshold string `mapstructure:"threshold" validate:"required,oneof=debug info warn error fatal"`
}
