package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Realtime RealtimeConfig `mapstructure:"realtime" validate:"required"`
	Notifier NotifierConfig `mapstructure:"notifier" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// LogFile enables a rotating file sink in addition to stdout.
	LogFile string `mapstructure:"log_file"`
	// ShutdownTimeoutSeconds bounds graceful shutdown of HTTP and websocket connections.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the store implementation: "postgres" or "sqlite".
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a postgres connection URL or a sqlite DSN.
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// RealtimeConfig contains the websocket hub settings.
type RealtimeConfig struct {
	// AllowedOrigins restricts websocket upgrades by Origin header. Empty allows all.
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
	SendBuffer          int      `mapstructure:"send_buffer"           validate:"gt=0"`
	PingIntervalSeconds int      `mapstructure:"ping_interval_seconds" validate:"gt=0"`
	PongWaitSeconds     int      `mapstructure:"pong_wait_seconds"     validate:"gtfield=PingIntervalSeconds"`
	WriteWaitSeconds    int      `mapstructure:"write_wait_seconds"    validate:"gt=0"`
	MaxMessageBytes     int64    `mapstructure:"max_message_bytes"     validate:"gt=0"`
	// EnforceRoomIdentity rejects joinUserRoom requests whose room does not
	// match the connection's authenticated user. Off by default.
	EnforceRoomIdentity bool `mapstructure:"enforce_room_identity"`
}

// PingInterval returns the keepalive ping period.
func (c RealtimeConfig) PingInterval() time.Duration {
	return time.Duration(c.PingIntervalSeconds) * time.Second
}

// PongWait returns how long a connection may stay silent before it is dropped.
func (c RealtimeConfig) PongWait() time.Duration {
	return time.Duration(c.PongWaitSeconds) * time.Second
}

// WriteWait returns the deadline applied to every websocket write.
func (c RealtimeConfig) WriteWait() time.Duration {
	return time.Duration(c.WriteWaitSeconds) * time.Second
}

// NotifierConfig contains the circuit breaker settings guarding notification persistence.
type NotifierConfig struct {
	BreakerEnabled        bool   `mapstructure:"breaker_enabled"`
	BreakerMaxFailures    uint32 `mapstructure:"breaker_max_failures"    validate:"gt=0"`
	BreakerTimeoutSeconds int    `mapstructure:"breaker_timeout_seconds" validate:"gt=0"`
}
