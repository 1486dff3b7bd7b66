package config

import "time"

// Config is the root configuration for the relay gateway.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Audit     AuditConfig     `yaml:"audit"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the address the server binds to (e.g., ":5000").
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing the response.
	// Must exceed the upstream timeout or slow upstream calls are cut off.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum duration to wait for the next request
	// on a keep-alive connection.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// MaxHeaderBytes limits the size of request headers.
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// CORS configures cross-origin resource sharing.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS settings for the HTTP server.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers"`
	MaxAge         int      `yaml:"max_age"`
}

// UpstreamConfig contains settings for the downstream LLM service.
type UpstreamConfig struct {
	// BaseURL is the base URL of the LLM service (e.g., "http://localhost:8000").
	BaseURL string `yaml:"base_url"`

	// ChatPath is the path of the chat endpoint, joined to BaseURL.
	ChatPath string `yaml:"chat_path"`

	// Timeout is the total timeout for one upstream call.
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitConfig contains sliding-window rate limiter settings.
type RateLimitConfig struct {
	// MaxRequests is the number of requests allowed per window per identity.
	MaxRequests int `yaml:"max_requests"`

	// Window is the sliding window duration.
	Window time.Duration `yaml:"window"`

	// SweepInterval is how often stale identities are swept.
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// AuditConfig contains audit trail settings.
type AuditConfig struct {
	// Enabled enables audit recording.
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// Buffer is the async recorder channel size.
	Buffer int `yaml:"buffer"`

	// WriteTimeout bounds a single storage write.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`
}

// SQLiteConfig contains settings for the SQLite audit backend.
type SQLiteConfig struct {
	Path         string        `yaml:"path"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	WALMode      bool          `yaml:"wal_mode"`
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled enables metric collection and the /metrics endpoint.
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace (default "relay").
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem (default "gateway").
	Subsystem string `yaml:"subsystem"`

	// Path is the metrics endpoint path (default "/metrics").
	Path string `yaml:"path"`

	// RequestDurationBuckets overrides the histogram buckets for request
	// durations, in seconds.
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}
