package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Redis     RedisConfig
	Shell     ShellConfig
	Apps      AppsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8000"`
	Host         string        `envconfig:"HOST" default:"0.0.0.0"`
	AllowOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	ShutdownWait time.Duration `envconfig:"SHUTDOWN_WAIT" default:"10s"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// StoreConfig selects and tunes the key-value backend.
type StoreConfig struct {
	Backend  string `envconfig:"STORE_BACKEND" default:"file"`
	Path     string `envconfig:"STORE_PATH" default:"/tmp/webdesk"`
	Compress bool   `envconfig:"STORE_COMPRESS" default:"false"`
	Cache    bool   `envconfig:"STORE_CACHE" default:"true"`
}

// RedisConfig holds the redis backend connection settings.
type RedisConfig struct {
	Addr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password    string        `envconfig:"REDIS_PASSWORD" default:""`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	Prefix      string        `envconfig:"REDIS_PREFIX" default:"webdesk:"`
	DialTimeout time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"2s"`
}

// ShellConfig holds desktop shell tunables.
type ShellConfig struct {
	CascadeOffset int           `envconfig:"WINDOW_CASCADE_OFFSET" default:"30"`
	BaseX         int           `envconfig:"WINDOW_BASE_X" default:"100"`
	BaseY         int           `envconfig:"WINDOW_BASE_Y" default:"100"`
	DefaultWidth  int           `envconfig:"WINDOW_WIDTH" default:"800"`
	DefaultHeight int           `envconfig:"WINDOW_HEIGHT" default:"600"`
	MinWidth      int           `envconfig:"WINDOW_MIN_WIDTH" default:"400"`
	MinHeight     int           `envconfig:"WINDOW_MIN_HEIGHT" default:"300"`
	PowerDelay    time.Duration `envconfig:"POWER_DELAY" default:"3s"`
	RecentLimit   int           `envconfig:"RECENT_LIMIT" default:"10"`
	MailLimit     int           `envconfig:"MAIL_LIMIT" default:"50"`
	ClockTick     time.Duration `envconfig:"CLOCK_TICK" default:"1s"`
}

// AppsConfig points at an optional app definitions file.
type AppsConfig struct {
	File string `envconfig:"APPS_FILE" default:""`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			Host:         "0.0.0.0",
			AllowOrigins: []string{"*"},
			ShutdownWait: 10 * time.Second,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Store: StoreConfig{
			Backend: "file",
			Path:    "/tmp/webdesk",
			Cache:   true,
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			Prefix:      "webdesk:",
			DialTimeout: 2 * time.Second,
		},
		Shell: DefaultShell(),
	}
}

// DefaultShell returns the stock shell tunables.
func DefaultShell() ShellConfig {
	return ShellConfig{
		CascadeOffset: 30,
		BaseX:         100,
		BaseY:         100,
		DefaultWidth:  800,
		DefaultHeight: 600,
		MinWidth:      400,
		MinHeight:     300,
		PowerDelay:    3 * time.Second,
		RecentLimit:   10,
		MailLimit:     50,
		ClockTick:     time.Second,
	}
}
