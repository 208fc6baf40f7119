package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Attendance AttendanceConfig `yaml:"attendance"`
	CORS       CORSConfig       `yaml:"cors"`
}

// WorkerPoolConfig holds the configuration for the push notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size" env:"GYM_WORKER_POOL_SIZE"`
}

// PushConfig holds the VAPID keys for web push notifications.
// Push fan-out stays off while either key is empty.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key" env:"GYM_VAPID_PUBLIC_KEY"`
	PrivateKey string `yaml:"vapid_private_key" env:"GYM_VAPID_PRIVATE_KEY"`
	Subject    string `yaml:"subject" env:"GYM_VAPID_SUBJECT"`
	TTL        int    `yaml:"ttl" env:"GYM_PUSH_TTL"`
}

// Enabled reports whether both VAPID keys are configured.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port" env:"GYM_SERVER_PORT"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec" env:"GYM_RATE_LIMIT_PER_SEC"`
	RateLimitBurst  int     `yaml:"rate_limit_burst" env:"GYM_RATE_LIMIT_BURST"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds" env:"GYM_CACHE_TTL_SECONDS"`
}

// DatabaseConfig holds the storage connection configuration. A DSN starting with
// postgres:// selects PostgreSQL, anything else is opened as a SQLite file.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn" env:"GYM_DATABASE_DSN"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogQueries             bool   `yaml:"log_queries" env:"GYM_DATABASE_LOG_QUERIES"`
}

// AttendanceConfig tunes the attendance tracker.
type AttendanceConfig struct {
	Timezone                 string         `yaml:"timezone" env:"GYM_TIMEZONE"`
	Location                 *time.Location `yaml:"-"` // Resolved from Timezone
	NotificationDelaySeconds int            `yaml:"notification_delay_seconds" env:"GYM_NOTIFICATION_DELAY_SECONDS"`
	NotificationDelay        time.Duration  `yaml:"-"`
	FormTTLMinutes           int            `yaml:"form_ttl_minutes" env:"GYM_FORM_TTL_MINUTES"`
	FormTTL                  time.Duration  `yaml:"-"`
	SeedDemo                 bool           `yaml:"seed_demo" env:"GYM_SEED_DEMO"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"GYM_CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Load reads the configuration from the given path, then applies GYM_* environment overrides.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "gym.db"
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	if cfg.Attendance.Timezone == "" {
		cfg.Attendance.Timezone = "Local"
	}
	loc, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", cfg.Attendance.Timezone, err)
	}
	cfg.Attendance.Location = loc

	if cfg.Attendance.NotificationDelaySeconds <= 0 {
		cfg.Attendance.NotificationDelaySeconds = 3
	}
	cfg.Attendance.NotificationDelay = time.Duration(cfg.Attendance.NotificationDelaySeconds) * time.Second

	if cfg.Attendance.FormTTLMinutes <= 0 {
		cfg.Attendance.FormTTLMinutes = 30
	}
	cfg.Attendance.FormTTL = time.Duration(cfg.Attendance.FormTTLMinutes) * time.Minute

	return nil
}
