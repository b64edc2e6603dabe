package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration, loaded from config.toml.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Booking  BookingConfig  `toml:"booking"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// ServerConfig holds the HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds the lib/pq connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL builds the postgres:// form used by golang-migrate.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// RedisConfig holds the optional redis settings for the shared rate limiter.
// When Enabled is false the in-process sliding window limiter is used.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// LogsConfig holds the logger settings.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig holds the prometheus settings.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig holds the anti-forgery token and the abuse guard thresholds.
type BookingConfig struct {
	Token                string `toml:"token"`
	MaxAttemptsPerWindow int    `toml:"max_attempts_per_window"`
	AttemptWindowMinutes int    `toml:"attempt_window_minutes"`
	MaxConfirmedPerPhone int    `toml:"max_confirmed_per_phone"`
	PhoneQuotaWindowDays int    `toml:"phone_quota_window_days"`
}

// ScheduleConfig holds the business hours. Weekdays uses English day names
// ("Monday" ... "Sunday"); holidays are exact dates in YYYY-MM-DD.
type ScheduleConfig struct {
	OpenTime    string   `toml:"open_time"`
	CloseTime   string   `toml:"close_time"`
	LunchStart  string   `toml:"lunch_start"`
	LunchEnd    string   `toml:"lunch_end"`
	SlotMinutes int      `toml:"slot_minutes"`
	Weekdays    []string `toml:"weekdays"`
	Holidays    []string `toml:"holidays"`
}

// Load reads and parses the TOML configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Booking.Token == "" {
		return nil, fmt.Errorf("config: booking.token is required")
	}

	return &cfg, nil
}
