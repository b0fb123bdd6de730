package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Поддерживаемые хранилища счётчиков слотов
const (
	CounterBackendPostgres = "postgres"
	CounterBackendRedis    = "redis"
	CounterBackendMemory   = "memory"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
// Значения читаются из TOML файла, затем переопределяются переменными окружения (если заданы)
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	CompanyService CompanyServiceConfig `toml:"company_service"`
	Scheduling     SchedulingConfig     `toml:"scheduling"`
	Counters       CountersConfig       `toml:"counters"`
	Redis          RedisConfig          `toml:"redis"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" env:"LOG_FILE"`
	Level string `toml:"level" env:"LOG_LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type CompanyServiceConfig struct {
	URL     string `toml:"url" env:"COMPANY_SERVICE_URL"`
	Timeout int    `toml:"timeout"`
}

type SchedulingConfig struct {
	Timezone           string `toml:"timezone" env:"SCHEDULING_TIMEZONE"`
	AfternoonStartHour int    `toml:"afternoon_start_hour"`
	MaxRangeDays       int    `toml:"max_range_days"`
}

// Location часовой пояс, в котором определяется текущая половина дня
func (s SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

type CountersConfig struct {
	Backend string `toml:"backend" env:"COUNTERS_BACKEND"`
}

type RedisConfig struct {
	Addr      string `toml:"addr" env:"REDIS_ADDR"`
	Password  string `toml:"password" env:"REDIS_PASSWORD"`
	DB        int    `toml:"db" env:"REDIS_DB"`
	KeyPrefix string `toml:"key_prefix"`
}

// Load читает конфигурацию из файла, применяет значения по умолчанию,
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// Незаданные переменные окружения оставляют значения из файла
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "delivery_slots",
		},
		CompanyService: CompanyServiceConfig{
			Timeout: 5,
		},
		Scheduling: SchedulingConfig{
			Timezone:           "UTC",
			AfternoonStartHour: 13,
			MaxRangeDays:       62,
		},
		Counters: CountersConfig{
			Backend: CounterBackendPostgres,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "delivery_slots",
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be between 1 and 65535", ErrInvalidConfig)
	}

	switch c.Counters.Backend {
	case CounterBackendPostgres, CounterBackendRedis, CounterBackendMemory:
	default:
		return fmt.Errorf("%w: unknown counters.backend %q", ErrInvalidConfig, c.Counters.Backend)
	}

	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Scheduling.AfternoonStartHour < 1 || c.Scheduling.AfternoonStartHour > 23 {
		return fmt.Errorf("%w: scheduling.afternoon_start_hour must be between 1 and 23", ErrInvalidConfig)
	}

	if c.Scheduling.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: scheduling.max_range_days must be positive", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}

	return nil
}
