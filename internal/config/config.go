package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SmartScheduler/pkg/types"
)

// Драйверы базы данных
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Переменные окружения, переопределяющие значения из файла
const (
	EnvDBDriver   = "SCHEDULER_DB_DRIVER"
	EnvDBDSN      = "SCHEDULER_DB_DSN"
	EnvSQLitePath = "SCHEDULER_SQLITE_PATH"
	EnvHTTPPort   = "SCHEDULER_HTTP_PORT"
	EnvLogLevel   = "SCHEDULER_LOG_LEVEL"
	EnvLogFile    = "SCHEDULER_LOG_FILE"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация приложения
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Jobs      JobsConfig      `toml:"jobs"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к базе
type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	URL             string `toml:"url"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	SQLitePath      string `toml:"sqlite_path"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig значения планировщика по умолчанию
type ScheduleConfig struct {
	WorkStart              string `toml:"work_start"`
	WorkEnd                string `toml:"work_end"`
	DefaultDurationMinutes int    `toml:"default_duration_minutes"`
	DefaultUserID          int64  `toml:"default_user_id"`
	Timezone               string `toml:"timezone"`
}

// RateLimitConfig ограничение частоты запросов на клиента
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// JobsConfig фоновые задания
type JobsConfig struct {
	Enabled      bool   `toml:"enabled"`
	StatsRefresh string `toml:"stats_refresh"`
}

// Default возвращает конфигурацию по умолчанию: локальная SQLite база,
// рабочий день 09:00-17:00
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "smart_scheduler",
			SSLMode:         "disable",
			SQLitePath:      "data/smart_scheduler.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     false,
			Path:        "/metrics",
			ServiceName: "smart-scheduler",
		},
		Schedule: ScheduleConfig{
			WorkStart:              "09:00",
			WorkEnd:                "17:00",
			DefaultDurationMinutes: 60,
			DefaultUserID:          1,
			Timezone:               "UTC",
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Jobs: JobsConfig{
			Enabled:      true,
			StatsRefresh: "@every 1m",
		},
	}
}

// Load читает .env (если есть), TOML-файл (если есть) и переменные окружения.
// Отсутствующий файл не ошибка: используются значения по умолчанию.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDBDriver); v != "" {
		c.Database.Driver = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDBDSN); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv(EnvSQLitePath); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv(EnvHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvHTTPPort, v)
		}
		c.Server.HTTPPort = port
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logs.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logs.File = v
	}
	return nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			return fmt.Errorf("%w: database.host or database.url is required for postgres", ErrInvalidConfig)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" && c.Database.URL == "" {
			return fmt.Errorf("%w: database.sqlite_path is required for sqlite", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	start, err := types.ParseTimeOfDay(c.Schedule.WorkStart)
	if err != nil {
		return fmt.Errorf("%w: schedule.work_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.ParseTimeOfDay(c.Schedule.WorkEnd)
	if err != nil {
		return fmt.Errorf("%w: schedule.work_end: %v", ErrInvalidConfig, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: schedule.work_start must be before schedule.work_end", ErrInvalidConfig)
	}
	if c.Schedule.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("%w: schedule.default_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.Schedule.DefaultUserID <= 0 {
		return fmt.Errorf("%w: schedule.default_user_id must be positive", ErrInvalidConfig)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return fmt.Errorf("%w: schedule.timezone: %v", ErrInvalidConfig, err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	return nil
}

// DSN строка подключения для выбранного драйвера
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == DriverSQLite {
		return d.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// WorkWindow рабочий день по умолчанию
func (s ScheduleConfig) WorkWindow() (types.TimeOfDay, types.TimeOfDay) {
	start, _ := types.ParseTimeOfDay(s.WorkStart)
	end, _ := types.ParseTimeOfDay(s.WorkEnd)
	return start, end
}

// Location часовой пояс для вычисления "сегодня"
func (s ScheduleConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}
