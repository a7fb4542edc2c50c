package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read file")

	// ErrInvalidConfig возвращается при недопустимых значениях
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Rules    RulesConfig    `toml:"rules"`
	ICS      ICSConfig      `toml:"ics"`

	SellerService SellerServiceConfig `toml:"seller_service"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // в секундах
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"` // пусто = только stdout
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RulesConfig настройки правил раскраски
type RulesConfig struct {
	PresetFile string `toml:"preset_file"` // пусто = встроенные правила по умолчанию
	Watch      bool   `toml:"watch"`       // перечитывать пресет при изменении файла
}

// ICSConfig настройки импорта календарей
type ICSConfig struct {
	Timeout              int   `toml:"timeout"` // в секундах
	MaxBodyBytes         int64 `toml:"max_body_bytes"`
	AllowPrivateNetworks bool  `toml:"allow_private_networks"` // только для локальной разработки
}

// SellerServiceConfig настройки клиента SellerService
type SellerServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // в секундах
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и проверяет ее
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}
	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: decode toml: %v", ErrInvalidConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults заполняет незаданные поля
func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}

	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "calendar-service"
	}

	if c.ICS.Timeout == 0 {
		c.ICS.Timeout = 10
	}
	if c.ICS.MaxBodyBytes == 0 {
		c.ICS.MaxBodyBytes = 5 << 20
	}

	if c.SellerService.URL == "" {
		c.SellerService.URL = "http://localhost:8081"
	}
	if c.SellerService.Timeout == 0 {
		c.SellerService.Timeout = 5
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server timeouts must not be negative", ErrInvalidConfig)
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.MaxOpenConns < 0 || c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("%w: database pool sizes must not be negative", ErrInvalidConfig)
	}
	if c.Database.MaxOpenConns > 0 && c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns must not exceed max_open_conns", ErrInvalidConfig)
	}

	switch c.Logs.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logs.level must be one of debug, info, warn, error", ErrInvalidConfig)
	}

	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.Path[0] != '/') {
		return fmt.Errorf("%w: metrics.path must start with /", ErrInvalidConfig)
	}

	if c.Rules.Watch && c.Rules.PresetFile == "" {
		return fmt.Errorf("%w: rules.watch requires rules.preset_file", ErrInvalidConfig)
	}

	if c.ICS.Timeout < 0 {
		return fmt.Errorf("%w: ics.timeout must not be negative", ErrInvalidConfig)
	}
	if c.ICS.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: ics.max_body_bytes must not be negative", ErrInvalidConfig)
	}

	if !strings.HasPrefix(c.SellerService.URL, "http://") && !strings.HasPrefix(c.SellerService.URL, "https://") {
		return fmt.Errorf("%w: seller_service.url must be an http(s) address", ErrInvalidConfig)
	}
	if c.SellerService.Timeout < 0 {
		return fmt.Errorf("%w: seller_service.timeout must not be negative", ErrInvalidConfig)
	}

	return nil
}
