package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Payments PaymentsConfig `toml:"payments"`
	Booking  BookingConfig  `toml:"booking"`
	Sweep    SweepConfig    `toml:"sweep"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// PaymentsConfig настройки платёжного провайдера
type PaymentsConfig struct {
	StripeSecretKey string `toml:"stripe_secret_key"`
	Currency        string `toml:"currency"`
}

// BookingConfig бизнес-политики бронирования
type BookingConfig struct {
	Timezone                string  `toml:"timezone"`                  // часовой пояс салона, например "America/New_York"
	HoldTTLMinutes          int     `toml:"hold_ttl_minutes"`          // время жизни неоплаченного hold
	CancellationWindowHours int     `toml:"cancellation_window_hours"` // окно самостоятельной отмены клиентом
	DefaultDepositPercent   float64 `toml:"default_deposit_percent"`
	DefaultTaxRate          float64 `toml:"default_tax_rate"`
}

// SweepConfig настройки фоновой очистки просроченных hold
type SweepConfig struct {
	Enabled  bool   `toml:"enabled"`
	CronSpec string `toml:"cron_spec"` // например "*/5 * * * *"
}

// Load загружает конфигурацию из toml-файла и применяет дефолты
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "booking-service"
	}
	if cfg.Payments.Currency == "" {
		cfg.Payments.Currency = "usd"
	}
	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "UTC"
	}
	if cfg.Booking.HoldTTLMinutes == 0 {
		cfg.Booking.HoldTTLMinutes = 30
	}
	if cfg.Booking.CancellationWindowHours == 0 {
		cfg.Booking.CancellationWindowHours = 24
	}
	if cfg.Booking.DefaultDepositPercent == 0 {
		cfg.Booking.DefaultDepositPercent = 0.2
	}
	if cfg.Sweep.CronSpec == "" {
		cfg.Sweep.CronSpec = "*/5 * * * *"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if cfg.Booking.DefaultDepositPercent < 0 || cfg.Booking.DefaultDepositPercent > 1 {
		return fmt.Errorf("config: booking.default_deposit_percent must be in [0, 1]")
	}
	if cfg.Booking.DefaultTaxRate < 0 || cfg.Booking.DefaultTaxRate > 1 {
		return fmt.Errorf("config: booking.default_tax_rate must be in [0, 1]")
	}
	return nil
}
