package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/CourtBook-ReservationService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Booking  BookingConfig  `toml:"booking"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	LockTimeoutMS   int    `toml:"lock_timeout_ms"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки аутентификации
type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
	AdminName       string `toml:"admin_name"`
	AdminEmail      string `toml:"admin_email"`
	AdminPassword   string `toml:"admin_password"`
}

// BookingConfig рабочее окно бронирования
type BookingConfig struct {
	OpenHour  int `toml:"open_hour"`
	CloseHour int `toml:"close_hour"`
	Courts    int `toml:"courts"`
}

// Window конвертирует конфигурацию в доменное рабочее окно
func (b BookingConfig) Window() domain.OperatingWindow {
	return domain.OperatingWindow{
		OpenHour:  b.OpenHour,
		CloseHour: b.CloseHour,
		Courts:    b.Courts,
	}
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled  bool   `toml:"enabled"`
	AMQPURL  string `toml:"amqp_url"`
	Exchange string `toml:"exchange"`
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			LockTimeoutMS:   3000,
		},
		Logs: LogsConfig{
			File:  "service.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "courtbook-reservation-service",
		},
		Auth: AuthConfig{
			TokenTTLMinutes: 60 * 24,
		},
		Booking: BookingConfig{
			OpenHour:  domain.DefaultOpenHour,
			CloseHour: domain.DefaultCloseHour,
			Courts:    domain.DefaultCourts,
		},
		Events: EventsConfig{
			Exchange: "courtbook.events",
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required")
	}
	if c.Booking.OpenHour < 0 || c.Booking.CloseHour > 24 {
		return fmt.Errorf("config: booking hours must lie within a calendar day")
	}
	if c.Booking.OpenHour >= c.Booking.CloseHour {
		return fmt.Errorf("config: booking.open_hour must be before booking.close_hour")
	}
	if c.Booking.Courts < 1 {
		return fmt.Errorf("config: booking.courts must be positive")
	}
	if c.Events.Enabled && c.Events.AMQPURL == "" {
		return fmt.Errorf("config: events.amqp_url is required when events are enabled")
	}
	return nil
}
