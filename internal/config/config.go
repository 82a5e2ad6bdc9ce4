package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	// ErrReadConfig возвращается, когда не удалось прочитать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Broker        BrokerConfig        `toml:"broker"`
	Booking       BookingConfig       `toml:"booking"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string `toml:"url"` // если задан, остальные поля подключения игнорируются
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	URL        string `toml:"url"`
	TTLSeconds int    `toml:"ttl_seconds"`
	Prefix     string `toml:"prefix"`
}

type BrokerConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// BookingConfig значения по умолчанию, если в БД нет ни барберской, ни общей конфигурации
type BookingConfig struct {
	SeatCapacity           int    `toml:"seat_capacity"`
	UnseatedCapacity       int    `toml:"unseated_capacity"`
	DefaultDurationMinutes int    `toml:"default_duration_minutes"`
	SlotStepMinutes        int    `toml:"slot_step_minutes"`
	OpenTime               string `toml:"open_time"`
	CloseTime              string `toml:"close_time"`
	ReminderOffsetMinutes  int    `toml:"reminder_offset_minutes"`
}

// ToDomain конвертирует секцию в доменную конфигурацию
func (b BookingConfig) ToDomain() *domain.BookingConfig {
	return &domain.BookingConfig{
		SeatCapacity:           b.SeatCapacity,
		UnseatedCapacity:       b.UnseatedCapacity,
		DefaultDurationMinutes: b.DefaultDurationMinutes,
		SlotStepMinutes:        b.SlotStepMinutes,
		OpenTime:               types.TimeString(b.OpenTime),
		CloseTime:              types.TimeString(b.CloseTime),
		ReminderOffsetMinutes:  b.ReminderOffsetMinutes,
	}
}

type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

type NotificationsConfig struct {
	QueueSize int `toml:"queue_size"`
}

// Load читает .env (если есть), затем toml файл, затем переменные окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)

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
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "barber-booking"},
		Redis:   RedisConfig{TTLSeconds: 60, Prefix: "barber-booking"},
		Broker:  BrokerConfig{Exchange: "barber.bookings"},
		Booking: BookingConfig{
			SeatCapacity:           domain.DefaultSeatCapacity,
			UnseatedCapacity:       domain.DefaultUnseatedCapacity,
			DefaultDurationMinutes: domain.DefaultDurationMinutes,
			SlotStepMinutes:        domain.DefaultSlotStepMinutes,
			OpenTime:               domain.DefaultOpenTime,
			CloseTime:              domain.DefaultCloseTime,
			ReminderOffsetMinutes:  domain.DefaultReminderOffsetMinutes,
		},
		RateLimit:     RateLimitConfig{RequestsPerMinute: 60, Burst: 10},
		Notifications: NotificationsConfig{QueueSize: 100},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
		cfg.Redis.Enabled = true
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.Broker.URL = v
		cfg.Broker.Enabled = true
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.HTTPPort = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logs.Level = v
	}
}

// Validate проверяет значения, без которых сервис не сможет стартовать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if c.Database.URL == "" && (c.Database.Host == "" || c.Database.DBName == "") {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.URL == "" {
		return fmt.Errorf("%w: redis.url is required when redis is enabled", ErrInvalidConfig)
	}
	if c.Broker.Enabled && c.Broker.URL == "" {
		return fmt.Errorf("%w: broker.url is required when broker is enabled", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}
	if c.Notifications.QueueSize <= 0 {
		return fmt.Errorf("%w: notifications.queue_size must be positive", ErrInvalidConfig)
	}
	if err := c.Booking.ToDomain().Validate(); err != nil {
		return fmt.Errorf("%w: booking: %v", ErrInvalidConfig, err)
	}
	return nil
}
