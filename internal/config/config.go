package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"

	"github.com/m04kA/SMC-CheckinService/internal/domain"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
const EnvPrefix = "CHECKIN"

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
	StorageDriverMemory   = "memory"
)

// Драйверы отправки подтверждений
const (
	NotifierDriverEmailJS = "emailjs"
	NotifierDriverLog     = "log"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server" envconfig:"SERVER"`
	Database DatabaseConfig `toml:"database" envconfig:"DATABASE"`
	Redis    RedisConfig    `toml:"redis" envconfig:"REDIS"`
	Storage  StorageConfig  `toml:"storage" envconfig:"STORAGE"`
	Logs     LogsConfig     `toml:"logs" envconfig:"LOGS"`
	Metrics  MetricsConfig  `toml:"metrics" envconfig:"METRICS"`
	Auth     AuthConfig     `toml:"auth" envconfig:"AUTH"`
	Notifier NotifierConfig `toml:"notifier" envconfig:"NOTIFIER"`
	Booking  BookingConfig  `toml:"booking" envconfig:"BOOKING"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" envconfig:"AUTO_MIGRATE"`
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

// RedisConfig настройки подключения к Redis
type RedisConfig struct {
	Addr      string `toml:"addr" envconfig:"ADDR"`
	Password  string `toml:"password" envconfig:"PASSWORD"`
	DB        int    `toml:"db" envconfig:"DB"`
	KeyPrefix string `toml:"key_prefix" envconfig:"KEY_PREFIX"`
}

// StorageConfig выбор хранилища бронирований и настроек
type StorageConfig struct {
	Driver string `toml:"driver" envconfig:"DRIVER"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file" envconfig:"FILE"`
	Level string `toml:"level" envconfig:"LEVEL"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// AuthConfig учетная запись администратора и параметры JWT
type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
	TokenTTL          int    `toml:"token_ttl" envconfig:"TOKEN_TTL"` // минуты
	AdminEmail        string `toml:"admin_email" envconfig:"ADMIN_EMAIL"`
	AdminPasswordHash string `toml:"admin_password_hash" envconfig:"ADMIN_PASSWORD_HASH"`
}

// NotifierConfig настройки отправки подтверждений
type NotifierConfig struct {
	Driver        string `toml:"driver" envconfig:"DRIVER"`
	URL           string `toml:"url" envconfig:"URL"`
	ServiceID     string `toml:"service_id" envconfig:"SERVICE_ID"`
	TemplateID    string `toml:"template_id" envconfig:"TEMPLATE_ID"`
	PublicKey     string `toml:"public_key" envconfig:"PUBLIC_KEY"`
	PrivateKey    string `toml:"private_key" envconfig:"PRIVATE_KEY"`
	Timeout       int    `toml:"timeout" envconfig:"TIMEOUT"` // секунды
	PublicBaseURL string `toml:"public_base_url" envconfig:"PUBLIC_BASE_URL"`
}

// BookingConfig часовой пояс мероприятия и системные настройки по умолчанию
type BookingConfig struct {
	Timezone            string `toml:"timezone" envconfig:"TIMEZONE"`
	MaxBookingsPerSlot  int    `toml:"max_bookings_per_slot" envconfig:"MAX_BOOKINGS_PER_SLOT"`
	SlotDurationMinutes int    `toml:"slot_duration_minutes" envconfig:"SLOT_DURATION_MINUTES"`
	AdvanceBookingDays  int    `toml:"advance_booking_days" envconfig:"ADVANCE_BOOKING_DAYS"`
	EmailNotifications  bool   `toml:"email_notifications" envconfig:"EMAIL_NOTIFICATIONS"`
	EnforceSlotCapacity bool   `toml:"enforce_slot_capacity" envconfig:"ENFORCE_SLOT_CAPACITY"`
}

// Location возвращает часовой пояс, в котором разбираются даты из формы
func (b BookingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, b.Timezone, err)
	}
	return loc, nil
}

// DefaultSettings настройки, действующие до первого сохранения администратором
func (b BookingConfig) DefaultSettings() *domain.Settings {
	return &domain.Settings{
		Form: domain.DefaultFormFields(),
		System: domain.SystemSettings{
			MaxBookingsPerSlot:  b.MaxBookingsPerSlot,
			SlotDurationMinutes: b.SlotDurationMinutes,
			AdvanceBookingDays:  b.AdvanceBookingDays,
			EmailNotifications:  b.EmailNotifications,
			EnforceSlotCapacity: b.EnforceSlotCapacity,
		},
	}
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 30,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "checkin",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "checkin",
		},
		Storage: StorageConfig{Driver: StorageDriverPostgres},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "checkin_service",
		},
		Auth: AuthConfig{TokenTTL: 720},
		Notifier: NotifierConfig{
			Driver:        NotifierDriverLog,
			URL:           "https://api.emailjs.com/api/v1.0/email/send",
			Timeout:       10,
			PublicBaseURL: "http://localhost:8080",
		},
		Booking: BookingConfig{
			Timezone:            "UTC",
			MaxBookingsPerSlot:  domain.DefaultMaxBookingsPerSlot,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			AdvanceBookingDays:  domain.DefaultAdvanceBookingDays,
			EmailNotifications:  true,
		},
	}
}

// Load читает config.toml, затем необязательный .env и переменные CHECKIN_*.
// Переменные окружения имеют приоритет над файлом.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be between 1 and 65535", ErrInvalidConfig)
	}

	if !lo.Contains([]string{StorageDriverPostgres, StorageDriverRedis, StorageDriverMemory}, c.Storage.Driver) {
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if c.Storage.Driver == StorageDriverRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required for the redis driver", ErrInvalidConfig)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required", ErrInvalidConfig)
	}
	if c.Auth.AdminEmail == "" || c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("%w: auth.admin_email and auth.admin_password_hash are required", ErrInvalidConfig)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("%w: auth.token_ttl must be positive", ErrInvalidConfig)
	}

	switch c.Notifier.Driver {
	case NotifierDriverLog:
	case NotifierDriverEmailJS:
		if c.Notifier.URL == "" || c.Notifier.ServiceID == "" || c.Notifier.TemplateID == "" || c.Notifier.PublicKey == "" {
			return fmt.Errorf("%w: notifier.url, service_id, template_id and public_key are required for emailjs", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown notifier.driver %q", ErrInvalidConfig, c.Notifier.Driver)
	}
	if c.Notifier.Timeout <= 0 {
		return fmt.Errorf("%w: notifier.timeout must be positive", ErrInvalidConfig)
	}
	if _, err := url.ParseRequestURI(c.Notifier.PublicBaseURL); err != nil {
		return fmt.Errorf("%w: notifier.public_base_url: %v", ErrInvalidConfig, err)
	}

	if _, err := c.Booking.Location(); err != nil {
		return err
	}
	b := c.Booking
	if b.MaxBookingsPerSlot < domain.MinBookingsPerSlot || b.MaxBookingsPerSlot > domain.MaxBookingsPerSlot {
		return fmt.Errorf("%w: booking.max_bookings_per_slot out of range", ErrInvalidConfig)
	}
	if b.SlotDurationMinutes < domain.MinSlotDurationMinutes || b.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: booking.slot_duration_minutes out of range", ErrInvalidConfig)
	}
	if b.AdvanceBookingDays < domain.MinAdvanceBookingDays || b.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: booking.advance_booking_days out of range", ErrInvalidConfig)
	}

	return nil
}
