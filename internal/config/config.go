package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server     Server      `toml:"server"`
	Database   Database    `toml:"database"`
	Logs       Logs        `toml:"logs"`
	Metrics    Metrics     `toml:"metrics"`
	Booking    Booking     `toml:"booking"`
	RateLimit  RateLimit   `toml:"rate_limit"`
	Admin      Admin       `toml:"admin"`
	LeadIntake Integration `toml:"lead_intake"`
	AuditLog   Integration `toml:"audit_log"`
	Extras     []Extra     `toml:"extras"`
}

// Server настройки HTTP сервера
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
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

// DSN возвращает строку подключения к PostgreSQL
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки prometheus метрик
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// Booking настройки бронирования
type Booking struct {
	StandardWindowDays    int  `toml:"standard_window_days"`
	AcuteWindowDays       int  `toml:"acute_window_days"`
	ShortNoticeHours      int  `toml:"short_notice_hours"`
	ReserveTimeoutSeconds int  `toml:"reserve_timeout_seconds"`
	DemoSeed              bool `toml:"demo_seed"`
}

// RateLimit настройки ограничения частоты запросов
// Счётчик общий для всех инстансов сервиса (хранится в БД)
type RateLimit struct {
	Enabled       bool `toml:"enabled"`
	WindowSeconds int  `toml:"window_seconds"`
	MaxRequests   int  `toml:"max_requests"`
}

// Admin настройки административного доступа
type Admin struct {
	APIKey string `toml:"api_key"`
}

// Integration настройки внешнего HTTP-сервиса
type Integration struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
	Enabled bool   `toml:"enabled"`
}

// Extra настройка одной дополнительной услуги прайс-листа
type Extra struct {
	Code     string  `toml:"code"`
	Name     string  `toml:"name"`
	PriceMin float64 `toml:"price_min"`
	PriceMax float64 `toml:"price_max"`
	PerBoard bool    `toml:"per_board"`
}

// ToDomain конвертирует настройку в доменную модель
func (e Extra) ToDomain() domain.ExtraItem {
	return domain.ExtraItem{
		Code:     e.Code,
		Name:     e.Name,
		PriceMin: e.PriceMin,
		PriceMax: e.PriceMax,
		PerBoard: e.PerBoard,
	}
}

// Load читает конфигурацию из TOML файла и применяет дефолты
// Дефолты применяются один раз здесь, а не в местах использования
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
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

	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "appointment-service"
	}

	if c.Booking.StandardWindowDays == 0 {
		c.Booking.StandardWindowDays = domain.DefaultStandardWindowDays
	}
	if c.Booking.AcuteWindowDays == 0 {
		c.Booking.AcuteWindowDays = domain.DefaultAcuteWindowDays
	}
	if c.Booking.ShortNoticeHours == 0 {
		c.Booking.ShortNoticeHours = domain.DefaultShortNoticeHours
	}
	if c.Booking.ReserveTimeoutSeconds == 0 {
		c.Booking.ReserveTimeoutSeconds = 5
	}

	if c.RateLimit.WindowSeconds == 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.RateLimit.MaxRequests == 0 {
		c.RateLimit.MaxRequests = 30
	}

	if c.LeadIntake.Timeout == 0 {
		c.LeadIntake.Timeout = 5
	}
	if c.AuditLog.Timeout == 0 {
		c.AuditLog.Timeout = 5
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("config: database.user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	for _, e := range c.Extras {
		if e.Code == "" {
			return fmt.Errorf("config: extras entry without code")
		}
		if e.PriceMin < 0 || e.PriceMax < e.PriceMin {
			return fmt.Errorf("config: extras %q has an invalid price range", e.Code)
		}
	}
	return nil
}

// ExtrasCatalog возвращает прайс-лист доп. услуг в доменных моделях
func (c *Config) ExtrasCatalog() []domain.ExtraItem {
	items := make([]domain.ExtraItem, 0, len(c.Extras))
	for _, e := range c.Extras {
		items = append(items, e.ToDomain())
	}
	return items
}
