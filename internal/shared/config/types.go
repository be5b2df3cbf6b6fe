package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN returns the driver specific connection string.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

type AuthConfig struct {
	JWT        JWTConfig `mapstructure:"jwt"`
	CookieName string    `mapstructure:"cookie_name"`
	LoginURL   string    `mapstructure:"login_url"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PlanConfig describes one purchasable variant. Prices are in major currency units.
type PlanConfig struct {
	VariantID     string  `mapstructure:"variant_id"`
	Name          string  `mapstructure:"name"`
	Price         float64 `mapstructure:"price"`
	Interval      string  `mapstructure:"interval"`
	IntervalCount int     `mapstructure:"interval_count"`
}

type LemonSqueezyConfig struct {
	APIKey         string       `mapstructure:"api_key"`
	StoreID        string       `mapstructure:"store_id"`
	WebhookSecret  string       `mapstructure:"webhook_secret"`
	BaseURL        string       `mapstructure:"base_url"`
	TimeoutSeconds int          `mapstructure:"timeout_seconds"`
	RedirectURL    string       `mapstructure:"redirect_url"`
	Plans          []PlanConfig `mapstructure:"plans"`
}

func (l *LemonSqueezyConfig) Timeout() time.Duration {
	if l.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(l.TimeoutSeconds) * time.Second
}

type ReviewConfig struct {
	PlayAdvanceDelayMs     int `mapstructure:"play_advance_delay_ms"`
	PracticeAdvanceDelayMs int `mapstructure:"practice_advance_delay_ms"`
	BatchSize              int `mapstructure:"batch_size"`
}

// RateLimitConfig limits the billing action endpoints per caller. It needs
// Redis; without it requests are not limited.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

type SchedulerConfig struct {
	Enabled               bool `mapstructure:"enabled"`
	ReconcileIntervalMins int  `mapstructure:"reconcile_interval_minutes"`
	ReconcileGraceHours   int  `mapstructure:"reconcile_grace_hours"`
	ReconcileBatchSize    int  `mapstructure:"reconcile_batch_size"`
}
