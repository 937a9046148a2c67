package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// Timezone is the business timezone used for "today" boundaries in reports.
	Timezone string `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is either "mysql" or "sqlite".
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	ConnectRetries  uint   `mapstructure:"connect_retries"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// SourceLevel is the lowest level that carries a source location.
	SourceLevel string `mapstructure:"source_level"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type AuthConfig struct {
	JWTSecret        string `mapstructure:"jwt_secret"`
	Issuer           string `mapstructure:"issuer"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthorizationConfig struct {
	PolicyPath string `mapstructure:"policy_path"`
}

type TicketConfig struct {
	TerminalStatuses        []string `mapstructure:"terminal_statuses"`
	TransactionalDeclineLog bool     `mapstructure:"transactional_decline_log"`
	DefaultPageSize         int      `mapstructure:"default_page_size"`
	MaxPageSize             int      `mapstructure:"max_page_size"`
	DeclineDefaultPageSize  int      `mapstructure:"decline_default_page_size"`
	DeclineMaxPageSize      int      `mapstructure:"decline_max_page_size"`
}

type CacheConfig struct {
	CountTTLSeconds        int `mapstructure:"count_ttl_seconds"`
	RefreshIntervalSeconds int `mapstructure:"refresh_interval_seconds"`
	LocalSize              int `mapstructure:"local_size"`
}

func (c *CacheConfig) CountTTL() time.Duration {
	return time.Duration(c.CountTTLSeconds) * time.Second
}

func (c *CacheConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

type RateLimitConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Requests      int  `mapstructure:"requests"`
	WindowSeconds int  `mapstructure:"window_seconds"`
}

func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}
