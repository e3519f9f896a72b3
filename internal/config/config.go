// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration for the server.
// Values are populated from environment variables via caarlos0/env tags.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"APP_PORT" envDefault:"8080"`

	// JWTSecret is the symmetric key used to sign access tokens.
	// Must be set to a strong value in production.
	JWTSecret string `env:"JWT_SECRET"`

	// AccessTokenTTL is the lifetime of issued access tokens.
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`

	// RefreshTokenTTL is the lifetime of refresh sessions.
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	// RunMigrations enables GORM AutoMigrate at startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"false"`

	DB    DBConfig    `envPrefix:"DB_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// DBConfig holds the Postgres connection settings.
type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`
}

// DSN returns the Postgres connection string for GORM.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig holds the Redis connection settings.
// Redis is optional; an empty Host disables it.
type RedisConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
}

// Addr returns the host:port address for the Redis client.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Load は環境変数からConfigを生成します。
// 変換できない値がある場合はエラーを返します。
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}
	return &cfg, nil
}
