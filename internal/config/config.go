package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	QR       QRConfig       `mapstructure:"qr"`
	AMQP     AMQPConfig     `mapstructure:"amqp"`
	Booking  BookingConfig  `mapstructure:"booking"`
}

type ServerConfig struct {
	Port        string        `mapstructure:"port"`
	Mode        string        `mapstructure:"mode"`
	CORSOrigins string        `mapstructure:"cors_origins"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type QRConfig struct {
	Secret string `mapstructure:"secret"`
}

type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type BookingConfig struct {
	// DefaultPlayerPassword is the initial password given to player
	// accounts created during roster registration.
	DefaultPlayerPassword string `mapstructure:"default_player_password"`
}

// Load reads config/config.yaml and lets environment variables override
// any key (COURTSIDE_DATABASE_DSN, COURTSIDE_AUTH_JWT_SECRET, ...).
func Load() (*Config, error) {
	v := viper.New()

	v.AddConfigPath("./config")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("COURTSIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.timeout", "15s")
	v.SetDefault("database.dsn", "courtside.db")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("booking.default_player_password", "courtside")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if c.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	if c.QR.Secret == "" {
		c.QR.Secret = c.Auth.JWTSecret
	}

	return &c, nil
}
