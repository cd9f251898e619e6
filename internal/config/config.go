// Package config reads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"aplus-academy/internal/database"
	"aplus-academy/pkg/logger"
)

type Telegram struct {
	Token    string
	ChatID   int64
	Endpoint string
}

type Config struct {
	HTTPAddr   string
	DB         database.Config
	Migrations bool
	RedisAddr  string
	CacheTTL   time.Duration
	JWTSecret  string
	JWTTTL     time.Duration
	Telegram   Telegram
	PayoutRate float64
	Log        logger.Config
	// Admin seeds an administrator account at startup when both are set.
	AdminLogin    string
	AdminPassword string
}

func defaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "aplus")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_CONNECT_RETRIES", 5)
	v.SetDefault("MIGRATIONS", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", time.Minute)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 12*time.Hour)
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", int64(0))
	v.SetDefault("TELEGRAM_API_ENDPOINT", "")
	v.SetDefault("PAYOUT_RATE", 0.35)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("ADMIN_LOGIN", "")
	v.SetDefault("ADMIN_PASSWORD", "")
}

// Load reads envFile when it exists, then the process environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat %s: %w", envFile, err)
		}
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		HTTPAddr: v.GetString("HTTP_ADDR"),
		DB: database.Config{
			Host:           v.GetString("DB_HOST"),
			Port:           v.GetString("DB_PORT"),
			User:           v.GetString("DB_USER"),
			Password:       v.GetString("DB_PASSWORD"),
			DBName:         v.GetString("DB_NAME"),
			SSLMode:        v.GetString("DB_SSLMODE"),
			ConnectRetries: v.GetInt("DB_CONNECT_RETRIES"),
		},
		Migrations: v.GetBool("MIGRATIONS"),
		RedisAddr:  v.GetString("REDIS_ADDR"),
		CacheTTL:   v.GetDuration("CACHE_TTL"),
		JWTSecret:  v.GetString("JWT_SECRET"),
		JWTTTL:     v.GetDuration("JWT_TTL"),
		Telegram: Telegram{
			Token:    v.GetString("TELEGRAM_BOT_TOKEN"),
			ChatID:   v.GetInt64("TELEGRAM_CHAT_ID"),
			Endpoint: v.GetString("TELEGRAM_API_ENDPOINT"),
		},
		PayoutRate: v.GetFloat64("PAYOUT_RATE"),
		Log: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		AdminLogin:    v.GetString("ADMIN_LOGIN"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.PayoutRate < 0 || c.PayoutRate > 1 {
		errs = append(errs, fmt.Errorf("PAYOUT_RATE must be within [0, 1], got %v", c.PayoutRate))
	}
	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
