package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/bagcheckout/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"
)

const envPrefix = "STOREFRONT"

type Config struct {
	HTTPAddr string

	PostgresDSN string

	// RedisAddr selects the Redis bag store, the Postgres one is used when it is empty.
	RedisAddr  string
	SessionTTL time.Duration

	Delivery domain.DeliveryPolicy
	Currency currency.Unit

	Payment PaymentConfig

	LogLevel string
}

type PaymentConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// Load reads the TOML file at path, when given, and applies STOREFRONT_* environment overrides,
// i.e. STOREFRONT_POSTGRES_DSN overrides postgres.dsn.
func Load(path string) (Config, error) {
	var cfg Config

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("session.ttl", "720h")
	v.SetDefault("delivery.free_threshold", "50")
	v.SetDefault("delivery.percentage", "10")
	v.SetDefault("store.currency", "USD")
	v.SetDefault("payment.timeout", "10s")
	v.SetDefault("log.level", "info")
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config

	threshold, err := decimal.NewFromString(v.GetString("delivery.free_threshold"))
	if err != nil {
		return cfg, fmt.Errorf("delivery.free_threshold: %w", err)
	}

	percentage, err := decimal.NewFromString(v.GetString("delivery.percentage"))
	if err != nil {
		return cfg, fmt.Errorf("delivery.percentage: %w", err)
	}

	unit, err := currency.ParseISO(v.GetString("store.currency"))
	if err != nil {
		return cfg, fmt.Errorf("store.currency: %w", err)
	}

	cfg = Config{
		HTTPAddr:    v.GetString("server.http_addr"),
		PostgresDSN: v.GetString("postgres.dsn"),
		RedisAddr:   v.GetString("redis.addr"),
		SessionTTL:  v.GetDuration("session.ttl"),
		Delivery: domain.DeliveryPolicy{
			FreeDeliveryThreshold:      threshold,
			StandardDeliveryPercentage: percentage,
		},
		Currency: unit,
		Payment: PaymentConfig{
			BaseURL:   v.GetString("payment.base_url"),
			SecretKey: v.GetString("payment.secret_key"),
			Timeout:   v.GetDuration("payment.timeout"),
		},
		LogLevel: v.GetString("log.level"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.PostgresDSN == "" {
		return errors.New("postgres.dsn is empty")
	}
	if c.Payment.BaseURL == "" {
		return errors.New("payment.base_url is empty")
	}
	if c.Payment.SecretKey == "" {
		return errors.New("payment.secret_key is empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session.ttl[%s] is not positive", c.SessionTTL)
	}
	if err := c.Delivery.Validate(); err != nil {
		return fmt.Errorf("delivery: %w", err)
	}

	return nil
}
