package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Notification channels
const (
	NotifyChannelQueue = "queue"
	NotifyChannelSMTP  = "smtp"
	NotifyChannelKafka = "kafka"
)

const defaultAdminToken = "change-me-admin-token"

// Config holds every setting of the api and the worker.
// Values come from the environment; a .env file is loaded first when present.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Notify  NotifyConfig
	SMTP    SMTPConfig
	Kafka   KafkaConfig
	Catalog CatalogConfig
	Admin   AdminConfig
	Jobs    JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
	CORSOrigin  string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	CartTTL  time.Duration
}

type NotifyConfig struct {
	Channel        string // queue, smtp, kafka
	AdminRecipient string
	Timeout        time.Duration
	TaskTimeout    time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type KafkaConfig struct {
	Brokers string // comma separated
	Topic   string
}

type CatalogConfig struct {
	Locale   language.Tag
	PageSize int
}

type AdminConfig struct {
	Token string
}

// JobConfig drives the worker's periodic tasks.
type JobConfig struct {
	PendingDigestCron  string
	PendingDigestAfter time.Duration
	PendingDigestLimit int
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	// Missing .env is fine outside development
	_ = godotenv.Load()

	locale, err := language.Parse(getEnv("CATALOG_LOCALE", "en"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_LOCALE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Storefront API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CartTTL:  getEnvDuration("CART_TTL", 30*24*time.Hour),
		},
		Notify: NotifyConfig{
			Channel:        strings.ToLower(getEnv("NOTIFY_CHANNEL", NotifyChannelQueue)),
			AdminRecipient: getEnv("NOTIFY_ADMIN_EMAIL", "admin@storefront.local"),
			Timeout:        getEnvDuration("NOTIFY_TIMEOUT", 5*time.Second),
			TaskTimeout:    getEnvDuration("NOTIFY_TASK_TIMEOUT", 30*time.Second),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 1025),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "noreply@storefront.local"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			Topic:   getEnv("KAFKA_ORDER_TOPIC", "storefront.orders"),
		},
		Catalog: CatalogConfig{
			Locale:   locale,
			PageSize: getEnvInt("CATALOG_PAGE_SIZE", 12),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", defaultAdminToken),
		},
		Jobs: JobConfig{
			PendingDigestCron:  getEnv("JOB_PENDING_DIGEST_CRON", "0 * * * *"),
			PendingDigestAfter: getEnvDuration("JOB_PENDING_DIGEST_AFTER", 2*time.Hour),
			PendingDigestLimit: getEnvInt("JOB_PENDING_DIGEST_LIMIT", 50),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail at runtime.
func (c *Config) Validate() error {
	switch c.Notify.Channel {
	case NotifyChannelQueue, NotifyChannelSMTP, NotifyChannelKafka:
	default:
		return fmt.Errorf("NOTIFY_CHANNEL must be one of queue, smtp, kafka (got %q)", c.Notify.Channel)
	}
	if c.Notify.AdminRecipient == "" {
		return fmt.Errorf("NOTIFY_ADMIN_EMAIL must be set")
	}
	if c.Catalog.PageSize < 1 {
		return fmt.Errorf("CATALOG_PAGE_SIZE must be positive")
	}
	if c.Notify.Channel == NotifyChannelKafka && c.Kafka.Brokers == "" {
		return fmt.Errorf("KAFKA_BROKERS must be set for the kafka channel")
	}

	if c.App.Environment == "production" {
		if c.Admin.Token == defaultAdminToken || c.Admin.Token == "" {
			return fmt.Errorf("ADMIN_TOKEN must be set in production")
		}
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
