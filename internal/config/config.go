package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	DataFile      string `mapstructure:"DATA_FILE"`
	AllowedOrigin string `mapstructure:"ALLOWED_ORIGIN"`
	Env           string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DBUrl         string `mapstructure:"DATABASE_URL"`
	ConflictCheck bool   `mapstructure:"CONFLICT_CHECK"`

	JWTSecret       string `mapstructure:"JWT_SECRET"`
	RateLimitPerMin int    `mapstructure:"RATE_LIMIT_PER_MIN"`
	RateLimitBurst  int    `mapstructure:"RATE_LIMIT_BURST"`

	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	AuditChannel   string `mapstructure:"AUDIT_CHANNEL"`
	AuditQueueSize int    `mapstructure:"AUDIT_QUEUE_SIZE"`

	BackupCron     string `mapstructure:"BACKUP_CRON"`
	BackupBucket   string `mapstructure:"BACKUP_S3_BUCKET"`
	BackupKey      string `mapstructure:"BACKUP_S3_KEY"`
	BackupRegion   string `mapstructure:"BACKUP_S3_REGION"`
	BackupEndpoint string `mapstructure:"BACKUP_S3_ENDPOINT"`
	AWSAccessKeyID string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string `mapstructure:"AWS_SECRET_ACCESS_KEY"`
}

const (
	DriverJSON     = "json"
	DriverPostgres = "postgres"
)

var defaults = map[string]any{
	"SERVER_PORT":           "8000",
	"DATA_FILE":             "data/agendamentos.json",
	"ALLOWED_ORIGIN":        "http://localhost:5173",
	"ENV":                   "development",
	"LOG_LEVEL":             "info",
	"STORE_DRIVER":          DriverJSON,
	"DATABASE_URL":          "",
	"CONFLICT_CHECK":        false,
	"JWT_SECRET":            "",
	"RATE_LIMIT_PER_MIN":    600,
	"RATE_LIMIT_BURST":      100,
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"AUDIT_CHANNEL":         "agendamentos.audit",
	"AUDIT_QUEUE_SIZE":      100,
	"BACKUP_CRON":           "",
	"BACKUP_S3_BUCKET":      "",
	"BACKUP_S3_KEY":         "agendamentos.json",
	"BACKUP_S3_REGION":      "us-east-1",
	"BACKUP_S3_ENDPOINT":    "",
	"AWS_ACCESS_KEY_ID":     "",
	"AWS_SECRET_ACCESS_KEY": "",
}

// Load reads .env (if any), an optional config.yaml and the process
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) normalize() {
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if c.StoreDriver == "" {
		c.StoreDriver = DriverJSON
	}
	if c.AuditQueueSize <= 0 {
		c.AuditQueueSize = 100
	}
	if c.RateLimitPerMin <= 0 {
		c.RateLimitPerMin = 600
	}
	if c.RateLimitBurst <= 0 {
		c.RateLimitBurst = 100
	}
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverJSON:
		if c.DataFile == "" {
			return fmt.Errorf("DATA_FILE is required when STORE_DRIVER=%s", DriverJSON)
		}
	case DriverPostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.BackupCron != "" && c.BackupBucket == "" {
		return fmt.Errorf("BACKUP_S3_BUCKET is required when BACKUP_CRON is set")
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

func (c *Config) BackupEnabled() bool {
	return c.BackupCron != "" && c.BackupBucket != ""
}
