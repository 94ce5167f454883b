// File: /config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port        string `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	DBDriver    string `yaml:"db_driver"`
	DatabaseURL string `yaml:"database_url"`
	JWTSecret   string `yaml:"jwt_secret"`
	LogLevel    string `yaml:"log_level"`
	SeedData    bool   `yaml:"seed_data"`

	PostsPerPage int `yaml:"posts_per_page"`

	// Media storage
	StorageBackend string `yaml:"storage_backend"`
	MediaRoot      string `yaml:"media_root"`
	MediaURL       string `yaml:"media_url"`
	MaxImageBytes  int64  `yaml:"max_image_bytes"`

	AWSBucket    string `yaml:"aws_bucket_name"`
	AWSRegion    string `yaml:"aws_region"`
	AWSAccessKey string `yaml:"aws_access_key_id"`
	AWSSecretKey string `yaml:"aws_secret_access_key"`
	AWSEndpoint  string `yaml:"aws_endpoint"`

	// Email Configuration
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`

	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int `yaml:"rate_limit_burst"`
}

func defaults() *Config {
	return &Config{
		Port:               "8080",
		GinMode:            "debug",
		DBDriver:           "mysql",
		DatabaseURL:        "user:password@tcp(localhost:3306)/yatube?charset=utf8mb4&parseTime=True&loc=Local",
		JWTSecret:          "your-secret-key",
		LogLevel:           "info",
		PostsPerPage:       10,
		StorageBackend:     "local",
		MediaRoot:          "media",
		MediaURL:           "/media/",
		MaxImageBytes:      5 << 20,
		SMTPPort:           2525,
		FromEmail:          "noreply@yatube.local",
		FromName:           "Yatube",
		RateLimitPerMinute: 60,
		RateLimitBurst:     20,
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE and the environment, in that order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.SeedData = getEnvBool("SEED_DATA", c.SeedData)
	c.PostsPerPage = getEnvInt("POSTS_PER_PAGE", c.PostsPerPage)

	c.StorageBackend = getEnv("STORAGE_BACKEND", c.StorageBackend)
	c.MediaRoot = getEnv("MEDIA_ROOT", c.MediaRoot)
	c.MediaURL = getEnv("MEDIA_URL", c.MediaURL)
	c.MaxImageBytes = int64(getEnvInt("MAX_IMAGE_BYTES", int(c.MaxImageBytes)))

	c.AWSBucket = getEnv("AWS_BUCKET_NAME", c.AWSBucket)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.AWSAccessKey = getEnv("AWS_ACCESS_KEY_ID", c.AWSAccessKey)
	c.AWSSecretKey = getEnv("AWS_SECRET_ACCESS_KEY", c.AWSSecretKey)
	c.AWSEndpoint = getEnv("AWS_ENDPOINT", c.AWSEndpoint)

	c.SMTPHost = getEnv("SMTP_HOST", c.SMTPHost)
	c.SMTPPort = getEnvInt("SMTP_PORT", c.SMTPPort)
	c.SMTPUsername = getEnv("SMTP_USERNAME", c.SMTPUsername)
	c.SMTPPassword = getEnv("SMTP_PASSWORD", c.SMTPPassword)
	c.FromEmail = getEnv("FROM_EMAIL", c.FromEmail)
	c.FromName = getEnv("FROM_NAME", c.FromName)

	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.RateLimitBurst = getEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst)
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageBackend {
	case "local":
	case "s3":
		if c.AWSBucket == "" || c.AWSRegion == "" {
			return fmt.Errorf("s3 storage requires AWS_BUCKET_NAME and AWS_REGION")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.PostsPerPage < 1 {
		return fmt.Errorf("POSTS_PER_PAGE must be positive, got %d", c.PostsPerPage)
	}
	if c.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got %d", c.RateLimitBurst)
	}
	return nil
}

// MailEnabled reports whether follower notifications can be sent.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
