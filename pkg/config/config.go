package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Storage StorageConfig
	Grant   GrantConfig
	Queue   QueueConfig
	Reaper  ReaperConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port         int    `envconfig:"SERVER_PORT" default:"3000"`
	ClaimsHeader string `envconfig:"CLAIMS_HEADER" default:"X-Identity-Claims"`
}

// DBConfig holds Postgres configuration.
type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        int    `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" required:"true"`
	Database    string `envconfig:"DB_NAME" default:"video_share"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"10"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	Region string `envconfig:"AWS_REGION" default:"eu-west-2"`
	Bucket string `envconfig:"S3_BUCKET" default:"video-share-uploads"`
}

// GrantConfig holds presigned grant configuration.
type GrantConfig struct {
	TTL time.Duration `envconfig:"GRANT_TTL" default:"1h"`
}

// QueueConfig holds the redis upload-confirmation queue configuration.
type QueueConfig struct {
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	UploadedQueue string `envconfig:"UPLOADED_QUEUE" default:"video_uploaded_queue"`
}

// ReaperConfig holds the stale upload-intent reaper configuration.
type ReaperConfig struct {
	Enabled       bool          `envconfig:"REAPER_ENABLED" default:"true"`
	Schedule      string        `envconfig:"REAPER_SCHEDULE" default:"@hourly"`
	MaxPendingAge time.Duration `envconfig:"REAPER_MAX_PENDING_AGE" default:"24h"`
}

// DSN returns the Postgres data source name.
func (c *DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// Addr returns the host:port the server listens on.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisAddr returns the host:port of the redis instance.
func (c *QueueConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	if err := envconfig.Process("", &cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to load db config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Storage); err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Grant); err != nil {
		return nil, fmt.Errorf("failed to load grant config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Queue); err != nil {
		return nil, fmt.Errorf("failed to load queue config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Reaper); err != nil {
		return nil, fmt.Errorf("failed to load reaper config: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required")
	}
	if c.Grant.TTL <= 0 {
		return fmt.Errorf("GRANT_TTL must be positive")
	}
	if c.Reaper.MaxPendingAge <= 0 {
		return fmt.Errorf("REAPER_MAX_PENDING_AGE must be positive")
	}
	return nil
}
