package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Queue   QueueConfig
	Upload  UploadConfig
	Extract ExtractConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for original document storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QueueConfig holds import queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxAttempts      int `mapstructure:"max_attempts"`
	Concurrency      int `mapstructure:"concurrency"`
}

// UploadConfig holds upload validation settings.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// ExtractConfig holds extraction settings.
type ExtractConfig struct {
	// DefaultUnit is applied to PDF-text rows that carry no unit token.
	DefaultUnit string `mapstructure:"default_unit"`
}

// Load reads configuration from environment variables with the BOMFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOMFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "bomflow")
	v.SetDefault("db.password", "bomflow_secret")
	v.SetDefault("db.name", "bomflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "bomflow-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("queue.concurrency", 4)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Extract defaults
	v.SetDefault("extract.default_unit", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "BOMFLOW_SERVER_PORT",
		"server.read_timeout":      "BOMFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "BOMFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":       "BOMFLOW_SERVER_ENVIRONMENT",
		"db.host":                  "BOMFLOW_DB_HOST",
		"db.port":                  "BOMFLOW_DB_PORT",
		"db.user":                  "BOMFLOW_DB_USER",
		"db.password":              "BOMFLOW_DB_PASSWORD",
		"db.name":                  "BOMFLOW_DB_NAME",
		"db.sslmode":               "BOMFLOW_DB_SSLMODE",
		"db.max_open":              "BOMFLOW_DB_MAX_OPEN",
		"db.max_idle":              "BOMFLOW_DB_MAX_IDLE",
		"s3.region":                "BOMFLOW_S3_REGION",
		"s3.bucket":                "BOMFLOW_S3_BUCKET",
		"s3.endpoint":              "BOMFLOW_S3_ENDPOINT",
		"s3.access_key":            "BOMFLOW_S3_ACCESS_KEY",
		"s3.secret_key":            "BOMFLOW_S3_SECRET_KEY",
		"s3.presign_expiry":        "BOMFLOW_S3_PRESIGN_EXPIRY",
		"log.level":                "BOMFLOW_LOG_LEVEL",
		"log.format":               "BOMFLOW_LOG_FORMAT",
		"cors.allowed_origins":     "BOMFLOW_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "BOMFLOW_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_attempts":       "BOMFLOW_QUEUE_MAX_ATTEMPTS",
		"queue.concurrency":        "BOMFLOW_QUEUE_CONCURRENCY",
		"upload.max_file_size_mb":  "BOMFLOW_UPLOAD_MAX_FILE_SIZE_MB",
		"extract.default_unit":     "BOMFLOW_EXTRACT_DEFAULT_UNIT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BOMFLOW_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BOMFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxAttempts:      v.GetInt("queue.max_attempts"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Extract = ExtractConfig{
		DefaultUnit: v.GetString("extract.default_unit"),
	}

	return cfg, nil
}
