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
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Log    LogConfig
	Parser ParserConfig
	CORS   CORSConfig
	Upload UploadConfig
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

// S3Config holds invoice archive storage settings. An empty bucket disables
// archival (a noop store is wired instead).
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// UploadConfig holds invoice upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (u *UploadConfig) MaxFileSizeBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
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

// ParserProviderConfig holds settings for a single LLM parser provider.
type ParserProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ParserConfig holds LLM invoice parser settings with primary/secondary
// provider fallback.
type ParserConfig struct {
	Primary   ParserProviderConfig `mapstructure:"primary"`
	Secondary ParserProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary parser provider config, or nil if not configured.
func (p *ParserConfig) SecondaryConfig() *ParserProviderConfig {
	if p.Secondary.Provider != "" {
		return &p.Secondary
	}
	return nil
}

// Load reads configuration from environment variables with the PRINTSTOCK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PRINTSTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "printstock")
	v.SetDefault("db.password", "printstock_secret")
	v.SetDefault("db.name", "printstock_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Parser defaults
	v.SetDefault("parser.primary.provider", "openai")
	v.SetDefault("parser.primary.api_key", "")
	v.SetDefault("parser.primary.default_model", "gpt-4o")
	v.SetDefault("parser.primary.max_retries", 2)
	v.SetDefault("parser.primary.timeout_secs", 120)
	v.SetDefault("parser.secondary.provider", "")
	v.SetDefault("parser.secondary.api_key", "")
	v.SetDefault("parser.secondary.default_model", "")
	v.SetDefault("parser.secondary.max_retries", 2)
	v.SetDefault("parser.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                    "PRINTSTOCK_SERVER_PORT",
		"server.read_timeout":            "PRINTSTOCK_SERVER_READ_TIMEOUT",
		"server.write_timeout":           "PRINTSTOCK_SERVER_WRITE_TIMEOUT",
		"server.environment":             "PRINTSTOCK_SERVER_ENVIRONMENT",
		"db.host":                        "PRINTSTOCK_DB_HOST",
		"db.port":                        "PRINTSTOCK_DB_PORT",
		"db.user":                        "PRINTSTOCK_DB_USER",
		"db.password":                    "PRINTSTOCK_DB_PASSWORD",
		"db.name":                        "PRINTSTOCK_DB_NAME",
		"db.sslmode":                     "PRINTSTOCK_DB_SSLMODE",
		"db.max_open":                    "PRINTSTOCK_DB_MAX_OPEN",
		"db.max_idle":                    "PRINTSTOCK_DB_MAX_IDLE",
		"s3.region":                      "PRINTSTOCK_S3_REGION",
		"s3.bucket":                      "PRINTSTOCK_S3_BUCKET",
		"s3.endpoint":                    "PRINTSTOCK_S3_ENDPOINT",
		"s3.access_key":                  "PRINTSTOCK_S3_ACCESS_KEY",
		"s3.secret_key":                  "PRINTSTOCK_S3_SECRET_KEY",
		"s3.presign_expiry":              "PRINTSTOCK_S3_PRESIGN_EXPIRY",
		"upload.max_file_size_mb":        "PRINTSTOCK_UPLOAD_MAX_FILE_SIZE_MB",
		"log.level":                      "PRINTSTOCK_LOG_LEVEL",
		"log.format":                     "PRINTSTOCK_LOG_FORMAT",
		"cors.allowed_origins":           "PRINTSTOCK_CORS_ALLOWED_ORIGINS",
		"parser.primary.provider":        "PRINTSTOCK_PARSER_PRIMARY_PROVIDER",
		"parser.primary.api_key":         "PRINTSTOCK_PARSER_PRIMARY_API_KEY",
		"parser.primary.default_model":   "PRINTSTOCK_PARSER_PRIMARY_DEFAULT_MODEL",
		"parser.primary.max_retries":     "PRINTSTOCK_PARSER_PRIMARY_MAX_RETRIES",
		"parser.primary.timeout_secs":    "PRINTSTOCK_PARSER_PRIMARY_TIMEOUT_SECS",
		"parser.secondary.provider":      "PRINTSTOCK_PARSER_SECONDARY_PROVIDER",
		"parser.secondary.api_key":       "PRINTSTOCK_PARSER_SECONDARY_API_KEY",
		"parser.secondary.default_model": "PRINTSTOCK_PARSER_SECONDARY_DEFAULT_MODEL",
		"parser.secondary.max_retries":   "PRINTSTOCK_PARSER_SECONDARY_MAX_RETRIES",
		"parser.secondary.timeout_secs":  "PRINTSTOCK_PARSER_SECONDARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PRINTSTOCK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PRINTSTOCK_SERVER_PORT") == "" {
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
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
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

	cfg.Parser = ParserConfig{
		Primary: ParserProviderConfig{
			Provider:     v.GetString("parser.primary.provider"),
			APIKey:       v.GetString("parser.primary.api_key"),
			DefaultModel: v.GetString("parser.primary.default_model"),
			MaxRetries:   v.GetInt("parser.primary.max_retries"),
			TimeoutSecs:  v.GetInt("parser.primary.timeout_secs"),
		},
		Secondary: ParserProviderConfig{
			Provider:     v.GetString("parser.secondary.provider"),
			APIKey:       v.GetString("parser.secondary.api_key"),
			DefaultModel: v.GetString("parser.secondary.default_model"),
			MaxRetries:   v.GetInt("parser.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("parser.secondary.timeout_secs"),
		},
	}

	return cfg, nil
}
