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
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	OCR       OCRConfig
	Model     ModelConfig
	Selection SelectionConfig
	CORS      CORSConfig
	Email     EmailConfig
	Import    ImportConfig
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

// JWTConfig holds verification settings for tokens minted by the portal
// identity service. This service never issues tokens itself.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// OCRConfig holds settings for the external text-extraction service.
type OCRConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	APIKey           string `mapstructure:"api_key"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
}

// ModelProviderConfig holds settings for a single generative-model provider.
type ModelProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ModelConfig holds generative-model settings with provider fallback support.
type ModelConfig struct {
	Primary   ModelProviderConfig `mapstructure:"primary"`
	Secondary ModelProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (m *ModelConfig) SecondaryConfig() *ModelProviderConfig {
	if m.Secondary.Provider != "" {
		return &m.Secondary
	}
	return nil
}

// SelectionConfig holds the plan-selection working-set cache settings.
type SelectionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// ImportConfig holds bulk-import worker settings.
type ImportConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	MaxFiles    int `mapstructure:"max_files"`
}

// Load reads configuration from environment variables with the QUOTEDESK_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("QUOTEDESK")
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
	v.SetDefault("db.user", "quotedesk")
	v.SetDefault("db.password", "quotedesk_secret")
	v.SetDefault("db.name", "quotedesk_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "portal-identity")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "quotedesk-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// OCR defaults
	v.SetDefault("ocr.base_url", "")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.timeout_secs", 120)
	v.SetDefault("ocr.poll_interval_secs", 2)

	// Model provider defaults
	v.SetDefault("model.primary.provider", "gemini")
	v.SetDefault("model.primary.api_key", "")
	v.SetDefault("model.primary.default_model", "")
	v.SetDefault("model.primary.timeout_secs", 120)
	v.SetDefault("model.secondary.provider", "")
	v.SetDefault("model.secondary.api_key", "")
	v.SetDefault("model.secondary.default_model", "")
	v.SetDefault("model.secondary.timeout_secs", 120)

	// Selection cache defaults
	v.SetDefault("selection.ttl", "1h")
	v.SetDefault("selection.purge_interval", "10m")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@quotedesk.io")
	v.SetDefault("email.from_name", "QuoteDesk")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Import defaults
	v.SetDefault("import.concurrency", 3)
	v.SetDefault("import.max_files", 10)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "QUOTEDESK_SERVER_PORT",
		"server.read_timeout":           "QUOTEDESK_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "QUOTEDESK_SERVER_WRITE_TIMEOUT",
		"server.environment":            "QUOTEDESK_SERVER_ENVIRONMENT",
		"db.host":                       "QUOTEDESK_DB_HOST",
		"db.port":                       "QUOTEDESK_DB_PORT",
		"db.user":                       "QUOTEDESK_DB_USER",
		"db.password":                   "QUOTEDESK_DB_PASSWORD",
		"db.name":                       "QUOTEDESK_DB_NAME",
		"db.sslmode":                    "QUOTEDESK_DB_SSLMODE",
		"db.max_open":                   "QUOTEDESK_DB_MAX_OPEN",
		"db.max_idle":                   "QUOTEDESK_DB_MAX_IDLE",
		"jwt.secret":                    "QUOTEDESK_JWT_SECRET",
		"jwt.issuer":                    "QUOTEDESK_JWT_ISSUER",
		"s3.region":                     "QUOTEDESK_S3_REGION",
		"s3.bucket":                     "QUOTEDESK_S3_BUCKET",
		"s3.endpoint":                   "QUOTEDESK_S3_ENDPOINT",
		"s3.access_key":                 "QUOTEDESK_S3_ACCESS_KEY",
		"s3.secret_key":                 "QUOTEDESK_S3_SECRET_KEY",
		"s3.max_file_size_mb":           "QUOTEDESK_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":             "QUOTEDESK_S3_PRESIGN_EXPIRY",
		"log.level":                     "QUOTEDESK_LOG_LEVEL",
		"log.format":                    "QUOTEDESK_LOG_FORMAT",
		"ocr.base_url":                  "QUOTEDESK_OCR_BASE_URL",
		"ocr.api_key":                   "QUOTEDESK_OCR_API_KEY",
		"ocr.timeout_secs":              "QUOTEDESK_OCR_TIMEOUT_SECS",
		"ocr.poll_interval_secs":        "QUOTEDESK_OCR_POLL_INTERVAL_SECS",
		"model.primary.provider":        "QUOTEDESK_MODEL_PRIMARY_PROVIDER",
		"model.primary.api_key":         "QUOTEDESK_MODEL_PRIMARY_API_KEY",
		"model.primary.default_model":   "QUOTEDESK_MODEL_PRIMARY_DEFAULT_MODEL",
		"model.primary.timeout_secs":    "QUOTEDESK_MODEL_PRIMARY_TIMEOUT_SECS",
		"model.secondary.provider":      "QUOTEDESK_MODEL_SECONDARY_PROVIDER",
		"model.secondary.api_key":       "QUOTEDESK_MODEL_SECONDARY_API_KEY",
		"model.secondary.default_model": "QUOTEDESK_MODEL_SECONDARY_DEFAULT_MODEL",
		"model.secondary.timeout_secs":  "QUOTEDESK_MODEL_SECONDARY_TIMEOUT_SECS",
		"selection.ttl":                 "QUOTEDESK_SELECTION_TTL",
		"selection.purge_interval":      "QUOTEDESK_SELECTION_PURGE_INTERVAL",
		"cors.allowed_origins":          "QUOTEDESK_CORS_ALLOWED_ORIGINS",
		"email.provider":                "QUOTEDESK_EMAIL_PROVIDER",
		"email.region":                  "QUOTEDESK_EMAIL_REGION",
		"email.from_address":            "QUOTEDESK_EMAIL_FROM_ADDRESS",
		"email.from_name":               "QUOTEDESK_EMAIL_FROM_NAME",
		"email.frontend_url":            "QUOTEDESK_EMAIL_FRONTEND_URL",
		"import.concurrency":            "QUOTEDESK_IMPORT_CONCURRENCY",
		"import.max_files":              "QUOTEDESK_IMPORT_MAX_FILES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if QUOTEDESK_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("QUOTEDESK_SERVER_PORT") == "" {
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
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.OCR = OCRConfig{
		BaseURL:          v.GetString("ocr.base_url"),
		APIKey:           v.GetString("ocr.api_key"),
		TimeoutSecs:      v.GetInt("ocr.timeout_secs"),
		PollIntervalSecs: v.GetInt("ocr.poll_interval_secs"),
	}
	cfg.Model = ModelConfig{
		Primary: ModelProviderConfig{
			Provider:     v.GetString("model.primary.provider"),
			APIKey:       v.GetString("model.primary.api_key"),
			DefaultModel: v.GetString("model.primary.default_model"),
			TimeoutSecs:  v.GetInt("model.primary.timeout_secs"),
		},
		Secondary: ModelProviderConfig{
			Provider:     v.GetString("model.secondary.provider"),
			APIKey:       v.GetString("model.secondary.api_key"),
			DefaultModel: v.GetString("model.secondary.default_model"),
			TimeoutSecs:  v.GetInt("model.secondary.timeout_secs"),
		},
	}
	cfg.Selection = SelectionConfig{
		TTL:           v.GetDuration("selection.ttl"),
		PurgeInterval: v.GetDuration("selection.purge_interval"),
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

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	cfg.Import = ImportConfig{
		Concurrency: v.GetInt("import.concurrency"),
		MaxFiles:    v.GetInt("import.max_files"),
	}

	return cfg, nil
}
