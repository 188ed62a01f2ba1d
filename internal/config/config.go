// Package config loads runtime settings from defaults, an optional YAML file
// and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Storage  StorageConfig  `koanf:"storage"`
	OpenAI   OpenAIConfig   `koanf:"openai"`
	Mail     MailConfig     `koanf:"mail"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	Mode            string        `koanf:"mode"` // gin mode: debug, release, test
	CORSOrigins     []string      `koanf:"cors_origins"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxUploadBytes  int64         `koanf:"max_upload_bytes"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	AcquireTimeout  time.Duration `koanf:"acquire_timeout"`
	BootstrapSchema bool          `koanf:"bootstrap_schema"`
	SlowQuery       time.Duration `koanf:"slow_query"`
}

type AuthConfig struct {
	JWTSecret  string        `koanf:"jwt_secret"`
	JWTExpiry  time.Duration `koanf:"jwt_expiry"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

type StorageConfig struct {
	Driver    string        `koanf:"driver"` // s3 or memory
	Bucket    string        `koanf:"bucket"`
	Region    string        `koanf:"region"`
	Endpoint  string        `koanf:"endpoint"`
	AccessKey string        `koanf:"access_key"`
	SecretKey string        `koanf:"secret_key"`
	PathStyle bool          `koanf:"path_style"`
	URLExpiry time.Duration `koanf:"url_expiry"`
}

type OpenAIConfig struct {
	APIKey      string        `koanf:"api_key"`
	BaseURL     string        `koanf:"base_url"`
	Model       string        `koanf:"model"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float32       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
}

// MailConfig configures outgoing mail. An empty Host logs messages instead
// of sending them.
type MailConfig struct {
	Host       string        `koanf:"host"`
	Port       int           `koanf:"port"`
	Username   string        `koanf:"username"`
	Password   string        `koanf:"password"`
	From       string        `koanf:"from"`
	FromName   string        `koanf:"from_name"`
	UseSSL     bool          `koanf:"use_ssl"` // implicit TLS, usually port 465
	RequireTLS bool          `koanf:"require_tls"`
	AppName    string        `koanf:"app_name"`
	AppBaseURL string        `koanf:"app_base_url"`
	ResetTTL   time.Duration `koanf:"reset_ttl"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database.url is required"))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, errors.New("database.max_open_conns must be at least 1"))
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, errors.New("database.max_idle_conns must be between 0 and max_open_conns"))
	}
	if c.Database.AcquireTimeout < 0 {
		errs = append(errs, errors.New("database.acquire_timeout must not be negative"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.JWTExpiry <= 0 {
		errs = append(errs, errors.New("auth.jwt_expiry must be positive"))
	}
	if c.Mail.Host != "" && c.Mail.From == "" {
		errs = append(errs, errors.New("mail.from is required when mail.host is set"))
	}
	if c.Mail.ResetTTL <= 0 {
		errs = append(errs, errors.New("mail.reset_ttl must be positive"))
	}
	switch c.Storage.Driver {
	case "memory":
	case "s3":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage.bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of s3, memory", c.Storage.Driver))
	}
	return errors.Join(errs...)
}
