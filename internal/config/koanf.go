package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/flowstate/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Mode:            "release",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
			AcquireTimeout:  5 * time.Second,
			BootstrapSchema: true,
			SlowQuery:       200 * time.Millisecond,
		},
		Auth: AuthConfig{
			JWTExpiry:  7 * 24 * time.Hour,
			BcryptCost: 12,
		},
		Storage: StorageConfig{
			Driver:    "memory",
			Region:    "us-east-1",
			URLExpiry: time.Hour,
		},
		OpenAI: OpenAIConfig{
			Model:       "llama-3.3-70b-versatile",
			MaxTokens:   1000,
			Temperature: 0.7,
			Timeout:     30 * time.Second,
		},
		Mail: MailConfig{
			Port:       587,
			FromName:   "FlowState",
			RequireTLS: true,
			AppName:    "FlowState",
			AppBaseURL: "http://localhost:3000",
			ResetTTL:   time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads .env (if present), then layers defaults, the config file and
// environment variables, and validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitList(k, "server.cors_origins"); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// splitList turns a comma separated env value into a list.
func splitList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	return nil
}

var envMappings = map[string]string{
	"port":             "server.port",
	"gin_mode":         "server.mode",
	"cors_origins":     "server.cors_origins",
	"shutdown_timeout": "server.shutdown_timeout",
	"max_upload_bytes": "server.max_upload_bytes",

	"postgres_url":          "database.url",
	"database_url":          "database.url",
	"db_max_open_conns":     "database.max_open_conns",
	"db_max_idle_conns":     "database.max_idle_conns",
	"db_conn_max_idle_time": "database.conn_max_idle_time",
	"db_conn_max_lifetime":  "database.conn_max_lifetime",
	"db_acquire_timeout":    "database.acquire_timeout",
	"db_bootstrap_schema":   "database.bootstrap_schema",
	"db_slow_query":         "database.slow_query",

	"jwt_secret":  "auth.jwt_secret",
	"jwt_expiry":  "auth.jwt_expiry",
	"bcrypt_cost": "auth.bcrypt_cost",

	"storage_driver":        "storage.driver",
	"aws_s3_bucket":         "storage.bucket",
	"aws_region":            "storage.region",
	"aws_s3_endpoint":       "storage.endpoint",
	"aws_access_key_id":     "storage.access_key",
	"aws_secret_access_key": "storage.secret_key",
	"aws_s3_path_style":     "storage.path_style",
	"storage_url_expiry":    "storage.url_expiry",

	"openai_api_key":     "openai.api_key",
	"groq_api_key":       "openai.api_key",
	"openai_base_url":    "openai.base_url",
	"openai_model":       "openai.model",
	"openai_max_tokens":  "openai.max_tokens",
	"openai_temperature": "openai.temperature",
	"openai_timeout":     "openai.timeout",

	"smtp_host":          "mail.host",
	"smtp_port":          "mail.port",
	"smtp_username":      "mail.username",
	"smtp_password":      "mail.password",
	"smtp_from":          "mail.from",
	"smtp_from_name":     "mail.from_name",
	"smtp_use_ssl":       "mail.use_ssl",
	"smtp_require_tls":   "mail.require_tls",
	"app_name":           "mail.app_name",
	"app_base_url":       "mail.app_base_url",
	"password_reset_ttl": "mail.reset_ttl",

	"log_level":  "logging.level",
	"log_format": "logging.format",
}

// envTransformFunc maps known variables onto config paths. Anything else is
// dropped so unrelated environment does not leak into the config tree.
func envTransformFunc(key string) string {
	if path, ok := envMappings[strings.ToLower(key)]; ok {
		return path
	}
	return ""
}
