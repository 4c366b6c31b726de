package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		ProjectName string
		HTTP
		Database
		Auth
		CORS
		Metrics
		Tasks
		Maintenance
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path     string
		LogLevel string // silent, error, warn, info
	}
	Auth struct {
		SecretKey  string
		Algorithm  string // HS256, HS384 or HS512
		TokenTTL   time.Duration
		Issuer     string
		BcryptCost int
	}
	CORS struct {
		AllowedOrigins []string
	}
	Metrics struct {
		Enabled bool
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	Maintenance struct {
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnlyMode             bool
	}
)

// getDatabasePath prefers DATABASE_PATH and falls back to DATABASE_URI,
// stripping a sqlite URI scheme if present.
func getDatabasePath(v *viper.Viper) string {
	if path := v.GetString("DATABASE_PATH"); path != "" {
		return path
	}
	uri := v.GetString("DATABASE_URI")
	for _, prefix := range []string{"sqlite+aiosqlite:///", "sqlite:///", "file:"} {
		if strings.HasPrefix(uri, prefix) {
			return strings.TrimPrefix(uri, prefix)
		}
	}
	if uri != "" {
		return uri
	}
	return DefaultDatabasePath
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("project_name", DefaultProjectName)
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("read_only_mode", false)
	v.SetDefault("database_path", "")
	v.SetDefault("database_uri", "")
	v.SetDefault("database_log_level", "warn")

	// Auth defaults
	v.SetDefault("secret_key", "") // Generated at start-up if empty
	v.SetDefault("algorithm", "HS256")
	v.SetDefault("access_token_expire_minutes", 30)
	v.SetDefault("auth_token_issuer", DefaultTokenIssuer)
	v.SetDefault("auth_bcrypt_cost", 12)

	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("metrics_enabled", true)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("maintenance_schedule", "0 3 * * *")

	return &Config{
		ProjectName: v.GetString("PROJECT_NAME"),
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path:     getDatabasePath(v),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		Auth: Auth{
			SecretKey:  v.GetString("SECRET_KEY"),
			Algorithm:  strings.ToUpper(v.GetString("ALGORITHM")),
			TokenTTL:   time.Duration(v.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute,
			Issuer:     v.GetString("AUTH_TOKEN_ISSUER"),
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		CORS: CORS{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("METRICS_ENABLED"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		Maintenance: Maintenance{
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnlyMode:             v.GetBool("READ_ONLY_MODE"),
		},
	}
}
