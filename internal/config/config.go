package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	API        APIConfig
	Validation ValidationConfig
	Events     EventsConfig
}

type AppConfig struct {
	Name            string        `mapstructure:"name"`
	Version         string        `mapstructure:"version"`
	Env             string        `mapstructure:"env"`
	LogLevel        string        `mapstructure:"log_level"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Path            string        `mapstructure:"path"`
	DSN             string        `mapstructure:"dsn"`
	Seed            bool          `mapstructure:"seed"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	LogLevel        string        `mapstructure:"log_level"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

type APIConfig struct {
	EnableSwagger      bool          `mapstructure:"enable_swagger"`
	CorsAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	RateLimit          int           `mapstructure:"rate_limit"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
	ReadTimeout        time.Duration `mapstructure:"read_timeout"`
	WriteTimeout       time.Duration `mapstructure:"write_timeout"`
	IdleTimeout        time.Duration `mapstructure:"idle_timeout"`
}

type ValidationConfig struct {
	EnforceRanges bool `mapstructure:"enforce_ranges"`
	SanitizeCity  bool `mapstructure:"sanitize_city"`
}

type EventsConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	ClientID     string        `mapstructure:"client_id"`
	RequiredAcks int16         `mapstructure:"required_acks"`
	MaxRetries   int           `mapstructure:"max_retries"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/weather-api/")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	overrideFromEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "weather-api")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.shutdown_timeout", "15s")

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "./weather.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.seed", true)
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.slow_threshold", "200ms")

	v.SetDefault("api.enable_swagger", true)
	v.SetDefault("api.cors_allowed_origins", []string{"*"})
	v.SetDefault("api.rate_limit", 100)
	v.SetDefault("api.rate_limit_window", "1s")
	v.SetDefault("api.read_timeout", "30s")
	v.SetDefault("api.write_timeout", "30s")
	v.SetDefault("api.idle_timeout", "60s")

	v.SetDefault("validation.enforce_ranges", false)
	v.SetDefault("validation.sanitize_city", false)

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.brokers", []string{"kafka:9093"})
	v.SetDefault("events.topic", "weather-records")
	v.SetDefault("events.client_id", "weather-api")
	v.SetDefault("events.required_acks", 1)
	v.SetDefault("events.max_retries", 3)
	v.SetDefault("events.timeout", "5s")
}

func overrideFromEnv(v *viper.Viper) {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			v.Set("app.port", p)
		}
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		v.Set("app.env", env)
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		v.Set("app.log_level", logLevel)
	}

	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		v.Set("database.driver", driver)
	}
	if path := os.Getenv("DB_PATH"); path != "" {
		v.Set("database.path", path)
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		v.Set("database.dsn", dsn)
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		v.Set("api.cors_allowed_origins", splitList(origins))
	}

	if enforce := os.Getenv("VALIDATION_ENFORCE_RANGES"); enforce != "" {
		if b, err := strconv.ParseBool(enforce); err == nil {
			v.Set("validation.enforce_ranges", b)
		}
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		v.Set("events.brokers", splitList(brokers))
	}
	if topic := os.Getenv("KAFKA_TOPIC"); topic != "" {
		v.Set("events.topic", topic)
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateConfig(cfg *Config) error {
	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		return fmt.Errorf("app port must be between 1 and 65535")
	}
	if cfg.App.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	switch cfg.Database.Driver {
	case DriverSQLite:
		if cfg.Database.Path == "" && cfg.Database.DSN == "" {
			return fmt.Errorf("sqlite requires database path")
		}
	case DriverPostgres, DriverMySQL:
		if cfg.Database.DSN == "" {
			return fmt.Errorf("%s requires database dsn", cfg.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative")
	}
	if cfg.API.RateLimit > 0 && cfg.API.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive")
	}

	if cfg.Events.Enabled {
		if len(cfg.Events.Brokers) == 0 {
			return fmt.Errorf("kafka brokers cannot be empty when events are enabled")
		}
		if cfg.Events.Topic == "" {
			return fmt.Errorf("kafka topic cannot be empty when events are enabled")
		}
	}

	return nil
}
