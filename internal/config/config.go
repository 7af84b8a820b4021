// Package config loads the application settings from an optional YAML file,
// a .env file and TALLY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrInvalidValue  = errors.New("invalid configuration value")
)

// Config holds the configuration settings for the application.
type Config struct {
	Env        string         `yaml:"env"`        // Env is the current environment: local, dev, production.
	Driver     string         `yaml:"storage"`    // Driver selects the record store: postgres or redis.
	Database   PostgresConfig `yaml:"postgres"`   // Database holds the postgres database configuration
	Redis      RedisConfig    `yaml:"redis"`      // Redis holds the redis store configuration
	Telegram   TelegramConfig `yaml:"telegram"`   // Telegram holds the bot configuration
	Location   *time.Location `yaml:"timezone"`   // Location anchors "today" for the stats windows
	Currency   string         `yaml:"currency"`   // Currency is the code printed after amounts
	Monitoring int            `yaml:"monitoring"` // Monitoring is the port of the health and metrics server
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Name     string `yaml:"db_name"`  // Name is the name of the database.
}

// RedisConfig holds the Redis connection and key namespace.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// TelegramConfig holds the bot token, the poller timeout and the only user
// allowed to talk to the bot. OwnerID 0 lets anyone in.
type TelegramConfig struct {
	Token         string        `yaml:"token"`
	PollerTimeout time.Duration `yaml:"timeout"`
	OwnerID       int64         `yaml:"owner_id"`
}

// MustLoad loads the configuration and panics when it is unusable.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}
	return cfg
}

// Load reads .env when present, then the YAML file named by CONFIG_PATH when
// set. TALLY_* variables override both, e.g. TALLY_REDIS_ADDR for redis.addr.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("tally")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	driver := strings.ToLower(v.GetString("storage.driver"))
	if driver != DriverPostgres && driver != DriverRedis {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	timeout, err := time.ParseDuration(v.GetString("telegram.timeout"))
	if err != nil {
		return nil, fmt.Errorf("%w: telegram.timeout: %w", ErrInvalidValue, err)
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("%w: timezone: %w", ErrInvalidValue, err)
	}

	return &Config{
		Env:    v.GetString("env"),
		Driver: driver,
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Telegram: TelegramConfig{
			Token:         v.GetString("telegram.token"),
			PollerTimeout: timeout,
			OwnerID:       v.GetInt64("telegram.owner_id"),
		},
		Location:   loc,
		Currency:   v.GetString("currency"),
		Monitoring: v.GetInt("monitoring.port"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("storage.driver", DriverRedis)
	v.SetDefault("postgres.host", "")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db_name", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "tally")
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.timeout", "10s")
	v.SetDefault("telegram.owner_id", 0)
	v.SetDefault("timezone", "Local")
	v.SetDefault("currency", "MAD")
	v.SetDefault("monitoring.port", 8080) //nolint:mnd // default monitoring port
}
