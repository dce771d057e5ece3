// Package config loads process configuration from an optional config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/spf13/viper"
)

const (
	configName   = "config"
	configFormat = "yaml"

	StorageDynamoDB = "dynamodb"
	StorageSQLite   = "sqlite"

	EnvDevelopment = "development"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Phone    PhoneConfig    `mapstructure:"phone"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

func (s ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(s.Environment, EnvDevelopment)
}

type StorageConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type DynamoDBConfig struct {
	Region            string `mapstructure:"region"`
	Endpoint          string `mapstructure:"endpoint"`
	AccessKeyID       string `mapstructure:"access_key_id"`
	SecretAccessKey   string `mapstructure:"secret_access_key"`
	ReservationsTable string `mapstructure:"reservations_table"`
	ServicesTable     string `mapstructure:"services_table"`
	UsersTable        string `mapstructure:"users_table"`
	CountersTable     string `mapstructure:"counters_table"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	JWTIssuer string `mapstructure:"jwt_issuer"`
}

// Validate is only required by commands that authenticate requests.
func (a AuthConfig) Validate() error {
	if strings.TrimSpace(a.JWTSecret) == "" {
		return errors.New("auth.jwt_secret (JWT_SECRET) is required")
	}
	return nil
}

type RedisConfig struct {
	Addr                string `mapstructure:"addr"`
	Password            string `mapstructure:"password"`
	DB                  int    `mapstructure:"db"`
	UserCacheTTLSeconds int    `mapstructure:"user_cache_ttl_seconds"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type PhoneConfig struct {
	DefaultRegion string `mapstructure:"default_region"`
}

// envBindings keeps the flat variable names used by the deployment manifests.
var envBindings = map[string]string{
	"server.port":                  "PORT",
	"server.environment":           "ENVIRONMENT",
	"storage.driver":               "STORAGE_DRIVER",
	"storage.sqlite_path":          "SQLITE_PATH",
	"dynamodb.region":              "AWS_REGION",
	"dynamodb.endpoint":            "DYNAMODB_ENDPOINT",
	"dynamodb.access_key_id":       "AWS_ACCESS_KEY_ID",
	"dynamodb.secret_access_key":   "AWS_SECRET_ACCESS_KEY",
	"dynamodb.reservations_table":  "RESERVATIONS_TABLE",
	"dynamodb.services_table":      "SERVICES_TABLE",
	"dynamodb.users_table":         "USERS_TABLE",
	"dynamodb.counters_table":      "COUNTERS_TABLE",
	"auth.jwt_secret":              "JWT_SECRET",
	"auth.jwt_issuer":              "JWT_ISSUER",
	"redis.addr":                   "REDIS_ADDR",
	"redis.password":               "REDIS_PASSWORD",
	"redis.db":                     "REDIS_DB",
	"redis.user_cache_ttl_seconds": "USER_CACHE_TTL_SECONDS",
	"logging.level":                "LOG_LEVEL",
	"logging.format":               "LOG_FORMAT",
	"logging.file":                 "LOG_FILE",
	"phone.default_region":         "PHONE_DEFAULT_REGION",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("storage.driver", StorageDynamoDB)
	v.SetDefault("storage.sqlite_path", "servicios_locales.db")
	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.access_key_id", "local")
	v.SetDefault("dynamodb.secret_access_key", "local")
	v.SetDefault("dynamodb.reservations_table", "reservas")
	v.SetDefault("dynamodb.services_table", "servicios")
	v.SetDefault("dynamodb.users_table", "usuarios")
	v.SetDefault("dynamodb.counters_table", "contadores")
	v.SetDefault("auth.jwt_issuer", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.user_cache_ttl_seconds", 300)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("phone.default_region", "AR")
}

// Read loads config.yaml from configPath when present; environment variables win over the file.
func Read(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigName(configName)
		v.SetConfigType(configFormat)
		v.AddConfigPath(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case StorageDynamoDB:
		if c.DynamoDB.Region == "" {
			return errors.New("dynamodb.region is required")
		}
	case StorageSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("storage.sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q", StorageDynamoDB, StorageSQLite, c.Storage.Driver)
	}

	if c.Redis.UserCacheTTLSeconds < 0 {
		return errors.New("redis.user_cache_ttl_seconds must not be negative")
	}

	c.Phone.DefaultRegion = strings.ToUpper(strings.TrimSpace(c.Phone.DefaultRegion))
	if !phonenumbers.GetSupportedRegions()[c.Phone.DefaultRegion] {
		return fmt.Errorf("phone.default_region %q is not a supported region", c.Phone.DefaultRegion)
	}
	return nil
}
