package config

import (
	"os"
	"strconv"
	"time"
)

type HomologationServiceConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	RabbitMQCfg RabbitMQConfig
	EngineCfg   EngineConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

type EngineConfig struct {
	// ExpansionTTL bounds how long a tier expansion is reused across requests.
	ExpansionTTL time.Duration
	// QuoteTTL bounds how long a full quotation stays in Redis.
	QuoteTTL time.Duration
	// SnapshotRefreshInterval is how often the worker checks catalog versions.
	SnapshotRefreshInterval time.Duration
}

func New() *HomologationServiceConfig {
	return &HomologationServiceConfig{
		Port: getEnvOrDefault("PORT", "8091"),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "homologation_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       0,
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
		EngineCfg: EngineConfig{
			ExpansionTTL:            getEnvDurationOrDefault("ENGINE_EXPANSION_TTL", 5*time.Minute),
			QuoteTTL:                getEnvDurationOrDefault("ENGINE_QUOTE_TTL", 3*time.Minute),
			SnapshotRefreshInterval: getEnvDurationOrDefault("ENGINE_SNAPSHOT_REFRESH_INTERVAL", time.Minute),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
