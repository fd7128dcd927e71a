package config

import (
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries the process configuration. It is loaded once and passed
// into constructors explicitly.
type Config struct {
	DBDialect      string // sqlite or postgres
	DBDSN          string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SchemaVersion  string // current supported document schema version
	Compression    string // nop, gzip, lz4 or brotli
	PurgeRetention time.Duration
	PurgeSchedule  string
}

// LoadConfig reads the configuration from the environment. A .env file is
// loaded automatically when present.
func LoadConfig() *Config {
	return &Config{
		DBDialect:      env("DB_DIALECT", "sqlite"),
		DBDSN:          env("DB_DSN", ".db/manuscript.db"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  env("REDIS_PASSWORD", ""),
		RedisDB:        envInt("REDIS_DB", 0),
		SchemaVersion:  env("SCHEMA_VERSION", "2.0.0"),
		Compression:    env("COMPRESSION", "nop"),
		PurgeRetention: envDuration("PURGE_RETENTION", 30*24*time.Hour),
		PurgeSchedule:  env("PURGE_SCHEDULE", "@every 1h"),
	}
}

// GetDb opens the configured database.
func GetDb(cnf *Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cnf.DBDialect {
	case "postgres":
		dialector = postgres.Open(cnf.DBDSN)
	default:
		dialector = sqlite.Open(cnf.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error opening database: %v", err)
	}

	return db
}

func env(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logrus.Warnf("invalid %s value %q, using default", key, value)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("invalid %s value %q, using default", key, value)
		return fallback
	}
	return d
}
