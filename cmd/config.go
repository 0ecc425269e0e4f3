package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Abraxas-365/cvrelay/pkg/logx"
	"github.com/joho/godotenv"
)

// Config is read once at startup from the environment, after an optional
// .env file.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	DB struct {
		Host string
		Port string
		User string
		Pass string
		Name string
	}

	Redis struct {
		Addr string
		Pass string
	}

	AWS struct {
		Region string
		Bucket string
	}

	Documents struct {
		Storage         string // local | s3
		Root            string
		Prefix          string
		PlaceholderPath string
	}

	Skills struct {
		SynonymsFile string
		CacheTTL     time.Duration
	}

	JWT struct {
		Secret string
		Issuer string
		TTL    time.Duration
	}

	Workers          int
	BatchParallelism int
	LockTTL          time.Duration
	QueueName        string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logx.Warnf("Failed to load .env file: %v", err)
	}

	c := &Config{}
	c.Port = getEnv("PORT", "8080")
	c.LogLevel = getEnv("LOG_LEVEL", "info")
	c.LogFormat = getEnv("LOG_FORMAT", "console")

	c.DB.Host = getEnv("DB_HOST", "localhost")
	c.DB.Port = getEnv("DB_PORT", "5432")
	c.DB.User = getEnv("DB_USER", "postgres")
	c.DB.Pass = getEnv("DB_PASS", "")
	c.DB.Name = getEnv("DB_NAME", "cvrelay")

	c.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	c.Redis.Pass = getEnv("REDIS_PASS", "")

	c.AWS.Region = getEnv("AWS_REGION", "us-east-1")
	c.AWS.Bucket = getEnv("AWS_BUCKET", "")

	c.Documents.Storage = strings.ToLower(getEnv("DOCUMENT_STORAGE", "local"))
	c.Documents.Root = getEnv("DOCUMENT_ROOT", ".")
	c.Documents.Prefix = getEnv("DOCUMENT_PREFIX", "cv")
	c.Documents.PlaceholderPath = getEnv("PLACEHOLDER_PATH", "")

	c.Skills.SynonymsFile = getEnv("SKILL_SYNONYMS_FILE", "")
	c.Skills.CacheTTL = getDuration("SKILL_CACHE_TTL", 10*time.Minute)

	c.JWT.Secret = getEnv("JWT_SECRET", "")
	c.JWT.Issuer = getEnv("JWT_ISSUER", "cvrelay")
	c.JWT.TTL = getDuration("JWT_TTL", time.Hour)

	c.Workers = getInt("WORKERS", 2)
	c.BatchParallelism = getInt("BATCH_PARALLELISM", 4)
	c.LockTTL = getDuration("LOCK_TTL", 2*time.Minute)
	c.QueueName = getEnv("QUEUE_NAME", "resume_processing")

	return c
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Pass, c.DB.Name)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logx.Warnf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		logx.Warnf("Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
