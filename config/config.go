// config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	App struct {
		Env         string
		Port        string
		FrontendURL string
		LogLevel    string
	}
	Store struct {
		// Backend selects the document store: "memory" or "postgres".
		Backend        string
		PollIntervalMS int
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	JWT struct {
		Secret string
	}
	Sweep struct {
		// CheckIntervalMinutes is how often the sweeper wakes up; the purge
		// itself still runs at most once per calendar day.
		CheckIntervalMinutes int
	}
}

var (
	appConfig *Config
	once      sync.Once
)

// Initialize loads configuration and sets up logging. Designed to be called
// once from main.
func Initialize() error {
	var err error
	once.Do(func() {
		appConfig, err = loadConfig()
		if err != nil {
			return
		}
		configureLogging(appConfig)
	})
	return err
}

// GetConfig returns the loaded configuration; Initialize must have run.
func GetConfig() *Config {
	return appConfig
}

func loadConfig() (*Config, error) {
	// A missing .env is fine, especially in production where env vars come
	// from the environment directly.
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, relying on system environment variables")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8090")
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.Store.Backend = getEnv("STORE_BACKEND", "postgres")
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "devoapp_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.JWT.Secret = getEnv("JWT_SECRET", "supersecret")

	var err error
	cfg.Store.PollIntervalMS, err = getEnvAsInt("STORE_POLL_INTERVAL_MS", 500)
	if err != nil {
		return nil, err
	}
	cfg.Sweep.CheckIntervalMinutes, err = getEnvAsInt("SWEEP_CHECK_INTERVAL_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN renders the Postgres connection string for the pgstore backend.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}

func configureLogging(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.App.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q", key, v)
	}
	return n, nil
}
