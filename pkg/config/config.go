package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	DatabasePath      string
	TickInterval      time.Duration
	ProactiveInterval time.Duration
	ActionTimeout     time.Duration
	ActionDelay       time.Duration
	StaleTaskAge      time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DatabasePath:      getEnv("DATABASE_PATH", "tasknag.db"),
		TickInterval:      getDuration("TICK_INTERVAL", 1*time.Minute),
		ProactiveInterval: getDuration("PROACTIVE_INTERVAL", 30*time.Minute),
		ActionTimeout:     getDuration("BROWSER_ACTION_TIMEOUT", 3*time.Second),
		ActionDelay:       getDuration("BROWSER_ACTION_DELAY", 500*time.Millisecond),
		StaleTaskAge:      getDuration("STALE_TASK_AGE", 7*24*time.Hour),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}
