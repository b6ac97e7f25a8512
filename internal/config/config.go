package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env              string        // dev, prod
	HTTPPort         string        // default 8080
	OpenHour         int           // clinic opens, 24h clock
	CloseHour        int           // clinic closes, 24h clock
	DefaultDaysAhead int           // default availability/suggestion horizon
	ShutdownTimeout  time.Duration // graceful shutdown timeout
	ClinicInfoPath   string        // knowledge base for the FAQ store
	ClinicPhone      string        // quoted in fallback responses
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		OpenHour:         getInt("CLINIC_OPEN_HOUR", 9),
		CloseHour:        getInt("CLINIC_CLOSE_HOUR", 17),
		DefaultDaysAhead: getInt("DEFAULT_DAYS_AHEAD", 7),
		ShutdownTimeout:  getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ClinicInfoPath:   getEnv("CLINIC_INFO_PATH", "data/clinic_info.json"),
		ClinicPhone:      getEnv("CLINIC_PHONE", "+1-555-123-4567"),
	}

	if cfg.OpenHour < 0 || cfg.CloseHour > 24 || cfg.CloseHour <= cfg.OpenHour {
		return Config{}, errors.New("CLINIC_OPEN_HOUR/CLINIC_CLOSE_HOUR must describe a window within one day")
	}
	if cfg.DefaultDaysAhead < 1 {
		return Config{}, errors.New("DEFAULT_DAYS_AHEAD must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		fmt.Fprintf(os.Stderr, "invalid integer for %s=%q, using default %d\n", key, v, def)
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Second
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		fmt.Fprintf(os.Stderr, "invalid duration for %s=%q, using default %s\n", key, v, def)
	}
	return def
}
