package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	DBMaxConns         int
	GeoIPDBPath        string
	LexiconFile        string
	YandexAPIKey       string
	YandexFolderID     string
	YandexBaseURL      string
	YandexModel        string
	YandexTemperature  float64
	YandexMaxTokens    int
	GeneratorTimeout   time.Duration
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	CORSAllowedOrigins []string
}

var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 10),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		LexiconFile:        os.Getenv("LEXICON_FILE"),
		YandexAPIKey:       strings.TrimSpace(os.Getenv("YANDEX_CLOUD_API_KEY")),
		YandexFolderID:     strings.TrimSpace(os.Getenv("YANDEX_CLOUD_FOLDER")),
		YandexBaseURL:      getEnv("YANDEX_BASE_URL", "https://llm.api.cloud.yandex.net/foundationModels/v1"),
		YandexModel:        getEnv("YANDEX_MODEL", "yandexgpt-lite"),
		YandexTemperature:  getEnvFloat("YANDEX_TEMPERATURE", 0.7),
		YandexMaxTokens:    getEnvInt("YANDEX_MAX_TOKENS", 2000),
		GeneratorTimeout:   time.Second * time.Duration(getEnvInt("GENERATOR_TIMEOUT_SECONDS", 60)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 330)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultCORSOrigins),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.DBMaxConns < 1 {
		cfg.DBMaxConns = 1
	}

	if cfg.YandexTemperature < 0 || cfg.YandexTemperature > 1 {
		return nil, fmt.Errorf("YANDEX_TEMPERATURE must be within [0, 1], got %v", cfg.YandexTemperature)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
