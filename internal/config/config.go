package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UseMemoryStore     bool
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JwtSecret         string
	JwtExpiryHours    int
	AdminEmail        string
	GoogleClientID    string
	GoogleSecret      string
	GoogleRedirectURL string
}

type CatalogConfig struct {
	BaseURL string
	Locale  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:4200"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4200"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UseMemoryStore:     getEnvAsBool("USE_MEMORY_STORE", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JwtSecret:         getEnv("JWT_SECRET", ""),
			JwtExpiryHours:    getEnvAsInt("JWT_EXPIRY_HOURS", 72),
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			GoogleClientID:    getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleSecret:      getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL: getEnv("GOOGLE_REDIRECT_URL", ""),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"),
			Locale:  getEnv("DDRAGON_LOCALE", "en_US"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
