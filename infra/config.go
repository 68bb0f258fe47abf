package infra

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents module configuration loaded from environment variables.
// Everything is optional: the module is embedded into a host UI, so missing
// provider credentials surface later as classified configuration errors
// instead of failing startup.
type Config struct {
	AppEnv          string
	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	ArkAPIKey       string
	ArkEndpointID   string
	ArkBaseURL      string
	CredentialsPath string
	HistoryPath     string
	HistoryLimit    int
	RedisAddr       string
	RedisPassword   string
	RequestTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Env files are read first when present; their absence
// is not an error.
func LoadConfig() *Config {
	_ = godotenv.Load(".env", ".env.local")

	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash-image"),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		ArkAPIKey:       os.Getenv("ARK_API_KEY"),
		ArkEndpointID:   os.Getenv("ARK_ENDPOINT_ID"),
		ArkBaseURL:      getEnv("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		CredentialsPath: getEnv("CREDENTIALS_PATH", "credentials.json"),
		HistoryPath:     getEnv("HISTORY_PATH", "history.json"),
		HistoryLimit:    getEnvInt("HISTORY_LIMIT", 10),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RequestTimeout:  time.Second * time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 120)),
	}
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
