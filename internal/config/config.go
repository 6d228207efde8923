package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Lms      LmsConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Session  SessionConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	StreamLogFilePath  string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type LmsConfig struct {
	BaseURL   string
	LogoutURL string
	// TokenType is the Authorization scheme used when forwarding the caller's token.
	TokenType string
	Timeout   time.Duration
}

type AuthConfig struct {
	JwtSecret string
}

type DatabaseConfig struct {
	Connection string
}

type SessionConfig struct {
	// TTL bounds how long an idle deletion flow (and its password) stays in memory.
	TTL             time.Duration
	CleanupInterval time.Duration
}

// TracingConfig drives the OTLP exporter. Tracing stays off unless Enabled.
type TracingConfig struct {
	Enabled        bool
	Endpoint       string
	ServiceName    string
	ServiceVersion string
	Environment    string
	// LmsHost tags spans with the upstream this instance proxies.
	LmsHost string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	lmsBaseURL := getEnv("LMS_BASE_URL", "http://localhost:18000")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			StreamLogFilePath:  getEnv("STREAM_LOG_FILE_PATH", "logs/state_stream.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:1997"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Lms: LmsConfig{
			BaseURL:   lmsBaseURL,
			LogoutURL: getEnv("LOGOUT_URL", lmsBaseURL+"/logout"),
			TokenType: getEnv("LMS_TOKEN_TYPE", "JWT"),
			Timeout:   getEnvAsDuration("LMS_TIMEOUT", 30*time.Second),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Session: SessionConfig{
			TTL:             getEnvAsDuration("DELETE_FLOW_TTL", 30*time.Minute),
			CleanupInterval: getEnvAsDuration("DELETE_FLOW_CLEANUP_INTERVAL", 5*time.Minute),
		},
		Tracing: TracingConfig{
			Enabled:        getEnv("OTEL_ENABLED", "false") == "true",
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "learner-account-be"),
			ServiceVersion: getEnv("APP_VERSION", "dev"),
			Environment:    getEnv("GO_ENV", "development"),
			LmsHost:        hostOf(lmsBaseURL),
		},
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or plain seconds ("90").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
