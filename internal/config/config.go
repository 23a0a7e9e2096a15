package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Feedback FeedbackConfig
	Session  SessionConfig
	Routes   RoutesConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	RealtimeLogPath    string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type FeedbackConfig struct {
	Recipient string
	Subject   string
	Topic     string // in-process delivery topic
}

type SessionConfig struct {
	Backend string // "memory" or "redis"
	TTL     time.Duration
}

// RoutesConfig overrides the reserved URL vocabulary. Empty values keep
// the defaults.
type RoutesConfig struct {
	NewStreet         string
	NewStreetCopyLast string
	JustSignedIn      string
	Error             string
	GlobalGallery     string
	Help              string
	About             string
	NoUser            string
	ReservedPrefix    string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			RealtimeLogPath:    getEnv("REALTIME_LOG_FILE_PATH", "logs/realtime.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8000"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
			JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Streetmix"),
		},
		Feedback: FeedbackConfig{
			Recipient: getEnv("FEEDBACK_RECIPIENT", "hello@streetmix.net"),
			Subject:   getEnv("FEEDBACK_SUBJECT", "Streetmix feedback"),
			Topic:     getEnv("FEEDBACK_TOPIC_NAME", "FEEDBACK_SUBMITTED"),
		},
		Session: SessionConfig{
			Backend: getEnv("SESSION_BACKEND", "memory"),
			TTL:     getEnvAsDuration("SESSION_TTL", time.Hour),
		},
		Routes: RoutesConfig{
			NewStreet:         getEnv("URL_NEW_STREET", ""),
			NewStreetCopyLast: getEnv("URL_NEW_STREET_COPY_LAST", ""),
			JustSignedIn:      getEnv("URL_JUST_SIGNED_IN", ""),
			Error:             getEnv("URL_ERROR", ""),
			GlobalGallery:     getEnv("URL_GLOBAL_GALLERY", ""),
			Help:              getEnv("URL_HELP", ""),
			About:             getEnv("URL_ABOUT", ""),
			NoUser:            getEnv("URL_NO_USER", ""),
			ReservedPrefix:    getEnv("URL_RESERVED_PREFIX", ""),
		},
	}
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
