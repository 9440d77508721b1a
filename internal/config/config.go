package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAuthSecret is a startup configuration error: the API cannot
// verify bearer tokens without a signing secret.
var ErrMissingAuthSecret = errors.New("APP_AUTH_SECRET is not set")

type Config struct {
	AppPort        string
	DbHost         string
	DbPort         string
	DbUser         string
	DbPassword     string
	DbName         string
	DbParams       string
	TrustedProxies []string

	AuthSecret string

	ReminderInterval time.Duration
	ReminderWindow   time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	PushWebhookURL string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		DbHost:         getEnv("MYSQL_HOST", "db"),
		DbPort:         getEnv("MYSQL_PORT", "3306"),
		DbUser:         getEnv("MYSQL_USER", "todoapp"),
		DbPassword:     getEnv("MYSQL_PASSWORD", "todoapp"),
		DbName:         getEnv("MYSQL_DATABASE", "todoapp"),
		DbParams:       getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true"),
		TrustedProxies: parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),

		AuthSecret: os.Getenv("APP_AUTH_SECRET"),

		ReminderInterval: getDuration("REMINDER_INTERVAL", time.Minute),
		ReminderWindow:   getDuration("REMINDER_WINDOW", time.Minute),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@todoapp.local"),

		PushWebhookURL: getEnv("PUSH_WEBHOOK_URL", ""),
	}
}

// Validate reports fatal configuration problems. They are never
// user-actionable and abort startup.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AuthSecret) == "" {
		return ErrMissingAuthSecret
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
