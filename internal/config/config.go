package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	PublicBaseURL string
	LogLevel      string

	// Storage. StoreDriver selects the appointment/contact store backend:
	// "firestore" (default), "postgres" or "memory".
	StoreDriver        string
	FirestoreProjectID string
	DatabaseURL        string

	// Doctor session
	DoctorUsername     string
	DoctorPasswordHash string
	DoctorPassword     string
	SessionJWTSecret   string
	SessionTTL         time.Duration

	// Gemini diagnosis assistant
	GeminiAPIKey  string
	GeminiModelID string

	// Redis assistant-response cache
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool
	AssistantCacheTTL time.Duration

	// Email notifications for contact messages
	EmailProvider     string
	DoctorEmail       string
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
	AWSRegion         string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SESFromEmail       string
	SESFromName        string

	// Abuse limits on public endpoints
	LoginRateLimit  float64
	LoginRateBurst  int
	SubmitRateLimit float64
	SubmitRateBurst int

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		StoreDriver:        strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", "firestore"))),
		FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", ""),
		DatabaseURL:        getEnv("DATABASE_URL", ""),

		DoctorUsername:     getEnv("DOCTOR_USERNAME", ""),
		DoctorPasswordHash: getEnv("DOCTOR_PASSWORD_HASH", ""),
		DoctorPassword:     getEnv("DOCTOR_PASSWORD", ""),
		SessionJWTSecret:   getEnv("SESSION_JWT_SECRET", ""),
		SessionTTL:         getEnvAsDuration("SESSION_TTL", 12*time.Hour),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", "gemini-1.5-flash"),

		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisTLS:          getEnvAsBool("REDIS_TLS", false),
		AssistantCacheTTL: getEnvAsDuration("ASSISTANT_CACHE_TTL", 24*time.Hour),

		EmailProvider:      strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", ""))),
		DoctorEmail:        getEnv("DOCTOR_EMAIL", ""),
		SendGridAPIKey:     getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail:  getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:   getEnv("SENDGRID_FROM_NAME", "Clinic Website"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		SESFromName:        getEnv("SES_FROM_NAME", "Clinic Website"),

		LoginRateLimit:  getEnvAsFloat("LOGIN_RATE_LIMIT", 1),
		LoginRateBurst:  getEnvAsInt("LOGIN_RATE_BURST", 5),
		SubmitRateLimit: getEnvAsFloat("SUBMIT_RATE_LIMIT", 2),
		SubmitRateBurst: getEnvAsInt("SUBMIT_RATE_BURST", 10),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
