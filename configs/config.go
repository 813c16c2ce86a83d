package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the API server configuration
type Config struct {
	Port        string
	Environment string
	PostgresURL string
	CORSOrigins []string
	// AdminEmails register with the admin role
	AdminEmails []string

	JWTSecret string
	JWTTTL    time.Duration
	OTPTTL    time.Duration

	// RedisURL selects the Redis OTP store when set; otherwise OTPs live in memory
	RedisURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	LLMProvider  string
	OpenAIAPIKey string
	OpenAIModel  string
	GeminiAPIKey string
	GeminiModel  string
}

// ClientConfig holds the survey CLI configuration
type ClientConfig struct {
	ServerURL   string
	TokenFile   string
	HTTPTimeout time.Duration
}

// Load reads .env when present and then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return LoadConfig()
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		PostgresURL: getEnv("POSTGRES_URL", ""),
		CORSOrigins: getEnvList("CORS_ORIGINS"),
		AdminEmails: getEnvList("ADMIN_EMAILS"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		OTPTTL:    time.Duration(getEnvInt("OTP_TTL_MINUTES", 10)) * time.Minute,

		RedisURL: getEnv("REDIS_URL", ""),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "EatWise"),

		LLMProvider:  getEnv("LLM_PROVIDER", "none"),
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
	}
}

func LoadClientConfig() *ClientConfig {
	_ = godotenv.Load()
	home, _ := os.UserHomeDir()
	return &ClientConfig{
		ServerURL:   getEnv("EATWISE_SERVER", "http://localhost:8080"),
		TokenFile:   getEnv("EATWISE_TOKEN_FILE", home+"/.eatwise/token"),
		HTTPTimeout: time.Duration(getEnvInt("EATWISE_HTTP_TIMEOUT", 15)) * time.Second,
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return i
}

// getEnvList splits a comma separated variable, dropping blanks
func getEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
