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
	SMTP     SMTPConfig
	Admin    AdminConfig
	Ai       AIConfig
	Intake   IntakeConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
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

type AdminConfig struct {
	Username  string
	Password  string // plaintext or bcrypt hash ($2...)
	JWTSecret string
}

type AIConfig struct {
	LLMProvider   string // "openai" or "ollama"
	LLMModel      string // e.g. "gpt-4o", "llama3"
	OpenAIAPIKey  string
	OllamaBaseURL string
}

type IntakeConfig struct {
	ReflectionStrategy string // "ai" or "fixed"
	RecipientEmail     string // clinician inbox, defaults to SMTP sender
	SessionTTLMinutes  int
	RiskAlertTopic     string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	smtpEmail := getEnv("SMTP_EMAIL", "")

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/intake.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      smtpEmail,
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "REDE ELLe Triagem"),
		},
		Admin: AdminConfig{
			Username:  getEnv("ADMIN_USERNAME", ""),
			Password:  getEnv("ADMIN_PASSWORD", ""),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:   getEnv("LLM_PROVIDER", "openai"),
			LLMModel:      getEnv("LLM_MODEL", "gpt-4o"),
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Intake: IntakeConfig{
			ReflectionStrategy: getEnv("REFLECTION_STRATEGY", "ai"),
			RecipientEmail:     getEnv("RECEIVER_EMAIL", smtpEmail),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 120),
			RiskAlertTopic:     getEnv("RISK_ALERT_TOPIC_NAME", "RISK_ALERT"),
		},
	}
}

// AdminEnabled reports whether the protected dashboard may be exposed.
// Credentials and the token signing secret must all be present; a missing
// secret would let anyone forge a token signed with the empty key, so the
// admin surface stays off entirely.
func (c *Config) AdminEnabled() bool {
	return c.Admin.Username != "" && c.Admin.Password != "" && c.Admin.JWTSecret != ""
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
