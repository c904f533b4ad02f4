package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage configuration. When UseMemoryStorage is set (or MongoDB is
	// unreachable at startup) every repository runs on the in-memory backend.
	DatabaseURL      string `mapstructure:"DATABASE_URL"`
	DatabaseName     string `mapstructure:"DATABASE_NAME"`
	UseMemoryStorage bool   `mapstructure:"USE_MEMORY_STORAGE"`

	// Assistant configuration.
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
	AssistantPrompt string `mapstructure:"AI_SOLUTIONS_PROMPT"`

	// Base URL used for links embedded in outbound emails.
	BaseURL string `mapstructure:"BASE_URL"`

	// Email (SMTP) configuration.
	EmailEnabled bool   `mapstructure:"EMAIL_ENABLED"`
	EmailHost    string `mapstructure:"EMAIL_HOST"`
	EmailPort    int    `mapstructure:"EMAIL_PORT"`
	EmailUser    string `mapstructure:"EMAIL_USER"`
	EmailPass    string `mapstructure:"EMAIL_PASS"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`
	AdminEmail   string `mapstructure:"ADMIN_EMAIL"`

	// Telegram chat-ops configuration. Notifications silently no-op when
	// either value is empty.
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   string `mapstructure:"TELEGRAM_CHAT_ID"`

	// Admin API token required by the admin endpoints.
	AdminAPIToken string `mapstructure:"ADMIN_API_TOKEN"`

	// Dialogue session store configuration.
	SessionBackend    string `mapstructure:"SESSION_BACKEND"` // "memory" or "redis"
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	// Redis configuration (session store and reminder queue).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Appointment reminder worker.
	RemindersEnabled bool `mapstructure:"REMINDERS_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "3001")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "transform-ai")
	viper.SetDefault("USE_MEMORY_STORAGE", false)
	viper.SetDefault("BASE_URL", "http://localhost:3001")
	viper.SetDefault("EMAIL_ENABLED", false)
	viper.SetDefault("EMAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("EMAIL_PORT", 587)
	viper.SetDefault("EMAIL_FROM", "appointments@transform-ai-solutions.com")
	viper.SetDefault("SESSION_BACKEND", "memory")
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("REMINDERS_ENABLED", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
