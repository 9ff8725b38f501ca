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

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`

	// MongoDB (backing store for the internal calendar provider).
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Calendar provider selection: "mongo" or "google".
	CalendarProvider      string `mapstructure:"CALENDAR_PROVIDER"`
	GoogleCredentialsPath string `mapstructure:"GOOGLE_CREDENTIALS_PATH"`
	GoogleCalendarID      string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Gemini entity extraction; empty key falls back to the regex extractor.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// SMTP for confirmation email; empty password enables mock mode.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPSender   string `mapstructure:"SMTP_SENDER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	// Scheduling contract: work-day window, slot step, session lifetime.
	WorkDayStart      string `mapstructure:"WORK_DAY_START"`
	WorkDayEnd        string `mapstructure:"WORK_DAY_END"`
	SlotStepMinutes   int    `mapstructure:"SLOT_STEP_MINUTES"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
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
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("CALENDAR_PROVIDER", "mongo")
	viper.SetDefault("GOOGLE_CREDENTIALS_PATH", "credentials/google_credentials.json")
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_SENDER", "booking@example.com")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("WORK_DAY_START", "09:00")
	viper.SetDefault("WORK_DAY_END", "17:00")
	viper.SetDefault("SLOT_STEP_MINUTES", 15)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)

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
