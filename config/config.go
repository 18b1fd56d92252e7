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
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Mongo.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Company basics surfaced in fallback copy.
	CompanyName  string `mapstructure:"COMPANY_NAME"`
	CompanyPhone string `mapstructure:"COMPANY_PHONE"`
	DispatchFee  int    `mapstructure:"DISPATCH_FEE_CENTS"`

	// Conversation loop.
	MaxToolRounds    int `mapstructure:"MAX_TOOL_ROUNDS"`
	TurnBudgetSecs   int `mapstructure:"TURN_BUDGET_SECS"`
	SessionTTLMins   int `mapstructure:"SESSION_TTL_MINS"`

	// Capacity engine.
	SameDayCutoffHour  int `mapstructure:"SAME_DAY_CUTOFF_HOUR"`
	CapacityRefreshMin int `mapstructure:"CAPACITY_REFRESH_MIN"`

	// Collaborators.
	DispatchPlatformURL string `mapstructure:"DISPATCH_PLATFORM_URL"`
	GeminiAPIKey        string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel         string `mapstructure:"GEMINI_MODEL"`
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	JWTSecret           string `mapstructure:"JWT_SECRET"`

	// Google service account for Firebase and Speech-to-Text.
	GoogleServiceAccountFile string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_FILE"`
	FCMOfficeTopic           string `mapstructure:"FCM_OFFICE_TOPIC"`
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
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "fieldassist")
	viper.SetDefault("COMPANY_NAME", "our office")
	viper.SetDefault("COMPANY_PHONE", "(555) 014-0199")
	viper.SetDefault("DISPATCH_FEE_CENTS", 8900)
	viper.SetDefault("MAX_TOOL_ROUNDS", 2)
	viper.SetDefault("TURN_BUDGET_SECS", 25)
	viper.SetDefault("SESSION_TTL_MINS", 30)
	viper.SetDefault("SAME_DAY_CUTOFF_HOUR", 16)
	viper.SetDefault("CAPACITY_REFRESH_MIN", 5)
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("FCM_OFFICE_TOPIC", "office-alerts")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// GetEnv returns the application environment.
func GetEnv() string {
	return AppConfig.Env
}

// IsProduction checks if the environment is production.
func IsProduction() bool {
	return GetEnv() == "production"
}
