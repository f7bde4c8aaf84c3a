package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Upstream safari API.
	UpstreamBaseURL  string `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeoutS int    `mapstructure:"UPSTREAM_TIMEOUT_S"`
	ChatRelayEnabled bool   `mapstructure:"CHAT_RELAY_ENABLED"`
	CurrencyAPIURL   string `mapstructure:"CURRENCY_API_URL"`

	WhatsAppNumber    string `mapstructure:"WHATSAPP_NUMBER"`
	BankAccountNumber string `mapstructure:"BANK_ACCOUNT_NUMBER"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB   int    `mapstructure:"REDIS_SESSION_DB"`
	RedisChatQueueDB int    `mapstructure:"REDIS_CHAT_QUEUE_DB"`

	// Visitor session cookie.
	SessionCookieName string `mapstructure:"SESSION_COOKIE_NAME"`
	SessionTTLHours   int    `mapstructure:"SESSION_TTL_HOURS"`
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
	viper.SetDefault("UPSTREAM_BASE_URL", "http://localhost:8000/api")
	viper.SetDefault("UPSTREAM_TIMEOUT_S", 30)
	viper.SetDefault("CHAT_RELAY_ENABLED", true)
	viper.SetDefault("CURRENCY_API_URL", "https://api.exchangerate.host")
	viper.SetDefault("WHATSAPP_NUMBER", "254741106404")
	viper.SetDefault("BANK_ACCOUNT_NUMBER", "098989083")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_CHAT_QUEUE_DB", 1)
	viper.SetDefault("SESSION_COOKIE_NAME", "solvo_session")
	viper.SetDefault("SESSION_TTL_HOURS", 72)

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

// SessionTTL is the visitor session lifetime.
func SessionTTL() time.Duration {
	return time.Duration(AppConfig.SessionTTLHours) * time.Hour
}

// UpstreamTimeout is the per-request timeout for upstream API calls.
func UpstreamTimeout() time.Duration {
	return time.Duration(AppConfig.UpstreamTimeoutS) * time.Second
}
