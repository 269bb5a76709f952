package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`
	StaticDir         string `mapstructure:"STATIC_DIR"`

	// Persistence backend for itineraries: firebase, mongo or memory.
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisEventsDB int    `mapstructure:"REDIS_EVENTS_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`
	ResultsQueue  string `mapstructure:"RESULTS_QUEUE"`

	// Firebase configuration.
	FirebaseCredentialsFile string        `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseDatabaseURL     string        `mapstructure:"FIREBASE_DATABASE_URL"`
	FirebaseProjectID       string        `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseWebAPIKey       string        `mapstructure:"FIREBASE_WEB_API_KEY"`
	SessionCookieTTL        time.Duration `mapstructure:"SESSION_COOKIE_TTL"`

	// Assistant wiring.
	ChatAPIURL      string        `mapstructure:"CHAT_API_URL"`
	ChatAPITimeout  time.Duration `mapstructure:"CHAT_API_TIMEOUT"`
	ReplyTimeout    time.Duration `mapstructure:"REPLY_TIMEOUT"`
	NotifyMaxRetry  int           `mapstructure:"NOTIFY_MAX_RETRY"`
	AssistantSecret string        `mapstructure:"ASSISTANT_SECRET"`

	CatalogCacheTTL time.Duration `mapstructure:"CATALOG_CACHE_TTL"`
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

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("STORE_BACKEND", "firebase")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "tripmate")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_EVENTS_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("RESULTS_QUEUE", "results:user_interface")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_DATABASE_URL", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_WEB_API_KEY", "")
	v.SetDefault("SESSION_COOKIE_TTL", 5*24*time.Hour)
	v.SetDefault("CHAT_API_URL", "http://localhost:8014/chat")
	v.SetDefault("CHAT_API_TIMEOUT", 10*time.Second)
	v.SetDefault("REPLY_TIMEOUT", 2*time.Minute)
	v.SetDefault("NOTIFY_MAX_RETRY", 3)
	v.SetDefault("ASSISTANT_SECRET", "")
	v.SetDefault("CATALOG_CACHE_TTL", 30*time.Minute)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
