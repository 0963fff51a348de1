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

	// Reservation store: mongo, postgres or memory.
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	PostgresURL  string `mapstructure:"POSTGRES_URL"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking.
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	PlaceholderTTL time.Duration `mapstructure:"PLACEHOLDER_TTL"`
	HourlyRate     int64         `mapstructure:"HOURLY_RATE"`
	VenueTimezone  string        `mapstructure:"VENUE_TIMEZONE"`

	// Secrets.
	ObfuscationKey    string `mapstructure:"OBFUSCATION_KEY"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminUsername     string `mapstructure:"ADMIN_USERNAME"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
}

var AppConfig Config

var keys = []string{
	"APP_PORT", "ENV", "LOG_LEVEL", "MAX_REQUESTS_PER_MIN", "CORS_ORIGINS",
	"STORE_DRIVER", "DATABASE_URL", "DATABASE_NAME", "POSTGRES_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_CACHE_DB", "REDIS_QUEUE_DB",
	"SESSION_TTL", "PLACEHOLDER_TTL", "HOURLY_RATE", "VENUE_TIMEZONE",
	"OBFUSCATION_KEY", "JWT_SECRET", "ADMIN_USERNAME", "ADMIN_PASSWORD_HASH",
}

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
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("STORE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "rapstation")
	viper.SetDefault("POSTGRES_URL", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SESSION_TTL", "30m")
	viper.SetDefault("PLACEHOLDER_TTL", "2h")
	viper.SetDefault("HOURLY_RATE", 15000)
	viper.SetDefault("VENUE_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("OBFUSCATION_KEY", "")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")

	// AutomaticEnv only covers keys viper already knows about.
	for _, k := range keys {
		_ = viper.BindEnv(k)
	}

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

// Origins splits CORS_ORIGINS on commas.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Location resolves VENUE_TIMEZONE, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.VenueTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
