package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	AppBaseURL        string `mapstructure:"APP_BASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration. The cache DB backs geolocation caching; the task
	// DB backs the asynq reminder queue.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Scheduling. The offer window is expressed in admin-zone wall-clock
	// hours; all slots are generated in the admin zone first.
	AdminTimezone    string `mapstructure:"ADMIN_TIMEZONE"`
	OfferWindowStart int    `mapstructure:"OFFER_WINDOW_START"`
	OfferWindowEnd   int    `mapstructure:"OFFER_WINDOW_END"`
	AllowedDurations []int  `mapstructure:"ALLOWED_DURATIONS"`

	// Google Calendar OAuth credentials (personal calendar, refresh-token flow).
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRefreshToken string `mapstructure:"GOOGLE_REFRESH_TOKEN"`
	GoogleRedirectURI  string `mapstructure:"GOOGLE_REDIRECT_URI"`
	GoogleCalendarID   string `mapstructure:"GOOGLE_CALENDAR_ID"`

	// Outbound email.
	SMTPHost  string `mapstructure:"SMTP_HOST"`
	SMTPPort  string `mapstructure:"SMTP_PORT"`
	EmailFrom string `mapstructure:"EMAIL_FROM"`

	OwnerName  string `mapstructure:"OWNER_NAME"`
	OwnerEmail string `mapstructure:"OWNER_EMAIL"`

	// Minutes before the meeting start at which the reminder email fires.
	ReminderLeadMinutes int `mapstructure:"REMINDER_LEAD_MINUTES"`

	// Access control.
	AllowedOrigins  []string `mapstructure:"ALLOWED_ORIGINS"`
	AdminAllowedIPs []string `mapstructure:"ADMIN_ALLOWED_IPS"`
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
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "portfolio")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TASK_DB", 1)
	viper.SetDefault("ADMIN_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("OFFER_WINDOW_START", 20)
	viper.SetDefault("OFFER_WINDOW_END", 24)
	viper.SetDefault("ALLOWED_DURATIONS", []int{15, 30, 60})
	viper.SetDefault("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/auth/google/callback")
	viper.SetDefault("GOOGLE_CALENDAR_ID", "primary")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", "1025")
	viper.SetDefault("EMAIL_FROM", "")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("ALLOWED_ORIGINS", []string{})
	viper.SetDefault("ADMIN_ALLOWED_IPS", []string{})

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
