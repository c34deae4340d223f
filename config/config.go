package config

import (
	"fmt"
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
	MetricsEnabled    bool   `mapstructure:"METRICS_ENABLED"`
	PublicBaseURL     string `mapstructure:"PUBLIC_BASE_URL"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration. The queue DB backs the notification worker.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe checkout.
	StripeSecretKey     string `mapstructure:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	StripeCurrency      string `mapstructure:"STRIPE_CURRENCY"`
	Price30Min          int64  `mapstructure:"PRICE_30MIN"`
	Price60Min          int64  `mapstructure:"PRICE_60MIN"`

	// Consultation calendar.
	Timezone            string        `mapstructure:"TIMEZONE"`
	BusinessOpen        string        `mapstructure:"BUSINESS_OPEN"`
	BusinessClose       string        `mapstructure:"BUSINESS_CLOSE"`
	WorkingDays         string        `mapstructure:"WORKING_DAYS"`
	BookingHorizonDays  int           `mapstructure:"BOOKING_HORIZON_DAYS"`
	PendingHoldTTL      time.Duration `mapstructure:"PENDING_HOLD_TTL"`
	SlotLockTTL         time.Duration `mapstructure:"SLOT_LOCK_TTL"`
	ExpirySweepInterval time.Duration `mapstructure:"EXPIRY_SWEEP_INTERVAL"`

	// Notification channels. Empty values disable the channel.
	SMTPHost         string `mapstructure:"SMTP_HOST"`
	SMTPPort         int    `mapstructure:"SMTP_PORT"`
	SMTPUsername     string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword     string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom         string `mapstructure:"SMTP_FROM"`
	FirmInbox        string `mapstructure:"FIRM_INBOX"`
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `mapstructure:"TELEGRAM_CHAT_ID"`
	WorkerEnabled    bool   `mapstructure:"WORKER_ENABLED"`
}

var AppConfig Config

// setDefaults registers a default for every key so AutomaticEnv can override all of them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:3000")

	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "lawdesk")

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_QUEUE_DB", 1)

	v.SetDefault("STRIPE_SECRET_KEY", "")
	v.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	v.SetDefault("STRIPE_CURRENCY", "gbp")
	v.SetDefault("PRICE_30MIN", 7500)
	v.SetDefault("PRICE_60MIN", 15000)

	v.SetDefault("TIMEZONE", "Europe/London")
	v.SetDefault("BUSINESS_OPEN", "09:00")
	v.SetDefault("BUSINESS_CLOSE", "17:00")
	v.SetDefault("WORKING_DAYS", "Mon,Tue,Wed,Thu,Fri")
	v.SetDefault("BOOKING_HORIZON_DAYS", 60)
	v.SetDefault("PENDING_HOLD_TTL", "30m")
	v.SetDefault("SLOT_LOCK_TTL", "10s")
	v.SetDefault("EXPIRY_SWEEP_INTERVAL", "5m")

	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("FIRM_INBOX", "")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", 0)
	v.SetDefault("WORKER_ENABLED", true)
}

// Load reads config.yaml from the working directory or ./config, then lets
// environment variables override any key.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Weekdays(); err != nil {
		return Config{}, err
	}
	// Checkout sessions expire with the hold and Stripe only accepts 30m to 24h.
	if cfg.PendingHoldTTL < 30*time.Minute || cfg.PendingHoldTTL > 24*time.Hour {
		return Config{}, fmt.Errorf("PENDING_HOLD_TTL must be between 30m and 24h, got %s", cfg.PendingHoldTTL)
	}
	return cfg, nil
}

// LoadConfig populates AppConfig from the global viper instance.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Location resolves the firm's time zone used for calendar days.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// Weekdays parses WORKING_DAYS ("Mon,Tue,...") into a lookup set.
func (c Config) Weekdays() (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, raw := range strings.Split(c.WorkingDays, ",") {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("invalid WORKING_DAYS entry %q", raw)
		}
		days[day] = true
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("WORKING_DAYS must name at least one day")
	}
	return days, nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
