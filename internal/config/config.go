package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
		Auth
		Contact
		StatsReport
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Auth struct {
		CookieMaxAge  time.Duration
		SecureCookies bool // Set to false for local dev without HTTPS

		// Trust the identity cookie contents when the store cannot be
		// reached to re-validate the referenced user.
		TrustCookieOnStoreUnavailable bool

		CSRFEnabled bool
		CSRFSecret  string // Auto-generated if empty
	}
	Contact struct {
		DiscordWebhookURL string
	}
	StatsReport struct {
		Enabled  bool
		Schedule string // Cron format: "0 6 * * *" = daily at 06:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_cookie_max_age", "720h") // 30 days
	v.SetDefault("auth_secure_cookies", true)   // HTTPS-only cookies
	v.SetDefault("auth_trust_cookie_on_store_unavailable", true)
	v.SetDefault("auth_csrf_enabled", false)
	v.SetDefault("auth_csrf_secret", "") // Auto-generated if empty

	// Contact form defaults
	v.SetDefault("discord_webhook_url", "")

	// Stats report defaults
	v.SetDefault("stats_report_enabled", false)
	v.SetDefault("stats_report_schedule", "0 6 * * *") // Daily at 06:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Auth: Auth{
			CookieMaxAge:                  v.GetDuration("AUTH_COOKIE_MAX_AGE"),
			SecureCookies:                 v.GetBool("AUTH_SECURE_COOKIES"),
			TrustCookieOnStoreUnavailable: v.GetBool("AUTH_TRUST_COOKIE_ON_STORE_UNAVAILABLE"),
			CSRFEnabled:                   v.GetBool("AUTH_CSRF_ENABLED"),
			CSRFSecret:                    v.GetString("AUTH_CSRF_SECRET"),
		},
		Contact: Contact{
			DiscordWebhookURL: v.GetString("DISCORD_WEBHOOK_URL"),
		},
		StatsReport: StatsReport{
			Enabled:  v.GetBool("STATS_REPORT_ENABLED"),
			Schedule: v.GetString("STATS_REPORT_SCHEDULE"),
		},
	}
}
