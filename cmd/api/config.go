package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"transitcoop/internal/ratelimiter"
	"transitcoop/internal/scheduler"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: envInt("RATELIMITER_REQUESTS_COUNT", 20),
		TimeFrame:            5 * time.Second,
		Enabled:              envBool("RATE_LIMITER_ENABLED", true),
	}
}

// loadConfig reads the environment. The database address and the service
// key are required; everything else has a default.
func loadConfig() (config, error) {
	loc, err := time.LoadLocation(envOr("APP_TIMEZONE", "UTC"))
	if err != nil {
		return config{}, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	schedule := scheduler.DefaultResetSchedule
	if v, ok := os.LookupEnv("RESET_SCHEDULE"); ok {
		schedule = v
	}

	addr := envOr("ADDR", ":8080")
	cfg := config{
		addr:     addr,
		env:      envOr("ENV", "development"),
		apiURL:   envOr("EXTERNAL_URL", "localhost"+addr),
		location: loc,
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: envInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleTime:  envOr("DB_MAX_IDLE_TIME", "15m"),
			autoMigrate:  envBool("DB_AUTO_MIGRATE", false),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret:        os.Getenv("AUTH_TOKEN_SECRET"),
				refreshSecret: os.Getenv("AUTH_TOKEN_REFRESH_SECRET"),
				iss:           "transitcoop",
			},
		},
		serviceKey:  os.Getenv("SERVICE_KEY"),
		provisionTo: os.Getenv("PROVISIONING_URL"),
		reset:       resetConfig{schedule: schedule},
		mail: mailConfig{
			host:      os.Getenv("MAIL_SMTP_HOST"),
			port:      envInt("MAIL_SMTP_PORT", 587),
			username:  os.Getenv("MAIL_SMTP_USER"),
			password:  os.Getenv("MAIL_SMTP_PASS"),
			fromEmail: os.Getenv("MAIL_FROM_EMAIL"),
			domain:    envOr("PROVISIONING_EMAIL_DOMAIN", "demo.transitcoop.test"),
		},
		rateLimiter: LoadRateLimiterConfig(),
	}

	var missing []error
	if cfg.db.addr == "" {
		missing = append(missing, errors.New("DB_ADDR is required"))
	}
	if cfg.serviceKey == "" {
		missing = append(missing, errors.New("SERVICE_KEY is required"))
	}
	if cfg.auth.token.secret == "" || cfg.auth.token.refreshSecret == "" {
		missing = append(missing, errors.New("AUTH_TOKEN_SECRET and AUTH_TOKEN_REFRESH_SECRET are required"))
	}
	if err := errors.Join(missing...); err != nil {
		return config{}, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %t\n", key, fallback)
		return fallback
	}
	return b
}
