package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultJWTAccessTTL   = "15m"
	defaultRefreshTTL     = "168h"
	defaultRememberTTL    = "720h"
	defaultOTPCodeTTL     = "10m"
	defaultOTPCodeLength  = "6"
	defaultDevMailEnabled = "true"
	defaultJWTSecret      = "change-me-jwt-secret"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	DatabaseURL    string
	JWTSecret      string
	JWTAccessTTL   time.Duration
	RefreshTTL     time.Duration
	RememberTTL    time.Duration
	OTPCodeTTL     time.Duration
	OTPCodeLength  int
	DevMailEnabled bool
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", "authbox.db"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}
	cfg.RememberTTL, err = parseDurationEnv("REFRESH_REMEMBER_TTL", defaultRememberTTL)
	if err != nil {
		return nil, err
	}
	cfg.OTPCodeTTL, err = parseDurationEnv("OTP_CODE_TTL", defaultOTPCodeTTL)
	if err != nil {
		return nil, err
	}

	cfg.OTPCodeLength, err = strconv.Atoi(getEnv("OTP_CODE_LENGTH", defaultOTPCodeLength))
	if err != nil {
		return nil, fmt.Errorf("OTP_CODE_LENGTH must be an integer: %w", err)
	}
	cfg.DevMailEnabled = parseBoolEnv("DEV_MAIL_ENABLED", defaultDevMailEnabled)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s access_ttl=%s refresh_ttl=%s remember_ttl=%s",
		cfg.AppEnv, cfg.HTTPAddr, cfg.JWTAccessTTL, cfg.RefreshTTL, cfg.RememberTTL)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TTL must be > 0")
	}
	if cfg.RememberTTL < cfg.RefreshTTL {
		return fmt.Errorf("REFRESH_REMEMBER_TTL must be >= REFRESH_TTL")
	}
	if cfg.OTPCodeTTL <= 0 {
		return fmt.Errorf("OTP_CODE_TTL must be > 0")
	}
	if cfg.OTPCodeLength < 4 || cfg.OTPCodeLength > 10 {
		return fmt.Errorf("OTP_CODE_LENGTH must be between 4 and 10")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
	}
	return d, nil
}

func parseBoolEnv(key, fallback string) bool {
	v := getEnv(key, fallback)
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
