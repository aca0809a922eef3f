package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/attendly/attendance-engine-go/internal/pkg/timemath"
	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	JWT     JWTConfig
	Workday WorkdayConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// BackendConfig holds the HRIS backend gateway configuration
type BackendConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// WorkdayConfig holds the workday boundaries and the auto-logout
// schedule, all as minutes since midnight.
type WorkdayConfig struct {
	Start        int
	End          int
	DisplayStart int
	DisplayEnd   int
	WarnAt       int
	ForceAt      int
	Tick         time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; real env
	// vars take precedence either way.
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Backend gateway configuration
	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		BaseURL: getEnv("BACKEND_BASE_URL", ""),
		APIKey:  getEnv("BACKEND_API_KEY", ""),
		Timeout: backendTimeout,
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Workday configuration
	workdayStart, err := getEnvClock("WORKDAY_START", "09:00")
	if err != nil {
		return nil, err
	}
	workdayEnd, err := getEnvClock("WORKDAY_END", "17:00")
	if err != nil {
		return nil, err
	}
	displayStart, err := getEnvClock("TIMELINE_DISPLAY_START", "08:00")
	if err != nil {
		return nil, err
	}
	displayEnd, err := getEnvClock("TIMELINE_DISPLAY_END", "20:00")
	if err != nil {
		return nil, err
	}
	warnAt, err := getEnvClock("AUTO_LOGOUT_WARN_AT", "18:45")
	if err != nil {
		return nil, err
	}
	forceAt, err := getEnvClock("AUTO_LOGOUT_FORCE_AT", "19:00")
	if err != nil {
		return nil, err
	}
	tick, err := time.ParseDuration(getEnv("AUTO_LOGOUT_TICK", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_LOGOUT_TICK: %w", err)
	}

	config.Workday = WorkdayConfig{
		Start:        workdayStart,
		End:          workdayEnd,
		DisplayStart: displayStart,
		DisplayEnd:   displayEnd,
		WarnAt:       warnAt,
		ForceAt:      forceAt,
		Tick:         tick,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Workday.Start >= c.Workday.End {
		return fmt.Errorf("WORKDAY_START must come before WORKDAY_END")
	}
	if c.Workday.DisplayStart >= c.Workday.DisplayEnd {
		return fmt.Errorf("TIMELINE_DISPLAY_START must come before TIMELINE_DISPLAY_END")
	}
	if c.Workday.WarnAt >= c.Workday.ForceAt {
		return fmt.Errorf("AUTO_LOGOUT_WARN_AT must come before AUTO_LOGOUT_FORCE_AT")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvClock(key, fallback string) (int, error) {
	minutes, err := timemath.Parse(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return minutes, nil
}
