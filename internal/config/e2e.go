package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported browser drivers
const (
	DriverPlaywright = "playwright"
	DriverHTML       = "html"
)

// E2EConfig holds configuration for running the browser suite
type E2EConfig struct {
	// BaseURL of the shop under test. Empty means a local storefront is
	// started for the run.
	BaseURL         string
	Driver          string
	Browser         string
	Headless        bool
	SlowMo          time.Duration
	WaitTimeout     time.Duration
	ScreenshotDir   string
	AttachmentDir   string
	Username        string
	Password        string
	InstallBrowsers bool
}

// LoadE2EConfig loads suite configuration from environment variables
func LoadE2EConfig(getenv func(string) string) (*E2EConfig, error) {
	config := &E2EConfig{
		BaseURL:       strings.TrimSpace(getenv("E2E_BASE_URL")),
		Driver:        strings.ToLower(getenv("E2E_DRIVER")),
		Browser:       strings.ToLower(getenv("E2E_BROWSER")),
		ScreenshotDir: getenv("E2E_SCREENSHOT_DIR"),
		AttachmentDir: getenv("E2E_ATTACHMENT_DIR"),
		Username:      getenv("E2E_USERNAME"),
		Password:      getenv("E2E_PASSWORD"),
	}

	if config.Driver == "" {
		config.Driver = DriverPlaywright
	}
	if config.Driver != DriverPlaywright && config.Driver != DriverHTML {
		return nil, fmt.Errorf("E2E_DRIVER must be %q or %q, got %q", DriverPlaywright, DriverHTML, config.Driver)
	}
	switch config.Browser {
	case "":
		config.Browser = "chromium"
	case "chromium", "firefox", "webkit":
	default:
		return nil, fmt.Errorf("E2E_BROWSER must be chromium, firefox or webkit, got %q", config.Browser)
	}
	if config.ScreenshotDir == "" {
		config.ScreenshotDir = "screenshots"
	}
	if config.Username == "" {
		config.Username = "standard_user"
	}
	if config.Password == "" {
		config.Password = "secret_sauce"
	}

	var err error
	if config.Headless, err = parseBool(getenv, "E2E_HEADLESS", true); err != nil {
		return nil, err
	}
	if config.InstallBrowsers, err = parseBool(getenv, "PLAYWRIGHT_INSTALL", false); err != nil {
		return nil, err
	}
	if config.SlowMo, err = parseDuration(getenv, "E2E_SLOW_MO", 0); err != nil {
		return nil, err
	}
	if config.WaitTimeout, err = parseDuration(getenv, "E2E_WAIT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if config.WaitTimeout <= 0 {
		return nil, fmt.Errorf("E2E_WAIT_TIMEOUT must be positive")
	}

	return config, nil
}

func parseBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 500ms: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}
