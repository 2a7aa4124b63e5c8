package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Scraper ScraperConfig
	Browser BrowserConfig
	Bot     BotConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type ScraperConfig struct {
	NavigationTimeout time.Duration
	SelectorTimeout   time.Duration
	PriceWaitTimeout  time.Duration
	SettleDelay       time.Duration
	RateLimitMin      time.Duration
	RateLimitMax      time.Duration
	MaxSearchResults  int
	MaxStores         int
	BaseURL           string
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
	UserAgent      string
}

type BotConfig struct {
	Token string
	Debug bool
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", "8080"),
			Host:            getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Scraper: ScraperConfig{
			NavigationTimeout: getDurationOrDefault("SCRAPER_NAVIGATION_TIMEOUT", 30*time.Second),
			SelectorTimeout:   getDurationOrDefault("SCRAPER_SELECTOR_TIMEOUT", 10*time.Second),
			PriceWaitTimeout:  getDurationOrDefault("SCRAPER_PRICE_WAIT_TIMEOUT", 5*time.Second),
			SettleDelay:       getDurationOrDefault("SCRAPER_SETTLE_DELAY", 1500*time.Millisecond),
			RateLimitMin:      getDurationOrDefault("SCRAPER_RATE_LIMIT_MIN", 2*time.Second),
			RateLimitMax:      getDurationOrDefault("SCRAPER_RATE_LIMIT_MAX", 6*time.Second),
			MaxSearchResults:  getIntOrDefault("SCRAPER_MAX_SEARCH_RESULTS", 20),
			MaxStores:         getIntOrDefault("SCRAPER_MAX_STORES", 30),
			BaseURL:           getEnvOrDefault("SCRAPER_BASE_URL", "https://lenta.com"),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "ru-RU,ru;q=0.9,en;q=0.8"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Europe/Moscow"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "ru-RU"),
			UserAgent: getEnvOrDefault("BROWSER_USER_AGENT",
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		},
		Bot: BotConfig{
			Token: os.Getenv("BOT_TOKEN"),
			Debug: getBoolOrDefault("BOT_DEBUG", false),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.MaxSearchResults < 1 {
		return fmt.Errorf("SCRAPER_MAX_SEARCH_RESULTS must be at least 1")
	}

	if c.Scraper.MaxStores < 1 {
		return fmt.Errorf("SCRAPER_MAX_STORES must be at least 1")
	}

	if c.Scraper.RateLimitMin > c.Scraper.RateLimitMax {
		return fmt.Errorf("SCRAPER_RATE_LIMIT_MIN cannot be greater than SCRAPER_RATE_LIMIT_MAX")
	}

	if !strings.HasPrefix(c.Scraper.BaseURL, "http") {
		return fmt.Errorf("SCRAPER_BASE_URL must be an absolute URL")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
