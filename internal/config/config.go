// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	SessionDriverMemory = "memory"
	SessionDriverSQLite = "sqlite"

	defaultUpstreamURL     = "http://localhost:5000"
	defaultUpstreamTimeout = 10 * time.Second
	defaultSessionTTL      = 8 * time.Hour
	defaultStaleTime       = time.Minute
	defaultCleanupCron     = "*/15 * * * *"
	defaultSweepCron       = "*/5 * * * *"
	defaultLoginPerMinute  = 10
	defaultLoginBurst      = 5
)

type UpstreamConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type SessionConfig struct {
	Driver      string        `yaml:"driver"`
	Filename    string        `yaml:"filename"`
	TTL         time.Duration `yaml:"ttl"`
	CleanupCron string        `yaml:"cleanup_cron"`
}

type CacheConfig struct {
	StaleTime time.Duration `yaml:"stale_time"`
	SweepCron string        `yaml:"sweep_cron"`
}

type RateLimitConfig struct {
	LoginPerMinute int `yaml:"login_per_minute"`
	LoginBurst     int `yaml:"login_burst"`
}

type Config struct {
	App struct {
		Name        string `yaml:"name"`
		Environment string `yaml:"environment"`
		Port        int    `yaml:"port"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"app"`

	Upstream  UpstreamConfig  `yaml:"upstream"`
	Session   SessionConfig   `yaml:"session"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	Features struct {
		// DemoMode renders fixed sample data when a list cannot be loaded.
		DemoMode    bool `yaml:"demo_mode"`
		EnableDebug bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if upstream := os.Getenv("UPSTREAM_BASE_URL"); upstream != "" {
		cfg.Upstream.BaseURL = upstream
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML configuration and fills in defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = defaultUpstreamURL
	}
	if c.Upstream.Timeout <= 0 {
		c.Upstream.Timeout = defaultUpstreamTimeout
	}
	if c.Session.Driver == "" {
		c.Session.Driver = SessionDriverMemory
	}
	if c.Session.TTL <= 0 {
		c.Session.TTL = defaultSessionTTL
	}
	if c.Session.CleanupCron == "" {
		c.Session.CleanupCron = defaultCleanupCron
	}
	if c.Cache.StaleTime <= 0 {
		c.Cache.StaleTime = defaultStaleTime
	}
	if c.Cache.SweepCron == "" {
		c.Cache.SweepCron = defaultSweepCron
	}
	if c.RateLimit.LoginPerMinute <= 0 {
		c.RateLimit.LoginPerMinute = defaultLoginPerMinute
	}
	if c.RateLimit.LoginBurst <= 0 {
		c.RateLimit.LoginBurst = defaultLoginBurst
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}

	upstream, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || upstream.Scheme == "" || upstream.Host == "" {
		return fmt.Errorf("upstream base_url must be an absolute URL")
	}

	switch c.Session.Driver {
	case SessionDriverMemory:
	case SessionDriverSQLite:
		if c.Session.Filename == "" {
			return fmt.Errorf("session filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported session driver: %s", c.Session.Driver)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Session.CleanupCron); err != nil {
		return fmt.Errorf("session cleanup_cron: %w", err)
	}
	if _, err := parser.Parse(c.Cache.SweepCron); err != nil {
		return fmt.Errorf("cache sweep_cron: %w", err)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c != nil && c.App.Environment == "development"
}
