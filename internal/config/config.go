package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds all configuration for the perks directory service
type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Dataset DatasetConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// SiteConfig holds the site identity used by pages, SEO schemas, and the
// sitemap.
type SiteConfig struct {
	Name        string
	ShortName   string
	Description string
	BaseURL     string
	GitHubURL   string
}

// DatasetConfig holds perk dataset configuration. When Dir is empty the
// embedded dataset is used.
type DatasetConfig struct {
	Dir string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Site: SiteConfig{
			Name:        getEnv("SITE_NAME", "Startup Perks Directory"),
			ShortName:   getEnv("SITE_SHORT_NAME", "Startup Perks"),
			Description: getEnv("SITE_DESCRIPTION", "Discover $1M+ in free cloud credits, AI API access, and developer tools for startups"),
			BaseURL:     getEnv("SITE_BASE_URL", "https://startupperks.directory"),
			GitHubURL:   getEnv("SITE_GITHUB_URL", "https://github.com/smartdev09/startup-perks"),
		},
		Dataset: DatasetConfig{
			Dir: getEnv("DATASET_DIR", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	u, err := url.Parse(c.Site.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid site base URL: %q", c.Site.BaseURL)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
