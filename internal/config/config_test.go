package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Site.BaseURL != "https://startupperks.directory" {
		t.Errorf("base url = %q", cfg.Site.BaseURL)
	}
	if cfg.Dataset.Dir != "" {
		t.Errorf("dataset dir = %q, want embedded default", cfg.Dataset.Dir)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SITE_NAME", "My Perks")
	t.Setenv("SITE_BASE_URL", "https://perks.example.com")
	t.Setenv("DATASET_DIR", "/srv/perks/data")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Site.Name != "My Perks" {
		t.Errorf("site name = %q", cfg.Site.Name)
	}
	if cfg.Site.BaseURL != "https://perks.example.com" {
		t.Errorf("base url = %q", cfg.Site.BaseURL)
	}
	if cfg.Dataset.Dir != "/srv/perks/data" {
		t.Errorf("dataset dir = %q", cfg.Dataset.Dir)
	}
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "base url without scheme",
			mutate:  func(c *Config) { c.Site.BaseURL = "perks.example.com" },
			wantErr: "invalid site base URL",
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.Site.BaseURL = "" },
			wantErr: "invalid site base URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
				Site:   SiteConfig{BaseURL: "https://perks.example.com"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
