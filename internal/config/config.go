package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureSessionSecret = "supersecretkey"

type Config struct {
	Addr            string        `yaml:"addr"`
	Env             string        `yaml:"env"`
	BaseURL         string        `yaml:"base_url"`
	SessionSecret   string        `yaml:"session_secret"`
	SessionDuration time.Duration `yaml:"session_duration"`
	APITimeout      time.Duration `yaml:"timeout"`
	DatabasePath    string        `yaml:"database_path"`
	// AdminTokenHash is a bcrypt hash of the admin bearer token. When empty,
	// admin endpoints are reachable only in the development environment.
	AdminTokenHash    string       `yaml:"admin_token_hash"`
	Github            GithubConfig `yaml:"github"`
	DiscordWebhookURL string       `yaml:"discord_webhook_url"`
}

type GithubConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("COOP_ADDR", ":8080"),
		Env:             getEnv("COOP_ENV", "development"),
		BaseURL:         getEnv("COOP_BASE_URL", "http://localhost:8080"),
		SessionSecret:   getEnv("COOP_SESSION_SECRET", insecureSessionSecret),
		SessionDuration: 24 * time.Hour,
		APITimeout:      15 * time.Second,
		DatabasePath:    getEnv("COOP_DATABASE_PATH", "coop.db"),
		AdminTokenHash:  getEnv("COOP_ADMIN_TOKEN_HASH", ""),
		Github: GithubConfig{
			ClientID:     getEnv("COOP_GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("COOP_GITHUB_CLIENT_SECRET", ""),
		},
		DiscordWebhookURL: getEnv("COOP_DISCORD_WEBHOOK_URL", ""),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks the loaded configuration for values that must not reach a
// deployed environment.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.SessionDuration <= 0 {
		c.SessionDuration = 24 * time.Hour
	}
	if c.APITimeout <= 0 {
		c.APITimeout = 15 * time.Second
	}
	if c.Env != "development" && c.SessionSecret == insecureSessionSecret {
		return fmt.Errorf("session_secret is the insecure default; set COOP_SESSION_SECRET in %s", c.Env)
	}

	return nil
}

// IsDevelopment reports whether the server runs in the development
// environment, which relaxes the admin gate when no admin token hash is set.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
