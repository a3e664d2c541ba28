package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		TemplatesDir string `yaml:"templates_dir"`
		BaseURL      string `yaml:"base_url"`
		LogoURL      string `yaml:"logo_url"`
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		// TTLMinutes applies to all roles. The admin role gets no special
		// never-expiring token.
		TTLMinutes int `yaml:"ttl_minutes"`
	} `yaml:"jwt"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// TokenTTL returns the configured token lifetime, defaulting to one hour.
func (c *Config) TokenTTL() time.Duration {
	if c.JWT.TTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWT.TTLMinutes) * time.Minute
}

// Load reads configuration from config.yaml, or entirely from environment
// variables when DATABASE_URL is set (the test and container path). The
// returned struct is passed down explicitly; there is no package-level state.
func Load() (*Config, error) {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
		applyEnvOverrides(&cfg)
		return &cfg, nil
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLMinutes = 60

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "no-reply@bloodlink.test"
	cfg.Email.FromName = "BloodLink"
	cfg.Email.TemplatesDir = "templates"

	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if email := os.Getenv("FIRST_ADMIN_EMAIL"); email != "" {
		cfg.FirstAdminEmail = email
	}
	if password := os.Getenv("FIRST_ADMIN_PASSWORD"); password != "" {
		cfg.FirstAdminPassword = password
	}
}
