package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server" envPrefix:"SERVER_"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Email    EmailConfig    `yaml:"email" envPrefix:"EMAIL_"`
	S3       S3Config       `yaml:"s3" envPrefix:"S3_"`
	Log      LogConfig      `yaml:"log" envPrefix:"LOG_"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host      string `yaml:"host" env:"HOST"`
	Port      int    `yaml:"port" env:"PORT"`
	APIPrefix string `yaml:"api_prefix" env:"API_PREFIX"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL  string `yaml:"url" env:"DATABASE_URL"`
	Name string `yaml:"name" env:"DB_NAME"`
}

// CORSConfig holds the allowed browser origins
type CORSConfig struct {
	Origins []string `yaml:"origins" env:"CORS_ORIGINS" envSeparator:","`
}

// EmailConfig holds outbound SMTP configuration
type EmailConfig struct {
	User string `yaml:"user" env:"USER"`
	Pass string `yaml:"pass" env:"PASS"`
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`
}

// Configured reports whether credentials are present
func (c *EmailConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}

// S3Config holds object storage configuration for activity exports
type S3Config struct {
	Region    string `yaml:"region" env:"REGION"`
	Bucket    string `yaml:"bucket" env:"BUCKET"`
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
}

// Configured reports whether exports can be written
func (c *S3Config) Configured() bool {
	return c.Bucket != ""
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8001,
			APIPrefix: "/api",
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Email: EmailConfig{
			Host: "smtp.gmail.com",
			Port: 465,
		},
		S3: S3Config{
			Region: "us-east-1",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and the process environment, in increasing priority.
func Load(path, dotenvPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// godotenv never overrides variables that are already set
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails when the store cannot be reached
func (c *Config) Validate() error {
	if c.Database.URL == "" || c.Database.Name == "" {
		return errors.New("missing DATABASE_URL or DB_NAME")
	}
	return nil
}

// Addr returns the listen address
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
