// Package config loads the HTTP server configuration.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/EdTheDev254/audio-steganography/stego"
)

// Config holds the server settings.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// AllowOrigins is the CORS allow-list.
	AllowOrigins []string `yaml:"allow_origins"`

	// MaxUploadMB caps the multipart form memory per request.
	MaxUploadMB int64 `yaml:"max_upload_mb"`

	// StealthStepThreshold is the minimum interleave step counted as
	// stealth-safe by the capacity analyzer.
	StealthStepThreshold int `yaml:"stealth_step_threshold"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:                 "8080",
		AllowOrigins:         []string{"http://localhost:3000"},
		MaxUploadMB:          32,
		StealthStepThreshold: stego.DefaultStealthStep,
	}
}

// Load reads the YAML file at path when path is non-empty, on top of
// the defaults. The PORT environment variable overrides the configured
// port either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if cfg.StealthStepThreshold < 1 {
		cfg.StealthStepThreshold = stego.DefaultStealthStep
	}
	if cfg.MaxUploadMB < 1 {
		cfg.MaxUploadMB = 32
	}
	return cfg, nil
}
