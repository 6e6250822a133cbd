package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the storefront client
type Config struct {
	API      APIConfig      `yaml:"api"`
	Tracking TrackingConfig `yaml:"tracking"`
}

// APIConfig holds connection settings for the food-truck backend
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// TrackingConfig holds order-tracking poll settings
type TrackingConfig struct {
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

// Load reads configuration from a YAML file, then applies environment
// overrides (a .env file is honoured when present).
func Load(filename string) (*Config, error) {
	config := &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5150",
			TimeoutSeconds: 10,
		},
		Tracking: TrackingConfig{
			PollIntervalSeconds: 10,
		},
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.applyEnvOverrides()

	return config, nil
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "api":
		return c.setAPIValue(key, value)
	case "tracking":
		return c.setTrackingValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

// setAPIValue sets API configuration values
func (c *Config) setAPIValue(key, value string) error {
	switch key {
	case "base_url":
		c.API.BaseURL = value
	case "timeout_seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid timeout_seconds value: %w", err)
		}
		c.API.TimeoutSeconds = seconds
	default:
		return fmt.Errorf("unknown api key: %s", key)
	}
	return nil
}

// setTrackingValue sets tracking configuration values
func (c *Config) setTrackingValue(key, value string) error {
	switch key {
	case "poll_interval_seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid poll_interval_seconds value: %w", err)
		}
		c.Tracking.PollIntervalSeconds = seconds
	default:
		return fmt.Errorf("unknown tracking key: %s", key)
	}
	return nil
}

// applyEnvOverrides lets the environment win over the config file
func (c *Config) applyEnvOverrides() {
	_ = godotenv.Load()

	if v := os.Getenv("STOREFRONT_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("STOREFRONT_API_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSeconds = seconds
		}
	}
	if v := os.Getenv("STOREFRONT_POLL_INTERVAL_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			c.Tracking.PollIntervalSeconds = seconds
		}
	}
}

// Timeout returns the HTTP request timeout for backend calls
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// PollInterval returns the delay between order-status polls
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Tracking.PollIntervalSeconds) * time.Second
}
