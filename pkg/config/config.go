package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort           = 443
	DefaultCluster        = "VSAN-Cluster"
	DefaultTimeoutSeconds = 60
)

// Config holds the vCenter connection parameters and report target.
type Config struct {
	Host           string `json:"host"`
	Port           int    `json:"port"`
	User           string `json:"user"`
	Password       string `json:"password,omitempty"`
	Cluster        string `json:"cluster"`
	Insecure       bool   `json:"insecure"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

func LoadFromEnv() *Config {
	cfg := &Config{
		Host:     getEnv("VSANCHECK_HOST", ""),
		User:     getEnv("VSANCHECK_USER", ""),
		Password: getEnv("VSANCHECK_PASSWORD", ""),
		Cluster:  getEnv("VSANCHECK_CLUSTER", ""),
		Insecure: getEnv("VSANCHECK_INSECURE", "") == "true",
	}

	if port := os.Getenv("VSANCHECK_PORT"); port != "" {
		if v, err := strconv.Atoi(port); err == nil {
			cfg.Port = v
		}
	}

	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Cluster == "" {
		c.Cluster = DefaultCluster
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
}

// Validate checks the fields a connection cannot do without.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("vCenter host is required")
	}
	if c.User == "" {
		return fmt.Errorf("vCenter user is required")
	}
	return nil
}

// Timeout returns the per-operation deadline.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
