package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		StaticDir      string   `yaml:"static_dir"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		MaxUploadMB    int64    `yaml:"max_upload_mb"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Auth struct {
		CredentialsFile string `yaml:"credentials_file"`
		SessionTTL      string `yaml:"session_ttl"`
	} `yaml:"auth"`
	Pool struct {
		TTL string `yaml:"ttl"`
	} `yaml:"pool"`
	Client struct {
		ServerURL string `yaml:"server_url"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
	} `yaml:"client"`
	Messages Messages `yaml:"messages"`
}

// Messages override the alert texts shown to quiz takers.
type Messages struct {
	NoFile       string `yaml:"no_file"`
	UploadFailed string `yaml:"upload_failed"`
	EmptyPool    string `yaml:"empty_pool"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields an empty config.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
