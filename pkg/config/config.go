package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIBaseURL matches the local development backend.
	DefaultAPIBaseURL = "http://localhost:8000"

	// EnvAPIBaseURL overrides api_base_url when set.
	EnvAPIBaseURL = "ANONI_API_URL"

	// DefaultAssistantName is used when the user leaves the field empty.
	DefaultAssistantName = "Anoni"
)

type Config struct {
	APIBaseURL    string `yaml:"api_base_url"`
	WebsiteURL    string `yaml:"website_url"`
	AssistantName string `yaml:"assistant_name"`
}

func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "anoni"), nil
}

func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GetIdentityDBPath returns the path of the durable identity store.
func GetIdentityDBPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "identity.db"), nil
}

// GetLogPath returns the path of the application log file. The TUI owns the
// terminal, so all logging goes to this file.
func GetLogPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "anoni.log"), nil
}

// Load reads the config file, returning defaults when it does not exist.
// The ANONI_API_URL environment variable always wins over the file value.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    DefaultAPIBaseURL,
		AssistantName: DefaultAssistantName,
	}

	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.AssistantName == "" {
		cfg.AssistantName = DefaultAssistantName
	}
	if env := os.Getenv(EnvAPIBaseURL); env != "" {
		cfg.APIBaseURL = env
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
