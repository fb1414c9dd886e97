package config

import (
	"encoding/json"
	"log"
	"os"
)

type Config struct {
	App        AppConfig                 `json:"app"`
	Providers  map[string]ProviderConfig `json:"providers"`
	Translator TranslatorConfig          `json:"translator"`
	Registry   RegistryConfig            `json:"registry"`
	Datasets   map[string]string         `json:"datasets"` // name -> URI
	Store      StoreConfig               `json:"store"`
	Policy     PolicyConfig              `json:"policy"`
}

type AppConfig struct {
	Name string `json:"name"`
}

type ProviderConfig struct {
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url,omitempty"`
	Enabled bool   `json:"enabled"`
}

type TranslatorConfig struct {
	BackendTimeoutSeconds int     `json:"backend_timeout_seconds"`
	MaxTokens             int     `json:"max_tokens"`
	Temperature           float64 `json:"temperature"`
	Prompts               string  `json:"prompts,omitempty"` // optional prompt override directory
}

type RegistryConfig struct {
	Catalog string `json:"catalog,omitempty"` // optional YAML operation catalog
}

type StoreConfig struct {
	Path string `json:"path"`
}

type PolicyConfig struct {
	DeniedOperations      []string `json:"denied_operations,omitempty"`
	DeniedDatasetPatterns []string `json:"denied_dataset_patterns,omitempty"`
}

func LoadConfig(path string) *Config {
	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open config file: %v", err)
	}
	defer file.Close()

	var cfg Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config file: %v", err)
	}

	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "geoflow"
	}
	if c.Translator.BackendTimeoutSeconds <= 0 {
		c.Translator.BackendTimeoutSeconds = 30
	}
	if c.Translator.MaxTokens <= 0 {
		c.Translator.MaxTokens = 512
	}
	if c.Translator.Temperature == 0 {
		c.Translator.Temperature = 0.1
	}
	if c.Store.Path == "" {
		c.Store.Path = "geoflow.db"
	}
}

// GetDefaultProvider returns the first enabled provider
func (c *Config) GetDefaultProvider() (string, ProviderConfig) {
	for name, p := range c.Providers {
		if p.Enabled {
			return name, p
		}
	}
	return "", ProviderConfig{}
}
