// Package config loads service configuration from .autoinfra.yaml with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/autoinfra/autoinfra/pkg/platform"
)

// OpenAI configures the intent extractor's LLM path. An empty APIKey
// means heuristic-only extraction.
type OpenAI struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Config holds service configuration.
type Config struct {
	Port        int      `yaml:"port"`
	StaticDir   string   `yaml:"static_dir"`
	TemplateDir string   `yaml:"template_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
	PricingFile string   `yaml:"pricing_file"`
	DebugDump   string   `yaml:"debug_dump"`
	OpenAI      OpenAI   `yaml:"openai"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Port:        8000,
		StaticDir:   "static",
		TemplateDir: "templates",
		CORSOrigins: []string{"*"},
		DebugDump:   filepath.Join(os.TempDir(), "last_generate_response.json"),
	}
}

// Load searches dir for .autoinfra.yaml or .autoinfra.yml, parses it over
// the defaults, then applies environment overrides. A missing file is not
// an error.
func Load(dir string) (Config, error) {
	cfg := Default()

	candidates := []string{
		filepath.Join(dir, ".autoinfra.yaml"),
		filepath.Join(dir, ".autoinfra.yml"),
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = platform.GetEnvInt("AUTOINFRA_PORT", c.Port)
	c.StaticDir = platform.GetEnv("AUTOINFRA_STATIC_DIR", c.StaticDir)
	c.TemplateDir = platform.GetEnv("AUTOINFRA_TEMPLATE_DIR", c.TemplateDir)
	c.PricingFile = platform.GetEnv("AUTOINFRA_PRICING_FILE", c.PricingFile)
	c.DebugDump = platform.GetEnv("AUTOINFRA_DEBUG_DUMP", c.DebugDump)
	c.OpenAI.APIKey = platform.GetEnv("OPENAI_API_KEY", c.OpenAI.APIKey)
	c.OpenAI.Model = platform.GetEnv("OPENAI_MODEL", c.OpenAI.Model)
	c.OpenAI.BaseURL = platform.GetEnv("OPENAI_BASE_URL", c.OpenAI.BaseURL)
}
