// Package config loads host configuration from an optional YAML file, a
// .env file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/scriptmeta/scriptmeta/prompt"
	"github.com/scriptmeta/scriptmeta/validate"
	"gopkg.in/yaml.v3"
)

// Config is the host application configuration.
type Config struct {
	AI struct {
		Provider string `yaml:"provider"` // "openai" or "googleai"
		Model    string `yaml:"model"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"ai"`

	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`

	CachePath string `yaml:"cache_path"`

	// Sections overrides the section names requested from the model and
	// required in the reply. Empty means prompt.DefaultSections.
	Sections []string `yaml:"sections"`

	Metadata struct {
		Section       string `yaml:"section"`
		Language      string `yaml:"language"`
		AudioLanguage string `yaml:"audio_language"`
	} `yaml:"metadata"`
}

// Load reads configuration from path. A missing file is not an error: the
// defaults apply and environment variables can still override them. An empty
// path skips the file entirely.
func Load(path string) (*Config, error) {
	// Load .env if present
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(file, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.AI.Provider = "openai"
	cfg.AI.Model = "gpt-4o-mini"
	cfg.Server.Listen = "127.0.0.1:8787"
	cfg.CachePath = "scriptmeta.db"
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SCRIPTMETA_AI_PROVIDER"); v != "" {
		cfg.AI.Provider = v
	}
	if v := os.Getenv("SCRIPTMETA_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("SCRIPTMETA_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("SCRIPTMETA_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("SCRIPTMETA_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
}

// RequiredSections returns the configured section list, falling back to the
// stock set.
func (c *Config) RequiredSections() []string {
	if len(c.Sections) > 0 {
		return c.Sections
	}
	return prompt.DefaultSections
}

// Rules builds the metadata validation rules, applying any configured
// overrides on top of the defaults.
func (c *Config) Rules() validate.Rules {
	rules := validate.DefaultRules()
	if c.Metadata.Section != "" {
		rules.SectionTitle = c.Metadata.Section
	}
	if c.Metadata.Language != "" {
		rules.Language = c.Metadata.Language
	}
	if c.Metadata.AudioLanguage != "" {
		rules.AudioLanguage = c.Metadata.AudioLanguage
	}
	// The schema pins the locale codes too; recompile it with the effective
	// codes so the structural pass and the prompt agree with the checks.
	rules.Schema = validate.MetadataSchemaFor(rules.Language, rules.AudioLanguage)
	return rules
}
