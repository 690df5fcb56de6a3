// CLAUDE:SUMMARY Auditor configuration (language, statement terms, acquisition, history) and YAML loader.
package auditor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/a11ycheck/render"
)

// Config holds all a11ycheck configuration.
type Config struct {
	// Language of clause labels, messages and CSV headers: "en" or "he".
	Language string `yaml:"language"`

	// StatementTerms mark an accessibility statement page.
	StatementTerms []string `yaml:"statement_terms"`

	Render  render.Config `yaml:"render"`
	History HistoryConfig `yaml:"history"`
}

// HistoryConfig controls the audit history store.
type HistoryConfig struct {
	// DBPath of the SQLite history. Empty disables history.
	DBPath string `yaml:"db_path"`
}

func (c *Config) defaults() {
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Render.Mode == "" {
		c.Render.Mode = render.ModeAuto
	}
	if c.Render.MaxBodySize <= 0 {
		c.Render.MaxBodySize = 10 << 20
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("auditor: read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("auditor: parse config %s: %w", path, err)
	}
	return cfg, nil
}
