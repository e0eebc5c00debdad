// Package config loads the homer configuration file: input/output paths,
// page metadata, template selection and the optional serve/history settings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration. It is constructed once by
// the CLI layer and read-only afterwards.
type Config struct {
	Input     string          `yaml:"input"`
	Output    string          `yaml:"output"`
	Page      PageConfig      `yaml:"page"`
	Templates TemplatesConfig `yaml:"templates"`
	Render    RenderConfig    `yaml:"render,omitempty"`
	History   HistoryConfig   `yaml:"history,omitempty"`
	Serve     ServeConfig     `yaml:"serve,omitempty"`
}

// PageConfig holds page-level metadata stamped into the page template.
type PageConfig struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle,omitempty"`
}

// TemplatesConfig selects which template set to load and from where.
type TemplatesConfig struct {
	Directory string `yaml:"directory"`
	Theme     string `yaml:"theme"`
}

// RenderConfig holds rendering switches.
type RenderConfig struct {
	// MarkdownDescriptions renders description fields as inline Markdown
	// instead of stamping them literally.
	MarkdownDescriptions bool `yaml:"markdown_descriptions,omitempty"`
}

// HistoryConfig enables the run-history store when Path is set.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ServeConfig configures serve mode.
type ServeConfig struct {
	Port    int  `yaml:"port,omitempty"`
	Metrics bool `yaml:"metrics,omitempty"`
	// RebuildInterval is a Go duration string ("5m", "1h"); empty disables
	// the periodic rebuild.
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
}

// RebuildIntervalDuration parses the configured rebuild interval. Zero with
// nil error means the periodic rebuild is disabled.
func (s ServeConfig) RebuildIntervalDuration() (time.Duration, error) {
	if s.RebuildInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.RebuildInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid serve.rebuild_interval %q: %w", s.RebuildInterval, err)
	}
	return d, nil
}

// Default returns the configuration used when no config file exists,
// mirroring the original defaults (links.txt in, index.html out).
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration file at path. Environment
// variables are expanded in the raw YAML (after .env loading), then defaults
// fill any unset fields.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOrDefault behaves like Load but falls back to defaults when the file
// does not exist, so homer works out of the box next to a links.txt.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		loadEnvFiles()
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) applyDefaults() {
	if c.Input == "" {
		c.Input = "links.txt"
	}
	if c.Output == "" {
		c.Output = "index.html"
	}
	if c.Page.Title == "" {
		c.Page.Title = "Homer"
	}
	if c.Templates.Directory == "" {
		c.Templates.Directory = "./templates"
	}
	if c.Templates.Theme == "" {
		c.Templates.Theme = "default"
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = 8090
	}
}

// Init writes a starter configuration file with example content.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	example := Config{
		Input:  "links.txt",
		Output: "index.html",
		Page: PageConfig{
			Title:    "My Start Page",
			Subtitle: "all the links that matter",
		},
		Templates: TemplatesConfig{
			Directory: "./templates",
			Theme:     "default",
		},
		Serve: ServeConfig{
			Port: 8090,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
