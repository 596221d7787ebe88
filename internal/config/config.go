// Package config loads the application configuration from a YAML file with
// environment variable expansion and .env support.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/MykhailoOS/PortfolioLab/internal/portfolio"
)

// Config represents the application configuration.
type Config struct {
	Document string        `yaml:"document"` // path to the portfolio JSON document
	Output   OutputConfig  `yaml:"output"`
	Publish  PublishConfig `yaml:"publish"`
	Events   EventsConfig  `yaml:"events"`
	Daemon   DaemonConfig  `yaml:"daemon"`
}

// OutputConfig controls where the archive and report land.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Report    bool   `yaml:"report"` // write an export report next to the archive
}

// PublishConfig configures the GitHub destination.
type PublishConfig struct {
	Token    string `yaml:"token,omitempty"` // usually supplied via GITHUB_TOKEN
	Owner    string `yaml:"owner,omitempty"`
	Repo     string `yaml:"repo,omitempty"`
	Branch   string `yaml:"branch,omitempty"`
	BasePath string `yaml:"base_path,omitempty"` // "/" or "/docs"
	Message  string `yaml:"message,omitempty"`
	Store    string `yaml:"store,omitempty"` // settings database path
}

// EventsConfig configures optional NATS event publishing.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// DaemonConfig configures watch and scheduled exports. Durations are
// time.ParseDuration strings ("2s", "1h").
type DaemonConfig struct {
	Watch       bool   `yaml:"watch"`
	Debounce    string `yaml:"debounce,omitempty"`
	Interval    string `yaml:"interval,omitempty"` // periodic re-export, empty disables
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// DebounceDuration parses the debounce setting, falling back to the default
// on a malformed value.
func (d DaemonConfig) DebounceDuration() time.Duration {
	dur, err := time.ParseDuration(d.Debounce)
	if err != nil || dur <= 0 {
		return 2 * time.Second
	}
	return dur
}

// IntervalDuration parses the periodic-export interval; zero means disabled.
func (d DaemonConfig) IntervalDuration() time.Duration {
	if d.Interval == "" {
		return 0
	}
	dur, err := time.ParseDuration(d.Interval)
	if err != nil || dur <= 0 {
		return 0
	}
	return dur
}

// Load reads the configuration file at configPath. Environment variables in
// the YAML content are expanded, and a .env/.env.local file is loaded first
// (without overriding the process environment) so tokens can live outside
// the config file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Document == "" {
		c.Document = "portfolio.json"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "."
	}
	if c.Publish.Token == "" {
		c.Publish.Token = os.Getenv("GITHUB_TOKEN")
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = "main"
	}
	if c.Publish.BasePath == "" {
		c.Publish.BasePath = "/"
	}
	if c.Publish.Store == "" {
		c.Publish.Store = defaultStorePath()
	}
	if c.Events.Subject == "" {
		c.Events.Subject = "portfolio.media.unreachable"
	}
	if c.Daemon.Debounce == "" {
		c.Daemon.Debounce = "2s"
	}
	if c.Daemon.MetricsAddr == "" {
		c.Daemon.MetricsAddr = ":9090"
	}
}

// defaultStorePath places the settings database under the user config
// directory, falling back to the working directory.
func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "portfoliolab.db"
	}
	return dir + "/portfoliolab/settings.db"
}

// loadEnvFiles loads .env then .env.local if present. Existing process
// environment variables are never overridden.
func loadEnvFiles() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
		}
	}
}

// Init writes an example configuration file and a seed portfolio document.
func Init(configPath, documentPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Document: documentPath,
		Output:   OutputConfig{Directory: ".", Report: true},
		Publish: PublishConfig{
			Token:    "${GITHUB_TOKEN}",
			Branch:   "main",
			BasePath: "/",
		},
		Daemon: DaemonConfig{Watch: true, Debounce: "2s"},
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	if _, err := os.Stat(documentPath); os.IsNotExist(err) || force {
		if err := portfolio.Save(portfolio.Seed(), documentPath); err != nil {
			return fmt.Errorf("write seed document: %w", err)
		}
	}
	return nil
}
