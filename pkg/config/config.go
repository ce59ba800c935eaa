package config

import (
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// ErrNoProvider is returned when no enabled provider is configured.
var ErrNoProvider = errors.New("no enabled provider found in config")

type Config struct {
	App       AppConfig                 `mapstructure:"app"`
	Gateways  map[string]GatewayConfig  `mapstructure:"gateways"`
	Providers map[string]ProviderConfig `mapstructure:"providers"`
	Memory    MemoryConfig              `mapstructure:"memory"`
	Agent     AgentConfig               `mapstructure:"agent"`
	Tools     ToolsConfig               `mapstructure:"tools"`
	Policy    PolicyConfig              `mapstructure:"policy"`
}

type AppConfig struct {
	Name      string `mapstructure:"name"`
	Workspace string `mapstructure:"workspace"`
	LogLevel  string `mapstructure:"log_level"`
	LogDir    string `mapstructure:"log_dir"`
}

type GatewayConfig struct {
	Token   string `mapstructure:"token"`
	Enabled bool   `mapstructure:"enabled"`
}

type ProviderConfig struct {
	APIKey      string   `mapstructure:"api_key"`
	Model       string   `mapstructure:"model"`
	BaseURL     string   `mapstructure:"base_url"`
	Temperature float64  `mapstructure:"temperature"`
	Stop        []string `mapstructure:"stop"`
	Enabled     bool     `mapstructure:"enabled"`
}

type MemoryConfig struct {
	// Type is "sqlite" to enable the decision journal, empty to disable it.
	Type string `mapstructure:"type"`
	Path string `mapstructure:"path"`
}

type AgentConfig struct {
	PromptDir string `mapstructure:"prompt_dir"`
}

type ToolsConfig struct {
	Enabled []string `mapstructure:"enabled"`
}

type PolicyConfig struct {
	DeniedTools    []string `mapstructure:"denied_tools"`
	DeniedPatterns []string `mapstructure:"denied_patterns"`
}

// LoadConfig reads a JSON or YAML config file. An empty path yields the
// defaults. A .env file in the working directory is loaded first so that
// provider keys can come from the environment.
func LoadConfig(path string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "failed to load .env")
	}

	cfg := &Config{}
	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to decode config file %s", path)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "kaam"
	}
	if c.App.Workspace == "" {
		c.App.Workspace = "./workspace"
	}
	if c.App.LogDir == "" {
		c.App.LogDir = "logs"
	}
	if c.Agent.PromptDir == "" {
		c.Agent.PromptDir = "./prompts"
	}
	if c.Memory.Type == "sqlite" && c.Memory.Path == "" {
		c.Memory.Path = "kaam.db"
	}
	if len(c.Tools.Enabled) == 0 {
		c.Tools.Enabled = []string{"basic_calculator", "reverse_string"}
	}
	if len(c.Providers) == 0 {
		c.Providers = map[string]ProviderConfig{
			"openai": {Model: "gpt-3.5-turbo", Enabled: true},
		}
	}

	for name, p := range c.Providers {
		if p.APIKey == "" {
			p.APIKey = os.Getenv(strings.ToUpper(name) + "_API_KEY")
		}
		c.Providers[name] = p
	}
}

// GetDefaultProvider returns the first enabled provider in name order.
func (c *Config) GetDefaultProvider() (string, ProviderConfig, error) {
	names := make([]string, 0, len(c.Providers))
	for name := range c.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if p := c.Providers[name]; p.Enabled {
			return name, p, nil
		}
	}
	return "", ProviderConfig{}, ErrNoProvider
}

// GetGatewayConfig returns the named gateway config if it is enabled and has a token.
func (c *Config) GetGatewayConfig(name string) (GatewayConfig, bool) {
	gw, ok := c.Gateways[name]
	if ok && gw.Enabled && gw.Token != "" {
		return gw, true
	}
	return GatewayConfig{}, false
}
