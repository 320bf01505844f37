package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/timelinehq/aitimeline/internal/score"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Sources     Sources                `yaml:"sources"`
	Credibility score.CredibilityTable `yaml:"credibility"`
	Keywords    []string               `yaml:"keywords"`
	Processing  Processing             `yaml:"processing"`
	Generation  Generation             `yaml:"generation"`
	Output      Output                 `yaml:"output"`
	Server      Server                 `yaml:"server"`
	Logging     Logging                `yaml:"logging"`
}

type Sources struct {
	Feeds      []Feed           `yaml:"feeds"`
	Arxiv      ArxivConfig      `yaml:"arxiv"`
	HackerNews HackerNewsConfig `yaml:"hackernews"`
	Reddit     RedditConfig     `yaml:"reddit"`
}

type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type ArxivConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Categories []string `yaml:"categories"`
	MaxResults int      `yaml:"max_results"`
}

type HackerNewsConfig struct {
	Enabled   bool     `yaml:"enabled"`
	Keywords  []string `yaml:"keywords"`
	MinPoints int      `yaml:"min_points"`
}

type RedditConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Subreddits []string `yaml:"subreddits"`
}

type Processing struct {
	TopN                int      `yaml:"top_n"`
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	Timezone            string   `yaml:"timezone"`
	Lookback            Lookback `yaml:"lookback_hours"`
}

type Lookback struct {
	Daily    float64 `yaml:"daily"`
	Realtime float64 `yaml:"realtime"`
	Weekly   float64 `yaml:"weekly"`
}

// Hours returns the lookback window for a run mode.
func (l Lookback) Hours(mode string) float64 {
	switch mode {
	case "realtime":
		return l.Realtime
	case "weekly":
		return l.Weekly
	default:
		return l.Daily
	}
}

type Generation struct {
	Provider        string `yaml:"provider"`
	OpenAIModel     string `yaml:"openai_model"`
	OpenAIKeyEnv    string `yaml:"openai_api_key_env"`
	AnthropicModel  string `yaml:"anthropic_model"`
	AnthropicKeyEnv string `yaml:"anthropic_api_key_env"`
	MaxTokens       int    `yaml:"max_tokens"`
}

type Output struct {
	Dir     string `yaml:"dir"`
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for aitimeline.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "aitimeline")
}

// DataDir returns the XDG data directory for aitimeline.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "aitimeline")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/aitimeline/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'aitimeline init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Sources: Sources{
			Arxiv: ArxivConfig{
				Enabled:    true,
				Categories: []string{"cs.AI", "cs.LG"},
				MaxResults: 50,
			},
			HackerNews: HackerNewsConfig{
				Enabled:   true,
				MinPoints: 10,
			},
			Reddit: RedditConfig{
				Enabled: true,
			},
		},
		Processing: Processing{
			TopN:                10,
			SimilarityThreshold: 0.85,
			Timezone:            "Australia/Sydney",
			Lookback: Lookback{
				Daily:    24,
				Realtime: 1,
				Weekly:   168,
			},
		},
		Generation: Generation{
			OpenAIModel:     "gpt-4o",
			OpenAIKeyEnv:    "OPENAI_API_KEY",
			AnthropicModel:  "claude-3-sonnet-20240229",
			AnthropicKeyEnv: "ANTHROPIC_API_KEY",
			MaxTokens:       3000,
		},
		Output:  Output{Dir: "out"},
		Server:  Server{Port: 8000},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// Validate returns configuration errors that prevent a run.
func (c *Config) Validate() []string {
	var errs []string
	if len(c.Sources.Feeds) == 0 && !c.Sources.Arxiv.Enabled &&
		!c.Sources.HackerNews.Enabled && !c.Sources.Reddit.Enabled {
		errs = append(errs, "no sources configured")
	}
	if os.Getenv(c.Generation.OpenAIKeyEnv) == "" && os.Getenv(c.Generation.AnthropicKeyEnv) == "" {
		errs = append(errs, fmt.Sprintf(
			"no LLM API key configured; set %s or %s",
			c.Generation.OpenAIKeyEnv, c.Generation.AnthropicKeyEnv))
	}
	return errs
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
