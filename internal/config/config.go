// Package config loads jiq's TOML configuration file.
//
// Unlike the YAML singleton this was adapted from (cmd/aleutian/config/loader.go),
// this package returns an explicit Config value rather than populating a
// package-level Global: the event loop already owns every other piece
// of mutable state, and a global config would be the one exception
// that invites reaching around it from a background worker.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Provider identifies an AI backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
	ProviderGemini    Provider = "gemini"
	ProviderBedrock   Provider = "bedrock"
)

// AIConfig is the `[ai]` + `[ai.<provider>]` sections.
type AIConfig struct {
	Enabled    bool     `toml:"enabled"`
	Provider   Provider `toml:"provider"`
	WordLimit  int      `toml:"word_limit_hint"`
	Anthropic  ProviderConfig `toml:"anthropic"`
	OpenAI     ProviderConfig `toml:"openai"`
	Gemini     ProviderConfig `toml:"gemini"`
	Bedrock    BedrockConfig  `toml:"bedrock"`
}

// ProviderConfig covers Anthropic/OpenAI/Gemini, which all share the
// same api_key + model shape; Anthropic additionally uses MaxTokens.
type ProviderConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	MaxTokens int    `toml:"max_tokens"`
}

// BedrockConfig covers AWS Bedrock's distinct auth shape (no api_key).
type BedrockConfig struct {
	Region  string `toml:"region"`
	Model   string `toml:"model"`
	Profile string `toml:"profile"`
}

// DebounceConfig exposes the query-execution debounce window.
type DebounceConfig struct {
	WindowMS int `toml:"window_ms"`
}

// ClipboardConfig selects the OS clipboard backend.
type ClipboardConfig struct {
	Backend string `toml:"backend"`
}

// TooltipConfig controls the field-type tooltip.
type TooltipConfig struct {
	AutoShow bool `toml:"auto_show"`
}

// Config is the root of jiq's TOML file.
type Config struct {
	AI        AIConfig         `toml:"ai"`
	Debounce  DebounceConfig   `toml:"debounce"`
	Clipboard ClipboardConfig  `toml:"clipboard"`
	Tooltip   TooltipConfig    `toml:"tooltip"`
}

// Default returns the configuration used when no file exists yet.
func Default() Config {
	return Config{
		AI: AIConfig{
			Enabled:   false,
			Provider:  ProviderAnthropic,
			WordLimit: 150,
			Anthropic: ProviderConfig{Model: "claude-3-5-sonnet-20241022", MaxTokens: 1024},
			OpenAI:    ProviderConfig{Model: "gpt-4o-mini"},
			Gemini:    ProviderConfig{Model: "gemini-1.5-flash"},
		},
		Debounce:  DebounceConfig{WindowMS: 150},
		Clipboard: ClipboardConfig{Backend: "auto"},
		Tooltip:   TooltipConfig{AutoShow: true},
	}
}

// Path returns the platform-standard config file location,
// "$XDG_CONFIG_HOME/jiq/config.toml" (or its OS equivalent via
// os.UserConfigDir).
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config directory: %w", err)
	}
	return filepath.Join(dir, "jiq", "config.toml"), nil
}

// Load reads the config file at Path, creating a default one on first
// run: a missing file yields Default() and no error. A malformed or
// unreadable file is not fatal either: the caller gets Default() back
// along with the error so the TUI can still start with AI disabled and
// surface a notification.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses a specific config file path, used directly
// by tests and by the --config flag.
func LoadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if werr := writeDefault(path, cfg); werr != nil {
			return cfg, nil // first-run scaffolding is best-effort
		}
		return cfg, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func writeDefault(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o640)
}

// Configured reports whether the active provider has the credentials it
// needs. This is distinct from AI.Enabled — see internal/ai's State,
// which preserves the enabled/configured distinction the spec calls out
// as a deliberate product decision rather than collapsing it.
func (c Config) Configured() bool {
	switch c.AI.Provider {
	case ProviderAnthropic:
		return c.AI.Anthropic.APIKey != "" && c.AI.Anthropic.Model != ""
	case ProviderOpenAI:
		return c.AI.OpenAI.APIKey != "" && c.AI.OpenAI.Model != ""
	case ProviderGemini:
		return c.AI.Gemini.APIKey != "" && c.AI.Gemini.Model != ""
	case ProviderBedrock:
		return c.AI.Bedrock.Region != "" && c.AI.Bedrock.Model != ""
	default:
		return false
	}
}
