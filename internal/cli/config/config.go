package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config represents persistent jsonnet CLI defaults, read from .jsonnetrc
// (or JSONNET_* environment variables) so a project doesn't have to repeat
// the same flags on every invocation.
type Config struct {
	Output   OutputConfig `mapstructure:"output"`
	Import   ImportConfig `mapstructure:"import"`
	MaxStack int          `mapstructure:"max_stack"`
}

// OutputConfig controls JSON manifestation defaults.
type OutputConfig struct {
	Indent      string `mapstructure:"indent"`
	EnsureASCII bool   `mapstructure:"ensure_ascii"`
}

// ImportConfig controls import resolution defaults.
type ImportConfig struct {
	JPath           []string `mapstructure:"jpath"`
	NativeCallbacks string   `mapstructure:"native_callbacks"`
}

// Load reads .jsonnetrc (yaml) from the current directory, falling back to
// defaults when absent. JSONNET_* environment variables override file
// values, matching viper's AutomaticEnv binding.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("output.indent", "    ")
	v.SetDefault("output.ensure_ascii", false)
	v.SetDefault("import.jpath", []string{})
	v.SetDefault("import.native_callbacks", "")
	v.SetDefault("max_stack", 500)

	v.SetConfigName(".jsonnetrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("JSONNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.MaxStack <= 0 {
		return fmt.Errorf("max_stack must be positive, got: %d", cfg.MaxStack)
	}
	return nil
}

// EnvJPath returns the entries of the JSONNET_PATH environment variable,
// colon-separated like PATH; the driver puts them ahead of any configured
// jpath.
func EnvJPath() []string {
	raw := os.Getenv("JSONNET_PATH")
	if raw == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ':' {
			if i > start {
				out = append(out, raw[start:i])
			}
			start = i + 1
		}
	}
	return out
}
