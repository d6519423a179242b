package hostenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the CLI.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

// Config holds global configuration for hostenv
type Config struct {
	// BroadOrder is the broad classifier rule order: "corrected"|"legacy" (default: "corrected")
	BroadOrder string `yaml:"broad_order"`

	// ListenAddr is the address the HTTP server binds to (default: ":8080")
	ListenAddr string `yaml:"listen_addr"`

	// Output is the default CLI output format: "text"|"json"|"markdown" (default: "text")
	Output string `yaml:"output"`

	// WordWrap is the column markdown evidence is wrapped at, 0 disables wrapping (default: 80)
	WordWrap int `yaml:"word_wrap"`

	// path is where the config was loaded from and where SaveConfig writes
	path string
}

// ConfigKeys lists the settable configuration keys in display order.
var ConfigKeys = []string{"broad_order", "listen_addr", "output", "word_wrap"}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		BroadOrder: string(BroadOrderCorrected),
		ListenAddr: ":8080",
		Output:     OutputText,
		WordWrap:   80,
	}
}

// DefaultConfigPath is ~/.config/hostenv/config.yaml
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "hostenv", "config.yaml"), nil
}

// LoadConfig loads the global configuration from DefaultConfigPath.
func LoadConfig() (*Config, error) {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from configPath, returning defaults if
// the file doesn't exist
func LoadConfigFile(configPath string) (*Config, error) {
	config := DefaultConfig()
	config.path = configPath

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			zlog.Debug("no config file found, using defaults",
				zap.String("config_path", configPath))
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	zlog.Debug("loaded config",
		zap.String("config_path", configPath),
		zap.String("broad_order", config.BroadOrder),
		zap.String("listen_addr", config.ListenAddr),
		zap.String("output", config.Output))

	return config, nil
}

// SaveConfig writes the configuration back to the file it was loaded from
func SaveConfig(config *Config) error {
	if config.path == "" {
		configPath, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		config.path = configPath
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(config.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(config.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	zlog.Debug("saved config", zap.String("config_path", config.path))
	return nil
}

// Path returns the file this config is bound to
func (c *Config) Path() string {
	return c.path
}

// Validate checks every field holds a supported value
func (c *Config) Validate() error {
	if _, err := ParseBroadOrder(c.BroadOrder); err != nil {
		return err
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputMarkdown:
	default:
		return fmt.Errorf("output must be one of: %s, %s, %s", OutputText, OutputJSON, OutputMarkdown)
	}

	if c.WordWrap < 0 {
		return fmt.Errorf("word_wrap must be positive or 0, got %d", c.WordWrap)
	}
	return nil
}

// ParsedBroadOrder returns BroadOrder as a typed value
func (c *Config) ParsedBroadOrder() BroadOrder {
	order, err := ParseBroadOrder(c.BroadOrder)
	if err != nil {
		return BroadOrderCorrected
	}
	return order
}

// Get returns the string form of a configuration key
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "broad_order":
		return c.BroadOrder, nil
	case "listen_addr":
		return c.ListenAddr, nil
	case "output":
		return c.Output, nil
	case "word_wrap":
		return strconv.Itoa(c.WordWrap), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set parses value into key, leaving the config untouched on error
func (c *Config) Set(key, value string) error {
	updated := *c

	switch key {
	case "broad_order":
		updated.BroadOrder = value
	case "listen_addr":
		updated.ListenAddr = value
	case "output":
		updated.Output = value
	case "word_wrap":
		wrap, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("word_wrap must be an integer: %w", err)
		}
		updated.WordWrap = wrap
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	if err := updated.Validate(); err != nil {
		return err
	}

	*c = updated
	return nil
}
