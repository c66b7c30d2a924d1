/*
Package config manages TOML config for SpellServe services.
*/
package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/spellserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Model  ModelConfig  `toml:"model"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// ModelConfig holds training and scoring options.
type ModelConfig struct {
	AlphabetPath string `toml:"alphabet_path"`
	ModelPath    string `toml:"model_path"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit       int `toml:"max_limit"`
	MaxSentenceLen int `toml:"max_sentence_len"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit  int `toml:"default_limit"`
	MaxInputBytes int `toml:"max_input_bytes"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			AlphabetPath: "data/alphabet_en.txt",
			ModelPath:    "data/model.bin",
		},
		Server: ServerConfig{
			MaxLimit:       64,
			MaxSentenceLen: 256,
		},
		CLI: CliConfig{
			DefaultLimit:  8,
			MaxInputBytes: 4096,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
