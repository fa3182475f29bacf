/*
Package config manages the TOML runtime config for srcspell.

This is machine-level configuration (worker counts, cache locations,
output defaults), separate from the per-project srcspell.json settings
that describe which dictionaries apply to a checked tree.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/srcspell/srcspell/internal/utils"
)

// Config holds the entire runtime config structure
type Config struct {
	Runtime RuntimeConfig `toml:"runtime"`
	Paths   PathsConfig   `toml:"paths"`
	Output  OutputConfig  `toml:"output"`
}

// RuntimeConfig has check execution options.
type RuntimeConfig struct {
	Workers     int   `toml:"workers"`
	MaxFileSize int64 `toml:"max_file_size"`
}

// PathsConfig holds store and cache locations. Empty values are resolved
// against the user cache directory at startup.
type PathsConfig struct {
	StoreDir string `toml:"store_dir"`
	CacheDir string `toml:"cache_dir"`
}

// OutputConfig holds reporting defaults.
type OutputConfig struct {
	Format        string `toml:"format"`
	Suggestions   int    `toml:"suggestions"`
	IncludeHidden bool   `toml:"include_hidden"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "srcspell")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "srcspell")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/srcspell/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Workers:     0, // auto
			MaxFileSize: 1 << 20,
		},
		Paths: PathsConfig{
			StoreDir: "",
			CacheDir: "",
		},
		Output: OutputConfig{
			Format:        "text",
			Suggestions:   3,
			IncludeHidden: false,
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

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages recognized keys from a config file that does
// not decode cleanly as a whole.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if runtimeSection, ok := utils.ExtractSection(tempConfig, "runtime"); ok {
		extractRuntimeConfig(runtimeSection, &config.Runtime)
	}
	if pathsSection, ok := utils.ExtractSection(tempConfig, "paths"); ok {
		extractPathsConfig(pathsSection, &config.Paths)
	}
	if outputSection, ok := utils.ExtractSection(tempConfig, "output"); ok {
		extractOutputConfig(outputSection, &config.Output)
	}
	return config, nil
}

func extractRuntimeConfig(data map[string]any, runtime *RuntimeConfig) {
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		runtime.Workers = val
	}
	if val, ok := utils.ExtractInt64(data, "max_file_size"); ok {
		runtime.MaxFileSize = int64(val)
	}
}

func extractPathsConfig(data map[string]any, paths *PathsConfig) {
	if val, ok := utils.ExtractString(data, "store_dir"); ok {
		paths.StoreDir = val
	}
	if val, ok := utils.ExtractString(data, "cache_dir"); ok {
		paths.CacheDir = val
	}
}

func extractOutputConfig(data map[string]any, output *OutputConfig) {
	if val, ok := utils.ExtractString(data, "format"); ok {
		output.Format = val
	}
	if val, ok := utils.ExtractInt64(data, "suggestions"); ok {
		output.Suggestions = val
	}
	if val, ok := utils.ExtractBool(data, "include_hidden"); ok {
		output.IncludeHidden = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// ResolveStoreDir returns the word list store directory, creating it if
// needed. An empty configured value falls back to the user cache dir.
func (c *Config) ResolveStoreDir() (string, error) {
	return resolveDataDir(c.Paths.StoreDir, "store")
}

// ResolveCacheDir returns the directory holding compiled dictionaries and
// the file-level result cache.
func (c *Config) ResolveCacheDir() (string, error) {
	return resolveDataDir(c.Paths.CacheDir, "cache")
}

func resolveDataDir(configured, sub string) (string, error) {
	dir := configured
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "srcspell", sub)
	}
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}
