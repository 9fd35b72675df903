// Package app provides application lifecycle management.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/azyu/adventurecrafter/internal/storage"
	"github.com/azyu/adventurecrafter/pkg/types"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// ConfigManager handles the global configuration file.
type ConfigManager struct {
	globalConfigPath string
	globalConfig     *types.GlobalConfig
}

// NewConfigManager creates a configuration manager for the default path.
func NewConfigManager() (*ConfigManager, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	return NewConfigManagerAt(filepath.Join(configDir, "config.yaml")), nil
}

// NewConfigManagerAt creates a configuration manager for an explicit file.
func NewConfigManagerAt(path string) *ConfigManager {
	return &ConfigManager{
		globalConfigPath: path,
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "adventurecrafter"), nil
}

// Path returns the config file path.
func (cm *ConfigManager) Path() string {
	return cm.globalConfigPath
}

// LoadGlobalConfig loads the global configuration. A missing file yields
// the defaults; fields absent from the file keep their default values.
func (cm *ConfigManager) LoadGlobalConfig() (*types.GlobalConfig, error) {
	if cm.globalConfig != nil {
		return cm.globalConfig, nil
	}

	data, err := os.ReadFile(cm.globalConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			cm.globalConfig = types.DefaultGlobalConfig()
			cm.globalConfig.Storage.Dir = expandPath(cm.globalConfig.Storage.Dir)
			return cm.globalConfig, nil
		}
		return nil, fmt.Errorf("failed to read global config: %w", err)
	}

	config := types.DefaultGlobalConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse global config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	config.Storage.Dir = expandPath(config.Storage.Dir)

	cm.globalConfig = config
	return cm.globalConfig, nil
}

// SaveGlobalConfig saves the global configuration.
func (cm *ConfigManager) SaveGlobalConfig(config *types.GlobalConfig) error {
	if err := validateConfig(config); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := storage.AtomicWriteFile(afero.NewOsFs(), cm.globalConfigPath, data); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	cm.globalConfig = config
	return nil
}

func validateConfig(config *types.GlobalConfig) error {
	switch config.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, config.Storage.Backend)
	}
	if _, err := parseThrottle(config.Storage.Throttle); err != nil {
		return err
	}
	return nil
}

// parseThrottle parses a Go duration string. Empty means no throttling.
func parseThrottle(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%w: bad storage throttle %q", ErrInvalidConfig, s)
	}
	return d, nil
}

// expandPath expands ~ to home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
