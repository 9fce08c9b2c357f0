package utils

import (
	"fmt"
	"os"
	"path"
)

// GetConfigDir returns the path to the studycrew configuration directory.
// The directory is located inside the user's configuration directory
// as <UserConfigDir>/.studycrew, unless overridden by STUDYCREW_CONFIG_HOME.
func GetConfigDir() (string, error) {
	if configHome := os.Getenv("STUDYCREW_CONFIG_HOME"); configHome != "" {
		return configHome, nil
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return path.Join(cfg, ".studycrew"), nil
}

// CreateConfigDir creates the config directory if it does not yet exist.
func CreateConfigDir(configDirPath string) error {
	if _, err := os.Stat(configDirPath); os.IsNotExist(err) {
		if err := os.MkdirAll(configDirPath, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return nil
}
