package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir

const (
	userConfigDir  = ".config/khelp"
	configFileName = "config.yaml"
)

// Load layers the user settings file over Defaults(). A missing settings
// file is not an error.
func Load() (Settings, error) {
	settings := Defaults()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// Settings are optional; without a home directory we run on defaults.
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
		return settings, nil
	}

	userSettings, err := loadSettingsFromFile(userConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	return mergeSettings(settings, userSettings)
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// UserConfigPath returns where the user settings file is read from.
func UserConfigPath() (string, error) {
	return getUserConfigPath()
}

func loadSettingsFromFile(filePath string) (Settings, error) {
	var settings Settings
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Settings{}, err
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// mergeSettings applies every field set in overlay on top of base.
func mergeSettings(base, overlay Settings) (Settings, error) {
	merged := base
	if err := mergo.Merge(&merged, overlay, mergo.WithOverride, mergo.WithoutDereference); err != nil {
		return Settings{}, fmt.Errorf("failed to merge settings: %w", err)
	}
	return merged, nil
}

// ExpandHome replaces a leading "~/" in path with the home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not expand %s: %w", path, err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
