package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/stlcctl"
	projectConfigDir = ".stlcctl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the stlcctl configuration by layering default, user, and project settings.
func LoadConfig() (StlcctlConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return StlcctlConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return StlcctlConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	if err := Validate(config); err != nil {
		return StlcctlConfig{}, err
	}
	return config, nil
}

// LoadConfigFromPath layers a single configuration file over the defaults.
func LoadConfigFromPath(path string) (StlcctlConfig, error) {
	fileConfig, err := loadConfigFromFile(path)
	if err != nil {
		return StlcctlConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	config := mergeConfigs(GetDefaultConfig(), fileConfig)
	if err := Validate(config); err != nil {
		return StlcctlConfig{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a StlcctlConfig from a YAML file.
func loadConfigFromFile(filePath string) (StlcctlConfig, error) {
	var config StlcctlConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return StlcctlConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return StlcctlConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in the
// overlay leave the base untouched.
func mergeConfigs(base, overlay StlcctlConfig) StlcctlConfig {
	merged := base

	if overlay.Service.BaseURL != "" {
		merged.Service.BaseURL = overlay.Service.BaseURL
	}
	if overlay.Service.Timeout != 0 {
		merged.Service.Timeout = overlay.Service.Timeout
	}

	if overlay.UI.CopyFeedback != 0 {
		merged.UI.CopyFeedback = overlay.UI.CopyFeedback
	}
	if overlay.UI.ColorMode != "" {
		merged.UI.ColorMode = overlay.UI.ColorMode
	}

	if overlay.Export.Dir != "" {
		merged.Export.Dir = overlay.Export.Dir
	}

	if overlay.MockService.Host != "" {
		merged.MockService.Host = overlay.MockService.Host
	}
	if overlay.MockService.Port != 0 {
		merged.MockService.Port = overlay.MockService.Port
	}

	if overlay.MCP.ServerName != "" {
		merged.MCP.ServerName = overlay.MCP.ServerName
	}

	if overlay.Update.Repository != "" {
		merged.Update.Repository = overlay.Update.Repository
	}

	return merged
}

// Validate checks a fully merged configuration, including flag overrides.
func Validate(config StlcctlConfig) error {
	if !strings.HasPrefix(config.Service.BaseURL, "http://") && !strings.HasPrefix(config.Service.BaseURL, "https://") {
		return fmt.Errorf("service.baseURL must be an http(s) URL, got %q", config.Service.BaseURL)
	}
	if config.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must not be negative")
	}
	if config.UI.CopyFeedback < 0 {
		return fmt.Errorf("ui.copyFeedback must not be negative")
	}
	switch config.UI.ColorMode {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("ui.colorMode must be one of auto, dark, light; got %q", config.UI.ColorMode)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
