package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, filename string, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, filename)
	err := os.WriteFile(tempFilePath, []byte(content), 0644)
	require.NoError(t, err)
	return tempFilePath
}

// withConfigPaths points the layered loader at paths inside tempDir.
func withConfigPaths(t *testing.T, tempDir string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "user", configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "project", configFileName), nil
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	withConfigPaths(t, t.TempDir())

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.Equal(t, DefaultBaseURL, loadedConfig.Service.BaseURL)
	assert.Equal(t, DefaultCopyFeedback, loadedConfig.UI.CopyFeedback)
}

func TestLoadConfig_UserThenProjectOverride(t *testing.T) {
	tempDir := t.TempDir()
	withConfigPaths(t, tempDir)

	createTempConfigFile(t, filepath.Join(tempDir, "user"), configFileName, `
service:
  baseURL: https://stlc.example.com
  timeout: 30s
ui:
  copyFeedback: 1500ms
`)
	createTempConfigFile(t, filepath.Join(tempDir, "project"), configFileName, `
service:
  baseURL: http://stlc.internal:8080
export:
  dir: out
`)

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://stlc.internal:8080", loadedConfig.Service.BaseURL, "project wins over user")
	assert.Equal(t, 30*time.Second, loadedConfig.Service.Timeout, "user value kept when project is silent")
	assert.Equal(t, 1500*time.Millisecond, loadedConfig.UI.CopyFeedback)
	assert.Equal(t, "out", loadedConfig.Export.Dir)
	assert.Equal(t, "auto", loadedConfig.UI.ColorMode)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	withConfigPaths(t, tempDir)
	createTempConfigFile(t, filepath.Join(tempDir, "user"), configFileName, "service: [unclosed")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "non http base url", content: "service:\n  baseURL: ftp://example.com\n"},
		{name: "negative timeout", content: "service:\n  timeout: -1s\n"},
		{name: "unknown color mode", content: "ui:\n  colorMode: neon\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := createTempConfigFile(t, t.TempDir(), configFileName, tt.content)
			_, err := LoadConfigFromPath(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigFromPath(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Service.BaseURL = "http://127.0.0.1:9000"
	cfg.MockService.Port = 9000
	data, err := yaml.Marshal(&cfg)
	require.NoError(t, err)
	path := createTempConfigFile(t, t.TempDir(), "custom.yaml", string(data))

	loaded, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = LoadConfigFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetUserConfigDir(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()
	osUserHomeDir = func() (string, error) { return "/home/tester", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".config", "stlcctl"), dir)
}
