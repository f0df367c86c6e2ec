package config

import (
	"time"
)

// StlcctlConfig is the top-level configuration structure for stlcctl.
type StlcctlConfig struct {
	Service     ServiceConfig     `yaml:"service"`
	UI          UIConfig          `yaml:"ui"`
	Export      ExportConfig      `yaml:"export"`
	MockService MockServiceConfig `yaml:"mockService"`
	MCP         MCPConfig         `yaml:"mcp"`
	Update      UpdateConfig      `yaml:"update"`
}

// ServiceConfig points at the STLC generation service.
type ServiceConfig struct {
	BaseURL string        `yaml:"baseURL,omitempty"` // e.g. "http://localhost:8000"; requests go to <baseURL>/chat
	Timeout time.Duration `yaml:"timeout,omitempty"` // Per-submission HTTP timeout, 0 disables it
}

// UIConfig holds settings of the interactive form.
type UIConfig struct {
	CopyFeedback time.Duration `yaml:"copyFeedback,omitempty"` // How long a "Copied" marker stays visible
	ColorMode    string        `yaml:"colorMode,omitempty"`    // "auto", "dark" or "light"
}

// ExportConfig controls report export.
type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"` // Default export directory
}

// MockServiceConfig defines where the local mock generation service listens.
type MockServiceConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// MCPConfig defines the MCP tool server identity.
type MCPConfig struct {
	ServerName string `yaml:"serverName,omitempty"`
}

// UpdateConfig defines where self-update looks for releases.
type UpdateConfig struct {
	Repository string `yaml:"repository,omitempty"` // GitHub "owner/repo" slug
}
