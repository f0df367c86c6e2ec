package config

import "time"

const (
	DefaultBaseURL      = "http://localhost:8000"
	DefaultTimeout      = 10 * time.Minute
	DefaultCopyFeedback = 2 * time.Second
	DefaultExportDir    = "artifacts"
)

// GetDefaultConfig returns the built-in configuration.
func GetDefaultConfig() StlcctlConfig {
	return StlcctlConfig{
		Service: ServiceConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		UI: UIConfig{
			CopyFeedback: DefaultCopyFeedback,
			ColorMode:    "auto",
		},
		Export: ExportConfig{
			Dir: DefaultExportDir,
		},
		MockService: MockServiceConfig{
			Host: "localhost",
			Port: 8000,
		},
		MCP: MCPConfig{
			ServerName: "stlcctl",
		},
		Update: UpdateConfig{
			Repository: "stlcctl/stlcctl",
		},
	}
}
