package app

import (
	"io"
	"time"

	"stlcctl/internal/config"
)

// Config holds the application configuration
type Config struct {
	// UI mode
	NoTUI bool

	// Debug settings
	Debug bool

	// ConfigPath points at a single config file; empty means layered loading.
	ConfigPath string

	// Flag overrides, applied over the loaded configuration when set.
	BaseURL string
	Timeout time.Duration

	// Version is reported in the User-Agent of service requests.
	Version string

	// Headless run inputs, used when NoTUI is set.
	Run RunOptions

	// Loaded configuration
	StlcctlConfig *config.StlcctlConfig
}

// RunOptions describes a single non-interactive submission.
type RunOptions struct {
	Requirements        string
	RequirementsFile    string
	UserStoriesFile     string
	CodeDiffsFile       string
	PreviousResultsFile string

	// CopyAll puts the formatted result on the clipboard.
	CopyAll bool
	// ExportDir writes the report below this directory when set.
	ExportDir string

	Output io.Writer
}

// NewConfig creates a new application configuration
func NewConfig(noTUI, debug bool, configPath string) *Config {
	return &Config{
		NoTUI:      noTUI,
		Debug:      debug,
		ConfigPath: configPath,
	}
}

// applyOverrides layers flag values over the loaded configuration.
func (c *Config) applyOverrides(cfg config.StlcctlConfig) config.StlcctlConfig {
	if c.BaseURL != "" {
		cfg.Service.BaseURL = c.BaseURL
	}
	if c.Timeout != 0 {
		cfg.Service.Timeout = c.Timeout
	}
	return cfg
}
