package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"stlcctl/internal/config"
	"stlcctl/internal/mcpserver"
	"stlcctl/internal/stlc"
	"stlcctl/pkg/logging"
)

// Application is the main application structure that bootstraps and runs stlcctl
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}

	// Initialize logging for CLI output (will be replaced for TUI mode)
	logging.InitForCLI(appLogLevel, os.Stderr)

	stlcctlCfg, err := loadConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	stlcctlCfg = cfg.applyOverrides(stlcctlCfg)
	if err := config.Validate(stlcctlCfg); err != nil {
		logging.Error("Bootstrap", err, "Invalid configuration after flag overrides")
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.StlcctlConfig = &stlcctlCfg
	logging.Debug("Bootstrap", "Using STLC service at %s (timeout %s)", stlcctlCfg.Service.BaseURL, stlcctlCfg.Service.Timeout)

	services, err := InitializeServices(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

func loadConfiguration(cfg *Config) (config.StlcctlConfig, error) {
	if cfg.ConfigPath != "" {
		stlcctlCfg, err := config.LoadConfigFromPath(cfg.ConfigPath)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load stlcctl configuration from path: %s", cfg.ConfigPath)
			return config.StlcctlConfig{}, fmt.Errorf("failed to load stlcctl configuration from path %s: %w", cfg.ConfigPath, err)
		}
		logging.Debug("Bootstrap", "Loaded configuration from custom path: %s", cfg.ConfigPath)
		return stlcctlCfg, nil
	}

	stlcctlCfg, err := config.LoadConfig()
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load stlcctl configuration")
		return config.StlcctlConfig{}, fmt.Errorf("failed to load stlcctl configuration: %w", err)
	}
	logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	return stlcctlCfg, nil
}

// Config returns the resolved application configuration.
func (a *Application) Config() *Config {
	return a.config
}

// Run executes the application in the appropriate mode
func (a *Application) Run(ctx context.Context) error {
	if a.config.NoTUI {
		return a.runCLIMode(ctx)
	}
	return a.runTUIMode(ctx)
}

// runCLIMode runs the application in non-interactive CLI mode
func (a *Application) runCLIMode(ctx context.Context) error {
	return runCLIMode(ctx, a.config, a.services)
}

// runTUIMode runs the application in interactive TUI mode
func (a *Application) runTUIMode(ctx context.Context) error {
	return runTUIMode(ctx, a.config, a.services)
}

// ServeMCP exposes STLC generation as MCP tools on the given streams.
// stdout carries the protocol, so logging must already go elsewhere.
func (a *Application) ServeMCP(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	version := a.config.Version
	if version == "" {
		version = "dev"
	}
	client := a.services.Client
	srv := mcpserver.NewServer(a.config.StlcctlConfig.MCP.ServerName, version, func() stlc.Generator {
		return client
	})
	return srv.ServeStdio(ctx, stdin, stdout)
}
