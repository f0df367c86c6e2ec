package cmd

import (
	"fmt"

	"stlcctl/internal/config"
	"stlcctl/internal/mockservice"
	"stlcctl/pkg/logging"

	"github.com/spf13/cobra"
)

var (
	mockServiceHost string
	mockServicePort int
)

func newMockServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-service",
		Short: "Run a local STLC generation service for development",
		Long: `Runs a local stand-in for the STLC generation service. It accepts the same
POST /chat requests as the real service and answers them with a
deterministic pipeline, so the form and 'stlcctl run' can be exercised
without the real backend.

Host and port default to mockService.host and mockService.port from the
configuration.`,
		Args: cobra.NoArgs,
		RunE: runMockService,
	}
	cmd.Flags().StringVar(&mockServiceHost, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVar(&mockServicePort, "port", 0, "Listen port (overrides config)")
	return cmd
}

func runMockService(cmd *cobra.Command, args []string) error {
	logLevel := logging.LevelInfo
	if rootDebug {
		logLevel = logging.LevelDebug
	}
	logging.InitForCLI(logLevel, cmd.ErrOrStderr())

	var (
		cfg config.StlcctlConfig
		err error
	)
	if rootConfigPath != "" {
		cfg, err = config.LoadConfigFromPath(rootConfigPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	serverCfg := mockservice.Config{
		Host:    cfg.MockService.Host,
		Port:    cfg.MockService.Port,
		Release: !rootDebug,
	}
	if mockServiceHost != "" {
		serverCfg.Host = mockServiceHost
	}
	if mockServicePort != 0 {
		serverCfg.Port = mockServicePort
	}

	ctx, cancel := signalContext(commandContext(cmd))
	defer cancel()
	return mockservice.NewServer(serverCfg).Run(ctx)
}
