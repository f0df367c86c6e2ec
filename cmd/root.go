package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stlcctl/internal/app"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Flags shared by every command that talks to the generation service.
var (
	rootBaseURL    string
	rootTimeout    time.Duration
	rootDebug      bool
	rootConfigPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stlcctl",
	Short: "Generate software testing life cycle artifacts from requirements",
	Long: `stlcctl collects requirements and optional context (user stories,
code diffs, previous test results), submits them to an STLC generation
service and presents the generated test cases, test data, scripts, impact
analysis, reports and release advice.

Run without a subcommand to open the interactive form. Use 'stlcctl run'
for a single non-interactive submission.`,
	Args: cobra.NoArgs,
	// RunE is set in init: runRoot reads rootCmd.Version.
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. unreachable service, rejected files)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "stlcctl version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

// runRoot opens the interactive form.
func runRoot(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive form needs a terminal; use 'stlcctl run' instead")
	}

	application, err := newApplication(false)
	if err != nil {
		return err
	}
	return application.Run(commandContext(cmd))
}

// newApplication builds the application from the persistent flags.
func newApplication(noTUI bool) (*app.Application, error) {
	cfg := app.NewConfig(noTUI, rootDebug, rootConfigPath)
	cfg.BaseURL = rootBaseURL
	cfg.Timeout = rootTimeout
	cfg.Version = rootCmd.Version

	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return application, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func init() {
	rootCmd.RunE = runRoot

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newMockServiceCmd())

	rootCmd.PersistentFlags().StringVar(&rootBaseURL, "base-url", "", "Base URL of the STLC generation service (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&rootTimeout, "timeout", 0, "Per-submission timeout, e.g. 5m (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "Load configuration from this file only (default: layered .stlcctl/config.yaml)")
}
