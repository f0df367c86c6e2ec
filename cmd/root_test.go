package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

func TestSetVersion(t *testing.T) {
	// Test setting version
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	// Test root command properties
	if rootCmd.Use != "stlcctl" {
		t.Errorf("Expected Use to be 'stlcctl', got %s", rootCmd.Use)
	}

	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}

	if rootCmd.Long == "" {
		t.Error("Expected Long description to be set")
	}

	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	if rootCmd.RunE == nil {
		t.Error("Expected RunE to launch the interactive form")
	}
}

func TestNewApplicationFromFlags(t *testing.T) {
	originalVersion := rootCmd.Version
	originalPath, originalURL, originalTimeout := rootConfigPath, rootBaseURL, rootTimeout
	defer func() {
		rootCmd.Version = originalVersion
		rootConfigPath, rootBaseURL, rootTimeout = originalPath, originalURL, originalTimeout
	}()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("service:\n  baseURL: http://stlc.internal:9000\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	SetVersion("1.4.0")
	rootConfigPath = path
	rootBaseURL = "https://stlc.example.com"
	rootTimeout = time.Minute

	application, err := newApplication(true)
	if err != nil {
		t.Fatalf("newApplication failed: %v", err)
	}

	cfg := application.Config()
	if cfg.Version != "1.4.0" {
		t.Errorf("Expected version 1.4.0, got %s", cfg.Version)
	}
	if cfg.StlcctlConfig.Service.BaseURL != "https://stlc.example.com" {
		t.Errorf("Expected --base-url to win, got %s", cfg.StlcctlConfig.Service.BaseURL)
	}
	if cfg.StlcctlConfig.Service.Timeout != time.Minute {
		t.Errorf("Expected --timeout to win, got %s", cfg.StlcctlConfig.Service.Timeout)
	}

	rootBaseURL = "ftp://stlc.example.com"
	if _, err := newApplication(true); err == nil {
		t.Error("Expected an invalid --base-url to be rejected")
	}
}

func TestVersionTemplate(t *testing.T) {
	// Create a new command to test version template
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}

	// Set the same version template as in Execute()
	testCmd.SetVersionTemplate(`{{printf "stlcctl version %s\n" .Version}}`)

	// Capture output
	var buf bytes.Buffer
	testCmd.SetOut(&buf)

	// Execute version command
	testCmd.SetArgs([]string{"--version"})
	err := testCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}

	output := buf.String()
	expected := "stlcctl version 1.0.0\n"
	if output != expected {
		t.Errorf("Expected version output %q, got %q", expected, output)
	}
}

func TestSubcommands(t *testing.T) {
	// Test that subcommands are added
	commands := rootCmd.Commands()

	expectedCommands := []string{"version", "self-update", "run", "mcp", "mock-service"}
	foundCommands := make(map[string]bool)

	for _, cmd := range commands {
		foundCommands[cmd.Name()] = true
	}

	for _, expected := range expectedCommands {
		if !foundCommands[expected] {
			t.Errorf("Expected subcommand %s to be registered", expected)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	var buf bytes.Buffer

	// Create a new command to avoid affecting the global one
	testRootCmd := &cobra.Command{
		Use:          rootCmd.Use,
		Short:        rootCmd.Short,
		Long:         rootCmd.Long,
		SilenceUsage: true,
	}

	testRootCmd.SetOut(&buf)
	testRootCmd.SetArgs([]string{"--help"})

	err := testRootCmd.Execute()
	if err != nil {
		t.Fatalf("Error executing help command: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "stlcctl") {
		t.Errorf("Help output should contain 'stlcctl'. Got: %q", output)
	}

	if !strings.Contains(output, "stlcctl run") {
		t.Errorf("Help output should contain the long description. Got: %q", output)
	}
}

func TestPersistentFlags(t *testing.T) {
	for _, name := range []string{"base-url", "timeout", "debug", "config"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected persistent flag --%s to be registered", name)
		}
	}
}

func TestRunCommandFlags(t *testing.T) {
	runCmd := newRunCmd()
	for _, name := range []string{
		"requirements", "requirements-file", "user-stories-file",
		"code-diffs-file", "previous-results-file", "copy", "export", "export-dir",
	} {
		if runCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected run flag --%s to be registered", name)
		}
	}
}

func TestMockServiceCommandFlags(t *testing.T) {
	mockCmd := newMockServiceCmd()
	if mockCmd.Use != "mock-service" {
		t.Errorf("Expected Use to be 'mock-service', got %s", mockCmd.Use)
	}
	for _, name := range []string{"host", "port"} {
		if mockCmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected mock-service flag --%s to be registered", name)
		}
	}
}

func TestVersionCommandOutput(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()
	rootCmd.Version = "2.0.0"

	var buf bytes.Buffer
	versionCmd := newVersionCmd()
	versionCmd.SetOut(&buf)
	versionCmd.SetArgs([]string{})
	if err := versionCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}
	if buf.String() != "stlcctl version 2.0.0\n" {
		t.Errorf("Unexpected version output %q", buf.String())
	}
}
