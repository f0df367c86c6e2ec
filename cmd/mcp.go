package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve STLC generation as MCP tools over stdio",
		Long: `Starts an MCP (Model Context Protocol) server on stdin/stdout so that AI
assistants can run STLC generation as a tool.

Tools:
  run_stlc       Submit requirements and optional context, returns the sections
  stlc_sections  List the result sections and their display order

Logs are written to stderr; stdout carries the protocol only.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	application, err := newApplication(true)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(commandContext(cmd))
	defer cancel()
	return application.ServeMCP(ctx, os.Stdin, os.Stdout)
}
