// Package mcpserver exposes STLC generation to MCP clients over stdio.
//
// Every run_stlc call builds a fresh form session, so calls never share
// results or notices.
package mcpserver
