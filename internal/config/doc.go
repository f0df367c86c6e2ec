// Package config provides configuration management for stlcctl.
//
// This package implements a layered configuration system that allows users to
// customize stlcctl's behavior through YAML files. Configuration is loaded from
// multiple sources and merged in a specific order, with later sources overriding
// earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - Points at a generation service on http://localhost:8000
//
//  2. User Configuration (~/.config/stlcctl/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.stlcctl/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share the service URL via version control
//
// A single file can be used instead of the layers with --config.
//
// # Configuration Structure
//
//	service:
//	  baseURL: "http://localhost:8000"
//	  timeout: 10m
//	ui:
//	  copyFeedback: 2s
//	  colorMode: auto
//	export:
//	  dir: artifacts
//	mockService:
//	  host: localhost
//	  port: 8000
//	mcp:
//	  serverName: stlcctl
//	update:
//	  repository: stlcctl/stlcctl
//
// Values left empty (or zero) in a layer keep the value of the layer below.
package config
