//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "stlcctl"
	binDir     = "bin"
)

// Default target - build the binary
var Default = Build

// Build builds the stlcctl binary into bin/
func Build() error {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-s -w -X main.version=%s", version)
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", filepath.Join(binDir, binaryName), ".")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binDir)
}

// Install installs stlcctl into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", ".")
}

// MockService runs the local generation service on the configured port
func MockService() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binaryName), "mock-service", "--debug")
}

// Test namespace for test commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs all tests with the race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Coverage writes coverage.out and prints the per-function summary
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Lint namespace for linting commands
type Lint mg.Namespace

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Format fails when any file needs gofmt
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", "cmd", "internal", "pkg", "main.go")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need formatting:\n%s", out)
	}
	return nil
}

// QA runs formatting, vet and tests
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Test.All)
}
