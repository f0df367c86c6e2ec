package app

import (
	"fmt"

	"stlcctl/internal/stlc"
)

// Services bundles the runtime dependencies of the form.
type Services struct {
	Client    *stlc.Client
	Clipboard stlc.Clipboard
}

// InitializeServices builds the generation client from the loaded config.
func InitializeServices(cfg *Config) (*Services, error) {
	if cfg.StlcctlConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	svc := cfg.StlcctlConfig.Service

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	client := stlc.NewClient(svc.BaseURL,
		stlc.WithTimeout(svc.Timeout),
		stlc.WithUserAgent("stlcctl/"+version),
	)
	return &Services{
		Client:    client,
		Clipboard: stlc.SystemClipboard{},
	}, nil
}
