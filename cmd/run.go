package cmd

import (
	"fmt"

	"github.com/abhisek/mathforge/internal/app"
	"github.com/abhisek/mathforge/internal/config"
	"github.com/spf13/cobra"
)

// runApp loads config, opens the store and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	blobs, err := openBlobs(cmd, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer blobs.Close()

	return app.Run(app.Options{
		Blobs:       blobs,
		OptionCount: cfg.OptionCount,
		Sound:       cfg.Sound,
	})
}
