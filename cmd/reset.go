package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/mathforge/internal/config"
	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/store"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all progress, currency and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Print("This erases all progress, petals, embers and settings. Continue? [y/N] ")
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		ctx := context.Background()
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		blobs, err := openBlobs(cmd, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer blobs.Close()

		progress.New(blobs).Reset(ctx)
		treasury.New(blobs).Reset(ctx)
		for _, key := range []string{store.KeySettings, store.KeyDifficulty} {
			if err := blobs.Delete(ctx, key); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to clear %s: %v\n", key, err)
			}
		}

		fmt.Println("All data erased.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
}
