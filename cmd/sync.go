package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/mathforge/internal/config"
	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/remote"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync progress with the configured stats server",
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload local progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, cleanup, err := buildSyncer(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := syncer.Push(context.Background()); err != nil {
			return fmt.Errorf("push: %w", err)
		}
		fmt.Println("Pushed.")
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download remote progress when it is newer",
	RunE: func(cmd *cobra.Command, args []string) error {
		syncer, cleanup, err := buildSyncer(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		replaced, err := syncer.Pull(context.Background())
		if err != nil {
			return fmt.Errorf("pull: %w", err)
		}
		if replaced {
			fmt.Println("Local progress replaced with the remote copy.")
		} else {
			fmt.Println("Local progress is already up to date.")
		}
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncPushCmd)
	syncCmd.AddCommand(syncPullCmd)
}

func buildSyncer(cmd *cobra.Command) (*remote.Syncer, func(), error) {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.Sync.Enabled() {
		return nil, nil, fmt.Errorf("no sync endpoint configured: set sync.endpoint and sync.user")
	}

	blobs, err := openBlobs(cmd, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	cleanup := func() { _ = blobs.Close() }

	pl := progress.New(blobs)
	if err := pl.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	tl := treasury.New(blobs)
	if err := tl.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	client := remote.NewHTTPClient(cfg.Sync.Endpoint, nil)
	return remote.NewSyncer(cfg.Sync.User, client, pl, tl, blobs), cleanup, nil
}
