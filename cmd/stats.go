package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/mathforge/internal/config"
	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		pl := progress.New(blobs)
		if err := pl.Load(ctx); err != nil {
			return err
		}
		tl := treasury.New(blobs)
		if err := tl.Load(ctx); err != nil {
			return err
		}

		snap := pl.Stats()
		tr := tl.Snapshot()

		accuracy := 0
		if snap.TotalQuestions > 0 {
			accuracy = snap.CorrectAnswers * 100 / snap.TotalQuestions
		}

		fmt.Printf("Level %d (%d XP) · %d day streak\n", snap.Level, snap.XP, snap.Streak)
		fmt.Printf("Questions: %d answered, %d%% correct\n", snap.TotalQuestions, accuracy)
		if snap.FastestTimeMs != nil {
			fmt.Printf("Fastest answer: %.1fs\n", float64(*snap.FastestTimeMs)/1000)
		}

		fmt.Println("\nCategories:")
		names := make([]string, 0, len(snap.CategoryStats))
		for name := range snap.CategoryStats {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cs := snap.CategoryStats[name]
			pct := 0
			if cs.Attempted > 0 {
				pct = cs.Correct * 100 / cs.Attempted
			}
			fmt.Printf("  %-12s %4d attempted  %3d%% correct\n", name, cs.Attempted, pct)
		}

		fmt.Printf("\nRank: %s (%d XP) · %d petals · %d embers\n",
			treasury.Ranks[tr.Rank].Title, tr.TotalXP, tr.Petals, tr.Embers)
		return nil
	},
}
