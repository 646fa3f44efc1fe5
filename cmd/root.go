package cmd

import (
	"github.com/abhisek/mathforge/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathforge",
	Short: "Gamified mental arithmetic practice",
	Long:  "MathForge — a terminal dojo for times tables, squares, cubes, reciprocals and powers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHFORGE_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openBlobs resolves the database location, honoring config when the
// flag and env are unset, and opens the blob store.
func openBlobs(cmd *cobra.Command, configured string) (*store.SQLite, error) {
	if p, _ := cmd.Flags().GetString("db"); p == "" && configured != "" {
		if err := store.EnsureDir(configured); err != nil {
			return nil, err
		}
		return store.Open(configured)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
