package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathforge/internal/mathfacts"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a reference fact table (no database)",
	Long: `Print times tables, squares, cubes, reciprocals or powers to stdout.

This is a stateless reference tool — nothing is recorded.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", "tables", "Category: tables, squares, cubes, reciprocals, powers")
	previewCmd.Flags().Int("base", 7, "Base for tables and powers")
	previewCmd.Flags().Int("limit", 0, "How far to extend the table (category default when 0)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	categoryVal, _ := cmd.Flags().GetString("category")
	base, _ := cmd.Flags().GetInt("base")
	limit, _ := cmd.Flags().GetInt("limit")

	if base < 1 {
		return fmt.Errorf("invalid base %d", base)
	}

	switch strings.ToLower(categoryVal) {
	case "tables":
		if limit == 0 {
			limit = 10
		}
		for _, e := range mathfacts.Table(base, limit) {
			fmt.Printf("%3d × %-3d = %d\n", e.Multiplicand, e.Multiplier, e.Product)
		}
	case "squares":
		if limit == 0 {
			limit = 30
		}
		for _, e := range mathfacts.Squares(limit) {
			fmt.Printf("%3d² = %d\n", e.N, e.Result)
		}
	case "cubes":
		if limit == 0 {
			limit = 20
		}
		for _, e := range mathfacts.Cubes(limit) {
			fmt.Printf("%3d³ = %d\n", e.N, e.Result)
		}
	case "reciprocals":
		if limit == 0 {
			limit = 20
		}
		for _, e := range mathfacts.Reciprocals(limit) {
			fmt.Printf("%-5s = %s  (%s%%)\n", e.Fraction,
				mathfacts.FormatDecimal(e.Decimal, 4),
				mathfacts.FormatDecimal(e.Percentage, 2))
		}
	case "powers":
		if limit == 0 {
			limit = 10
		}
		for _, e := range mathfacts.Powers(base, limit) {
			fmt.Printf("%3d^%-2d = %d\n", e.Base, e.Exponent, e.Result)
		}
	default:
		return fmt.Errorf("invalid category %q: must be tables, squares, cubes, reciprocals or powers", categoryVal)
	}
	return nil
}
