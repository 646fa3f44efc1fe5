package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/mathforge/internal/config"
	"github.com/abhisek/mathforge/internal/progress"
	"github.com/abhisek/mathforge/internal/quizgen"
	sess "github.com/abhisek/mathforge/internal/session"
	"github.com/abhisek/mathforge/internal/tiers"
	"github.com/abhisek/mathforge/internal/treasury"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run a practice session in plain terminal mode",
	Long: `Run a question-and-answer loop without the full-screen interface.

Answers are typed as the option letter. Progress, XP and rewards are
recorded exactly as they are in the interactive app.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().String("category", "tables", "Category: tables, squares, cubes, reciprocals, powers, mental, mixed")
	playCmd.Flags().String("tier", "gentle", "Tier: gentle, focused, trial, dragon")
	playCmd.Flags().String("mode", "practice", "Mode: practice, sprint (60-second score run), survival (ends on the first miss)")
	playCmd.Flags().Int("table", 0, "Practice a single multiplication table")
	playCmd.Flags().Int("min", 0, "Override the lower operand bound")
	playCmd.Flags().Int("max", 0, "Override the upper operand bound")
	playCmd.Flags().Int("questions", 10, "Number of questions")
}

func runPlay(cmd *cobra.Command, args []string) error {
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

	categoryVal, _ := cmd.Flags().GetString("category")
	tierVal, _ := cmd.Flags().GetString("tier")
	modeVal, _ := cmd.Flags().GetString("mode")
	table, _ := cmd.Flags().GetInt("table")
	minVal, _ := cmd.Flags().GetInt("min")
	maxVal, _ := cmd.Flags().GetInt("max")
	questions, _ := cmd.Flags().GetInt("questions")

	tier, ok := tiers.ByID(tiers.ID(strings.ToLower(tierVal)))
	if !ok {
		return fmt.Errorf("invalid tier %q: must be gentle, focused, trial or dragon", tierVal)
	}

	mode := sess.Mode(strings.ToLower(modeVal))
	switch mode {
	case sess.ModePractice, sess.ModeSprint, sess.ModeSurvival:
	default:
		return fmt.Errorf("invalid mode %q: must be practice, sprint or survival", modeVal)
	}

	s, err := sess.New(ctx, sess.Options{
		Category:    quizgen.Category(strings.ToLower(categoryVal)),
		Tier:        tier,
		Mode:        mode,
		Quiz:        quizgen.Config{Table: table, Min: minVal, Max: maxVal},
		OptionCount: cfg.OptionCount,
		Questions:   questions,
	}, pl, tl, blobs)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	switch mode {
	case sess.ModeSprint:
		fmt.Printf("sprint · mixed · %.0f seconds on the clock\n\n", sess.SprintDuration.Seconds())
	case sess.ModeSurvival:
		fmt.Print("survival · mixed · one miss ends the run\n\n")
	default:
		fmt.Printf("%s · %s · %d questions\n\n", categoryVal, tier.Name, questions)
	}

	for !s.Done() {
		q, err := s.Next()
		if err != nil {
			return fmt.Errorf("generate question: %w", err)
		}

		switch mode {
		case sess.ModeSprint:
			fmt.Printf("── Question %d · %2.0fs left ──\n", s.Asked()+1, s.SprintRemaining().Seconds())
		case sess.ModeSurvival:
			fmt.Printf("── Question %d · ♥ 1 life ──\n", s.Asked()+1)
		default:
			fmt.Printf("── Question %d/%d (level %d) ──\n", s.Asked()+1, s.Total(), s.Level())
		}
		fmt.Println(q.Prompt)
		for i, o := range q.Options {
			fmt.Printf("  %c) %s\n", 'a'+i, o.Label)
		}

		fmt.Print("\nYour answer: ")
		start := time.Now()
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))

		var chosenID string
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(q.Options) {
			chosenID = q.Options[n-1].ID
		} else if len(answer) == 1 {
			if idx := int(answer[0] - 'a'); idx >= 0 && idx < len(q.Options) {
				chosenID = q.Options[idx].ID
			}
		}

		res, err := s.Submit(ctx, chosenID, time.Since(start))
		if err != nil {
			return err
		}
		bell := ""
		if cfg.Sound {
			bell = "\a"
		}
		if res.Correct {
			fmt.Printf("%s\033[32m✓ Correct!\033[0m +%d XP\n\n", bell, res.XPAwarded)
		} else {
			fmt.Printf("%s\033[31m✗ Wrong.\033[0m Answer: %s\n\n", bell, res.CorrectOption.Label)
		}
	}

	sum := s.Summary()
	if sum.Mode == sess.ModePractice {
		fmt.Printf("── Summary: %d/%d correct · +%d XP · +%d %s ──\n",
			sum.Correct, sum.Asked, sum.XPEarned, sum.Reward, sum.Currency)
	} else {
		fmt.Printf("── %s over: %d correct · +%d XP ──\n", sum.Mode, sum.Correct, sum.XPEarned)
	}
	if sum.RankedUp {
		fmt.Printf("★ Rank up! You are now %s\n", sum.FinalRank.Title)
	}
	return nil
}
