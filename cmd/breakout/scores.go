package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagBest        bool
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show session history",
	Long: `Display recent breakout sessions, or the best ones with --best.

Examples:
  breakout scores
  breakout scores --best --limit 5
  breakout scores -i       # browse in a table`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBest, "best", false, "Order by score instead of date")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse history in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded sessions")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open session database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
		fmt.Println("Session history cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	var sessions []storage.SessionRecord
	title := "Recent Sessions"
	if flagBest {
		title = "Best Sessions"
		sessions, err = store.TopSessions(flagLimit)
	} else {
		sessions, err = store.RecentSessions(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieve sessions: %w", err)
	}

	fmt.Printf("Breakout - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'breakout play' to start one!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-8s  %s\n", "#", "Result", "Score", "Blocks", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-8s  %s\n", "--", "------", "-----", "------", "----", "----")
	for i, s := range sessions {
		fmt.Printf("  %-4d  %-6s  %-6d  %-7s  %-8s  %s\n",
			i+1,
			s.Outcome,
			s.Score,
			fmt.Sprintf("%d/%d", s.BlocksDestroyed, s.BlocksTotal),
			fmt.Sprintf("%.1fs", s.Duration.Seconds()),
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	if stats, statsErr := store.Stats(); statsErr == nil && stats.Played > 0 {
		fmt.Println()
		fmt.Printf("Played: %d  Won: %d  Win rate: %.0f%%  Best: %d\n",
			stats.Played, stats.Won, stats.WinRate()*100, stats.BestScore)
	}
	return nil
}
