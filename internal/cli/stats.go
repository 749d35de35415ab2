package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsDays int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsDays, "days", 7, "Lookahead window for upcoming reviews")
}

func runStats(cmd *cobra.Command, args []string) error {
	eng, _, _, err := openEngine()
	if err != nil {
		return err
	}

	summary, err := eng.Analytics()
	if err != nil {
		return fmt.Errorf("compute analytics: %w", err)
	}
	perf, err := eng.Performance()
	if err != nil {
		return fmt.Errorf("compute performance: %w", err)
	}

	fmt.Println("## Collection")
	fmt.Printf("  papers:        %d\n", summary.TotalPapers)
	fmt.Printf("  reviewed:      %d\n", summary.ReviewedPapers)
	fmt.Printf("  due today:     %d\n", summary.PapersDueToday)
	fmt.Printf("  total reviews: %d\n", summary.TotalReviews)
	fmt.Printf("  average ease:  %.2f\n", summary.AverageEaseFactor)

	if len(summary.CategoryDistribution) > 0 {
		fmt.Println("\n## Categories")
		cats := make([]string, 0, len(summary.CategoryDistribution))
		for c := range summary.CategoryDistribution {
			cats = append(cats, c)
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Printf("  %-40s %d\n", c, summary.CategoryDistribution[c])
		}
	}

	fmt.Println("\n## Performance")
	fmt.Printf("  reviews/paper: %.2f\n", perf.AverageReviewsPerPaper)
	fmt.Printf("  retention:     %.2f%%\n", perf.RetentionRate)
	fmt.Printf("  streak:        %d day(s)\n", perf.ReviewStreak)
	if perf.MostReviewedPaper != nil {
		fmt.Printf("  most reviewed: %s (%d)\n",
			perf.MostReviewedPaper.Title, perf.MostReviewedPaper.ReviewCount)
	}

	upcoming, err := eng.Upcoming(statsDays)
	if err != nil {
		return fmt.Errorf("compute upcoming: %w", err)
	}
	if len(upcoming) > 0 {
		fmt.Printf("\n## Upcoming (%d days)\n", statsDays)
		for _, u := range upcoming {
			fmt.Printf("  %s  %s (in %d day(s))\n",
				u.ReviewDate.Format("2006-01-02"), u.Title, u.DaysUntil)
		}
	}

	return nil
}
