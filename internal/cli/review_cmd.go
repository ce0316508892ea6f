package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdelgad/nudge/internal/cli/formatter"
	"github.com/jdelgad/nudge/internal/review"
)

func newReviewCmd(app *App) *cobra.Command {
	var week, transcript, wins, struggles, focus string
	var save bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run the weekly review",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			data, err := app.Engine.Reviews().GatherData(ctx, week)
			if err != nil {
				return err
			}
			insights := review.GenerateInsights(*data)
			fmt.Print(formatter.FormatReview(data, insights))

			if !save {
				return nil
			}
			rec, err := app.Engine.Reviews().PersistReview(ctx, data, transcript, wins, struggles, focus)
			if err != nil {
				return err
			}
			fmt.Printf("\n%s %s\n", formatter.Bold("Review saved:"), formatter.Dim(string(rec.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Week to review as the Monday date YYYY-MM-DD (default: current week)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the review record")
	cmd.Flags().StringVar(&transcript, "transcript", "", "Review conversation or notes (required with --save)")
	cmd.Flags().StringVar(&wins, "wins", "", "What went well this week")
	cmd.Flags().StringVar(&struggles, "struggles", "", "What was hard this week")
	cmd.Flags().StringVar(&focus, "focus", "", "Focus for next week")

	return cmd
}
