package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdelgad/nudge/internal/cli/formatter"
)

func newDoNowCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "donow",
		Short: "Show the prioritized list of what to do next",
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := app.Engine.DoNowList(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatDoNowList(suggestions))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of suggestions (0 for all)")

	return cmd
}
