package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdelgad/nudge/internal/cli/formatter"
)

func newBlockedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "blocked",
		Short: "List tasks waiting on something",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Engine.BlockedTasks(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTaskList("Blocked & waiting", tasks))
			return nil
		},
	}
}
