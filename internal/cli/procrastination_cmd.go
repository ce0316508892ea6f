package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdelgad/nudge/internal/cli/formatter"
)

func newProcrastinationCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "procrastination",
		Short: "List tasks you keep capturing but not doing",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Engine.ProcrastinationList(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatTaskList("Procrastination watch", tasks))
			return nil
		},
	}
}
