package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdelgad/nudge/internal/cli/formatter"
)

func newIdentityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Show the identity statements that anchor your habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := app.Engine.IdentityProfile(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatIdentityProfile(profile))
			return nil
		},
	}

	cmd.AddCommand(newIdentityAddCmd(app))
	return cmd
}

func newIdentityAddCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <statement>",
		Short: "Add an identity statement",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			profile, err := app.Engine.AddIdentityStatement(context.Background(), text, category)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatIdentityProfile(profile))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Optional grouping, e.g. work, health")
	return cmd
}
