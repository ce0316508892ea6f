// Package cli defines the one-shot cobra command surface over the
// engine. Every command prints and exits; there is no interactive mode.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/jdelgad/nudge/internal/classify"
	"github.com/jdelgad/nudge/internal/service"
)

// App holds everything the CLI commands need.
type App struct {
	Engine *service.Engine

	// Classifier is nil when the LLM subsystem is disabled; capture
	// then relies on explicit flags.
	Classifier *classify.Classifier
}

// NewRootCmd creates the top-level "nudge" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "nudge",
		Short: "Personal task capture and decision engine",
	}

	root.AddCommand(
		newCaptureCmd(app),
		newDoNowCmd(app),
		newBlockedCmd(app),
		newProcrastinationCmd(app),
		newReviewCmd(app),
		newIdentityCmd(app),
	)

	return root
}
