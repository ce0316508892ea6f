package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdelgad/nudge/internal/capture"
	"github.com/jdelgad/nudge/internal/cli/formatter"
)

func newCaptureCmd(app *App) *cobra.Command {
	var status, tag, blockedBy, source string
	var minutes int

	cmd := &cobra.Command{
		Use:   "capture [text...]",
		Short: "Capture a thought into the task store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			raw := strings.Join(args, " ")

			req := capture.Request{
				RawContent: raw,
				Status:     status,
				Tag:        tag,
				BlockedBy:  blockedBy,
				Source:     source,
			}

			// Without explicit flags, let the classifier sort the raw
			// text. Classification failure falls back to the defaults.
			if app.Classifier != nil && !cmd.Flags().Changed("status") && !cmd.Flags().Changed("tag") {
				if cls, err := app.Classifier.Classify(ctx, raw); err == nil {
					req = cls.ToRequest(source)
				} else {
					slog.Warn("classification failed, capturing with defaults", "error", err)
				}
			}

			if cmd.Flags().Changed("minutes") {
				req.CompleteTimeMinutes = &minutes
			}

			res, err := app.Engine.Capture(ctx, req)
			if err != nil {
				return err
			}

			if res.IsDuplicate {
				fmt.Printf("%s %s %s\n",
					formatter.Dim("Already captured:"),
					formatter.Bold(res.Task.Name),
					formatter.Dim(fmt.Sprintf("(mentioned %dx)", res.NewMentionedCount)))
				return nil
			}
			fmt.Printf("%s %s  %s\n",
				formatter.Bold("Captured:"),
				res.Task.Name,
				formatter.StatusPill(res.Task.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "action", "Bucket for the capture (action, project, idea, blocked, ...)")
	cmd.Flags().StringVar(&tag, "tag", "", "Behavioral tag such as [DO IT] or [KEYSTONE]")
	cmd.Flags().StringVar(&blockedBy, "blocked-by", "", "What this capture is waiting on")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Estimated minutes to complete")
	cmd.Flags().StringVar(&source, "source", "cli", "Where the capture came from")

	return cmd
}
