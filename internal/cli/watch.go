package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/generative-ai-on-aws/summarize-me/internal/watcher"
)

func NewWatchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <dir>",
		Short: "Process every recording dropped into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			a, err := s.application(cmd.Context())
			if err != nil {
				return err
			}

			handler := func(ctx context.Context, path string) error {
				_, err := a.Pipeline.Run(ctx, path)
				return err
			}
			w, err := watcher.New(dir, handler, a.Logger, a.Config.Watch.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.Logger.Info(ctx, "Watching %s. Press Ctrl+C to stop", dir)
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			a.Logger.Info(context.Background(), "Watcher stopped")
			return nil
		},
	}
}
