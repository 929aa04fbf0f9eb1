package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/subscriptions"
	"github.com/spf13/cobra"
)

func pauseCommand() *cobra.Command {
	return lifecycleCommand("pause <subscription-id>", "Pause a subscription",
		func(ctx context.Context, l *subscriptions.Lifecycle, id uuid.UUID) error {
			return l.Pause(ctx, id)
		})
}

func unpauseCommand() *cobra.Command {
	return lifecycleCommand("unpause <subscription-id>", "Resume a paused subscription",
		func(ctx context.Context, l *subscriptions.Lifecycle, id uuid.UUID) error {
			return l.Unpause(ctx, id)
		})
}

func cancelCommand() *cobra.Command {
	return lifecycleCommand("cancel <subscription-id>", "Cancel a subscription and its unplaced proxy orders",
		func(ctx context.Context, l *subscriptions.Lifecycle, id uuid.UUID) error {
			_, err := l.Cancel(ctx, id)
			return err
		})
}

func lifecycleCommand(use, short string, fn func(ctx context.Context, l *subscriptions.Lifecycle, id uuid.UUID) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("uuid.Parse: %w", err)
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			return fn(cmd.Context(), subscriptions.NewLifecycle(a.unitOfWork(), a.logger), id)
		},
	}
}
