package cli

import (
	"fmt"

	"github.com/nikolayk812/subsync/internal/config"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/jobs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config.Load: %w", err)
			}

			if err := db.Migrate(cfg.DatabaseURL); err != nil {
				return fmt.Errorf("db.Migrate: %w", err)
			}

			return nil
		},
	}
}

func syncCommand(metricsAddr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Create and remove proxy orders of active subscriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			stop := serveMetrics(*metricsAddr, a.logger)
			defer stop()

			job, err := jobs.NewSyncJob(a.repositories(), a.logger)
			if err != nil {
				return fmt.Errorf("jobs.NewSyncJob: %w", err)
			}

			if _, err := job.Run(cmd.Context()); err != nil {
				return fmt.Errorf("job.Run: %w", err)
			}

			return nil
		},
	}
}

func placeCommand(metricsAddr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "place",
		Short: "Place orders for proxy orders of open order cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			stop := serveMetrics(*metricsAddr, a.logger)
			defer stop()

			notifier, err := a.notifier(cmd.Context())
			if err != nil {
				return err
			}

			job, err := jobs.NewPlacementJob(a.repositories(), notifier, a.logger)
			if err != nil {
				return fmt.Errorf("jobs.NewPlacementJob: %w", err)
			}

			summarizer, err := job.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("job.Run: %w", err)
			}

			a.logger.Info("placement summaries", zap.Int("shops", len(summarizer.Summaries())))

			return nil
		},
	}
}

func confirmCommand(metricsAddr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm",
		Short: "Confirm placed orders of recently closed order cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			stop := serveMetrics(*metricsAddr, a.logger)
			defer stop()

			notifier, err := a.notifier(cmd.Context())
			if err != nil {
				return err
			}

			job, err := jobs.NewConfirmationJob(a.repositories(), notifier, a.cfg.ConfirmLookback, a.logger)
			if err != nil {
				return fmt.Errorf("jobs.NewConfirmationJob: %w", err)
			}

			summarizer, err := job.Run(cmd.Context())
			if err != nil {
				return fmt.Errorf("job.Run: %w", err)
			}

			a.logger.Info("confirmation summaries", zap.Int("shops", len(summarizer.Summaries())))

			return nil
		},
	}
}
