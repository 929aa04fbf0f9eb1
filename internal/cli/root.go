package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the subsync command tree.
func NewRootCommand() *cobra.Command {
	var metricsAddr string

	root := &cobra.Command{
		Use:          "subsync",
		Short:        "Keeps subscription proxy orders in step with order cycles",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")

	root.AddCommand(
		migrateCommand(),
		syncCommand(&metricsAddr),
		placeCommand(&metricsAddr),
		confirmCommand(&metricsAddr),
		pauseCommand(),
		unpauseCommand(),
		cancelCommand(),
	)

	return root
}
