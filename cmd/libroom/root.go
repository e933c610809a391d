package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/libroom/internal/app"
)

func newRootCmd() *cobra.Command {
	opts := app.Options{}

	root := &cobra.Command{
		Use:   "libroom",
		Short: "Browse library meeting room availability from the terminal",
		Long: `libroom lists the days around today. Booking a day looks up which
meeting rooms are free for your group and when.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/libroom/config.toml)")
	root.Flags().IntVar(&opts.PollEvery, "poll", 0, "host health check interval in seconds (default 5)")

	root.AddCommand(newQueryCmd(&opts))
	root.AddCommand(newVersionCmd())
	return root
}
