package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dasnotify",
		Short:         "Send Digital Advantage push notifications for stored reservations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newDescribeCmd())
	root.AddCommand(newServeCmd())

	return root
}
