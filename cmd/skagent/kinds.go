package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LifeMC/skagent"
	"github.com/LifeMC/skagent/trackers"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List tracker kinds and event kinds",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Trackers:")
			for _, k := range trackers.AllKinds() {
				fmt.Fprintf(out, "  %s\n", k)
			}
			fmt.Fprintln(out, "Events:")
			for _, k := range skagent.AllEventKinds() {
				fmt.Fprintf(out, "  %s\n", k)
			}
		},
	}
}
