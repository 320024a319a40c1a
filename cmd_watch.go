package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWatchCmd(newSession sessionFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch pods",
		Long:  "Print a line for every pod change in all namespaces until the server closes the stream or the command is interrupted.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, newSession)
		},
	}
}

func runWatch(cmd *cobra.Command, newSession sessionFactory) error {
	pm, _, err := openSession(cmd, newSession, "watch", "", "")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Watching pods...")

	events, err := pm.WatchPods(cmd.Context())
	if err != nil {
		return err
	}
	for ev := range events {
		if ev.Err != nil {
			return ev.Err
		}
		fmt.Fprintf(out, "Pod: %s, Namespace: %s, Phase: %s\n", ev.Name, ev.Namespace, ev.Phase)
	}
	return nil
}
