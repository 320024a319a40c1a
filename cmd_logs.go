package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd(newSession sessionFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Get pod logs",
		Long:  "Print the log of a pod. With --follow the log is streamed until the pod stops or the command is interrupted.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogs(cmd, newSession)
		},
	}
	addPodRefFlags(cmd)
	cmd.Flags().StringP("container", "c", "", "Container to read logs from")
	cmd.Flags().BoolP("follow", "f", false, "Stream the log as it grows")
	cmd.Flags().Int64("tail", -1, "Number of most recent lines to show, -1 for all")
	return cmd
}

func runLogs(cmd *cobra.Command, newSession sessionFactory) error {
	namespace, name, err := podRefFromFlags(cmd)
	if err != nil {
		return err
	}

	var opts LogOptions
	if opts.Container, err = cmd.Flags().GetString("container"); err != nil {
		return err
	}
	if opts.Follow, err = cmd.Flags().GetBool("follow"); err != nil {
		return err
	}
	if opts.TailLines, err = cmd.Flags().GetInt64("tail"); err != nil {
		return err
	}

	pm, cfg, err := openSession(cmd, newSession, "read logs of", namespace, name)
	if err != nil {
		return err
	}

	var ctx context.Context
	var cancel context.CancelFunc
	if opts.Follow {
		ctx, cancel = context.WithCancel(cmd.Context())
	} else {
		ctx, cancel = requestContext(cmd, cfg)
	}
	defer cancel()

	stream, err := pm.OpenLogs(ctx, namespace, name, opts)
	if err != nil {
		return err
	}
	defer stream.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logs for pod '%s' in namespace '%s':\n", name, namespace)
	return stream.CopyTo(ctx, out)
}
