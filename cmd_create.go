package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCreateCmd(newSession sessionFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pod",
		Long: `Create a pod from a YAML or JSON manifest.
The pod is created in the namespace named by the manifest, or in "default" when the manifest has none.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, newSession)
		},
	}
	cmd.Flags().StringP("manifest", "m", "", "Path to the pod manifest file")
	return cmd
}

func runCreate(cmd *cobra.Command, newSession sessionFactory) error {
	manifestPath, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return err
	}
	if manifestPath == "" {
		return usageErrorf(cmd.Name(), "--manifest is required")
	}

	pod, err := LoadPodManifest(manifestPath)
	if err != nil {
		return err
	}

	pm, cfg, err := openSession(cmd, newSession, "create", podNamespace(pod), podDisplayName(pod))
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd, cfg)
	defer cancel()

	created, err := pm.CreatePod(ctx, pod)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pod '%s' created in namespace '%s'\n", created.Name, created.Namespace)
	fmt.Fprintf(out, "Status: %s\n", phaseOrUnknown(created.Status.Phase))
	return nil
}
