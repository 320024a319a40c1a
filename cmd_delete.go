package main

import (
	"fmt"

	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func newDeleteCmd(newSession sessionFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a pod",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, newSession)
		},
	}
	addPodRefFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, newSession sessionFactory) error {
	namespace, name, err := podRefFromFlags(cmd)
	if err != nil {
		return err
	}

	pm, cfg, err := openSession(cmd, newSession, "delete", namespace, name)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd, cfg)
	defer cancel()

	if err := pm.DeletePod(ctx, namespace, name); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pod '%s' deleted from namespace '%s'\n", name, namespace)
	fmt.Fprintf(out, "Status: %s\n", metav1.StatusSuccess)
	return nil
}

// addPodRefFlags registers the flags that identify a single pod.
func addPodRefFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("namespace", "n", "", "Namespace of the pod")
	cmd.Flags().String("pod_name", "", "Name of the pod (-pn is accepted as shorthand)")
}

func podRefFromFlags(cmd *cobra.Command) (string, string, error) {
	namespace, err := cmd.Flags().GetString("namespace")
	if err != nil {
		return "", "", err
	}
	name, err := cmd.Flags().GetString("pod_name")
	if err != nil {
		return "", "", err
	}

	if namespace == "" {
		return "", "", usageErrorf(cmd.Name(), "--namespace is required")
	}
	if name == "" {
		return "", "", usageErrorf(cmd.Name(), "--pod_name is required")
	}
	return namespace, name, nil
}
