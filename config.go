package main

import (
	"time"

	"github.com/spf13/cobra"
	"k8s.io/client-go/tools/clientcmd"
)

const defaultRequestTimeout = 60 * time.Second

// Config holds everything needed to open a session against the cluster.
type Config struct {
	// Kubeconfig is the path of the kubeconfig file to load credentials from.
	Kubeconfig string
	// Context overrides the kubeconfig's current-context when set.
	Context string
	// RequestTimeout bounds single request/response calls. Streaming calls ignore it.
	RequestTimeout time.Duration
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Kubeconfig:     clientcmd.RecommendedHomeFile,
		RequestTimeout: defaultRequestTimeout,
	}
}

func addConfigFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()
	cmd.PersistentFlags().String("kubeconfig", defaults.Kubeconfig, "Path to the kubeconfig file")
	cmd.PersistentFlags().String("context", "", "Kubeconfig context to use instead of the current one")
	cmd.PersistentFlags().Duration("request-timeout", defaults.RequestTimeout, "Timeout for non-streaming API requests")
}

// configFromFlags reads the persistent connection flags of cmd.
func configFromFlags(cmd *cobra.Command) (Config, error) {
	var cfg Config
	var err error

	if cfg.Kubeconfig, err = cmd.Flags().GetString("kubeconfig"); err != nil {
		return cfg, err
	}
	if cfg.Context, err = cmd.Flags().GetString("context"); err != nil {
		return cfg, err
	}
	if cfg.RequestTimeout, err = cmd.Flags().GetDuration("request-timeout"); err != nil {
		return cfg, err
	}
	return cfg, nil
}
