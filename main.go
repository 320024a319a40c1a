package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/klog/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd(NewPodManager)
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	stop()

	code := reportError(os.Stderr, rootCmd, err)
	klog.Flush()
	os.Exit(code)
}

// reportError prints err for the user and returns the exit code for it.
func reportError(w io.Writer, rootCmd *cobra.Command, err error) int {
	code := exitCode(err)
	if err == nil {
		return code
	}
	klog.V(2).ErrorS(err, "Command failed", "exitCode", code)

	fmt.Fprintln(w, "Error:", err)
	if code == exitUsage {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
	}
	return code
}

func newRootCmd(newSession sessionFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sarma",
		Short: "Create, delete, read logs of and watch Kubernetes pods",
		Long: `sarma is a small CLI for managing Kubernetes pods.
Each subcommand performs a single call against the cluster API using the credentials from a kubeconfig file.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &UsageError{Msg: "a command is required: create, delete, logs or watch"}
			}
			return &UsageError{Msg: fmt.Sprintf("unknown command %q", args[0])}
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Command: cmd.Name(), Msg: err.Error()}
	})
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	// Connection flags are shared by all subcommands
	addConfigFlags(rootCmd)

	goflags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goflags)
	rootCmd.PersistentFlags().AddGoFlagSet(goflags)

	rootCmd.AddCommand(newCreateCmd(newSession))
	rootCmd.AddCommand(newDeleteCmd(newSession))
	rootCmd.AddCommand(newLogsCmd(newSession))
	rootCmd.AddCommand(newWatchCmd(newSession))

	return rootCmd
}

// normalizeArgs rewrites the legacy multi-letter short flag -pn, which pflag
// cannot express, into --pod_name. Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		switch {
		case arg == "-pn":
			arg = "--pod_name"
		case strings.HasPrefix(arg, "-pn="):
			arg = "--pod_name=" + strings.TrimPrefix(arg, "-pn=")
		}
		out = append(out, arg)
	}
	return out
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "pod-name" {
		name = "pod_name"
	}
	return pflag.NormalizedName(name)
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageErrorf(cmd.Name(), "unexpected arguments %v", args)
	}
	return nil
}

// openSession builds the PodManager for cmd from its persistent connection flags.
// op, namespace and name describe the pod operation the command performs, for error reporting.
func openSession(cmd *cobra.Command, newSession sessionFactory, op, namespace, name string) (*PodManager, Config, error) {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return nil, cfg, err
	}
	pm, err := newSession(cfg)
	if err != nil {
		return nil, cfg, &RemoteAPIError{Op: op, Namespace: namespace, Name: name, Err: err}
	}
	return pm, cfg, nil
}

// requestContext bounds a single request/response call by the configured timeout.
func requestContext(cmd *cobra.Command, cfg Config) (context.Context, context.CancelFunc) {
	if cfg.RequestTimeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
}

func phaseOrUnknown(phase corev1.PodPhase) corev1.PodPhase {
	if phase == "" {
		return corev1.PodUnknown
	}
	return phase
}
