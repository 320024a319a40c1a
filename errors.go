package main

import (
	"errors"
	"fmt"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// UsageError reports a missing or invalid command or flag.
type UsageError struct {
	Command string
	Msg     string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Msg)
}

func usageErrorf(command, format string, args ...any) *UsageError {
	return &UsageError{Command: command, Msg: fmt.Sprintf(format, args...)}
}

// FileAccessError reports a manifest that could not be read or decoded.
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("failed to load manifest %s: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error { return e.Err }

// RemoteAPIError reports a failed call against the cluster API.
// Namespace and Name are empty for calls that are not scoped to one pod.
type RemoteAPIError struct {
	Op        string
	Namespace string
	Name      string
	Err       error
}

func (e *RemoteAPIError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("%s pod %s/%s: %v", e.Op, e.Namespace, e.Name, e.Err)
	case e.Namespace != "":
		return fmt.Sprintf("%s pods in namespace %s: %v", e.Op, e.Namespace, e.Err)
	default:
		return fmt.Sprintf("%s pods: %v", e.Op, e.Err)
	}
}

func (e *RemoteAPIError) Unwrap() error { return e.Err }

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return exitUsage
	}
	return exitError
}
