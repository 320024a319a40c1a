package main

import (
	"fmt"
	"os"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"
)

// LoadPodManifest reads a pod manifest in YAML or JSON form.
// Fields are passed through as-is; only the kind is checked.
func LoadPodManifest(path string) (*corev1.Pod, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}

	pod := &corev1.Pod{}
	if err := yaml.Unmarshal(data, pod); err != nil {
		return nil, &FileAccessError{Path: path, Err: fmt.Errorf("failed to decode pod: %w", err)}
	}

	if pod.Kind != "" && pod.Kind != "Pod" {
		return nil, &FileAccessError{Path: path, Err: fmt.Errorf("expected kind Pod, got %s", pod.Kind)}
	}
	if pod.Name == "" && pod.GenerateName == "" {
		return nil, &FileAccessError{Path: path, Err: fmt.Errorf("metadata.name or metadata.generateName is required")}
	}

	return pod, nil
}
