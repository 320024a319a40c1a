package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
)

// defaultNamespace is where pods without a namespace in their manifest are created.
const defaultNamespace = metav1.NamespaceDefault

// PodManager is the session used by every command to talk to the cluster.
type PodManager struct {
	clientset kubernetes.Interface
}

// sessionFactory opens a PodManager for the given configuration.
type sessionFactory func(cfg Config) (*PodManager, error)

// NewPodManager creates a new PodManager from the kubeconfig named in cfg.
func NewPodManager(cfg Config) (*PodManager, error) {
	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: cfg.Kubeconfig}
	configOverrides := &clientcmd.ConfigOverrides{CurrentContext: cfg.Context}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig %s: %w", cfg.Kubeconfig, err)
	}
	klog.V(4).InfoS("Loaded kubeconfig", "path", cfg.Kubeconfig, "context", cfg.Context, "host", restConfig.Host)

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	return newPodManagerForClient(clientset), nil
}

func newPodManagerForClient(clientset kubernetes.Interface) *PodManager {
	return &PodManager{clientset: clientset}
}

// CreatePod submits pod to its own namespace, or to the default namespace when it has none.
func (pm *PodManager) CreatePod(ctx context.Context, pod *corev1.Pod) (*corev1.Pod, error) {
	pod.Namespace = podNamespace(pod)
	klog.V(2).InfoS("Creating pod", "namespace", pod.Namespace, "name", pod.Name)

	created, err := pm.clientset.CoreV1().Pods(pod.Namespace).Create(ctx, pod, metav1.CreateOptions{})
	if err != nil {
		return nil, &RemoteAPIError{Op: "create", Namespace: pod.Namespace, Name: podDisplayName(pod), Err: err}
	}
	return created, nil
}

func podNamespace(pod *corev1.Pod) string {
	if pod.Namespace == "" {
		return defaultNamespace
	}
	return pod.Namespace
}

// podDisplayName names a pod that may only carry a generateName prefix.
func podDisplayName(pod *corev1.Pod) string {
	if pod.Name == "" {
		return pod.GenerateName
	}
	return pod.Name
}

// DeletePod removes the named pod.
func (pm *PodManager) DeletePod(ctx context.Context, namespace, name string) error {
	klog.V(2).InfoS("Deleting pod", "namespace", namespace, "name", name)

	if err := pm.clientset.CoreV1().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{}); err != nil {
		return &RemoteAPIError{Op: "delete", Namespace: namespace, Name: name, Err: err}
	}
	return nil
}

// LogOptions selects which part of a pod's log is read.
type LogOptions struct {
	Container string
	Follow    bool
	// TailLines limits output to the last lines of the log. Negative means everything.
	TailLines int64
}

// LogStream is an open pod log.
type LogStream struct {
	namespace string
	name      string
	body      io.ReadCloser
}

// OpenLogs starts reading the log of the named pod.
func (pm *PodManager) OpenLogs(ctx context.Context, namespace, name string, opts LogOptions) (*LogStream, error) {
	podLogOpts := &corev1.PodLogOptions{
		Container: opts.Container,
		Follow:    opts.Follow,
	}
	if opts.TailLines >= 0 {
		podLogOpts.TailLines = ptr.To(opts.TailLines)
	}
	klog.V(2).InfoS("Reading pod logs", "namespace", namespace, "name", name, "container", opts.Container, "follow", opts.Follow)

	body, err := pm.clientset.CoreV1().Pods(namespace).GetLogs(name, podLogOpts).Stream(ctx)
	if err != nil {
		return nil, &RemoteAPIError{Op: "read logs of", Namespace: namespace, Name: name, Err: err}
	}
	return &LogStream{namespace: namespace, name: name, body: body}, nil
}

// CopyTo writes the log to w until the stream ends. Cancelling ctx ends the
// copy without error; any other interruption, including a deadline, fails it.
func (s *LogStream) CopyTo(ctx context.Context, w io.Writer) error {
	if _, err := io.Copy(w, s.body); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			klog.V(2).InfoS("Log stream cancelled", "namespace", s.namespace, "name", s.name)
			return nil
		}
		return &RemoteAPIError{Op: "read logs of", Namespace: s.namespace, Name: s.name, Err: err}
	}
	return nil
}

func (s *LogStream) Close() error {
	return s.body.Close()
}

// PodEvent is one change observed on a pod. Err is set on the last event
// of a stream that the server terminated with an error.
type PodEvent struct {
	Type      watch.EventType
	Namespace string
	Name      string
	Phase     corev1.PodPhase
	Err       error
}

// WatchPods opens a watch on pods in all namespaces. The returned channel
// is closed when the server ends the stream, after an error event, or
// when ctx is cancelled. It cannot be restarted.
func (pm *PodManager) WatchPods(ctx context.Context) (<-chan PodEvent, error) {
	watcher, err := pm.clientset.CoreV1().Pods(metav1.NamespaceAll).Watch(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &RemoteAPIError{Op: "watch", Err: err}
	}

	events := make(chan PodEvent)
	go func() {
		defer close(events)
		defer watcher.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.ResultChan():
				if !ok {
					klog.V(2).InfoS("Pod watch closed by server")
					return
				}
				podEvent, ok := toPodEvent(ev)
				if !ok {
					continue
				}
				select {
				case events <- podEvent:
				case <-ctx.Done():
					return
				}
				if podEvent.Err != nil {
					return
				}
			}
		}
	}()

	return events, nil
}

func toPodEvent(ev watch.Event) (PodEvent, bool) {
	if ev.Type == watch.Error {
		return PodEvent{
			Type: ev.Type,
			Err:  &RemoteAPIError{Op: "watch", Err: apierrors.FromObject(ev.Object)},
		}, true
	}

	pod, ok := ev.Object.(*corev1.Pod)
	if !ok {
		klog.V(3).InfoS("Skipping unexpected watch object", "type", ev.Type, "object", fmt.Sprintf("%T", ev.Object))
		return PodEvent{}, false
	}
	return PodEvent{
		Type:      ev.Type,
		Namespace: pod.Namespace,
		Name:      pod.Name,
		Phase:     pod.Status.Phase,
	}, true
}
