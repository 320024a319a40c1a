package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

const podManifest = `apiVersion: v1
kind: Pod
metadata:
  name: x
spec:
  containers:
  - name: app
    image: nginx:1.27
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pod.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

func TestCreateInDefaultNamespace(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset()
	opened := 0

	out, err := runCommand(countingSession(cs, &opened), "create", "-m", writeManifest(t, podManifest))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("Pod 'x' created in namespace 'default'"))
	g.Expect(out).To(ContainSubstring("Status: "))

	actions := cs.Actions()
	g.Expect(actions).To(HaveLen(1))
	create, ok := actions[0].(k8stesting.CreateAction)
	g.Expect(ok).To(BeTrue())
	g.Expect(create.GetNamespace()).To(Equal("default"))
	g.Expect(create.GetObject().(*corev1.Pod).Name).To(Equal("x"))
}

func TestCreateHonorsManifestNamespace(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset()
	opened := 0
	manifest := `{"apiVersion": "v1", "kind": "Pod", "metadata": {"name": "x", "namespace": "ns2"}}`

	out, err := runCommand(countingSession(cs, &opened), "create", "--manifest", writeManifest(t, manifest))

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("Pod 'x' created in namespace 'ns2'"))
	g.Expect(cs.Actions()).To(HaveLen(1))
	g.Expect(cs.Actions()[0].GetNamespace()).To(Equal("ns2"))
}

func TestCreateMissingManifestFile(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset()
	opened := 0

	_, err := runCommand(countingSession(cs, &opened), "create", "-m", filepath.Join(t.TempDir(), "missing.yaml"))

	var fileErr *FileAccessError
	g.Expect(errors.As(err, &fileErr)).To(BeTrue(), "got %v", err)
	g.Expect(errors.Is(err, fs.ErrNotExist)).To(BeTrue())
	g.Expect(exitCode(err)).To(Equal(exitError))
	g.Expect(opened).To(BeZero())
	g.Expect(cs.Actions()).To(BeEmpty())
}

func TestCreateRejectsOtherKinds(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset()
	opened := 0
	manifest := "apiVersion: apps/v1\nkind: Deployment\nmetadata:\n  name: web\n"

	_, err := runCommand(countingSession(cs, &opened), "create", "-m", writeManifest(t, manifest))

	var fileErr *FileAccessError
	g.Expect(errors.As(err, &fileErr)).To(BeTrue(), "got %v", err)
	g.Expect(err.Error()).To(ContainSubstring("expected kind Pod"))
	g.Expect(cs.Actions()).To(BeEmpty())
}

func TestCreateRequiresManifestFlag(t *testing.T) {
	g := NewWithT(t)
	opened := 0

	_, err := runCommand(countingSession(fake.NewClientset(), &opened), "create")

	var usageErr *UsageError
	g.Expect(errors.As(err, &usageErr)).To(BeTrue(), "got %v", err)
	g.Expect(opened).To(BeZero())
}

func TestCreateExistingPod(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset(&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "x", Namespace: "default"}})
	opened := 0

	out, err := runCommand(countingSession(cs, &opened), "create", "-m", writeManifest(t, podManifest))

	var remoteErr *RemoteAPIError
	g.Expect(errors.As(err, &remoteErr)).To(BeTrue(), "got %v", err)
	g.Expect(remoteErr.Op).To(Equal("create"))
	g.Expect(apierrors.IsAlreadyExists(err)).To(BeTrue())
	g.Expect(out).NotTo(ContainSubstring("created"))
}
