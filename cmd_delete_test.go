package main

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
)

func TestDeletePod(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset(&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "x", Namespace: "ns1"}})
	opened := 0

	out, err := runCommand(countingSession(cs, &opened), "delete", "-n", "ns1", "-pn", "x")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(out).To(ContainSubstring("Pod 'x' deleted from namespace 'ns1'"))
	g.Expect(out).To(ContainSubstring("Status: Success"))

	actions := cs.Actions()
	g.Expect(actions).To(HaveLen(1))
	del, ok := actions[0].(k8stesting.DeleteAction)
	g.Expect(ok).To(BeTrue())
	g.Expect(del.GetNamespace()).To(Equal("ns1"))
	g.Expect(del.GetName()).To(Equal("x"))
}

func TestDeleteAcceptsLongFlagAliases(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset(&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "x", Namespace: "ns1"}})
	opened := 0

	_, err := runCommand(countingSession(cs, &opened), "delete", "--namespace=ns1", "--pod-name=x")

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cs.Actions()).To(HaveLen(1))
}

func TestDeleteMissingPod(t *testing.T) {
	g := NewWithT(t)
	cs := fake.NewClientset()
	opened := 0

	out, err := runCommand(countingSession(cs, &opened), "delete", "-n", "ns1", "-pn", "missing")

	var remoteErr *RemoteAPIError
	g.Expect(errors.As(err, &remoteErr)).To(BeTrue(), "got %v", err)
	g.Expect(apierrors.IsNotFound(err)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("delete pod ns1/missing"))
	g.Expect(out).NotTo(ContainSubstring("deleted"))
}

func TestDeleteRequiresPodRef(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no flags", args: []string{"delete"}},
		{name: "empty namespace", args: []string{"delete", "-n", "", "-pn", "x"}},
		{name: "missing name", args: []string{"delete", "-n", "ns1"}},
		{name: "empty name", args: []string{"delete", "-n", "ns1", "-pn="}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithT(t)
			cs := fake.NewClientset()
			opened := 0

			_, err := runCommand(countingSession(cs, &opened), tt.args...)

			var usageErr *UsageError
			g.Expect(errors.As(err, &usageErr)).To(BeTrue(), "got %v", err)
			g.Expect(opened).To(BeZero())
			g.Expect(cs.Actions()).To(BeEmpty())
		})
	}
}
