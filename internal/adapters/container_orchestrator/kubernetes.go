package container_orchestrator

import (
	"context"
	"fmt"

	"kjob/internal/core/domain"
	"kjob/internal/ports"

	"github.com/google/uuid"
	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

const (
	SubmissionIDLabel = "kjob.io/submission-id"
	ManagedByLabel    = "app.kubernetes.io/managed-by"
	managedByValue    = "kjob"
)

// Kubernetes submits job manifests to the cluster of the current kubeconfig
// context.
type Kubernetes struct {
	clientSet        kubernetes.Interface
	defaultNamespace string
	newSubmissionID  func() string
}

func ProvideKubernetes() (*Kubernetes, error) {
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		clientcmd.NewDefaultClientConfigLoadingRules(),
		&clientcmd.ConfigOverrides{},
	)
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes config: %w", err)
	}
	clientSet, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	namespace, _, err := clientConfig.Namespace()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve current namespace: %w", err)
	}
	return NewKubernetes(clientSet, namespace), nil
}

func NewKubernetes(clientSet kubernetes.Interface, defaultNamespace string) *Kubernetes {
	if defaultNamespace == "" {
		defaultNamespace = metav1.NamespaceDefault
	}
	return &Kubernetes{
		clientSet:        clientSet,
		defaultNamespace: defaultNamespace,
		newSubmissionID:  uuid.NewString,
	}
}

// SubmitJob creates the job described by manifest. The manifest's namespace
// wins over the kubeconfig namespace.
func (k *Kubernetes) SubmitJob(ctx context.Context, manifest domain.Document) (ports.JobReference, error) {
	job, err := toJob(manifest)
	if err != nil {
		return ports.JobReference{}, err
	}
	if job.Namespace == "" {
		job.Namespace = k.defaultNamespace
	}
	if job.Name == "" && job.GenerateName == "" {
		job.GenerateName = "kjob-"
	}

	submissionID := k.newSubmissionID()
	if job.Labels == nil {
		job.Labels = map[string]string{}
	}
	job.Labels[SubmissionIDLabel] = submissionID
	if _, exists := job.Labels[ManagedByLabel]; !exists {
		job.Labels[ManagedByLabel] = managedByValue
	}

	created, err := k.clientSet.BatchV1().Jobs(job.Namespace).Create(ctx, job, metav1.CreateOptions{})
	if err != nil {
		return ports.JobReference{}, fmt.Errorf("failed to create job in namespace %s: %w", job.Namespace, err)
	}
	return ports.JobReference{
		Namespace:    created.Namespace,
		Name:         created.Name,
		SubmissionID: submissionID,
	}, nil
}

func toJob(manifest domain.Document) (*batchv1.Job, error) {
	object, ok := manifest.Value().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("job manifest must be a mapping, got %s", manifest.Kind())
	}
	if kind, _ := object["kind"].(string); kind != "Job" {
		return nil, fmt.Errorf("manifest kind must be 'Job', got '%v'", object["kind"])
	}

	job := &batchv1.Job{}
	if err := runtime.DefaultUnstructuredConverter.FromUnstructured(object, job); err != nil {
		return nil, fmt.Errorf("failed to convert manifest to job: %w", err)
	}
	return job, nil
}
