// Package buildjob builds the Kubernetes Job and Secret the controller
// creates to drive one runner invocation for a FrontendIntegration at a
// given spec hash.
package buildjob

import (
	"errors"
	"fmt"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
	"github.com/frontend-forge/frontend-forge/internal/labels"
)

const (
	// ManifestFilename is the key the canonicalized spec content is stored
	// under inside the manifest Secret.
	ManifestFilename = "manifest.json"
	// ManifestMountPath is where the runner container mounts the manifest
	// Secret volume.
	ManifestMountPath = "/work/manifest"

	// MaxSecretPayloadBytes bounds how large a canonicalized spec may be
	// before the controller refuses to launch a build for it — Kubernetes
	// Secrets are capped at 1MiB server-side; this stays comfortably under
	// that so the Secret write never fails after a Job already exists.
	MaxSecretPayloadBytes = 900 * 1024

	runnerContainerName = "runner"
	manifestVolumeName  = "manifest"
)

// ErrManifestTooLarge is returned when a FrontendIntegration's canonicalized
// spec exceeds MaxSecretPayloadBytes.
var ErrManifestTooLarge = errors.New("manifest payload exceeds secret size limit")

// Config configures every build Job the controller creates; it is filled
// once from the controller process's command-line flags.
type Config struct {
	RunnerImage            string
	RunnerServiceAccount   string
	BuildNamespace         string
	BuildServiceBaseURL    string
	BuildServiceTimeout    time.Duration
	StaleCheckGracePeriod  time.Duration
	JobTTLSecondsAfterFinished *int32
}

// CheckManifestSize returns ErrManifestTooLarge if content exceeds the
// Secret payload limit.
func CheckManifestSize(content string) error {
	if len(content) > MaxSecretPayloadBytes {
		return fmt.Errorf("%w: %d bytes", ErrManifestTooLarge, len(content))
	}
	return nil
}

// BuildJob constructs the desired Job for one build attempt. The Job is
// owned by fi so that deleting the FrontendIntegration (or letting the
// Job's TTL lapse) garbage-collects it; the manifest Secret is owned by the
// Job itself (see ManifestSecret) rather than by fi, so Job TTL cleanup
// reaps the Secret too.
func BuildJob(fi *frontendforgev1alpha1.FrontendIntegration, cfg Config, jobName, secretName, bundleName, specHash string) *batchv1.Job {
	jobLabels := labels.ForBuild(fi.Name, specHash)

	annotations := map[string]string{}
	if fi.Generation != 0 {
		annotations[labels.AnnotationObservedGeneration] = fmt.Sprintf("%d", fi.Generation)
	}

	env := []corev1.EnvVar{
		{Name: "FI_NAME", Value: fi.Name},
		{Name: "SPEC_HASH", Value: specHash},
		{Name: "MANIFEST_PATH", Value: ManifestMountPath + "/" + ManifestFilename},
		{Name: "JSBUNDLE_NAME", Value: bundleName},
		{Name: "BUILD_SERVICE_BASE_URL", Value: cfg.BuildServiceBaseURL},
		{Name: "BUILD_SERVICE_TIMEOUT_SECONDS", Value: fmt.Sprintf("%d", int64(cfg.BuildServiceTimeout.Seconds()))},
		{Name: "STALE_CHECK_GRACE_SECONDS", Value: fmt.Sprintf("%d", int64(cfg.StaleCheckGracePeriod.Seconds()))},
	}

	container := corev1.Container{
		Name:  runnerContainerName,
		Image: cfg.RunnerImage,
		Env:   env,
		VolumeMounts: []corev1.VolumeMount{
			{
				Name:      manifestVolumeName,
				MountPath: ManifestMountPath,
				ReadOnly:  true,
			},
		},
	}

	podSpec := corev1.PodSpec{
		RestartPolicy: corev1.RestartPolicyNever,
		Containers:    []corev1.Container{container},
		Volumes: []corev1.Volume{
			{
				Name: manifestVolumeName,
				VolumeSource: corev1.VolumeSource{
					Secret: &corev1.SecretVolumeSource{SecretName: secretName},
				},
			},
		},
	}
	if cfg.RunnerServiceAccount != "" {
		podSpec.ServiceAccountName = cfg.RunnerServiceAccount
	}

	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:        jobName,
			Namespace:   cfg.BuildNamespace,
			Labels:      jobLabels,
			Annotations: annotations,
		},
		Spec: batchv1.JobSpec{
			TTLSecondsAfterFinished: cfg.JobTTLSecondsAfterFinished,
			BackoffLimit:            ptr.To(int32(0)),
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: map[string]string{
						"app.kubernetes.io/name": "frontend-forge-runner",
					},
				},
				Spec: podSpec,
			},
		},
	}

	return job
}

// ManifestSecret constructs the immutable Secret backing job's manifest
// volume mount, holding the canonicalized spec content the Job was created
// for. Ownership is set to job (not fi) so that the Job's own TTL/GC also
// removes the Secret.
func ManifestSecret(job *batchv1.Job, cfg Config, secretName, specHash, specContent string) (*corev1.Secret, error) {
	if err := CheckManifestSize(specContent); err != nil {
		return nil, err
	}

	jobLabels := labels.ForBuild(job.Labels[labels.FIName], specHash)

	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      secretName,
			Namespace: cfg.BuildNamespace,
			Labels:    jobLabels,
		},
		Immutable: ptr.To(true),
		StringData: map[string]string{
			ManifestFilename: specContent,
		},
		Type: corev1.SecretTypeOpaque,
	}, nil
}
