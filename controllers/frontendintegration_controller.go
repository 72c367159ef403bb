package controllers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/trace"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	extensionsv1alpha1 "github.com/frontend-forge/frontend-forge/api/extensions/v1alpha1"
	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
	"github.com/frontend-forge/frontend-forge/internal/buildjob"
	"github.com/frontend-forge/frontend-forge/internal/events"
	"github.com/frontend-forge/frontend-forge/internal/hashutil"
	"github.com/frontend-forge/frontend-forge/internal/labels"
	"github.com/frontend-forge/frontend-forge/internal/metrics"
	"github.com/frontend-forge/frontend-forge/internal/naming"
	"github.com/frontend-forge/frontend-forge/internal/observability"
)

const (
	// RequeueBuilding is how long to wait before re-checking an in-flight build.
	RequeueBuilding = 5 * time.Second
	// RequeueFailed backs off re-checks of a FrontendIntegration stuck Failed,
	// since nothing changes there without a spec edit or a manual retry.
	RequeueFailed = 2 * time.Minute
)

// ReconcilerOptions configures concurrency and rate limiting for the manager.
type ReconcilerOptions struct {
	MaxConcurrentReconciles int
	RateLimiter             workqueue.TypedRateLimiter[ctrl.Request]
}

// FrontendIntegrationReconciler drives FrontendIntegration resources through
// content-addressed builds: it schedules a build Job whenever the canonical
// spec hash changes, then reflects that Job's outcome (and the runner's
// published JSBundle) back onto status.
type FrontendIntegrationReconciler struct {
	client.Client
	Scheme *runtime.Scheme
	Log    logr.Logger

	BuildJobConfig buildjob.Config

	Metrics      *metrics.ReconcilerMetrics
	OTELProvider *observability.Provider
	Events       *events.Manager
}

//+kubebuilder:rbac:groups=frontend-forge.io,resources=frontendintegrations,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups=frontend-forge.io,resources=frontendintegrations/status,verbs=get;update;patch
//+kubebuilder:rbac:groups=batch,resources=jobs,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch;create;update;patch;delete
//+kubebuilder:rbac:groups="",resources=configmaps,verbs=get;list;watch
//+kubebuilder:rbac:groups=extensions.kubesphere.io,resources=jsbundles,verbs=get;list;watch

// Reconcile is part of the main Kubernetes reconciliation loop.
func (r *FrontendIntegrationReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	startTime := time.Now()
	log := r.Log.WithValues("frontendintegration", req.Name)

	if r.OTELProvider != nil {
		var span trace.Span
		ctx, span = r.OTELProvider.RecordReconcileSpan(ctx, req.Name, "", "")
		defer span.End()
	}

	defer func() {
		if r.Metrics != nil {
			r.Metrics.RecordReconcile("total", "completed", time.Since(startTime).Seconds())
		}
	}()

	fi := &frontendforgev1alpha1.FrontendIntegration{}
	if err := r.Get(ctx, client.ObjectKey{Name: req.Name}, fi); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		log.Error(err, "failed to get frontendintegration")
		return ctrl.Result{}, err
	}

	// The Job is owned by fi, the manifest Secret by the Job, and the runner
	// makes fi the controller owner of the bundle ConfigMap, so Kubernetes
	// garbage collects all three once fi is deleted. The published JSBundle
	// carries no owner reference and is left for an operator to reclaim
	// explicitly.
	if !fi.DeletionTimestamp.IsZero() {
		return ctrl.Result{}, nil
	}

	if !fi.Spec.IsEnabled() {
		return r.patchStatus(ctx, fi, frontendforgev1alpha1.PhasePending, "integration disabled", log)
	}

	specContent, specHash, err := hashutil.ManifestContentAndHash(fi.Spec)
	if err != nil {
		log.Error(err, "failed to hash spec")
		return ctrl.Result{}, err
	}
	if err := buildjob.CheckManifestSize(specContent); err != nil {
		log.Error(err, "spec too large to build", "bytes", len(specContent))
		return r.patchStatus(ctx, fi, frontendforgev1alpha1.PhaseFailed, err.Error(), log)
	}

	bundleName := fi.Spec.BundleName
	if bundleName == "" {
		bundleName = naming.DefaultBundleName(fi.Name)
	}

	if r.needsNewBuild(fi, specHash) {
		job, err := r.findOrCreateJob(ctx, fi, specContent, specHash, bundleName, log)
		if err != nil {
			r.recordError("build", "job_creation_failed")
			return ctrl.Result{}, err
		}
		return r.markBuilding(ctx, fi, specHash, job, "build job scheduled", log)
	}

	// The spec hasn't changed since the last build we scheduled; reconcile
	// status from whatever that build's Job and the runner's JSBundle show.
	job, err := r.findJobForHash(ctx, fi.Name, specHash)
	if err != nil {
		return ctrl.Result{}, err
	}

	if job == nil {
		// No Job survives for this hash (e.g. TTL-reaped after completion).
		// If a bundle already exists for this FI, a prior controller
		// instance already saw the build through to completion.
		bundle := &extensionsv1alpha1.JSBundle{}
		getErr := r.Get(ctx, client.ObjectKey{Name: bundleName}, bundle)
		switch {
		case getErr == nil:
			if !bundleMatchesSpecHash(bundle, specHash) {
				return r.patchStatus(ctx, fi, frontendforgev1alpha1.PhaseBuilding, "waiting for JSBundle", log, ctrl.Result{RequeueAfter: RequeueBuilding})
			}
			return r.markSucceeded(ctx, fi, bundleName, bundle, log)
		case apierrors.IsNotFound(getErr):
			return ctrl.Result{}, nil
		default:
			return ctrl.Result{}, getErr
		}
	}

	switch observedJobPhase(job) {
	case frontendforgev1alpha1.PhasePending, frontendforgev1alpha1.PhaseBuilding:
		return r.patchStatus(ctx, fi, frontendforgev1alpha1.PhaseBuilding, "build in progress", log, ctrl.Result{RequeueAfter: RequeueBuilding})
	case frontendforgev1alpha1.PhaseFailed:
		r.recordError("build", "job_failed")
		message := extractJobMessage(job)
		if err := r.Events.EmitBuildFailed(ctx, fi, job.Name, message); err != nil {
			log.V(1).Info("failed to emit build failed event", "error", err.Error())
		}
		return r.patchStatus(ctx, fi, frontendforgev1alpha1.PhaseFailed, message, log, ctrl.Result{RequeueAfter: RequeueFailed})
	default: // PhaseSucceeded
		bundle := &extensionsv1alpha1.JSBundle{}
		if err := r.Get(ctx, client.ObjectKey{Name: bundleName}, bundle); err != nil {
			if apierrors.IsNotFound(err) {
				return r.patchStatus(ctx, fi, frontendforgev1alpha1.PhaseFailed,
					fmt.Sprintf("build job %s succeeded but jsbundle %s was not published", job.Name, bundleName), log)
			}
			return ctrl.Result{}, err
		}
		if !bundleMatchesSpecHash(bundle, specHash) {
			return r.patchStatus(ctx, fi, frontendforgev1alpha1.PhaseBuilding, "waiting for JSBundle", log, ctrl.Result{RequeueAfter: RequeueBuilding})
		}
		return r.markSucceeded(ctx, fi, bundleName, bundle, log)
	}
}

// needsNewBuild reports whether fi's current spec hash has never been
// recorded as observed, or the deprecated force-rebuild token moved without
// a corresponding hash change (pre-hashutil rollback compatibility).
func (r *FrontendIntegrationReconciler) needsNewBuild(fi *frontendforgev1alpha1.FrontendIntegration, specHash string) bool {
	status := fi.Status
	observed := status.ObservedSpecHash
	if observed == "" {
		observed = status.ObservedManifestHash
	}
	if status.Phase == "" {
		return true
	}
	if observed != specHash {
		return true
	}
	if status.ObservedForceRebuildToken != fi.Spec.ForceRebuildToken {
		return true
	}
	return false
}

// findJobForHash returns the most recently created build Job labeled for
// (fiName, specHash), or nil if none exists. Multiple Jobs can briefly exist
// for the same hash after a create-conflict retry; the newest one wins.
func (r *FrontendIntegrationReconciler) findJobForHash(ctx context.Context, fiName, specHash string) (*batchv1.Job, error) {
	var jobs batchv1.JobList
	sel := labels.SelectorForBuild(fiName, specHash)
	if err := r.List(ctx, &jobs,
		client.InNamespace(r.BuildJobConfig.BuildNamespace),
		client.MatchingLabelsSelector{Selector: sel},
	); err != nil {
		return nil, fmt.Errorf("list build jobs for %s@%s: %w", fiName, specHash, err)
	}
	if len(jobs.Items) == 0 {
		return nil, nil
	}
	sort.Slice(jobs.Items, func(i, j int) bool {
		return jobs.Items[i].CreationTimestamp.After(jobs.Items[j].CreationTimestamp.Time)
	})
	return &jobs.Items[0], nil
}

// findOrCreateJob adopts an existing build Job for (fi.Name, specHash) if one
// is already running, otherwise constructs and creates a new Job and its
// manifest Secret. Job is owned by fi; Secret is owned by Job, so the Job's
// TTL reaps both together.
func (r *FrontendIntegrationReconciler) findOrCreateJob(
	ctx context.Context,
	fi *frontendforgev1alpha1.FrontendIntegration,
	specContent, specHash, bundleName string,
	log logr.Logger,
) (*batchv1.Job, error) {
	if existing, err := r.findJobForHash(ctx, fi.Name, specHash); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	jobName := naming.JobName(fi.Name, specHash)
	secretName := naming.SecretName(fi.Name, specHash)

	job := buildjob.BuildJob(fi, r.BuildJobConfig, jobName, secretName, bundleName, specHash)
	if err := controllerutil.SetControllerReference(fi, job, r.Scheme); err != nil {
		return nil, fmt.Errorf("set owner reference on build job %s: %w", jobName, err)
	}

	if err := r.Create(ctx, job); err != nil {
		if apierrors.IsAlreadyExists(err) {
			existing := &batchv1.Job{}
			if getErr := r.Get(ctx, client.ObjectKey{Name: jobName, Namespace: r.BuildJobConfig.BuildNamespace}, existing); getErr != nil {
				return nil, fmt.Errorf("get build job %s after create conflict: %w", jobName, getErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("create build job %s: %w", jobName, err)
	}

	secret, err := buildjob.ManifestSecret(job, r.BuildJobConfig, secretName, specHash, specContent)
	if err != nil {
		return nil, fmt.Errorf("build manifest secret %s: %w", secretName, err)
	}
	if err := controllerutil.SetControllerReference(job, secret, r.Scheme); err != nil {
		return nil, fmt.Errorf("set owner reference on manifest secret %s: %w", secretName, err)
	}
	if err := r.Create(ctx, secret); err != nil && !apierrors.IsAlreadyExists(err) {
		return nil, fmt.Errorf("create manifest secret %s: %w", secretName, err)
	}

	log.Info("build job created", "job", jobName, "secret", secretName, "specHash", specHash)
	return job, nil
}

// observedJobPhase maps a Job's status onto the coarse build phases, falling
// back to inspecting Conditions when the count fields haven't been populated
// yet (can happen on a very young Job).
func observedJobPhase(job *batchv1.Job) frontendforgev1alpha1.FrontendIntegrationPhase {
	switch {
	case job.Status.Failed > 0:
		return frontendforgev1alpha1.PhaseFailed
	case job.Status.Succeeded > 0:
		return frontendforgev1alpha1.PhaseSucceeded
	case job.Status.Active > 0:
		return frontendforgev1alpha1.PhaseBuilding
	}

	for _, c := range job.Status.Conditions {
		if c.Status != corev1.ConditionTrue {
			continue
		}
		switch c.Type {
		case batchv1.JobFailed:
			return frontendforgev1alpha1.PhaseFailed
		case batchv1.JobComplete:
			return frontendforgev1alpha1.PhaseSucceeded
		}
	}
	return frontendforgev1alpha1.PhasePending
}

// extractJobMessage pulls a human-readable failure reason off a failed Job's
// conditions, falling back to a generic message if none carries one.
func extractJobMessage(job *batchv1.Job) string {
	for _, c := range job.Status.Conditions {
		if c.Type != batchv1.JobFailed || c.Status != corev1.ConditionTrue {
			continue
		}
		if c.Message != "" {
			return c.Message
		}
		if c.Reason != "" {
			return c.Reason
		}
	}
	return fmt.Sprintf("build job %s failed", job.Name)
}

func (r *FrontendIntegrationReconciler) markBuilding(
	ctx context.Context,
	fi *frontendforgev1alpha1.FrontendIntegration,
	specHash string,
	job *batchv1.Job,
	message string,
	log logr.Logger,
) (ctrl.Result, error) {
	fi.Status.Phase = frontendforgev1alpha1.PhaseBuilding
	fi.Status.Message = message
	fi.Status.ObservedSpecHash = specHash
	fi.Status.ObservedForceRebuildToken = fi.Spec.ForceRebuildToken
	fi.Status.ObservedGeneration = fi.Generation
	if fi.Status.ActiveBuild == nil || fi.Status.ActiveBuild.JobRef == nil || fi.Status.ActiveBuild.JobRef.Name != job.Name {
		now := metav1.Now()
		fi.Status.ActiveBuild = &frontendforgev1alpha1.ActiveBuildStatus{
			JobRef:    &frontendforgev1alpha1.ResourceRef{Name: job.Name, Namespace: job.Namespace, UID: string(job.UID)},
			StartedAt: &now,
		}
		if err := r.Events.EmitBuildStarted(ctx, fi, job.Name, specHash); err != nil {
			log.V(1).Info("failed to emit build started event", "error", err.Error())
		}
	}

	if err := r.Status().Update(ctx, fi); err != nil {
		return ctrl.Result{}, fmt.Errorf("update status for %s: %w", fi.Name, err)
	}
	log.Info("build scheduled", "job", job.Name, "specHash", specHash)
	return ctrl.Result{RequeueAfter: RequeueBuilding}, nil
}

// bundleMatchesSpecHash reports whether bundle carries the spec-hash label
// for the given (un-prefixed) specHash, i.e. whether the runner that
// published it actually built this spec and not a stale or unrelated one.
func bundleMatchesSpecHash(bundle *extensionsv1alpha1.JSBundle, specHash string) bool {
	return bundle.Labels[labels.SpecHash] == hashutil.StripPrefix(specHash)
}

func (r *FrontendIntegrationReconciler) markSucceeded(
	ctx context.Context,
	fi *frontendforgev1alpha1.FrontendIntegration,
	bundleName string,
	bundle *extensionsv1alpha1.JSBundle,
	log logr.Logger,
) (ctrl.Result, error) {
	jobName := ""
	if fi.Status.ActiveBuild != nil && fi.Status.ActiveBuild.JobRef != nil {
		jobName = fi.Status.ActiveBuild.JobRef.Name
	}

	fi.Status.Phase = frontendforgev1alpha1.PhaseSucceeded
	fi.Status.Message = "jsbundle published"
	fi.Status.ObservedGeneration = fi.Generation
	fi.Status.ActiveBuild = nil
	fi.Status.BundleRef = &frontendforgev1alpha1.ResourceRef{Name: bundleName, UID: string(bundle.UID)}

	if err := r.Status().Update(ctx, fi); err != nil {
		return ctrl.Result{}, fmt.Errorf("update status for %s: %w", fi.Name, err)
	}
	manifestHash := bundle.Labels[labels.ManifestHash]
	log.Info("jsbundle published", "bundle", bundleName, "manifestHash", manifestHash)

	if err := r.Events.EmitBuildSucceeded(ctx, fi, jobName); err != nil {
		log.V(1).Info("failed to emit build succeeded event", "error", err.Error())
	}
	if err := r.Events.EmitPublished(ctx, fi, bundleName, manifestHash); err != nil {
		log.V(1).Info("failed to emit published event", "error", err.Error())
	}
	return ctrl.Result{}, nil
}

func (r *FrontendIntegrationReconciler) patchStatus(
	ctx context.Context,
	fi *frontendforgev1alpha1.FrontendIntegration,
	phase frontendforgev1alpha1.FrontendIntegrationPhase,
	message string,
	log logr.Logger,
	result ...ctrl.Result,
) (ctrl.Result, error) {
	fi.Status.Phase = phase
	fi.Status.Message = message
	fi.Status.ObservedGeneration = fi.Generation

	if err := r.Status().Update(ctx, fi); err != nil {
		return ctrl.Result{}, fmt.Errorf("update status for %s: %w", fi.Name, err)
	}
	log.V(1).Info("status updated", "phase", phase, "message", message)
	if len(result) > 0 {
		return result[0], nil
	}
	return ctrl.Result{}, nil
}

func (r *FrontendIntegrationReconciler) recordError(component, errorType string) {
	if r.Metrics != nil {
		r.Metrics.RecordError(component, errorType)
	}
}

// SetupWithManager sets up the controller with the Manager.
func (r *FrontendIntegrationReconciler) SetupWithManager(mgr ctrl.Manager, opts ReconcilerOptions) error {
	ctrlOpts := controller.Options{
		MaxConcurrentReconciles: opts.MaxConcurrentReconciles,
	}
	if opts.RateLimiter != nil {
		ctrlOpts.RateLimiter = opts.RateLimiter
	}

	return ctrl.NewControllerManagedBy(mgr).
		For(&frontendforgev1alpha1.FrontendIntegration{}).
		Owns(&batchv1.Job{}).
		Owns(&corev1.Secret{}).
		WithEventFilter(predicate.GenerationChangedPredicate{}).
		WithOptions(ctrlOpts).
		Complete(r)
}
