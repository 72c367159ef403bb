package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	extensionsv1alpha1 "github.com/frontend-forge/frontend-forge/api/extensions/v1alpha1"
	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
	"github.com/frontend-forge/frontend-forge/internal/buildservice"
	"github.com/frontend-forge/frontend-forge/internal/hashutil"
	"github.com/frontend-forge/frontend-forge/internal/labels"
	"github.com/frontend-forge/frontend-forge/internal/manifest"
	"github.com/frontend-forge/frontend-forge/internal/naming"
	"github.com/frontend-forge/frontend-forge/internal/ratelimit"
)

// statusPollQPS bounds how often staleCheck re-fetches the FrontendIntegration
// while waiting for its status to catch up; the poll interval itself already
// spaces requests out, this just protects against a burst of runner Pods
// starting their grace period in the same instant.
const statusPollQPS = 20.0

// ErrStaleCheckTimeout is returned when the FrontendIntegration's status
// never reflects this build's spec hash within the configured grace period.
var ErrStaleCheckTimeout = errors.New("fi status.observedSpecHash not available within grace period")

// Runner executes one build-and-publish pass for a single FrontendIntegration.
type Runner struct {
	Client  client.Client
	Build   *buildservice.Client
	Log     logr.Logger
	limiter *ratelimit.Limiter
}

// New builds a Runner against the given Kubernetes client and build-service
// HTTP client.
func New(c client.Client, build *buildservice.Client, log logr.Logger) *Runner {
	return &Runner{Client: c, Build: build, Log: log, limiter: ratelimit.New(statusPollQPS, 1)}
}

// Run executes the full build workflow described by cfg: fetch, stale-check,
// render, submit, stale-check again, publish.
func (r *Runner) Run(ctx context.Context, cfg Config) error {
	fi, err := r.getFI(ctx, cfg.FIName)
	if err != nil {
		return err
	}

	computedSpecHash, err := hashutil.SerializableHash(fi.Spec)
	if err != nil {
		return fmt.Errorf("hash fi spec: %w", err)
	}
	if computedSpecHash != cfg.SpecHash {
		r.Log.Info("observed newer/different fi spec before build; skipping stale job",
			"fi", cfg.FIName, "expectedSpecHash", cfg.SpecHash, "actualSpecHash", computedSpecHash)
		return nil
	}

	rendered, err := manifest.Render(fi)
	if err != nil {
		return fmt.Errorf("render manifest: %w", err)
	}
	if err := manifest.Validate(rendered); err != nil {
		return fmt.Errorf("validate rendered manifest: %w", err)
	}

	manifestContent, manifestHash, err := hashutil.ManifestContentAndHash(rendered)
	if err != nil {
		return fmt.Errorf("hash rendered manifest: %w", err)
	}

	r.Log.Info("starting build", "fi", cfg.FIName, "specHash", cfg.SpecHash, "manifestHash", manifestHash)

	files, err := r.Build.BuildProject(ctx, manifestContent)
	if err != nil {
		return fmt.Errorf("build project: %w", err)
	}
	r.Log.Info("build artifacts fetched", "count", len(files))

	fi, stillCurrent, err := r.staleCheck(ctx, cfg)
	if err != nil {
		return err
	}
	if !stillCurrent {
		r.Log.Info("build became stale while the build service ran; exiting without publishing", "fi", cfg.FIName)
		return nil
	}

	bundleKey, bundleContent, err := selectBundleArtifact(cfg, files)
	if err != nil {
		return err
	}

	configMapName := naming.BoundedName(cfg.JSBundleName+"-config", 63)
	if err := r.upsertBundleConfigMap(ctx, cfg, fi, configMapName, bundleKey, bundleContent, manifestHash); err != nil {
		return err
	}
	if err := r.upsertJSBundle(ctx, cfg, configMapName, bundleKey, manifestHash); err != nil {
		return err
	}

	r.Log.Info("jsbundle upserted", "bundle", cfg.JSBundleName)
	return nil
}

func (r *Runner) getFI(ctx context.Context, name string) (*frontendforgev1alpha1.FrontendIntegration, error) {
	fi := &frontendforgev1alpha1.FrontendIntegration{}
	if err := r.Client.Get(ctx, client.ObjectKey{Name: name}, fi); err != nil {
		return nil, fmt.Errorf("get frontendintegration %s: %w", name, err)
	}
	return fi, nil
}

// staleCheck polls the FrontendIntegration's status until it reflects this
// build's spec hash (build still wanted), reflects a different hash (a
// newer build superseded this one; caller should exit quietly), or the
// grace period elapses with status never populated at all (an error, since
// that means the controller never recorded starting this build).
func (r *Runner) staleCheck(ctx context.Context, cfg Config) (*frontendforgev1alpha1.FrontendIntegration, bool, error) {
	deadline := time.Now().Add(cfg.StaleCheckGracePeriod)

	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, false, fmt.Errorf("rate limit wait: %w", err)
		}
		fi, err := r.getFI(ctx, cfg.FIName)
		if err != nil {
			return nil, false, err
		}

		observed := fi.Status.ObservedSpecHash
		if observed == "" {
			observed = fi.Status.ObservedManifestHash
		}

		switch {
		case observed != "" && observed == cfg.SpecHash:
			return fi, true, nil
		case observed != "":
			return nil, false, nil
		case time.Now().Before(deadline):
			select {
			case <-ctx.Done():
				return nil, false, ctx.Err()
			case <-time.After(cfg.StaleCheckPollInterval):
			}
		default:
			return nil, false, ErrStaleCheckTimeout
		}
	}
}

func (r *Runner) upsertBundleConfigMap(
	ctx context.Context,
	cfg Config,
	fi *frontendforgev1alpha1.FrontendIntegration,
	name, bundleKey, bundleContent, manifestHash string,
) error {
	desired := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: cfg.JSBundleConfigMapNamespace,
			Labels:    labels.ForBundle(cfg.FIName, cfg.SpecHash, manifestHash),
			Annotations: map[string]string{
				labels.AnnotationBuildJob:     os.Getenv("HOSTNAME"),
				labels.AnnotationManifestHash: manifestHash,
			},
		},
		Data: map[string]string{bundleKey: bundleContent},
	}
	if err := controllerutil.SetControllerReference(fi, desired, r.Client.Scheme()); err != nil {
		return fmt.Errorf("set owner reference on bundle configmap %s/%s: %w", cfg.JSBundleConfigMapNamespace, name, err)
	}

	existing := &corev1.ConfigMap{}
	err := r.Client.Get(ctx, client.ObjectKey{Name: name, Namespace: cfg.JSBundleConfigMapNamespace}, existing)
	switch {
	case apierrors.IsNotFound(err):
		if err := r.Client.Create(ctx, desired); err != nil {
			return fmt.Errorf("create bundle configmap %s/%s: %w", cfg.JSBundleConfigMapNamespace, name, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("get bundle configmap %s/%s: %w", cfg.JSBundleConfigMapNamespace, name, err)
	}

	existing.Data = desired.Data
	existing.Labels = desired.Labels
	existing.Annotations = desired.Annotations
	existing.OwnerReferences = desired.OwnerReferences
	if err := r.Client.Update(ctx, existing); err != nil {
		return fmt.Errorf("update bundle configmap %s/%s: %w", cfg.JSBundleConfigMapNamespace, name, err)
	}
	return nil
}

func (r *Runner) upsertJSBundle(ctx context.Context, cfg Config, configMapName, bundleKey, manifestHash string) error {
	desired := &extensionsv1alpha1.JSBundle{
		ObjectMeta: metav1.ObjectMeta{
			Name:   cfg.JSBundleName,
			Labels: labels.ForBundle(cfg.FIName, cfg.SpecHash, manifestHash),
			Annotations: map[string]string{
				labels.AnnotationBuildJob:     os.Getenv("HOSTNAME"),
				labels.AnnotationManifestHash: manifestHash,
			},
		},
		Spec: extensionsv1alpha1.JSBundleSpec{
			RawFrom: &extensionsv1alpha1.JSBundleRawFromSpec{
				ConfigMapKeyRef: &extensionsv1alpha1.JSBundleNamespacedKeyRef{
					Key:       bundleKey,
					Name:      configMapName,
					Namespace: cfg.JSBundleConfigMapNamespace,
				},
			},
		},
	}

	existing := &extensionsv1alpha1.JSBundle{}
	err := r.Client.Get(ctx, client.ObjectKey{Name: cfg.JSBundleName}, existing)
	switch {
	case apierrors.IsNotFound(err):
		if err := r.Client.Create(ctx, desired); err != nil {
			return fmt.Errorf("create jsbundle %s: %w", cfg.JSBundleName, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("get jsbundle %s: %w", cfg.JSBundleName, err)
	}

	existing.Spec = desired.Spec
	existing.Labels = desired.Labels
	existing.Annotations = desired.Annotations
	if err := r.Client.Update(ctx, existing); err != nil {
		return fmt.Errorf("update jsbundle %s: %w", cfg.JSBundleName, err)
	}
	return nil
}
