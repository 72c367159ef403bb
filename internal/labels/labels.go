// Package labels defines the label and annotation keys/values stamped onto
// every object the operator creates, and a small helper for building a
// selector to find the job/secret/configmap belonging to a given
// FrontendIntegration at a given spec hash.
package labels

import (
	"k8s.io/apimachinery/pkg/labels"

	"github.com/frontend-forge/frontend-forge/internal/hashutil"
)

const (
	ManagedBy    = "frontend-forge.io/managed-by"
	FIName       = "frontend-forge.io/fi-name"
	SpecHash     = "frontend-forge.io/spec-hash"
	ManifestHash = "frontend-forge.io/manifest-hash"
	BuildKind    = "frontend-forge.io/build-kind"

	AnnotationBuildJob           = "frontend-forge.io/build-job"
	AnnotationObservedGeneration = "frontend-forge.io/observed-generation"
	AnnotationManifestHash       = "frontend-forge.io/manifest-hash"

	ManagedByValue = "frontend-forge-builder-controller"
	BuildKindValue = "frontend-forge"
)

// ForBuild returns the label set stamped on a build Job/Secret pair: who
// manages it, which FI it belongs to, and which spec hash it was built for
// (DNS-safe, so the "sha256:" prefix is stripped).
func ForBuild(fiName, specHash string) map[string]string {
	return map[string]string{
		ManagedBy: ManagedByValue,
		BuildKind: BuildKindValue,
		FIName:    fiName,
		SpecHash:  hashutil.StripPrefix(specHash),
	}
}

// ForBundle returns the label set stamped on the published ConfigMap/JSBundle:
// the controller's spec hash (so the controller can confirm a bundle was
// built for its current spec) alongside the runner's own manifest hash.
func ForBundle(fiName, specHash, manifestHash string) map[string]string {
	return map[string]string{
		ManagedBy:    ManagedByValue,
		BuildKind:    BuildKindValue,
		FIName:       fiName,
		SpecHash:     hashutil.StripPrefix(specHash),
		ManifestHash: hashutil.StripPrefix(manifestHash),
	}
}

// SelectorForBuild returns a label selector matching every Job/Secret
// created for the given (fiName, specHash) pair, used to adopt an existing
// child instead of creating a duplicate.
func SelectorForBuild(fiName, specHash string) labels.Selector {
	return labels.SelectorFromValidatedSet(ForBuild(fiName, specHash))
}
