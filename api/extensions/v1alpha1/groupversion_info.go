// Package v1alpha1 contains API Schema definitions for the
// extensions.kubesphere.io v1alpha1 API group — specifically the JSBundle
// kind that the runner publishes built console extension bundles as.
// +kubebuilder:object:generate=true
// +groupName=extensions.kubesphere.io
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	GroupVersion  = schema.GroupVersion{Group: "extensions.kubesphere.io", Version: "v1alpha1"}
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}
	AddToScheme   = SchemeBuilder.AddToScheme
)
