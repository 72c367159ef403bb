package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// IntegrationType selects which shape of console extension an integration renders.
type IntegrationType string

const (
	IntegrationTypeCRD    IntegrationType = "crd"
	IntegrationTypeIframe IntegrationType = "iframe"
)

// CRDScope mirrors the Kubernetes CRD scope of the integrated resource.
type CRDScope string

const (
	CRDScopeNamespaced CRDScope = "Namespaced"
	CRDScopeCluster    CRDScope = "Cluster"
)

// MenuPlacement is where in the console navigation an integration's menu
// entry appears.
type MenuPlacement string

const (
	MenuPlacementGlobal    MenuPlacement = "global"
	MenuPlacementWorkspace MenuPlacement = "workspace"
	MenuPlacementCluster   MenuPlacement = "cluster"
)

// ColumnRenderType is the display kind for a list column.
type ColumnRenderType string

const (
	ColumnRenderText ColumnRenderType = "text"
	ColumnRenderTime ColumnRenderType = "time"
	ColumnRenderLink ColumnRenderType = "link"
)

// FrontendIntegrationPhase is the coarse-grained build lifecycle state.
type FrontendIntegrationPhase string

const (
	PhasePending   FrontendIntegrationPhase = "Pending"
	PhaseBuilding  FrontendIntegrationPhase = "Building"
	PhaseSucceeded FrontendIntegrationPhase = "Succeeded"
	PhaseFailed    FrontendIntegrationPhase = "Failed"
)

// CRDNamesSpec names the Kubernetes kind/plural backing a crd-shaped
// integration.
type CRDNamesSpec struct {
	// +kubebuilder:validation:Required
	Kind string `json:"kind"`
	// +kubebuilder:validation:Required
	Plural string `json:"plural"`
}

// CRDIntegrationSpec configures a list/detail page backed by a Kubernetes CRD.
type CRDIntegrationSpec struct {
	// +kubebuilder:validation:Required
	Names CRDNamesSpec `json:"names"`
	// +kubebuilder:validation:Required
	Group string `json:"group"`
	// +kubebuilder:validation:Required
	Version string `json:"version"`
	// +optional
	AuthKey string `json:"authKey,omitempty"`
	// +kubebuilder:default=Namespaced
	// +optional
	Scope CRDScope `json:"scope,omitempty"`
	// +optional
	Columns []ColumnSpec `json:"columns,omitempty"`
}

// IframeIntegrationSpec configures a page that simply embeds an external URL.
type IframeIntegrationSpec struct {
	// +kubebuilder:validation:Required
	Src string `json:"src"`
}

// IntegrationMenuSpec overrides the navigation label used for this
// integration specifically (as opposed to MenuSpec.Name, which is the
// overall extension's menu group name).
type IntegrationMenuSpec struct {
	// +optional
	Name string `json:"name,omitempty"`
}

// IntegrationSpec selects and configures one of the supported integration
// shapes.
type IntegrationSpec struct {
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Enum=crd;iframe
	Type IntegrationType `json:"type"`
	// +optional
	CRD *CRDIntegrationSpec `json:"crd,omitempty"`
	// +optional
	Iframe *IframeIntegrationSpec `json:"iframe,omitempty"`
	// +optional
	Menu *IntegrationMenuSpec `json:"menu,omitempty"`
}

// RoutingSpec configures the console route this extension is mounted at.
type RoutingSpec struct {
	// +kubebuilder:validation:Required
	Path string `json:"path"`
}

// ColumnRenderSpec configures how a single list column's cell is rendered.
type ColumnRenderSpec struct {
	// +kubebuilder:validation:Required
	// +kubebuilder:validation:Enum=text;time;link
	Type ColumnRenderType `json:"type"`
	// +kubebuilder:validation:Required
	Path string `json:"path"`
	// +optional
	Format string `json:"format,omitempty"`
	// +optional
	Pattern string `json:"pattern,omitempty"`
	// +optional
	Link string `json:"link,omitempty"`
	// +optional
	Payload map[string]string `json:"payload,omitempty"`
}

// ColumnSpec describes a single list-view column.
type ColumnSpec struct {
	// +kubebuilder:validation:Required
	Key string `json:"key"`
	// +kubebuilder:validation:Required
	Title string `json:"title"`
	// +kubebuilder:validation:Required
	Render ColumnRenderSpec `json:"render"`
	// +optional
	EnableSorting *bool `json:"enableSorting,omitempty"`
	// +optional
	EnableHiding *bool `json:"enableHiding,omitempty"`
}

// MenuSpec configures the navigation entry for this extension.
type MenuSpec struct {
	// +optional
	Name string `json:"name,omitempty"`
	// +optional
	Placements []MenuPlacement `json:"placements,omitempty"`
}

// BuilderSpec pins the manifest-rendering engine version.
type BuilderSpec struct {
	// +kubebuilder:default="v1"
	// +optional
	EngineVersion string `json:"engineVersion,omitempty"`
}

// FrontendIntegrationSpec defines the desired state of FrontendIntegration.
type FrontendIntegrationSpec struct {
	// +optional
	DisplayName string `json:"displayName,omitempty"`

	// Enabled gates whether the controller drives any builds for this
	// integration at all. Defaults to true.
	// +optional
	Enabled *bool `json:"enabled,omitempty"`

	// +kubebuilder:validation:Required
	Integration IntegrationSpec `json:"integration"`

	// +kubebuilder:validation:Required
	Routing RoutingSpec `json:"routing"`

	// +optional
	Columns []ColumnSpec `json:"columns,omitempty"`

	// +optional
	Menu *MenuSpec `json:"menu,omitempty"`

	// +optional
	Builder *BuilderSpec `json:"builder,omitempty"`

	// BundleName overrides the derived JSBundle/ConfigMap name.
	// +optional
	BundleName string `json:"bundleName,omitempty"`

	// ForceRebuildToken forces a rebuild when bumped, even if the rest of
	// the spec is unchanged (e.g. to pick up an updated base image).
	// +optional
	ForceRebuildToken string `json:"forceRebuildToken,omitempty"`
}

// IsEnabled reports whether builds should be driven for this integration,
// defaulting to true when unset.
func (s FrontendIntegrationSpec) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// ResourceRef is a lightweight pointer to a same-or-other-namespace object.
type ResourceRef struct {
	Name string `json:"name"`
	// +optional
	Namespace string `json:"namespace,omitempty"`
	// +optional
	UID string `json:"uid,omitempty"`
}

// ActiveBuildStatus tracks the build Job currently driving a rebuild.
type ActiveBuildStatus struct {
	// +optional
	JobRef *ResourceRef `json:"jobRef,omitempty"`
	// +optional
	StartedAt *metav1.Time `json:"startedAt,omitempty"`
}

// FrontendIntegrationStatus defines the observed state of FrontendIntegration.
type FrontendIntegrationStatus struct {
	// +optional
	Phase FrontendIntegrationPhase `json:"phase,omitempty"`

	// ObservedSpecHash is the canonical hash of spec that the currently
	// active/last build was launched for.
	// +optional
	ObservedSpecHash string `json:"observedSpecHash,omitempty"`

	// ObservedManifestHash is a legacy field retained for rollback
	// compatibility with controllers that predate ObservedSpecHash; it is
	// read as a fallback but never written by this controller.
	// +optional
	ObservedManifestHash string `json:"observedManifestHash,omitempty"`

	// ObservedForceRebuildToken is a legacy field retained for rollback
	// compatibility; superseded by comparing ObservedSpecHash.
	// +optional
	ObservedForceRebuildToken string `json:"observedForceRebuildToken,omitempty"`

	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// +optional
	ActiveBuild *ActiveBuildStatus `json:"activeBuild,omitempty"`

	// +optional
	BundleRef *ResourceRef `json:"bundleRef,omitempty"`

	// +optional
	Message string `json:"message,omitempty"`

	// +optional
	// +patchMergeKey=type
	// +patchStrategy=merge
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Cluster,shortName=fi
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Bundle",type=string,JSONPath=`.status.bundleRef.name`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// FrontendIntegration is the Schema for the frontendintegrations API.
type FrontendIntegration struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   FrontendIntegrationSpec   `json:"spec,omitempty"`
	Status FrontendIntegrationStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// FrontendIntegrationList contains a list of FrontendIntegration.
type FrontendIntegrationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []FrontendIntegration `json:"items"`
}

func init() {
	SchemeBuilder.Register(&FrontendIntegration{}, &FrontendIntegrationList{})
}
