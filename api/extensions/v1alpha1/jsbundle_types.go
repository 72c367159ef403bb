package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// JSBundleNamespacedKeyRef points at a single key inside a namespaced
// ConfigMap or Secret.
type JSBundleNamespacedKeyRef struct {
	// +kubebuilder:validation:Required
	Key string `json:"key"`
	// +kubebuilder:validation:Required
	Name string `json:"name"`
	// +kubebuilder:validation:Required
	Namespace string `json:"namespace"`
	// +optional
	Optional *bool `json:"optional,omitempty"`
}

// JSBundleRawFromSpec sources the bundle's JavaScript content from exactly
// one of a ConfigMap key, a Secret key, or a URL.
type JSBundleRawFromSpec struct {
	// +optional
	ConfigMapKeyRef *JSBundleNamespacedKeyRef `json:"configMapKeyRef,omitempty"`
	// +optional
	SecretKeyRef *JSBundleNamespacedKeyRef `json:"secretKeyRef,omitempty"`
	// +optional
	URL string `json:"url,omitempty"`
}

// JSBundleSpec defines the desired state of JSBundle.
type JSBundleSpec struct {
	// Raw embeds the bundle's JavaScript content directly.
	// +optional
	Raw string `json:"raw,omitempty"`
	// +optional
	RawFrom *JSBundleRawFromSpec `json:"rawFrom,omitempty"`
}

// JSBundleStatus defines the observed state of JSBundle.
type JSBundleStatus struct {
	// +optional
	State string `json:"state,omitempty"`
	// +optional
	Link string `json:"link,omitempty"`
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Cluster
// +kubebuilder:printcolumn:name="State",type=string,JSONPath=`.status.state`

// JSBundle is the Schema for the jsbundles API.
type JSBundle struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   JSBundleSpec   `json:"spec,omitempty"`
	Status JSBundleStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// JSBundleList contains a list of JSBundle.
type JSBundleList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []JSBundle `json:"items"`
}

func init() {
	SchemeBuilder.Register(&JSBundle{}, &JSBundleList{})
}

func (in *JSBundleNamespacedKeyRef) DeepCopyInto(out *JSBundleNamespacedKeyRef) {
	*out = *in
	if in.Optional != nil {
		v := *in.Optional
		out.Optional = &v
	}
}

func (in *JSBundleNamespacedKeyRef) DeepCopy() *JSBundleNamespacedKeyRef {
	if in == nil {
		return nil
	}
	out := new(JSBundleNamespacedKeyRef)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundleRawFromSpec) DeepCopyInto(out *JSBundleRawFromSpec) {
	*out = *in
	if in.ConfigMapKeyRef != nil {
		out.ConfigMapKeyRef = in.ConfigMapKeyRef.DeepCopy()
	}
	if in.SecretKeyRef != nil {
		out.SecretKeyRef = in.SecretKeyRef.DeepCopy()
	}
}

func (in *JSBundleRawFromSpec) DeepCopy() *JSBundleRawFromSpec {
	if in == nil {
		return nil
	}
	out := new(JSBundleRawFromSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundleSpec) DeepCopyInto(out *JSBundleSpec) {
	*out = *in
	if in.RawFrom != nil {
		out.RawFrom = in.RawFrom.DeepCopy()
	}
}

func (in *JSBundleSpec) DeepCopy() *JSBundleSpec {
	if in == nil {
		return nil
	}
	out := new(JSBundleSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundleStatus) DeepCopyInto(out *JSBundleStatus) {
	*out = *in
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		copy(out.Conditions, in.Conditions)
	}
}

func (in *JSBundleStatus) DeepCopy() *JSBundleStatus {
	if in == nil {
		return nil
	}
	out := new(JSBundleStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundle) DeepCopyInto(out *JSBundle) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

func (in *JSBundle) DeepCopy() *JSBundle {
	if in == nil {
		return nil
	}
	out := new(JSBundle)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundle) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *JSBundleList) DeepCopyInto(out *JSBundleList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]JSBundle, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *JSBundleList) DeepCopy() *JSBundleList {
	if in == nil {
		return nil
	}
	out := new(JSBundleList)
	in.DeepCopyInto(out)
	return out
}

func (in *JSBundleList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
