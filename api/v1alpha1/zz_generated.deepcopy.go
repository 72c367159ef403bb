// Code generated by the DeepCopy helper below; hand-maintained in lieu of
// running controller-gen in this environment. Keep in sync with
// frontendintegration_types.go.

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	runtime "k8s.io/apimachinery/pkg/runtime"
)

// metav1.Condition has no pointer fields of consequence (LastTransitionTime
// wraps a plain time.Time), so a value copy is already a deep copy.

// DeepCopyInto copies the receiver into out.
func (in *CRDNamesSpec) DeepCopyInto(out *CRDNamesSpec) {
	*out = *in
}

// DeepCopy returns a deep copy of the receiver.
func (in *CRDNamesSpec) DeepCopy() *CRDNamesSpec {
	if in == nil {
		return nil
	}
	out := new(CRDNamesSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *CRDIntegrationSpec) DeepCopyInto(out *CRDIntegrationSpec) {
	*out = *in
	out.Names = in.Names
	if in.Columns != nil {
		out.Columns = make([]ColumnSpec, len(in.Columns))
		for i := range in.Columns {
			in.Columns[i].DeepCopyInto(&out.Columns[i])
		}
	}
}

func (in *CRDIntegrationSpec) DeepCopy() *CRDIntegrationSpec {
	if in == nil {
		return nil
	}
	out := new(CRDIntegrationSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *IframeIntegrationSpec) DeepCopyInto(out *IframeIntegrationSpec) {
	*out = *in
}

func (in *IframeIntegrationSpec) DeepCopy() *IframeIntegrationSpec {
	if in == nil {
		return nil
	}
	out := new(IframeIntegrationSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *IntegrationMenuSpec) DeepCopyInto(out *IntegrationMenuSpec) {
	*out = *in
}

func (in *IntegrationMenuSpec) DeepCopy() *IntegrationMenuSpec {
	if in == nil {
		return nil
	}
	out := new(IntegrationMenuSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *IntegrationSpec) DeepCopyInto(out *IntegrationSpec) {
	*out = *in
	if in.CRD != nil {
		out.CRD = in.CRD.DeepCopy()
	}
	if in.Iframe != nil {
		out.Iframe = in.Iframe.DeepCopy()
	}
	if in.Menu != nil {
		out.Menu = in.Menu.DeepCopy()
	}
}

func (in *IntegrationSpec) DeepCopy() *IntegrationSpec {
	if in == nil {
		return nil
	}
	out := new(IntegrationSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *RoutingSpec) DeepCopyInto(out *RoutingSpec) {
	*out = *in
}

func (in *RoutingSpec) DeepCopy() *RoutingSpec {
	if in == nil {
		return nil
	}
	out := new(RoutingSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ColumnRenderSpec) DeepCopyInto(out *ColumnRenderSpec) {
	*out = *in
	if in.Payload != nil {
		out.Payload = make(map[string]string, len(in.Payload))
		for k, v := range in.Payload {
			out.Payload[k] = v
		}
	}
}

func (in *ColumnRenderSpec) DeepCopy() *ColumnRenderSpec {
	if in == nil {
		return nil
	}
	out := new(ColumnRenderSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ColumnSpec) DeepCopyInto(out *ColumnSpec) {
	*out = *in
	in.Render.DeepCopyInto(&out.Render)
	if in.EnableSorting != nil {
		v := *in.EnableSorting
		out.EnableSorting = &v
	}
	if in.EnableHiding != nil {
		v := *in.EnableHiding
		out.EnableHiding = &v
	}
}

func (in *ColumnSpec) DeepCopy() *ColumnSpec {
	if in == nil {
		return nil
	}
	out := new(ColumnSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *MenuSpec) DeepCopyInto(out *MenuSpec) {
	*out = *in
	if in.Placements != nil {
		out.Placements = make([]MenuPlacement, len(in.Placements))
		copy(out.Placements, in.Placements)
	}
}

func (in *MenuSpec) DeepCopy() *MenuSpec {
	if in == nil {
		return nil
	}
	out := new(MenuSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *BuilderSpec) DeepCopyInto(out *BuilderSpec) {
	*out = *in
}

func (in *BuilderSpec) DeepCopy() *BuilderSpec {
	if in == nil {
		return nil
	}
	out := new(BuilderSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *FrontendIntegrationSpec) DeepCopyInto(out *FrontendIntegrationSpec) {
	*out = *in
	if in.Enabled != nil {
		v := *in.Enabled
		out.Enabled = &v
	}
	in.Integration.DeepCopyInto(&out.Integration)
	out.Routing = in.Routing
	if in.Columns != nil {
		out.Columns = make([]ColumnSpec, len(in.Columns))
		for i := range in.Columns {
			in.Columns[i].DeepCopyInto(&out.Columns[i])
		}
	}
	if in.Menu != nil {
		out.Menu = in.Menu.DeepCopy()
	}
	if in.Builder != nil {
		out.Builder = in.Builder.DeepCopy()
	}
}

func (in *FrontendIntegrationSpec) DeepCopy() *FrontendIntegrationSpec {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegrationSpec)
	in.DeepCopyInto(out)
	return out
}

func (in *ResourceRef) DeepCopyInto(out *ResourceRef) {
	*out = *in
}

func (in *ResourceRef) DeepCopy() *ResourceRef {
	if in == nil {
		return nil
	}
	out := new(ResourceRef)
	in.DeepCopyInto(out)
	return out
}

func (in *ActiveBuildStatus) DeepCopyInto(out *ActiveBuildStatus) {
	*out = *in
	if in.JobRef != nil {
		out.JobRef = in.JobRef.DeepCopy()
	}
	if in.StartedAt != nil {
		v := in.StartedAt.DeepCopy()
		out.StartedAt = &v
	}
}

func (in *ActiveBuildStatus) DeepCopy() *ActiveBuildStatus {
	if in == nil {
		return nil
	}
	out := new(ActiveBuildStatus)
	in.DeepCopyInto(out)
	return out
}

func (in *FrontendIntegrationStatus) DeepCopyInto(out *FrontendIntegrationStatus) {
	*out = *in
	if in.ActiveBuild != nil {
		out.ActiveBuild = in.ActiveBuild.DeepCopy()
	}
	if in.BundleRef != nil {
		out.BundleRef = in.BundleRef.DeepCopy()
	}
	if in.Conditions != nil {
		out.Conditions = make([]metav1.Condition, len(in.Conditions))
		copy(out.Conditions, in.Conditions)
	}
}

func (in *FrontendIntegrationStatus) DeepCopy() *FrontendIntegrationStatus {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegrationStatus)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyInto copies the receiver into out.
func (in *FrontendIntegration) DeepCopyInto(out *FrontendIntegration) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ObjectMeta.DeepCopyInto(&out.ObjectMeta)
	in.Spec.DeepCopyInto(&out.Spec)
	in.Status.DeepCopyInto(&out.Status)
}

// DeepCopy returns a deep copy of the receiver.
func (in *FrontendIntegration) DeepCopy() *FrontendIntegration {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegration)
	in.DeepCopyInto(out)
	return out
}

// DeepCopyObject implements runtime.Object.
func (in *FrontendIntegration) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}

func (in *FrontendIntegrationList) DeepCopyInto(out *FrontendIntegrationList) {
	*out = *in
	out.TypeMeta = in.TypeMeta
	in.ListMeta.DeepCopyInto(&out.ListMeta)
	if in.Items != nil {
		out.Items = make([]FrontendIntegration, len(in.Items))
		for i := range in.Items {
			in.Items[i].DeepCopyInto(&out.Items[i])
		}
	}
}

func (in *FrontendIntegrationList) DeepCopy() *FrontendIntegrationList {
	if in == nil {
		return nil
	}
	out := new(FrontendIntegrationList)
	in.DeepCopyInto(out)
	return out
}

func (in *FrontendIntegrationList) DeepCopyObject() runtime.Object {
	if c := in.DeepCopy(); c != nil {
		return c
	}
	return nil
}
