package manifest

import (
	"fmt"

	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
)

// Render produces the console extension manifest for fi, dispatching on
// spec.builder.engineVersion. An unset engine version defaults to "v1", as
// do the "v1alpha1", "1" and "1.0" aliases some older FrontendIntegration
// authors still use.
func Render(fi *frontendforgev1alpha1.FrontendIntegration) (*Manifest, error) {
	version := engineVersion(fi)
	switch version {
	case "v1", "v1alpha1", "1", "1.0", "":
		return renderV1(fi)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEngineVersion, version)
	}
}

func engineVersion(fi *frontendforgev1alpha1.FrontendIntegration) string {
	if fi.Spec.Builder == nil {
		return "v1"
	}
	if fi.Spec.Builder.EngineVersion == "" {
		return "v1"
	}
	return fi.Spec.Builder.EngineVersion
}
