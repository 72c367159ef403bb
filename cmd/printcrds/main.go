// Command printcrds renders the CustomResourceDefinition manifests for
// FrontendIntegration and JSBundle to stdout, separated by "---", so they can
// be piped straight into `kubectl apply -f -` or embedded in a Helm chart
// without depending on a generator running at image-build time.
package main

import (
	"fmt"
	"os"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

func preserveUnknownFieldsSchema() apiextensionsv1.JSONSchemaProps {
	t := true
	return apiextensionsv1.JSONSchemaProps{
		Type:                   "object",
		XPreserveUnknownFields: &t,
	}
}

func frontendIntegrationCRD() *apiextensionsv1.CustomResourceDefinition {
	return &apiextensionsv1.CustomResourceDefinition{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apiextensions.k8s.io/v1",
			Kind:       "CustomResourceDefinition",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: "frontendintegrations.frontend-forge.io",
		},
		Spec: apiextensionsv1.CustomResourceDefinitionSpec{
			Group: "frontend-forge.io",
			Names: apiextensionsv1.CustomResourceDefinitionNames{
				Kind:     "FrontendIntegration",
				ListKind: "FrontendIntegrationList",
				Plural:   "frontendintegrations",
				Singular: "frontendintegration",
				ShortNames: []string{
					"fi",
				},
			},
			Scope: apiextensionsv1.ClusterScoped,
			Versions: []apiextensionsv1.CustomResourceDefinitionVersion{
				{
					Name:    "v1alpha1",
					Served:  true,
					Storage: true,
					Subresources: &apiextensionsv1.CustomResourceSubresources{
						Status: &apiextensionsv1.CustomResourceSubresourceStatus{},
					},
					AdditionalPrinterColumns: []apiextensionsv1.CustomResourceColumnDefinition{
						{Name: "Phase", Type: "string", JSONPath: ".status.phase"},
						{Name: "Bundle", Type: "string", JSONPath: ".status.bundleRef.name"},
						{Name: "Age", Type: "date", JSONPath: ".metadata.creationTimestamp"},
					},
					Schema: &apiextensionsv1.CustomResourceValidation{
						OpenAPIV3Schema: &apiextensionsv1.JSONSchemaProps{
							Type: "object",
							Properties: map[string]apiextensionsv1.JSONSchemaProps{
								"spec":   preserveUnknownFieldsSchema(),
								"status": preserveUnknownFieldsSchema(),
							},
						},
					},
				},
			},
		},
	}
}

func jsBundleCRD() *apiextensionsv1.CustomResourceDefinition {
	return &apiextensionsv1.CustomResourceDefinition{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apiextensions.k8s.io/v1",
			Kind:       "CustomResourceDefinition",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name: "jsbundles.extensions.kubesphere.io",
		},
		Spec: apiextensionsv1.CustomResourceDefinitionSpec{
			Group: "extensions.kubesphere.io",
			Names: apiextensionsv1.CustomResourceDefinitionNames{
				Kind:     "JSBundle",
				ListKind: "JSBundleList",
				Plural:   "jsbundles",
				Singular: "jsbundle",
			},
			Scope: apiextensionsv1.ClusterScoped,
			Versions: []apiextensionsv1.CustomResourceDefinitionVersion{
				{
					Name:    "v1alpha1",
					Served:  true,
					Storage: true,
					Subresources: &apiextensionsv1.CustomResourceSubresources{
						Status: &apiextensionsv1.CustomResourceSubresourceStatus{},
					},
					AdditionalPrinterColumns: []apiextensionsv1.CustomResourceColumnDefinition{
						{Name: "State", Type: "string", JSONPath: ".status.state"},
					},
					Schema: &apiextensionsv1.CustomResourceValidation{
						OpenAPIV3Schema: &apiextensionsv1.JSONSchemaProps{
							Type: "object",
							Properties: map[string]apiextensionsv1.JSONSchemaProps{
								"spec":   preserveUnknownFieldsSchema(),
								"status": preserveUnknownFieldsSchema(),
							},
						},
					},
				},
			},
		},
	}
}

func printCRD(crd *apiextensionsv1.CustomResourceDefinition) error {
	out, err := yaml.Marshal(crd)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", crd.Name, err)
	}
	fmt.Printf("%s---\n", out)
	return nil
}

func main() {
	for _, crd := range []*apiextensionsv1.CustomResourceDefinition{
		frontendIntegrationCRD(),
		jsBundleCRD(),
	} {
		if err := printCRD(crd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
