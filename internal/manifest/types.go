// Package manifest renders a FrontendIntegration into the console extension
// manifest consumed by the build service: route/menu/page declarations for
// every configured placement. Pages are keyed by a page ID derived from the
// integration name and the placement, so each placement gets its own page
// definition.
package manifest

import "errors"

var (
	// ErrUnsupportedEngineVersion is returned when spec.builder.engineVersion
	// names a renderer this binary doesn't implement.
	ErrUnsupportedEngineVersion = errors.New("unsupported manifest engine version")

	// ErrInvalidRoutingPath is returned when spec.routing.path is empty or
	// starts with a leading slash (the renderer composes routes as the
	// placement's prefix, then "/", then this path).
	ErrInvalidRoutingPath = errors.New("invalid routing path")

	// ErrMissingCRDColumns is returned when a crd-shaped integration has no
	// columns configured, at either the crd or the top-level spec.
	ErrMissingCRDColumns = errors.New("crd integration has no columns configured")

	// ErrInvalidIntegrationShape is returned when spec.integration.type
	// doesn't carry the config its type requires (e.g. "iframe" without
	// spec.integration.iframe.src).
	ErrInvalidIntegrationShape = errors.New("invalid integration shape")
)

// Manifest is the root of a rendered console extension manifest.
type Manifest struct {
	Version     string        `json:"version"`
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName,omitempty"`
	Description string        `json:"description,omitempty"`
	Routes      []Route       `json:"routes"`
	Menus       []Menu        `json:"menus"`
	Locales     []interface{} `json:"locales"`
	Pages       []Page        `json:"pages"`
	Build       BuildInfo     `json:"build"`
}

// Route binds a console URL path to a page, at one menu placement.
type Route struct {
	Path      string `json:"path"`
	PageID    string `json:"pageId"`
	Placement string `json:"placement"`
}

// Menu is the navigation entry for a route.
type Menu struct {
	Placement string `json:"placement"`
	Name      string `json:"name"`
	PageID    string `json:"pageId"`
}

// Page is a single renderable page: an entry component id plus the
// component tree the console mounts at that id.
type Page struct {
	ID             string         `json:"id"`
	EntryComponent string         `json:"entryComponent"`
	ComponentsTree ComponentsTree `json:"componentsTree"`
}

// PageMeta is the component tree's page-level metadata.
type PageMeta struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// ComponentsTree describes a page's data sources and root UI node. Iframe
// pages carry no DataSources; CRD pages drive their root node's props off
// two data sources (columns, pageState) via bindings.
type ComponentsTree struct {
	Meta        PageMeta               `json:"meta"`
	Context     map[string]interface{} `json:"context"`
	DataSources []DataSource           `json:"dataSources,omitempty"`
	Root        Node                   `json:"root"`
}

// DataSource is one named data provider a page's root node can bind to.
type DataSource struct {
	ID     string                 `json:"id"`
	Type   string                 `json:"type"`
	Args   []Binding              `json:"args,omitempty"`
	Config map[string]interface{} `json:"config"`
}

// Binding points a prop at a value produced by a named data source.
type Binding struct {
	Type   string `json:"type"`
	Source string `json:"source"`
	Bind   string `json:"bind"`
}

// Node is a page's root UI component: an Iframe embed or a CrdTable bound to
// the page's data sources.
type Node struct {
	ID    string                 `json:"id"`
	Type  string                 `json:"type"`
	Props map[string]interface{} `json:"props"`
	Meta  NodeMeta               `json:"meta"`
}

// NodeMeta is the node-level display metadata the console reads before the
// node itself mounts.
type NodeMeta struct {
	Title string `json:"title"`
	Scope bool   `json:"scope"`
}

// RenderedColumn is a fully-resolved list column, with format/pattern/link
// merged into render.payload.
type RenderedColumn struct {
	Key           string               `json:"key"`
	Title         string               `json:"title"`
	Render        RenderedColumnRender `json:"render"`
	EnableSorting bool                 `json:"enableSorting"`
	EnableHiding  bool                 `json:"enableHiding"`
}

// RenderedColumnRender is the resolved render descriptor for one column.
type RenderedColumnRender struct {
	Type    string                 `json:"type"`
	Path    string                 `json:"path"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// BuildInfo tells the build service which bundler target to produce.
type BuildInfo struct {
	Target     string `json:"target"`
	ModuleName string `json:"moduleName"`
	SystemJS   bool   `json:"systemjs"`
}
