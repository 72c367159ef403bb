package manifest

import (
	"fmt"
	"strings"

	frontendforgev1alpha1 "github.com/frontend-forge/frontend-forge/api/v1alpha1"
	"github.com/frontend-forge/frontend-forge/internal/naming"
	"github.com/frontend-forge/frontend-forge/internal/validation"
)

const descriptionAnnotation = "kubesphere.io/description"

// renderV1 is the only renderer registered today. It produces one route per
// effective menu placement, one menu entry per placement when spec.menu is
// configured at all, and one page per distinct placement (iframe
// integrations render identically everywhere, so in practice every
// placement shares the same page body; the split still keeps route/page/menu
// ids stable if a future engine renders placements differently).
func renderV1(fi *frontendforgev1alpha1.FrontendIntegration) (*Manifest, error) {
	path := strings.TrimSpace(fi.Spec.Routing.Path)
	if path == "" || strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoutingPath, fi.Spec.Routing.Path)
	}

	placements := effectivePlacements(fi.Spec.Menu)
	displayName := resolveDisplayName(fi)
	menuName := menuDisplayName(fi)

	routes := make([]Route, 0, len(placements))
	menus := make([]Menu, 0, len(placements))
	pages := make([]Page, 0, len(placements))
	rendered := make(map[string]bool, len(placements))

	for _, placement := range placements {
		pid := pageID(fi.Name, placement)

		routes = append(routes, Route{
			Path:      routePrefix(placement) + "/" + path,
			PageID:    pid,
			Placement: string(placement),
		})
		if fi.Spec.Menu != nil {
			menus = append(menus, Menu{
				Placement: string(placement),
				Name:      menuName,
				PageID:    pid,
			})
		}

		if rendered[pid] {
			continue
		}
		page, err := renderPage(fi, pid, placement, displayName)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *page)
		rendered[pid] = true
	}

	return &Manifest{
		Version:     "1.0",
		Name:        fi.Name,
		DisplayName: displayName,
		Description: fi.Annotations[descriptionAnnotation],
		Routes:      routes,
		Menus:       menus,
		Locales:     []interface{}{},
		Pages:       pages,
		Build: BuildInfo{
			Target:     "kubesphere-extension",
			ModuleName: fi.Name,
			SystemJS:   true,
		},
	}, nil
}

// resolveDisplayName falls back to the FI's own name when spec.displayName
// is unset, so pages and the top-level manifest always have a title.
func resolveDisplayName(fi *frontendforgev1alpha1.FrontendIntegration) string {
	if fi.Spec.DisplayName != "" {
		return fi.Spec.DisplayName
	}
	return fi.Name
}

// effectivePlacements defaults to a single global navigation entry when the
// integration doesn't configure spec.menu.placements.
func effectivePlacements(menu *frontendforgev1alpha1.MenuSpec) []frontendforgev1alpha1.MenuPlacement {
	if menu == nil || len(menu.Placements) == 0 {
		return []frontendforgev1alpha1.MenuPlacement{frontendforgev1alpha1.MenuPlacementGlobal}
	}
	return menu.Placements
}

func routePrefix(placement frontendforgev1alpha1.MenuPlacement) string {
	switch placement {
	case frontendforgev1alpha1.MenuPlacementWorkspace:
		return "/workspaces/:workspace"
	case frontendforgev1alpha1.MenuPlacementCluster:
		return "/clusters/:cluster"
	default:
		return ""
	}
}

func pageID(fiName string, placement frontendforgev1alpha1.MenuPlacement) string {
	return naming.BoundedName(fiName+"-"+string(placement), 63)
}

// menuDisplayName resolves the navigation label: an integration-specific
// override wins, then the extension-wide menu name, then displayName.
func menuDisplayName(fi *frontendforgev1alpha1.FrontendIntegration) string {
	if fi.Spec.Integration.Menu != nil && fi.Spec.Integration.Menu.Name != "" {
		return fi.Spec.Integration.Menu.Name
	}
	if fi.Spec.Menu != nil && fi.Spec.Menu.Name != "" {
		return fi.Spec.Menu.Name
	}
	return fi.Spec.DisplayName
}

func pageMeta(id, title string) PageMeta {
	return PageMeta{ID: id, Name: id, Title: title, Path: "/" + id}
}

func renderPage(fi *frontendforgev1alpha1.FrontendIntegration, id string, placement frontendforgev1alpha1.MenuPlacement, displayName string) (*Page, error) {
	switch fi.Spec.Integration.Type {
	case frontendforgev1alpha1.IntegrationTypeIframe:
		return renderIframePage(fi, id, displayName)
	case frontendforgev1alpha1.IntegrationTypeCRD:
		return renderCRDPage(fi, id, placement, displayName)
	default:
		return nil, fmt.Errorf("%w: unknown integration type %q", ErrInvalidIntegrationShape, fi.Spec.Integration.Type)
	}
}

func renderIframePage(fi *frontendforgev1alpha1.FrontendIntegration, id, displayName string) (*Page, error) {
	iframe := fi.Spec.Integration.Iframe
	if iframe == nil || strings.TrimSpace(iframe.Src) == "" {
		return nil, fmt.Errorf("%w: iframe integration missing src", ErrInvalidIntegrationShape)
	}
	if err := validation.ValidateIframeSrc(iframe.Src); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidIntegrationShape, err)
	}

	return &Page{
		ID:             id,
		EntryComponent: id,
		ComponentsTree: ComponentsTree{
			Meta:    pageMeta(id, displayName),
			Context: map[string]interface{}{},
			Root: Node{
				ID:   id + "-root",
				Type: "Iframe",
				Props: map[string]interface{}{
					"FRAME_URL": iframe.Src,
				},
				Meta: NodeMeta{Title: "Iframe", Scope: true},
			},
		},
	}, nil
}

func renderCRDPage(fi *frontendforgev1alpha1.FrontendIntegration, id string, placement frontendforgev1alpha1.MenuPlacement, displayName string) (*Page, error) {
	crd := fi.Spec.Integration.CRD
	if crd == nil {
		return nil, fmt.Errorf("%w: crd integration missing crd config", ErrInvalidIntegrationShape)
	}

	columns := fi.Spec.Columns
	if len(columns) == 0 {
		columns = crd.Columns
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrMissingCRDColumns, crd.Group, crd.Names.Kind)
	}

	columnsConfig := transformColumns(columns)

	return &Page{
		ID:             id,
		EntryComponent: id,
		ComponentsTree: ComponentsTree{
			Meta:    pageMeta(id, displayName),
			Context: map[string]interface{}{},
			DataSources: []DataSource{
				{
					ID:   "columns",
					Type: "crd-columns",
					Config: map[string]interface{}{
						"COLUMNS_CONFIG": columnsConfig,
						"HOOK_NAME":      "useCrdColumns",
					},
				},
				{
					ID:   "pageState",
					Type: "crd-page-state",
					Args: []Binding{
						{Type: "binding", Source: "columns", Bind: "columns"},
					},
					Config: map[string]interface{}{
						"PAGE_ID": id,
						"CRD_CONFIG": map[string]interface{}{
							"apiVersion": crd.Version,
							"kind":       crd.Names.Kind,
							"plural":     crd.Names.Plural,
							"group":      crd.Group,
							"kapi":       true,
						},
						"SCOPE":     string(placement),
						"HOOK_NAME": "useCrdPageState",
					},
				},
			},
			Root: Node{
				ID:   id + "-root",
				Type: "CrdTable",
				Props: map[string]interface{}{
					"TABLE_KEY":      id,
					"TITLE":          displayName,
					"PARAMS":         binding("pageState", "params"),
					"REFETCH":        binding("pageState", "refetch"),
					"TOOLBAR_LEFT":   binding("pageState", "toolbarLeft"),
					"PAGE_CONTEXT":   binding("pageState", "pageContext"),
					"COLUMNS":        binding("columns", "columns"),
					"DATA":           binding("pageState", "data"),
					"IS_LOADING":     bindingWithDefault("pageState", "loading", false),
					"UPDATE":         binding("pageState", "update"),
					"DEL":            binding("pageState", "del"),
					"CREATE":         binding("pageState", "create"),
					"CREATE_INITIAL_VALUE": map[string]interface{}{
						"apiVersion": crd.Group + "/" + crd.Version,
						"kind":       crd.Names.Kind,
					},
				},
				Meta: NodeMeta{Title: "CrdTable", Scope: true},
			},
		},
	}, nil
}

func binding(source, bind string) map[string]interface{} {
	return map[string]interface{}{"type": "binding", "source": source, "bind": bind}
}

func bindingWithDefault(source, bind string, defaultValue interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "binding", "source": source, "bind": bind, "defaultValue": defaultValue}
}

// transformColumns folds each column's format/pattern/link into its
// render.payload, the shape the console's table renderer actually reads.
func transformColumns(columns []frontendforgev1alpha1.ColumnSpec) []RenderedColumn {
	out := make([]RenderedColumn, 0, len(columns))
	for _, c := range columns {
		payload := make(map[string]interface{}, len(c.Render.Payload)+3)
		for k, v := range c.Render.Payload {
			payload[k] = v
		}
		if c.Render.Format != "" {
			payload["format"] = c.Render.Format
		}
		if c.Render.Pattern != "" {
			payload["pattern"] = c.Render.Pattern
		}
		if c.Render.Link != "" {
			payload["link"] = c.Render.Link
		}
		if len(payload) == 0 {
			payload = nil
		}

		out = append(out, RenderedColumn{
			Key:   c.Key,
			Title: c.Title,
			Render: RenderedColumnRender{
				Type:    string(c.Render.Type),
				Path:    c.Render.Path,
				Payload: payload,
			},
			EnableSorting: c.EnableSorting == nil || *c.EnableSorting,
			EnableHiding:  c.EnableHiding == nil || *c.EnableHiding,
		})
	}
	return out
}
