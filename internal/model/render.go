package model

// LayerKind discriminates the three layer families the composer emits.
type LayerKind string

const (
	LayerChoropleth     LayerKind = "choropleth"
	LayerMarkers        LayerKind = "markers"
	LayerClusterOverlay LayerKind = "cluster_overlay"
)

// ColorBin is one band of a choropleth color scale: values in
// [Lower, Upper) render as Color. The missing bucket has no bounds.
type ColorBin struct {
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Color   string  `json:"color"`
	Missing bool    `json:"missing,omitempty"`
}

// ChoroplethParams carries the render parameters of a choropleth layer.
type ChoroplethParams struct {
	Metric       Metric     `json:"metric"`
	Bins         []ColorBin `json:"bins"`
	MissingColor string     `json:"missing_color"`
	// Values maps region id to the encoded metric value. Regions with a
	// nil value render in MissingColor.
	Values map[string]*float64 `json:"values"`
}

// MarkerParams carries the render parameters of a status marker sub-layer.
type MarkerParams struct {
	Status SiteStatus   `json:"status"`
	Color  string       `json:"color"`
	Sites  []JoinedSite `json:"sites"`
}

// ClusterParams carries the render parameters of the cluster overlay.
type ClusterParams struct {
	Color    string        `json:"color"`
	DashedKM float64       `json:"dash_interval_km,omitempty"`
	Zones    []ClusterZone `json:"zones"`
}

// LayerDescriptor describes one toggleable map layer. Exactly one
// LegendEntry exists per descriptor, at the same index of the render
// model's legend list.
type LayerDescriptor struct {
	ID         string            `json:"id"`
	Kind       LayerKind         `json:"kind"`
	Title      string            `json:"title"`
	Visible    bool              `json:"visible"`
	Choropleth *ChoroplethParams `json:"choropleth,omitempty"`
	Markers    *MarkerParams     `json:"markers,omitempty"`
	Clusters   *ClusterParams    `json:"clusters,omitempty"`
}

// LegendEntry explains one layer's encoding in the sidebar panel.
type LegendEntry struct {
	LayerID string `json:"layer_id"`
	Title   string `json:"title"`
	// Bins is set for choropleth entries and always includes the
	// missing-value bucket.
	Bins []ColorBin `json:"bins,omitempty"`
	// Swatch and Label are set for marker and overlay entries.
	Swatch string `json:"swatch,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Viewport is the initial map framing handed to the renderer.
type Viewport struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Zoom      int     `json:"zoom"`
}

// RenderModel is the composed output consumed by the external map
// renderer. Layers and Legend are index-aligned: Legend[i] describes
// Layers[i], and the renderer must preserve that correspondence.
type RenderModel struct {
	Viewport Viewport          `json:"viewport"`
	Layers   []LayerDescriptor `json:"layers"`
	Legend   []LegendEntry     `json:"legend"`
}

// AddLayer appends a layer and its legend entry together, keeping the
// 1:1 correspondence a structural property rather than a rendering
// coincidence.
func (m *RenderModel) AddLayer(layer LayerDescriptor, entry LegendEntry) {
	entry.LayerID = layer.ID
	m.Layers = append(m.Layers, layer)
	m.Legend = append(m.Legend, entry)
}
