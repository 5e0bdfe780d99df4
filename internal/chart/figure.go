// Package chart builds Plotly figures for the report and renders them as
// standalone HTML pages.
package chart

// PolicyEngine app palette.
const (
	Black            = "#000000"
	PrimaryTeal      = "#319795"
	PrimaryTealLight = "#E6FFFA"
	Gray600          = "#4B5563"
	Gray400          = "#9CA3AF"
	Gray300          = "#D1D5DB"
)

const fontFamily = "Roboto Serif"

// Figure is a Plotly figure: traces plus layout, serialized as JSON.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the report uses.
type Trace struct {
	Type          string   `json:"type"`
	Mode          string   `json:"mode,omitempty"`
	Name          string   `json:"name,omitempty"`
	X             any      `json:"x"`
	Y             any      `json:"y"`
	XAxis         string   `json:"xaxis,omitempty"`
	YAxis         string   `json:"yaxis,omitempty"`
	Orientation   string   `json:"orientation,omitempty"`
	Line          *Line    `json:"line,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Text          []string `json:"text,omitempty"`
	TextPosition  string   `json:"textposition,omitempty"`
	TextFont      *Font    `json:"textfont,omitempty"`
	LegendGroup   string   `json:"legendgroup,omitempty"`
	ShowLegend    *bool    `json:"showlegend,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
}

// Line styles a scatter trace.
type Line struct {
	Color string `json:"color,omitempty"`
}

// Marker styles bars.
type Marker struct {
	Color string `json:"color,omitempty"`
}

// Font is a Plotly font.
type Font struct {
	Family string `json:"family,omitempty"`
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
}

// Title is a chart or axis title.
type Title struct {
	Text     string   `json:"text"`
	X        *float64 `json:"x,omitempty"`
	Standoff int      `json:"standoff,omitempty"`
}

// Axis is a Plotly cartesian axis.
type Axis struct {
	Title          *Title    `json:"title,omitempty"`
	TickFormat     string    `json:"tickformat,omitempty"`
	TickSuffix     string    `json:"ticksuffix,omitempty"`
	TickVals       []int     `json:"tickvals,omitempty"`
	Range          []float64 `json:"range,omitempty"`
	Domain         []float64 `json:"domain,omitempty"`
	Anchor         string    `json:"anchor,omitempty"`
	Matches        string    `json:"matches,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	AutoMargin     bool      `json:"automargin,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L   int `json:"l"`
	R   int `json:"r"`
	B   int `json:"b"`
	T   int `json:"t"`
	Pad int `json:"pad"`
}

// Legend positions the legend.
type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	XAnchor     string  `json:"xanchor,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	TraceOrder  string  `json:"traceorder,omitempty"`
	Font        *Font   `json:"font,omitempty"`
}

// Image is a layout image, used for the watermark.
type Image struct {
	Source  string  `json:"source"`
	XRef    string  `json:"xref"`
	YRef    string  `json:"yref"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	SizeX   float64 `json:"sizex"`
	SizeY   float64 `json:"sizey"`
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor"`
}

// Layout is the subset of Plotly layout attributes the report uses.
type Layout struct {
	Title      *Title  `json:"title,omitempty"`
	Font       *Font   `json:"font,omitempty"`
	XAxis      *Axis   `json:"xaxis,omitempty"`
	XAxis2     *Axis   `json:"xaxis2,omitempty"`
	YAxis      *Axis   `json:"yaxis,omitempty"`
	YAxis2     *Axis   `json:"yaxis2,omitempty"`
	BarMode    string  `json:"barmode,omitempty"`
	ShowLegend *bool   `json:"showlegend,omitempty"`
	Legend     *Legend `json:"legend,omitempty"`
	Margin     *Margin `json:"margin,omitempty"`
	Height     int     `json:"height,omitempty"`
	Width      int     `json:"width,omitempty"`
	Images     []Image `json:"images,omitempty"`
}

// watermark places the PolicyEngine logo at the bottom right, offset by y.
func watermark(y float64) []Image {
	return []Image{{
		Source:  "/assets/logos/policyengine/teal-square-transparent.png",
		XRef:    "paper",
		YRef:    "paper",
		X:       1.05,
		Y:       y,
		SizeX:   0.07,
		SizeY:   0.07,
		XAnchor: "right",
		YAnchor: "bottom",
	}}
}

func defaultMargin(top int) *Margin {
	return &Margin{L: 60, R: 60, B: 80, T: top, Pad: 4}
}

func baseFont() *Font {
	return &Font{Family: fontFamily, Color: Black}
}

func ptr[T any](v T) *T { return &v }
