package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// PlotlyVersion is the CDN build the pages load.
const PlotlyVersion = "3.1.1"

var pageTemplate = template.Must(template.New("chart").Parse(`<html>
  <head>
    <meta charset="utf-8" />
    <link
      href="https://fonts.googleapis.com/css2?family=Roboto:wght@300;400;500;700&display=swap"
      rel="stylesheet"
    />
  </head>
  <body>
    <div>
      <script type="text/javascript">
        window.PlotlyConfig = { MathJaxConfig: 'local' };
      </script>
      <script
        charset="utf-8"
        src="https://cdn.plot.ly/plotly-{{.Version}}.min.js"
      ></script>
      <div
        id="chart"
        class="plotly-graph-div"
        style="height: 600px; width: 100%"
      ></div>
      <script type="text/javascript">
        window.PLOTLYENV = window.PLOTLYENV || {};
        if (document.getElementById('chart')) {
          Plotly.newPlot(
            'chart',
            {{.Data}},
            {{.Layout}},
            { responsive: true }
          );
        }
      </script>
    </div>
  </body>
</html>
`))

// WriteHTML renders fig as a standalone page that draws it with Plotly.
func WriteHTML(w io.Writer, fig Figure) error {
	data, err := json.Marshal(fig.Data)
	if err != nil {
		return fmt.Errorf("encoding chart data: %w", err)
	}
	layout, err := json.Marshal(fig.Layout)
	if err != nil {
		return fmt.Errorf("encoding chart layout: %w", err)
	}

	return pageTemplate.Execute(w, struct {
		Version string
		Data    template.JS
		Layout  template.JS
	}{
		Version: PlotlyVersion,
		Data:    template.JS(data),
		Layout:  template.JS(layout),
	})
}
