package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/skoram/emgrid/internal/fdtd"
	"github.com/skoram/emgrid/internal/field"
)

const (
	plotWidth  = 70
	plotHeight = 16
)

// PlotTrace renders a probe time series as an ascii graph.
func PlotTrace(trace []float64, caption string) string {
	if len(trace) < 2 {
		return "not enough samples to plot"
	}
	graph := asciigraph.Plot(trace,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}

// intensity ramp from quiet to loud cells.
const ramp = " .:-=+*#%@"

// RenderSlice draws the |E_z| cross-section of the grid at depth z as an
// ascii intensity map, normalized to the slice maximum.
func RenderSlice(g *fdtd.Grid, z int) string {
	nx, ny, _ := g.Shape()

	max := 0.0
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			v := g.EAt(x, y, z, field.Z)
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
	}

	var b strings.Builder
	for y := ny - 1; y >= 0; y-- {
		for x := 0; x < nx; x++ {
			v := g.EAt(x, y, z, field.Z)
			if v < 0 {
				v = -v
			}
			i := 0
			if max > 0 {
				i = int(v / max * float64(len(ramp)-1))
			}
			b.WriteByte(ramp[i])
		}
		b.WriteByte('\n')
	}
	return canvasStyle.Render(b.String())
}

// Summary renders grid diagnostics as labeled rows.
func Summary(g *fdtd.Grid) string {
	nx, ny, nz := g.Shape()
	rows := []struct {
		label string
		value string
	}{
		{"shape", fmt.Sprintf("(%d, %d, %d)", nx, ny, nz)},
		{"spacing", fmt.Sprintf("%.3g m", g.GridSpacing())},
		{"courant", fmt.Sprintf("%.4f", g.CourantNumber())},
		{"timestep", fmt.Sprintf("%.3g s", g.Timestep())},
		{"steps", fmt.Sprintf("%d", g.TimestepsPassed())},
		{"time passed", fmt.Sprintf("%.3g s", g.TimePassed())},
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r.label))
		b.WriteString(valueStyle.Render(r.value))
		b.WriteByte('\n')
	}
	return b.String()
}
