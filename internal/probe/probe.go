// Package probe provides detector-contract components that record field
// time series for later plotting and export.
package probe

import (
	"github.com/skoram/emgrid/internal/fdtd"
	"github.com/skoram/emgrid/internal/field"
)

// FieldProbe records the full E and H vectors of every cell in its region
// after each half-step. The region is the cartesian product of the per-axis
// selections it was attached with.
type FieldProbe struct {
	name string

	grid    *fdtd.Grid
	x, y, z []int

	e [][]float64
	h [][]float64
}

// NewFieldProbe creates a probe. An empty name skips the grid's name binding.
func NewFieldProbe(name string) *FieldProbe {
	return &FieldProbe{name: name}
}

// Name returns the lookup name bound on the grid, or "".
func (p *FieldProbe) Name() string { return p.name }

// Register stores the probe's cell selection.
func (p *FieldProbe) Register(g *fdtd.Grid, x, y, z fdtd.AxisIndex) error {
	p.grid = g
	p.x = x.Indices
	p.y = y.Indices
	p.z = z.Indices
	return nil
}

// CellCount returns the number of cells the probe samples per step.
func (p *FieldProbe) CellCount() int {
	return len(p.x) * len(p.y) * len(p.z)
}

// DetectE appends a snapshot of the electric field over the probe region.
func (p *FieldProbe) DetectE() {
	p.e = append(p.e, p.snapshot(p.grid.EAt))
}

// DetectH appends a snapshot of the magnetic field over the probe region.
func (p *FieldProbe) DetectH() {
	p.h = append(p.h, p.snapshot(p.grid.HAt))
}

func (p *FieldProbe) snapshot(at func(x, y, z, c int) float64) []float64 {
	out := make([]float64, 0, p.CellCount()*field.Components)
	for _, x := range p.x {
		for _, y := range p.y {
			for _, z := range p.z {
				for c := 0; c < field.Components; c++ {
					out = append(out, at(x, y, z, c))
				}
			}
		}
	}
	return out
}

// E returns the recorded electric-field snapshots, one per step.
func (p *FieldProbe) E() [][]float64 { return p.e }

// H returns the recorded magnetic-field snapshots, one per step.
func (p *FieldProbe) H() [][]float64 { return p.h }

// TraceEZ returns the z-polarization time series of one recorded cell.
func (p *FieldProbe) TraceEZ(cell int) []float64 {
	trace := make([]float64, len(p.e))
	for i, snap := range p.e {
		trace[i] = snap[cell*field.Components+field.Z]
	}
	return trace
}

// Reset discards all recorded samples; the registration is untouched.
func (p *FieldProbe) Reset() {
	p.e = nil
	p.h = nil
}
