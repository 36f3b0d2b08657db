// Package boundary provides concrete boundary-contract components for the
// FDTD grid.
package boundary

import (
	"fmt"

	"github.com/skoram/emgrid/internal/fdtd"
	"github.com/skoram/emgrid/internal/field"
)

// Periodic wraps the field around one axis: after each E update the low
// boundary plane is overwritten with the high one, and after each H update
// the high plane with the low one. Attach it at a single cell on either end
// of the axis it should wrap, covering the other two axes whole.
type Periodic struct {
	name string

	grid *fdtd.Grid
	axis int
}

// NewPeriodic creates a periodic boundary. An empty name skips the grid's
// name binding.
func NewPeriodic(name string) *Periodic {
	return &Periodic{name: name}
}

// Name returns the lookup name bound on the grid, or "".
func (p *Periodic) Name() string { return p.name }

// Axis returns the wrapped axis (0, 1 or 2) once registered.
func (p *Periodic) Axis() int { return p.axis }

// Register determines the wrapped axis from the attachment location: the
// axis selected as a single cell at either end of the grid.
func (p *Periodic) Register(g *fdtd.Grid, x, y, z fdtd.AxisIndex) error {
	p.grid = g

	nx, ny, nz := g.Shape()
	sizes := []int{nx, ny, nz}
	for axis, a := range []fdtd.AxisIndex{x, y, z} {
		if len(a.Indices) != 1 {
			continue
		}
		if i := a.Indices[0]; i == 0 || i == sizes[axis]-1 {
			p.axis = axis
			return nil
		}
	}
	return fmt.Errorf("emgrid: periodic boundary must be attached at a single cell on a grid edge")
}

// UpdatePhiE is a no-op: a periodic boundary keeps no convolution state.
func (p *Periodic) UpdatePhiE() {}

// UpdatePhiH is a no-op.
func (p *Periodic) UpdatePhiH() {}

// UpdateE copies the high boundary plane of E onto the low one.
func (p *Periodic) UpdateE() {
	p.copyPlane(p.grid.EAt, p.grid.SetE, true)
}

// UpdateH copies the low boundary plane of H onto the high one.
func (p *Periodic) UpdateH() {
	p.copyPlane(p.grid.HAt, p.grid.SetH, false)
}

// copyPlane transfers one boundary plane of a field across the wrapped
// axis. highToLow selects the E direction of the wrap.
func (p *Periodic) copyPlane(at func(x, y, z, c int) float64, set func(x, y, z, c int, v float64), highToLow bool) {
	nx, ny, nz := p.grid.Shape()
	sizes := []int{nx, ny, nz}
	last := sizes[p.axis] - 1

	from, to := 0, last
	if highToLow {
		from, to = last, 0
	}

	// Iterate the two free axes of the plane.
	u, v := (p.axis+1)%3, (p.axis+2)%3
	var coord [3]int
	coord[p.axis] = from
	for i := 0; i < sizes[u]; i++ {
		coord[u] = i
		for j := 0; j < sizes[v]; j++ {
			coord[v] = j
			for c := 0; c < field.Components; c++ {
				coord[p.axis] = from
				val := at(coord[0], coord[1], coord[2], c)
				coord[p.axis] = to
				set(coord[0], coord[1], coord[2], c, val)
			}
		}
	}
}
