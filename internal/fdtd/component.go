package fdtd

import "github.com/skoram/emgrid/internal/field"

// Components attach to a region of a grid and participate in the per-step
// update sequence through a fixed set of hook points. Register is called
// exactly once, at attachment, with the resolved per-axis cell selections;
// after it returns, the component must be self-sufficient for every later
// hook call. A component is non-functional until registered.

// Source injects energy into the field after the physical update and the
// boundary correction of each half-step.
type Source interface {
	Register(g *Grid, x, y, z AxisIndex) error
	UpdateE()
	UpdateH()
}

// Boundary corrects the field at the grid edge. UpdatePhiE and UpdatePhiH
// refresh internal state before the physical update; UpdateE and UpdateH
// apply the correction after it.
type Boundary interface {
	Register(g *Grid, x, y, z AxisIndex) error
	UpdatePhiE()
	UpdatePhiH()
	UpdateE()
	UpdateH()
}

// Detector samples the field at the end of each half-step. Detectors read,
// never write.
type Detector interface {
	Register(g *Grid, x, y, z AxisIndex) error
	DetectE()
	DetectH()
}

// Object overrides the material response inside its region. Each hook
// receives the same curl the grid just applied, allowing custom
// constitutive relations.
type Object interface {
	Register(g *Grid, x, y, z AxisIndex) error
	UpdateE(curl *field.Field)
	UpdateH(curl *field.Field)
}

// Named is implemented by components that expose a lookup name on the grid.
type Named interface {
	Name() string
}
