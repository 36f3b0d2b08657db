package fdtd

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/skoram/emgrid/internal/compute"
	"github.com/skoram/emgrid/internal/field"
)

// SpeedOfLight is the vacuum speed of light in m/s.
const SpeedOfLight = 299_792_458.0

// DefaultGridSpacing is the cell size used when none is given.
const DefaultGridSpacing = 25e-9 // m

// courantMargin keeps the default courant number 1% below the theoretical
// CFL limit.
const courantMargin = 0.99

// Options carries the optional grid construction parameters. The zero value
// of every field selects its default.
type Options struct {
	GridSpacing   float64 // cell size in meters, default 25e-9
	Permittivity  float64 // relative background permittivity, default 1.0
	Permeability  float64 // relative background permeability, default 1.0
	CourantNumber float64 // stability factor, default 0.99/sqrt(D)
	Backend       compute.Backend
}

// registration pairs an attached component with its resolved location, for
// diagnostic listing.
type registration struct {
	kind      string
	component any
	x, y, z   AxisIndex
}

// Grid owns the electric and magnetic field arrays of an FDTD simulation
// and orchestrates the leapfrog update loop over its attached components.
type Grid struct {
	nx, ny, nz  int
	dims        int
	gridSpacing float64
	courant     float64
	timestep    float64
	backend     compute.Backend

	e, h            *field.Field
	invPermittivity *field.Field
	invPermeability *field.Field

	timestepsPassed int

	sources    []Source
	boundaries []Boundary
	detectors  []Detector
	objects    []Object

	registry []registration
	names    map[string]any
}

// New constructs a grid with zeroed fields and uniform background material.
// The shape must contain exactly 3 entries; entries given in meters are
// converted to cell counts with the grid spacing. An explicit courant
// number above the CFL limit 1/sqrt(D) is rejected.
func New(shape []Distance, opts *Options) (*Grid, error) {
	if opts == nil {
		opts = &Options{}
	}

	g := &Grid{
		gridSpacing: opts.GridSpacing,
		backend:     opts.Backend,
		names:       make(map[string]any),
	}
	if g.gridSpacing == 0 {
		g.gridSpacing = DefaultGridSpacing
	}
	if g.gridSpacing <= 0 {
		return nil, fmt.Errorf("emgrid: grid spacing must be positive, got %g", g.gridSpacing)
	}
	if g.backend == nil {
		g.backend = compute.Default()
	}

	nx, ny, nz, err := g.resolveShape(shape)
	if err != nil {
		return nil, err
	}
	g.nx, g.ny, g.nz = nx, ny, nz

	g.dims = 0
	for _, n := range []int{nx, ny, nz} {
		if n > 1 {
			g.dims++
		}
	}
	if g.dims == 0 {
		g.dims = 1 // a (1,1,1) grid is treated as one-dimensional
	}

	limit := 1.0 / math.Sqrt(float64(g.dims))
	g.courant = opts.CourantNumber
	if g.courant == 0 {
		g.courant = limit * courantMargin
	} else if g.courant > limit+1e-12 {
		return nil, fmt.Errorf("%w: %g > %g for %dD", ErrCourantTooLarge, g.courant, limit, g.dims)
	} else if g.courant < 0 {
		return nil, fmt.Errorf("emgrid: courant number must be positive, got %g", g.courant)
	}
	g.timestep = g.courant * g.gridSpacing / SpeedOfLight

	permittivity := opts.Permittivity
	if permittivity == 0 {
		permittivity = 1.0
	}
	permeability := opts.Permeability
	if permeability == 0 {
		permeability = 1.0
	}

	g.e = field.New(nx, ny, nz)
	g.h = field.New(nx, ny, nz)
	g.invPermittivity = field.New(nx, ny, nz)
	g.invPermittivity.Fill(1.0 / permittivity)
	g.invPermeability = field.New(nx, ny, nz)
	g.invPermeability.Fill(1.0 / permeability)

	return g, nil
}

// Shape returns the grid dimensions in cells.
func (g *Grid) Shape() (nx, ny, nz int) { return g.nx, g.ny, g.nz }

// GridSpacing returns the cell size in meters.
func (g *Grid) GridSpacing() float64 { return g.gridSpacing }

// CourantNumber returns the stability factor of the time-stepping scheme.
func (g *Grid) CourantNumber() float64 { return g.courant }

// Timestep returns the derived timestep in seconds.
func (g *Grid) Timestep() float64 { return g.timestep }

// Dims returns the dimensionality: the number of axes with more than one cell.
func (g *Grid) Dims() int { return g.dims }

// TimestepsPassed returns the number of completed steps.
func (g *Grid) TimestepsPassed() int { return g.timestepsPassed }

// TimePassed returns the simulated time in seconds.
func (g *Grid) TimePassed() float64 { return float64(g.timestepsPassed) * g.timestep }

// EAt returns component c of the electric field at (x, y, z).
func (g *Grid) EAt(x, y, z, c int) float64 { return g.e.At(x, y, z, c) }

// HAt returns component c of the magnetic field at (x, y, z).
func (g *Grid) HAt(x, y, z, c int) float64 { return g.h.At(x, y, z, c) }

// AddE accumulates v into component c of the electric field at (x, y, z).
func (g *Grid) AddE(x, y, z, c int, v float64) { g.e.Add(x, y, z, c, v) }

// AddH accumulates v into component c of the magnetic field at (x, y, z).
func (g *Grid) AddH(x, y, z, c int, v float64) { g.h.Add(x, y, z, c, v) }

// SetE stores v as component c of the electric field at (x, y, z).
func (g *Grid) SetE(x, y, z, c int, v float64) { g.e.Set(x, y, z, c, v) }

// SetH stores v as component c of the magnetic field at (x, y, z).
func (g *Grid) SetH(x, y, z, c int, v float64) { g.h.Set(x, y, z, c, v) }

// InvPermittivityAt returns 1/eps_r for component c of the cell at (x, y, z).
func (g *Grid) InvPermittivityAt(x, y, z, c int) float64 {
	return g.invPermittivity.At(x, y, z, c)
}

// InvPermeabilityAt returns 1/mu_r for component c of the cell at (x, y, z).
func (g *Grid) InvPermeabilityAt(x, y, z, c int) float64 {
	return g.invPermeability.At(x, y, z, c)
}

// Step advances the simulation by one timestep: E is updated from the
// previous H, then H from the just-updated E. This ordering realizes the
// leapfrog scheme.
func (g *Grid) Step() {
	g.UpdateE()
	g.UpdateH()
	g.timestepsPassed++
}

// UpdateE advances the electric field by the curl of the magnetic field and
// runs the component hooks in their contractual order: boundary phi state,
// physical update, objects, boundary correction, sources, detectors.
// Sources run after boundaries so absorbing layers cannot damp freshly
// injected energy; detectors sample the fully updated field.
func (g *Grid) UpdateE() {
	for _, b := range g.boundaries {
		b.UpdatePhiE()
	}

	curl := CurlH(g.h)
	g.backend.MulAddScaled(g.e.Data, g.invPermittivity.Data, curl.Data, g.courant)

	for _, o := range g.objects {
		o.UpdateE(curl)
	}
	for _, b := range g.boundaries {
		b.UpdateE()
	}
	for _, s := range g.sources {
		s.UpdateE()
	}
	for _, d := range g.detectors {
		d.DetectE()
	}
}

// UpdateH is the structural mirror of UpdateE, advancing the magnetic field
// by the curl of the electric field. The sign flips per Faraday's law: H
// decreases with positive curl of E.
func (g *Grid) UpdateH() {
	for _, b := range g.boundaries {
		b.UpdatePhiH()
	}

	curl := CurlE(g.e)
	g.backend.MulAddScaled(g.h.Data, g.invPermeability.Data, curl.Data, -g.courant)

	for _, o := range g.objects {
		o.UpdateH(curl)
	}
	for _, b := range g.boundaries {
		b.UpdateH()
	}
	for _, s := range g.sources {
		s.UpdateH()
	}
	for _, d := range g.detectors {
		d.DetectH()
	}
}

// Run steps the simulation for the given duration. A physical duration is
// converted to a timestep count first. The context is checked between
// steps; a step itself is never interrupted. The optional progress callback
// is invoked after every step.
func (g *Grid) Run(ctx context.Context, total Duration, progress func(done, total int)) error {
	steps := g.resolveTime(total)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		g.Step()
		if progress != nil {
			progress(i+1, steps)
		}
	}
	return nil
}

// Reset zeroes both fields and the step counter in place. Attached
// components stay registered.
func (g *Grid) Reset() {
	g.e.Zero()
	g.h.Zero()
	g.timestepsPassed = 0
}

// Attach registers a component at the region selected by up to 3 axis keys;
// missing trailing axes default to the entire axis. The component must
// satisfy exactly one of the Source, Boundary, Detector or Object
// contracts. If it is Named, its name is bound on the grid, failing on
// collision. Registration is one-shot: attaching the same component twice
// returns ErrAlreadyRegistered.
func (g *Grid) Attach(component any, keys ...Key) error {
	name := ""
	if n, ok := component.(Named); ok {
		name = n.Name()
	}
	return g.attach(component, name, keys)
}

func (g *Grid) attach(component any, name string, keys []Key) error {
	if g.isRegistered(component) {
		return fmt.Errorf("%w: %T", ErrAlreadyRegistered, component)
	}
	if len(keys) > 3 {
		return fmt.Errorf("%w: got %d", ErrTooManyKeys, len(keys))
	}
	for len(keys) < 3 {
		keys = append(keys, Whole())
	}

	sizes := []int{g.nx, g.ny, g.nz}
	var axes [3]AxisIndex
	for i, k := range keys {
		ax, err := g.resolveKey(k, sizes[i])
		if err != nil {
			return err
		}
		axes[i] = ax
	}

	if err := g.bindName(name, component); err != nil {
		return err
	}

	register := func(kind string, fn func() error) error {
		if err := fn(); err != nil {
			g.unbindNames(component)
			return err
		}
		g.record(kind, component, axes)
		return nil
	}

	switch c := component.(type) {
	case Source:
		if err := register("source", func() error { return c.Register(g, axes[0], axes[1], axes[2]) }); err != nil {
			return err
		}
		g.sources = append(g.sources, c)
	case Boundary:
		if err := register("boundary", func() error { return c.Register(g, axes[0], axes[1], axes[2]) }); err != nil {
			return err
		}
		g.boundaries = append(g.boundaries, c)
	case Detector:
		if err := register("detector", func() error { return c.Register(g, axes[0], axes[1], axes[2]) }); err != nil {
			return err
		}
		g.detectors = append(g.detectors, c)
	case Object:
		if err := register("object", func() error { return c.Register(g, axes[0], axes[1], axes[2]) }); err != nil {
			return err
		}
		g.objects = append(g.objects, c)
	default:
		g.unbindNames(component)
		return fmt.Errorf("%w: %T", ErrUnknownComponent, component)
	}

	return nil
}

// unbindNames releases any names bound to a component whose registration
// did not complete.
func (g *Grid) unbindNames(component any) {
	for name, c := range g.names {
		if c == component {
			delete(g.names, name)
		}
	}
}

// isRegistered reports whether the component already completed a
// registration on this grid.
func (g *Grid) isRegistered(component any) bool {
	for _, r := range g.registry {
		if r.component == component {
			return true
		}
	}
	return false
}

// AddSource attaches a source under an explicit name. The explicit name
// takes precedence: the source's own Name, if any, is not bound.
func (g *Grid) AddSource(name string, s Source, keys ...Key) error {
	return g.attachNamed(name, s, keys)
}

// AddBoundary attaches a boundary under an explicit name.
func (g *Grid) AddBoundary(name string, b Boundary, keys ...Key) error {
	return g.attachNamed(name, b, keys)
}

// AddDetector attaches a detector under an explicit name.
func (g *Grid) AddDetector(name string, d Detector, keys ...Key) error {
	return g.attachNamed(name, d, keys)
}

// AddObject attaches an object under an explicit name.
func (g *Grid) AddObject(name string, o Object, keys ...Key) error {
	return g.attachNamed(name, o, keys)
}

// attachNamed attaches under the explicit name only; the component's own
// Name is ignored.
func (g *Grid) attachNamed(name string, component any, keys []Key) error {
	return g.attach(component, name, keys)
}

// bindName records a name-to-component mapping; colliding names are
// rejected.
func (g *Grid) bindName(name string, component any) error {
	if name == "" {
		return nil
	}
	if _, ok := g.names[name]; ok {
		return fmt.Errorf("%w: %q", ErrNameTaken, name)
	}
	g.names[name] = component
	return nil
}

// Lookup returns the component registered under name.
func (g *Grid) Lookup(name string) (any, bool) {
	c, ok := g.names[name]
	return c, ok
}

func (g *Grid) record(kind string, component any, axes [3]AxisIndex) {
	g.registry = append(g.registry, registration{
		kind:      kind,
		component: component,
		x:         axes[0],
		y:         axes[1],
		z:         axes[2],
	})
}

// String lists every registered component with its type and resolved
// location, for diagnostic inspection.
func (g *Grid) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grid(%d, %d, %d, spacing=%g, courant=%.4f)\n", g.nx, g.ny, g.nz, g.gridSpacing, g.courant)

	for _, kind := range []string{"source", "detector", "boundary", "object"} {
		fmt.Fprintf(&b, "%ss:\n", kind)
		for _, r := range g.registry {
			if r.kind != kind {
				continue
			}
			fmt.Fprintf(&b, "\t%T @ x=%s, y=%s, z=%s\n",
				r.component, formatAxis(r.x), formatAxis(r.y), formatAxis(r.z))
		}
	}

	return b.String()
}

func formatAxis(a AxisIndex) string {
	if a.IsSpan {
		return fmt.Sprintf("%d:%d", a.Start, a.Stop)
	}
	return fmt.Sprint(a.Indices)
}
