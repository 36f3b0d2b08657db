package fdtd

import (
	"fmt"
	"math"

	"github.com/skoram/emgrid/internal/field"
)

// LineSource drives the z-polarization of the electric field along a line
// of cells with a sinusoid whose spatial envelope is a Gaussian centered on
// the line's midpoint. The envelope is L1-normalized, so the injected power
// does not depend on line length or grid resolution.
//
// A LineSource is non-functional until attached to a grid.
type LineSource struct {
	period     Duration
	power      float64
	phaseShift float64
	name       string

	grid        *Grid
	x, y, z     []int
	periodSteps int
	profile     []float64
}

// NewLineSource creates a line source. The period may be given in timesteps
// or in seconds; it is resolved against the grid at registration. An empty
// name skips the grid's name binding.
func NewLineSource(period Duration, power, phaseShift float64, name string) *LineSource {
	return &LineSource{
		period:     period,
		power:      power,
		phaseShift: phaseShift,
		name:       name,
	}
}

// Name returns the lookup name bound on the grid, or "".
func (s *LineSource) Name() string { return s.name }

// Cells returns the registered cell coordinates of the source.
func (s *LineSource) Cells() (x, y, z []int) { return s.x, s.y, s.z }

// Register resolves the source's footprint and precomputes its spatial
// profile. The source spans the diagonal of the box selected by the three
// axis keys, discretized to one point per unit grid step along its longest
// axis projection.
func (s *LineSource) Register(g *Grid, x, y, z AxisIndex) error {
	s.grid = g

	xs, ys, zs, err := lineFootprint(x, y, z)
	if err != nil {
		return err
	}
	s.x, s.y, s.z = xs, ys, zs

	s.periodSteps = g.resolveTime(s.period)
	if s.periodSteps < 1 {
		return fmt.Errorf("emgrid: source period must be at least one timestep, got %d", s.periodSteps)
	}

	// Squared distance of every point from the line's midpoint; the
	// Gaussian width is half the maximum.
	n := len(xs)
	mid := n / 2
	vect := make([]float64, n)
	maxV := 0.0
	for i := 0; i < n; i++ {
		dx := float64(xs[i] - xs[mid])
		dy := float64(ys[i] - ys[mid])
		dz := float64(zs[i] - zs[mid])
		vect[i] = dx*dx + dy*dy + dz*dz
		if vect[i] > maxV {
			maxV = vect[i]
		}
	}

	s.profile = make([]float64, n)
	if maxV == 0 {
		// Degenerate single-cell line: uniform weight instead of 0/0.
		for i := range s.profile {
			s.profile[i] = 1.0
		}
	} else {
		width := 0.5 * maxV
		for i := range s.profile {
			s.profile[i] = math.Exp(-vect[i] * vect[i] / (2 * width * width))
		}
	}

	sum := 0.0
	for _, p := range s.profile {
		sum += p
	}
	for i := range s.profile {
		s.profile[i] /= sum
		amplitude := math.Sqrt(s.power * g.InvPermittivityAt(xs[i], ys[i], zs[i], field.Z))
		s.profile[i] *= amplitude
	}

	return nil
}

// UpdateE adds the source's current value into the z-polarization of E at
// every registered cell. Cells are written one by one; scattered bulk
// writes are slower on some array engines.
func (s *LineSource) UpdateE() {
	q := float64(s.grid.TimestepsPassed())
	osc := math.Sin(2*math.Pi*q/float64(s.periodSteps) + s.phaseShift)
	for i := range s.x {
		s.grid.AddE(s.x[i], s.y[i], s.z[i], field.Z, s.profile[i]*osc)
	}
}

// UpdateH is a no-op: the source only drives the electric field.
func (s *LineSource) UpdateH() {}

// lineFootprint normalizes the three axis selections to equal-length
// coordinate lists covering the line between the region's corners.
//
// Three explicit lists are used as-is (they must already have equal
// lengths). Otherwise list selections collapse to their end points and
// every axis is resampled into m evenly spaced integer points, with m the
// largest axis extent, guaranteeing contiguous per-cell coverage.
func lineFootprint(x, y, z AxisIndex) (xs, ys, zs []int, err error) {
	if !x.IsSpan && !y.IsSpan && !z.IsSpan {
		if len(x.Indices) != len(y.Indices) || len(y.Indices) != len(z.Indices) {
			return nil, nil, nil, fmt.Errorf("%w: got %d, %d, %d",
				ErrLengthMismatch, len(x.Indices), len(y.Indices), len(z.Indices))
		}
		return x.Indices, y.Indices, z.Indices, nil
	}

	x0, x1 := axisEndpoints(x)
	y0, y1 := axisEndpoints(y)
	z0, z1 := axisEndpoints(z)

	m := maxInt(absInt(x1-x0), absInt(y1-y0), absInt(z1-z0))
	if m < 1 {
		m = 1
	}

	return sampleLine(x0, x1, m), sampleLine(y0, y1, m), sampleLine(z0, z1, m), nil
}

// axisEndpoints returns the corner coordinates of one axis selection: the
// half-open bounds of a span, or the first and last entry of a list.
func axisEndpoints(a AxisIndex) (start, stop int) {
	if a.IsSpan {
		return a.Start, a.Stop
	}
	return a.Indices[0], a.Indices[len(a.Indices)-1]
}

// sampleLine returns m evenly spaced integer points of [start, stop),
// truncated toward zero.
func sampleLine(start, stop, m int) []int {
	points := make([]int, m)
	span := float64(stop - start)
	for i := 0; i < m; i++ {
		points[i] = int(float64(start) + float64(i)*span/float64(m))
	}
	return points
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(vs ...int) int {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
