package fdtd

import (
	"context"
	"math"
	"testing"

	"github.com/skoram/emgrid/internal/field"
)

// maxAbsOutsideRadius scans E for the largest magnitude beyond a Chebyshev
// radius from a center cell.
func maxAbsOutsideRadius(g *Grid, cx, cy, cz, radius int) float64 {
	nx, ny, nz := g.Shape()
	max := 0.0
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				d := absInt(x - cx)
				if dy := absInt(y - cy); dy > d {
					d = dy
				}
				if dz := absInt(z - cz); dz > d {
					d = dz
				}
				if d <= radius {
					continue
				}
				for c := 0; c < field.Components; c++ {
					if v := math.Abs(g.EAt(x, y, z, c)); v > max {
						max = v
					}
				}
			}
		}
	}
	return max
}

func TestPropagationStaysInsideLightCone(t *testing.T) {
	g := unitGrid(t, 24, 24, 24)
	src := NewLineSource(Steps(15), 1.0, 0, "")
	if err := g.Attach(src, At(Cells(12)), At(Cells(12)), At(Cells(12))); err != nil {
		t.Fatal(err)
	}

	const steps = 8
	for i := 0; i < steps; i++ {
		g.Step()
	}

	// The stencil moves information at most one cell per step, so the field
	// beyond that cone must be exactly zero.
	if leak := maxAbsOutsideRadius(g, 12, 12, 12, steps); leak != 0 {
		t.Errorf("field leaked outside the light cone: %g", leak)
	}
}

func TestEndToEndScenario(t *testing.T) {
	g, err := New([]Distance{Cells(20), Cells(20), Cells(20)}, nil)
	if err != nil {
		t.Fatal(err)
	}

	src := NewLineSource(Steps(15), 1.0, 0, "src")
	if err := g.Attach(src, At(Cells(10)), At(Cells(10)), At(Cells(10))); err != nil {
		t.Fatal(err)
	}

	if err := g.Run(context.Background(), Steps(30), nil); err != nil {
		t.Fatal(err)
	}

	if g.TimestepsPassed() != 30 {
		t.Fatalf("expected 30 steps, got %d", g.TimestepsPassed())
	}

	// The wave must have left the source cell...
	radiated := 0.0
	for _, d := range []int{1, 2, 3} {
		radiated += math.Abs(g.EAt(10+d, 10, 10, field.Z))
	}
	if radiated == 0 {
		t.Error("no field radiated away from the source")
	}

	// ...and every value must still be finite: the default courant number
	// keeps the scheme stable.
	nx, ny, nz := g.Shape()
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				for c := 0; c < field.Components; c++ {
					if math.IsNaN(g.EAt(x, y, z, c)) || math.IsInf(g.EAt(x, y, z, c), 0) {
						t.Fatalf("non-finite E at (%d,%d,%d,%d)", x, y, z, c)
					}
				}
			}
		}
	}
}

func TestAmplitudeDecaysWithDistance(t *testing.T) {
	g := unitGrid(t, 32, 4, 4)
	src := NewLineSource(Steps(10), 1.0, 0, "")
	if err := g.Attach(src, At(Cells(4)), At(Cells(2)), At(Cells(2))); err != nil {
		t.Fatal(err)
	}

	// Accumulate |E_z| over the run so oscillation zero-crossings cannot
	// mask the comparison.
	near, far := 0.0, 0.0
	for i := 0; i < 12; i++ {
		g.Step()
		near += math.Abs(g.EAt(5, 2, 2, field.Z))
		far += math.Abs(g.EAt(15, 2, 2, field.Z))
	}

	if near == 0 {
		t.Fatal("no field reached the neighboring cell")
	}
	// 11 cells from the source after 12 steps at courant ~0.57: the leading
	// edge has barely arrived there.
	if far >= near {
		t.Errorf("expected accumulated amplitude to decay with distance: near %g, far %g", near, far)
	}
}
