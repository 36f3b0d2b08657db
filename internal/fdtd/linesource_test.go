package fdtd

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/skoram/emgrid/internal/field"
)

func TestLineSourceSpanNormalization(t *testing.T) {
	g := unitGrid(t, 12, 12, 12)
	src := NewLineSource(Steps(15), 1.0, 0, "")

	if err := g.Attach(src, Span(Cells(0), Cells(10)), At(Cells(0)), At(Cells(0))); err != nil {
		t.Fatal(err)
	}

	xs, ys, zs := src.Cells()
	wantX := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !reflect.DeepEqual(xs, wantX) {
		t.Errorf("expected x points %v, got %v", wantX, xs)
	}
	for i := range ys {
		if ys[i] != 0 || zs[i] != 0 {
			t.Fatalf("point %d strayed off the line: y=%d z=%d", i, ys[i], zs[i])
		}
	}
}

func TestLineSourceDiagonalSpan(t *testing.T) {
	g := unitGrid(t, 12, 12, 12)
	src := NewLineSource(Steps(15), 1.0, 0, "")

	if err := g.Attach(src, Span(Cells(0), Cells(8)), Span(Cells(0), Cells(8)), At(Cells(3))); err != nil {
		t.Fatal(err)
	}

	xs, ys, zs := src.Cells()
	if len(xs) != 8 {
		t.Fatalf("expected 8 points, got %d", len(xs))
	}
	for i := range xs {
		if xs[i] != i || ys[i] != i || zs[i] != 3 {
			t.Errorf("point %d: expected (%d,%d,3), got (%d,%d,%d)", i, i, i, xs[i], ys[i], zs[i])
		}
	}
}

func TestLineSourceExplicitLists(t *testing.T) {
	g := unitGrid(t, 12, 12, 12)
	src := NewLineSource(Steps(15), 1.0, 0, "")

	err := g.Attach(src,
		List(Cells(1), Cells(2), Cells(3)),
		List(Cells(4), Cells(5), Cells(6)),
		List(Cells(7), Cells(8), Cells(9)),
	)
	if err != nil {
		t.Fatal(err)
	}

	xs, ys, zs := src.Cells()
	if !reflect.DeepEqual(xs, []int{1, 2, 3}) ||
		!reflect.DeepEqual(ys, []int{4, 5, 6}) ||
		!reflect.DeepEqual(zs, []int{7, 8, 9}) {
		t.Errorf("explicit lists were not used directly: %v %v %v", xs, ys, zs)
	}
}

func TestLineSourceListLengthMismatch(t *testing.T) {
	g := unitGrid(t, 12, 12, 12)
	src := NewLineSource(Steps(15), 1.0, 0, "")

	err := g.Attach(src,
		List(Cells(1), Cells(2)),
		List(Cells(1), Cells(2), Cells(3)),
		List(Cells(1), Cells(2)),
	)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestLineSourceWritesOnlyZComponentAtItsCells(t *testing.T) {
	g := unitGrid(t, 12, 4, 4)
	// phase pi/2 so the very first injection is at full amplitude.
	src := NewLineSource(Steps(15), 1.0, math.Pi/2, "")
	if err := g.Attach(src, Span(Cells(0), Cells(10)), At(Cells(0)), At(Cells(0))); err != nil {
		t.Fatal(err)
	}

	g.UpdateE() // curl of zero H contributes nothing: all E comes from the source

	onLine := map[int]bool{}
	xs, _, _ := src.Cells()
	for _, x := range xs {
		onLine[x] = true
	}

	for x := 0; x < 12; x++ {
		for y := 0; y < 4; y++ {
			for z := 0; z < 4; z++ {
				for c := 0; c < field.Components; c++ {
					v := g.EAt(x, y, z, c)
					if onLine[x] && y == 0 && z == 0 && c == field.Z {
						if v == 0 {
							t.Errorf("expected nonzero injection at x=%d", x)
						}
						continue
					}
					if v != 0 {
						t.Errorf("stray write at (%d,%d,%d,%d): %g", x, y, z, c, v)
					}
				}
			}
		}
	}
}

func TestLineSourceGaussianProfile(t *testing.T) {
	g := unitGrid(t, 12, 4, 4)
	src := NewLineSource(Steps(15), 1.0, math.Pi/2, "")
	if err := g.Attach(src, Span(Cells(0), Cells(10)), At(Cells(0)), At(Cells(0))); err != nil {
		t.Fatal(err)
	}

	g.UpdateE()

	// Recompute the expected envelope: squared distances from the midpoint,
	// Gaussian of width half the maximum, L1-normalized, unit amplitude.
	vect := make([]float64, 10)
	maxV := 0.0
	for i := range vect {
		d := float64(i - 5)
		vect[i] = d * d
		if vect[i] > maxV {
			maxV = vect[i]
		}
	}
	want := make([]float64, 10)
	sum := 0.0
	for i := range want {
		want[i] = math.Exp(-vect[i] * vect[i] / (2 * (0.5 * maxV) * (0.5 * maxV)))
		sum += want[i]
	}
	for i := range want {
		want[i] /= sum
	}

	xs, ys, zs := src.Cells()
	for i := range xs {
		got := g.EAt(xs[i], ys[i], zs[i], field.Z)
		if math.Abs(got-want[i]) > 1e-12 {
			t.Errorf("point %d: expected %g, got %g", i, want[i], got)
		}
	}
}

func TestLineSourcePeriodInSeconds(t *testing.T) {
	buildAndRun := func(period Duration) *Grid {
		g := unitGrid(t, 8, 8, 8)
		src := NewLineSource(period, 1.0, 0, "")
		if err := g.Attach(src, At(Cells(4)), At(Cells(4)), At(Cells(4))); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			g.Step()
		}
		return g
	}

	inSteps := buildAndRun(Steps(15))
	inSeconds := buildAndRun(Seconds(15 * inSteps.Timestep()))

	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			for z := 0; z < 8; z++ {
				for c := 0; c < field.Components; c++ {
					if inSteps.EAt(x, y, z, c) != inSeconds.EAt(x, y, z, c) {
						t.Fatal("seconds-denominated period disagrees with step-denominated period")
					}
				}
			}
		}
	}
}

func TestLineSourceSingleCellUniformProfile(t *testing.T) {
	g := unitGrid(t, 8, 8, 8)
	src := NewLineSource(Steps(10), 4.0, math.Pi/2, "")
	if err := g.Attach(src, At(Cells(4)), At(Cells(4)), At(Cells(4))); err != nil {
		t.Fatal(err)
	}

	g.UpdateE()

	// One cell, power 4: amplitude sqrt(4 * 1) injected at sin(pi/2).
	if got := g.EAt(4, 4, 4, field.Z); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("expected 2.0, got %g", got)
	}
}

func TestLineSourceOutOfRangeCellRejected(t *testing.T) {
	g := unitGrid(t, 8, 8, 8)
	src := NewLineSource(Steps(10), 1.0, math.Pi/2, "")

	err := g.Attach(src, At(Cells(0)), At(Cells(10)), At(Cells(0)))
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	// The flat layout would alias (0,10,0) onto (1,2,0); a rejected
	// attachment must leave every cell untouched.
	g.UpdateE()
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			for z := 0; z < 8; z++ {
				for c := 0; c < field.Components; c++ {
					if v := g.EAt(x, y, z, c); v != 0 {
						t.Fatalf("rejected attachment wrote (%d,%d,%d,%d): %g", x, y, z, c, v)
					}
				}
			}
		}
	}
}

func TestLineSourcePeriodBelowOneStep(t *testing.T) {
	g := unitGrid(t, 8, 8, 8)
	src := NewLineSource(Seconds(g.Timestep()/10), 1.0, 0, "")
	if err := g.Attach(src, At(Cells(4)), At(Cells(4)), At(Cells(4))); err == nil {
		t.Error("expected registration error for sub-timestep period")
	}
}
