package fdtd

import "fmt"

// Distance is a grid coordinate given either as a cell index or as a
// physical distance in meters. Physical values are converted to cell
// indices by the owning grid; index values pass through unchanged.
type Distance struct {
	cells    int
	meters   float64
	physical bool
}

// Cells returns a Distance expressed directly in grid cells.
func Cells(n int) Distance { return Distance{cells: n} }

// Meters returns a Distance expressed as a physical length.
func Meters(m float64) Distance { return Distance{meters: m, physical: true} }

// Duration is a span of simulation time given either as a number of
// timesteps or as physical seconds.
type Duration struct {
	steps    int
	seconds  float64
	physical bool
}

// Steps returns a Duration expressed directly in timesteps.
func Steps(n int) Duration { return Duration{steps: n} }

// Seconds returns a Duration expressed as physical time.
func Seconds(s float64) Duration { return Duration{seconds: s, physical: true} }

type keyKind int

const (
	keyAt keyKind = iota
	keyList
	keySpan
	keyWhole
)

// Key selects cells along one grid axis. It is a closed set of variants
// mirroring scalar, list and slice indexing: construct one with At, List,
// Span, SpanStep or Whole.
type Key struct {
	kind        keyKind
	at          Distance
	list        []Distance
	start, stop Distance
	step        int
}

// At selects a single cell.
func At(d Distance) Key { return Key{kind: keyAt, at: d} }

// List selects an explicit set of cells.
func List(ds ...Distance) Key { return Key{kind: keyList, list: ds} }

// Span selects the half-open range [start, stop).
func Span(start, stop Distance) Key {
	return Key{kind: keySpan, start: start, stop: stop, step: 1}
}

// SpanStep selects every step-th cell of the half-open range [start, stop).
func SpanStep(start, stop Distance, step int) Key {
	return Key{kind: keySpan, start: start, stop: stop, step: step}
}

// Whole selects the entire axis.
func Whole() Key { return Key{kind: keyWhole} }

// AxisIndex is a resolved per-axis cell selection handed to a component's
// Register callback. Indices always lists every selected cell; IsSpan
// records whether the selection came from a contiguous range, in which case
// Start and Stop hold its half-open bounds.
type AxisIndex struct {
	Indices []int
	IsSpan  bool
	Start   int
	Stop    int
}

// resolveDistance converts a Distance to a cell index. Physical values use
// the round-half-up convention floor(m/spacing + 0.5); index values pass
// through unchanged.
func (g *Grid) resolveDistance(d Distance) int {
	if d.physical {
		return int(d.meters/g.gridSpacing + 0.5)
	}
	return d.cells
}

// resolveTime converts a Duration to a timestep count with the same
// round-half-up convention, using the grid's derived timestep.
func (g *Grid) resolveTime(t Duration) int {
	if t.physical {
		return int(t.seconds/g.timestep + 0.5)
	}
	return t.steps
}

// resolveShape validates a shape tuple and converts it component-wise.
func (g *Grid) resolveShape(shape []Distance) (nx, ny, nz int, err error) {
	if len(shape) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: got %d dimensions", ErrInvalidShape, len(shape))
	}
	nx = g.resolveDistance(shape[0])
	ny = g.resolveDistance(shape[1])
	nz = g.resolveDistance(shape[2])
	if nx < 1 || ny < 1 || nz < 1 {
		return 0, 0, 0, fmt.Errorf("%w: resolved to (%d, %d, %d)", ErrInvalidShape, nx, ny, nz)
	}
	return nx, ny, nz, nil
}

// normalizeIndex maps negative indices to their offset from the end of the
// axis, matching the slice semantics of the usual array engines.
func normalizeIndex(i, size int) int {
	if i < 0 {
		return i + size
	}
	return i
}

// clampIndex confines a span bound to [0, size]. Spans clamp, slice-style;
// single-cell indices error instead.
func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i > size {
		return size
	}
	return i
}

// resolveKey normalizes one axis key into an AxisIndex for an axis of the
// given size.
func (g *Grid) resolveKey(k Key, size int) (AxisIndex, error) {
	switch k.kind {
	case keyAt:
		i := normalizeIndex(g.resolveDistance(k.at), size)
		if i < 0 || i >= size {
			return AxisIndex{}, fmt.Errorf("%w: %d on axis of size %d", ErrIndexOutOfRange, i, size)
		}
		return AxisIndex{Indices: []int{i}}, nil

	case keyList:
		indices := make([]int, len(k.list))
		for n, d := range k.list {
			i := normalizeIndex(g.resolveDistance(d), size)
			if i < 0 || i >= size {
				return AxisIndex{}, fmt.Errorf("%w: %d on axis of size %d", ErrIndexOutOfRange, i, size)
			}
			indices[n] = i
		}
		return AxisIndex{Indices: indices}, nil

	case keySpan:
		if k.step < 1 {
			return AxisIndex{}, fmt.Errorf("emgrid: span step must be positive, got %d", k.step)
		}
		start := clampIndex(normalizeIndex(g.resolveDistance(k.start), size), size)
		stop := clampIndex(normalizeIndex(g.resolveDistance(k.stop), size), size)
		indices := []int{}
		for i := start; i < stop; i += k.step {
			indices = append(indices, i)
		}
		return AxisIndex{Indices: indices, IsSpan: true, Start: start, Stop: stop}, nil

	default: // keyWhole
		indices := make([]int, size)
		for i := range indices {
			indices[i] = i
		}
		return AxisIndex{Indices: indices, IsSpan: true, Start: 0, Stop: size}, nil
	}
}
