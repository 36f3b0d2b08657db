// Package field provides dense vector-field arrays on a regular 3D grid.
//
// A Field stores three float64 components per cell in a single flat slice,
// laid out cell-major so elementwise kernels can operate on the backing
// slice directly.
package field

// Component indices into the last axis of a Field.
const (
	X = iota
	Y
	Z

	// Components is the number of vector components per cell.
	Components
)

// Field is a dense (Nx, Ny, Nz, 3) array of float64.
type Field struct {
	Nx, Ny, Nz int
	Data       []float64
}

// New allocates a zero-filled field of the given cell dimensions.
func New(nx, ny, nz int) *Field {
	return &Field{
		Nx:   nx,
		Ny:   ny,
		Nz:   nz,
		Data: make([]float64, nx*ny*nz*Components),
	}
}

func (f *Field) index(x, y, z, c int) int {
	return ((x*f.Ny+y)*f.Nz+z)*Components + c
}

// At returns component c of the cell at (x, y, z).
func (f *Field) At(x, y, z, c int) float64 {
	return f.Data[f.index(x, y, z, c)]
}

// Set stores v as component c of the cell at (x, y, z).
func (f *Field) Set(x, y, z, c int, v float64) {
	f.Data[f.index(x, y, z, c)] = v
}

// Add accumulates v into component c of the cell at (x, y, z).
func (f *Field) Add(x, y, z, c int, v float64) {
	f.Data[f.index(x, y, z, c)] += v
}

// Zero resets every component to 0 in place.
func (f *Field) Zero() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

// Fill sets every component to v in place.
func (f *Field) Fill(v float64) {
	for i := range f.Data {
		f.Data[i] = v
	}
}

// Clone returns an independent copy of the field.
func (f *Field) Clone() *Field {
	c := New(f.Nx, f.Ny, f.Nz)
	copy(c.Data, f.Data)
	return c
}

// MaxAbs returns the largest absolute component value in the field.
func (f *Field) MaxAbs() float64 {
	max := 0.0
	for _, v := range f.Data {
		if v < 0 {
			v = -v
		}
		if v > max {
			max = v
		}
	}
	return max
}
