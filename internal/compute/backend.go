package compute

// Backend executes elementwise kernels over flat field slices.
type Backend interface {
	Name() string

	// MulAddScaled performs dst[i] += scale*coeff[i]*src[i] over three
	// equal-length slices. Implementations may not retain the slices.
	MulAddScaled(dst, coeff, src []float64, scale float64)
}

// Default returns the backend used when a grid is constructed without an
// explicit choice.
func Default() Backend {
	return NewCPU()
}
