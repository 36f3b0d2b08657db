// Package fdtd implements a finite-difference time-domain solver for
// Maxwell's curl equations on a staggered 3D Yee grid.
//
// The package defines the core simulation primitives:
//
//   - [Grid]: owns the E and H field arrays and drives the leapfrog loop
//   - [CurlE], [CurlH]: discrete curl operators encoding the Yee staggering
//   - [Distance], [Duration], [Key]: physical-unit and index resolution
//   - [Source], [Boundary], [Detector], [Object]: component contracts
//   - [LineSource]: sinusoidal line source with a Gaussian spatial profile
//
// # Example
//
//	g, _ := fdtd.New([]fdtd.Distance{fdtd.Cells(20), fdtd.Cells(20), fdtd.Cells(20)}, nil)
//	src := fdtd.NewLineSource(fdtd.Steps(15), 1.0, 0, "src")
//	_ = g.Attach(src, fdtd.At(fdtd.Cells(10)), fdtd.At(fdtd.Cells(10)), fdtd.At(fdtd.Cells(10)))
//	_ = g.Run(ctx, fdtd.Steps(100), nil)
//
// # Thread Safety
//
// Grid instances are NOT thread-safe. A step is a sequence of in-place
// array mutations with a single writer; any parallelism lives inside the
// compute backend's elementwise kernels.
package fdtd
