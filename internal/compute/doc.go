// Package compute provides the elementwise-arithmetic backends used by the
// solver's field updates.
//
// A Backend executes the fused multiply-add kernel at the heart of every
// half-step:
//
//	dst[i] += scale * coeff[i] * src[i]
//
// Two implementations exist:
//
//   - Serial: straight loop, predictable and allocation-free
//   - CPU: chunked worker-pool loop for large grids
//
// Backends are selected explicitly at grid construction; there is no
// process-wide backend state.
package compute
