package compute

import (
	"runtime"
	"sync"
)

// parallelThreshold is the slice length below which the chunked path costs
// more than it saves.
const parallelThreshold = 1 << 15

// Serial is the single-threaded reference backend.
type Serial struct{}

func NewSerial() *Serial { return &Serial{} }

func (s *Serial) Name() string { return "serial" }

func (s *Serial) MulAddScaled(dst, coeff, src []float64, scale float64) {
	for i := range dst {
		dst[i] += scale * coeff[i] * src[i]
	}
}

// CPU is a worker-pool backend that splits the slice into one chunk per
// worker. Small slices fall back to the serial loop.
type CPU struct {
	workers int
}

func NewCPU() *CPU {
	return &CPU{workers: runtime.NumCPU()}
}

func (c *CPU) Name() string { return "cpu" }

func (c *CPU) MulAddScaled(dst, coeff, src []float64, scale float64) {
	n := len(dst)
	if n < parallelThreshold || c.workers < 2 {
		for i := 0; i < n; i++ {
			dst[i] += scale * coeff[i] * src[i]
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}

			for i := start; i < end; i++ {
				dst[i] += scale * coeff[i] * src[i]
			}
		}(w)
	}

	wg.Wait()
}
