package fdtd

import "github.com/skoram/emgrid/internal/field"

// CurlE transforms an E-type field (components on integer grid points) into
// an H-type curl on half-integer points. Differences are taken forward, so
// the last cell along each differenced axis stays zero: there is no "+1"
// neighbor to difference against.
//
// The input is never mutated; a fresh zero-filled field is returned.
func CurlE(e *field.Field) *field.Field {
	c := field.New(e.Nx, e.Ny, e.Nz)

	for x := 0; x < e.Nx; x++ {
		for y := 0; y < e.Ny; y++ {
			for z := 0; z < e.Nz; z++ {
				if y+1 < e.Ny {
					c.Add(x, y, z, field.X, e.At(x, y+1, z, field.Z)-e.At(x, y, z, field.Z))
				}
				if z+1 < e.Nz {
					c.Add(x, y, z, field.X, -(e.At(x, y, z+1, field.Y) - e.At(x, y, z, field.Y)))
				}

				if z+1 < e.Nz {
					c.Add(x, y, z, field.Y, e.At(x, y, z+1, field.X)-e.At(x, y, z, field.X))
				}
				if x+1 < e.Nx {
					c.Add(x, y, z, field.Y, -(e.At(x+1, y, z, field.Z) - e.At(x, y, z, field.Z)))
				}

				if x+1 < e.Nx {
					c.Add(x, y, z, field.Z, e.At(x+1, y, z, field.Y)-e.At(x, y, z, field.Y))
				}
				if y+1 < e.Ny {
					c.Add(x, y, z, field.Z, -(e.At(x, y+1, z, field.X) - e.At(x, y, z, field.X)))
				}
			}
		}
	}

	return c
}

// CurlH is the dual of CurlE: it transforms an H-type field on half-integer
// points into an E-type curl on integer points. Differences are taken
// backward and written from index 1 onward; this forward/backward asymmetry
// is what encodes the half-cell offset between the two lattices.
//
// The input is never mutated; a fresh zero-filled field is returned.
func CurlH(h *field.Field) *field.Field {
	c := field.New(h.Nx, h.Ny, h.Nz)

	for x := 0; x < h.Nx; x++ {
		for y := 0; y < h.Ny; y++ {
			for z := 0; z < h.Nz; z++ {
				if y > 0 {
					c.Add(x, y, z, field.X, h.At(x, y, z, field.Z)-h.At(x, y-1, z, field.Z))
				}
				if z > 0 {
					c.Add(x, y, z, field.X, -(h.At(x, y, z, field.Y) - h.At(x, y, z-1, field.Y)))
				}

				if z > 0 {
					c.Add(x, y, z, field.Y, h.At(x, y, z, field.X)-h.At(x, y, z-1, field.X))
				}
				if x > 0 {
					c.Add(x, y, z, field.Y, -(h.At(x, y, z, field.Z) - h.At(x-1, y, z, field.Z)))
				}

				if x > 0 {
					c.Add(x, y, z, field.Z, h.At(x, y, z, field.Y)-h.At(x-1, y, z, field.Y))
				}
				if y > 0 {
					c.Add(x, y, z, field.Z, -(h.At(x, y, z, field.X) - h.At(x, y-1, z, field.X)))
				}
			}
		}
	}

	return c
}
