package field

import "testing"

func TestIndexRoundTrip(t *testing.T) {
	f := New(2, 3, 4)

	if len(f.Data) != 2*3*4*Components {
		t.Fatalf("expected %d elements, got %d", 2*3*4*Components, len(f.Data))
	}

	f.Set(1, 2, 3, Z, 1.5)
	f.Set(0, 0, 0, X, -2.0)
	f.Add(1, 2, 3, Z, 0.5)

	if got := f.At(1, 2, 3, Z); got != 2.0 {
		t.Errorf("expected 2.0, got %g", got)
	}
	if got := f.At(0, 0, 0, X); got != -2.0 {
		t.Errorf("expected -2.0, got %g", got)
	}
	if got := f.At(1, 2, 3, Y); got != 0 {
		t.Errorf("expected untouched component to stay 0, got %g", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := New(2, 2, 2)
	f.Set(1, 1, 1, Y, 3.0)

	c := f.Clone()
	c.Set(1, 1, 1, Y, -1.0)

	if got := f.At(1, 1, 1, Y); got != 3.0 {
		t.Errorf("clone mutation leaked into original: %g", got)
	}
}

func TestZeroAndFill(t *testing.T) {
	f := New(2, 2, 2)
	f.Fill(4.0)

	if got := f.At(0, 1, 0, Z); got != 4.0 {
		t.Fatalf("fill failed: %g", got)
	}
	if got := f.MaxAbs(); got != 4.0 {
		t.Errorf("expected MaxAbs 4.0, got %g", got)
	}

	f.Zero()
	for _, v := range f.Data {
		if v != 0 {
			t.Fatalf("zero failed: found %g", v)
		}
	}
}

func TestMaxAbsNegative(t *testing.T) {
	f := New(1, 1, 2)
	f.Set(0, 0, 1, X, -7.0)
	f.Set(0, 0, 0, Y, 3.0)

	if got := f.MaxAbs(); got != 7.0 {
		t.Errorf("expected 7.0, got %g", got)
	}
}
