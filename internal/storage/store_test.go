package storage

import (
	"testing"
)

func TestSaveListLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Shape:         [3]int{20, 20, 20},
		GridSpacing:   25e-9,
		CourantNumber: 0.5716,
		Timestep:      4.77e-17,
		Steps:         30,
		Metrics:       map[string]float64{"peak_e_z": 0.25},
	}
	trace := []float64{0, 0.1, 0.2, 0.15, -0.05}

	runID, err := st.Save(meta, trace)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("empty run ID")
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].ID != runID {
		t.Errorf("expected ID %s, got %s", runID, runs[0].ID)
	}
	if runs[0].Steps != 30 {
		t.Errorf("expected 30 steps, got %d", runs[0].Steps)
	}
	if runs[0].Metrics["peak_e_z"] != 0.25 {
		t.Errorf("metrics did not round-trip: %v", runs[0].Metrics)
	}

	loaded, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(loaded) != len(trace) {
		t.Fatalf("expected %d samples, got %d", len(trace), len(loaded))
	}
	for i := range trace {
		if loaded[i] != trace[i] {
			t.Errorf("sample %d: expected %g, got %g", i, trace[i], loaded[i])
		}
	}
}

func TestListEmptyStore(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(t.TempDir() + "/never-created")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should not error: %v", err)
	}
	if runs != nil {
		t.Errorf("expected nil runs, got %v", runs)
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load("run_missing"); err == nil {
		t.Error("expected error for unknown run")
	}
}
