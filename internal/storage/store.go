// Package storage persists simulation runs as per-run directories holding
// JSON metadata and a CSV probe trace.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata summarizes one persisted simulation run.
type RunMetadata struct {
	ID            string             `json:"id"`
	Timestamp     time.Time          `json:"timestamp"`
	Shape         [3]int             `json:"shape"`
	GridSpacing   float64            `json:"grid_spacing"`
	CourantNumber float64            `json:"courant_number"`
	Timestep      float64            `json:"timestep"`
	Steps         int                `json:"steps"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes metadata and the probe trace of a run and returns its ID.
func (s *Store) Save(meta RunMetadata, trace []float64) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()

	metaFile, err := os.Create(filepath.Join(runDir, "meta.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	encoder := json.NewEncoder(metaFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(meta); err != nil {
		return "", err
	}

	traceFile, err := os.Create(filepath.Join(runDir, "trace.csv"))
	if err != nil {
		return "", err
	}
	defer traceFile.Close()

	w := csv.NewWriter(traceFile)
	if err := w.Write([]string{"step", "e_z"}); err != nil {
		return "", err
	}
	for i, v := range trace {
		record := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return runID, w.Error()
}

// List returns the metadata of every stored run, newest last.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue // skip corrupt runs
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// Load reads the metadata of one run.
func (s *Store) Load(runID string) (RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "meta.json"))
	if err != nil {
		return RunMetadata{}, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return RunMetadata{}, err
	}
	return meta, nil
}

// LoadTrace reads the probe trace of one run.
func (s *Store) LoadTrace(runID string) ([]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "trace.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	var trace []float64
	for i, record := range records {
		if i == 0 {
			continue // header
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("storage: malformed trace row %d", i)
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, err
		}
		trace = append(trace, v)
	}
	return trace, nil
}
