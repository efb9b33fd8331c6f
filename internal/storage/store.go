// Package storage persists simulation runs to disk: one directory per
// run with metadata.json and CSV series. Large fields (the 3D box)
// store per-step summary statistics; low-dimensional states store
// every component.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/datawolf04/physlab/internal/dynamo"
)

// fullStateLimit is the largest state dimension written column by
// column; bigger states get mean/min/max summary columns instead.
const fullStateLimit = 16

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Experiment string             `json:"experiment"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Steps      int                `json:"steps"`
	Completed  bool               `json:"completed"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(experiment, integrator string, dt, duration float64, result *dynamo.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", experiment, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Experiment: experiment,
		Timestamp:  time.Now(),
		Dt:         dt,
		Duration:   duration,
		Integrator: integrator,
		Steps:      result.StepsTaken,
		Completed:  result.Completed,
		Metrics:    result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeSeries(runDir, result); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeSeries(runDir string, result *dynamo.Result) error {
	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.States) == 0 {
		return nil
	}

	dim := len(result.States[0])
	summary := dim > fullStateLimit

	header := []string{"time"}
	if summary {
		header = append(header, "mean", "min", "max")
	} else {
		for i := 0; i < dim; i++ {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		if summary {
			u := []float64(result.States[i])
			row = append(row,
				strconv.FormatFloat(stat.Mean(u, nil), 'f', 6, 64),
				strconv.FormatFloat(floats.Min(u), 'f', 6, 64),
				strconv.FormatFloat(floats.Max(u), 'f', 6, 64),
			)
		} else {
			for _, val := range result.States[i] {
				row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// SaveField writes a full scalar field as a single-column CSV next to
// the run's series, for snapshot inspection of the 3D box.
func (s *Store) SaveField(runID, name string, field []float64) error {
	path := filepath.Join(s.baseDir, runID, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"value"}); err != nil {
		return err
	}
	for _, v := range field {
		if err := w.Write([]string{strconv.FormatFloat(v, 'g', 9, 64)}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads back the per-step CSV: the header, the time column,
// and one row of values per step.
func (s *Store) LoadSeries(runID string) (header []string, times []float64, rows [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) == 0 {
		return nil, []float64{}, [][]float64{}, nil
	}

	header = records[0]
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		row := make([]float64, 0, len(record)-1)
		for _, cell := range record[1:] {
			val, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}
	return header, times, rows, nil
}
