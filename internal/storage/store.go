package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/quarkonium/internal/experiment"
)

const (
	metadataFile     = "metadata.json"
	wavefunctionFile = "wavefunctions.csv"
)

var ErrMalformedRun = errors.New("storage: malformed run")

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
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Preset     string        `json:"preset"`
	Quarks     [2]string     `json:"quarks"`
	Timestamp  time.Time     `json:"timestamp"`
	ElapsedMS  int64         `json:"elapsed_ms"`
	Integrator string        `json:"integrator"`
	Slope      float64       `json:"slope"`
	Coulomb    float64       `json:"coulomb"`
	States     []StateRecord `json:"states"`
}

type StateRecord struct {
	N          int                `json:"n"`
	L          int                `json:"l"`
	Label      string             `json:"label"`
	Energy     float64            `json:"energy"`
	Mass       float64            `json:"mass"`
	Iterations int                `json:"iterations"`
	Stop       string             `json:"stop"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Table holds the sampled wavefunctions of one run, one column per state.
type Table struct {
	R      []float64
	Labels []string
	U      [][]float64
}

func (s *Store) Save(res *experiment.Result) (string, error) {
	if len(res.Wavefunctions) == 0 {
		return "", fmt.Errorf("%w: no wavefunctions", ErrMalformedRun)
	}

	runID := fmt.Sprintf("%s_%d", res.Name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Name:       res.Name,
		Preset:     res.Preset.Name,
		Quarks:     [2]string{string(res.Preset.Quarks[0]), string(res.Preset.Quarks[1])},
		Timestamp:  res.Started,
		ElapsedMS:  res.Elapsed.Milliseconds(),
		Integrator: res.Integrator,
		Slope:      res.Slope,
		Coulomb:    res.Preset.Coulomb,
	}
	for _, wf := range res.Wavefunctions {
		meta.States = append(meta.States, StateRecord{
			N:          wf.N,
			L:          wf.L,
			Label:      wf.Label(),
			Energy:     wf.Energy,
			Mass:       wf.Mass,
			Iterations: wf.Iterations,
			Stop:       wf.Stop.String(),
			Metrics:    jsonSafe(wf.Metrics()),
		})
	}
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	table := &Table{R: res.Wavefunctions[0].Grid}
	for _, wf := range res.Wavefunctions {
		table.Labels = append(table.Labels, wf.Label())
		table.U = append(table.U, wf.U)
	}
	if err := writeTable(filepath.Join(runDir, wavefunctionFile), table); err != nil {
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTable(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return t.WriteCSV(f)
}

// WriteCSV writes a header of r and the state labels, then one row per sample.
func (t *Table) WriteCSV(out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(append([]string{"r"}, t.Labels...)); err != nil {
		return err
	}
	row := make([]string, len(t.U)+1)
	for i, r := range t.R {
		row[0] = strconv.FormatFloat(r, 'g', -1, 64)
		for j, u := range t.U {
			row[j+1] = strconv.FormatFloat(u[i], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// jsonSafe drops values encoding/json cannot represent.
func jsonSafe(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out[k] = v
		}
	}
	return out
}

// List returns stored runs, newest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRun, runID, err)
	}
	return &meta, nil
}

// Latest returns the ID of the newest stored run.
func (s *Store) Latest() (string, error) {
	runs, err := s.List()
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", os.ErrNotExist
	}
	return runs[0].ID, nil
}

func (s *Store) LoadWavefunctions(runID string) (*Table, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, wavefunctionFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRun, runID, err)
	}
	if len(records) < 1 || len(records[0]) < 2 {
		return nil, fmt.Errorf("%w: %s: missing header", ErrMalformedRun, runID)
	}

	t := &Table{
		Labels: records[0][1:],
		R:      make([]float64, 0, len(records)-1),
		U:      make([][]float64, len(records[0])-1),
	}
	for i := 1; i < len(records); i++ {
		vals := make([]float64, len(records[i]))
		for j, field := range records[i] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %s line %d: %v", ErrMalformedRun, runID, i+1, err)
			}
			vals[j] = v
		}
		t.R = append(t.R, vals[0])
		for j := range t.U {
			t.U[j] = append(t.U[j], vals[j+1])
		}
	}
	return t, nil
}
