package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/san-kum/eulercauchy/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

// ErrRunNotFound is returned when a run directory has no metadata.
var ErrRunNotFound = errors.New("storage: run not found")

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
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Params      map[string]float64 `json:"params,omitempty"`
	Problem     dynamo.Problem     `json:"problem"`
	Timestamp   time.Time          `json:"timestamp"`
	Points      int                `json:"points"`
	Evaluations int                `json:"evaluations"`
	Final       float64            `json:"final"`
	Diverged    bool               `json:"diverged,omitempty"`
}

// NewID generates a time-ordered run identifier.
func NewID() string {
	return ulid.Make().String()
}

// Describe fills the result-derived fields of meta.
func Describe(meta RunMetadata, result *dynamo.Result) RunMetadata {
	meta.Points = len(result.Values)
	meta.Evaluations = result.Evaluations
	final := result.Final()
	if math.IsNaN(final) || math.IsInf(final, 0) {
		meta.Diverged = true
		final = 0
	}
	meta.Final = final
	return meta
}

// Save writes metadata.json and states.csv under a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, result *dynamo.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("%w: nil result", dynamo.ErrInvalidArgument)
	}
	if len(result.Times) != len(result.Values) {
		return "", fmt.Errorf("storage: %d times for %d values", len(result.Times), len(result.Values))
	}

	if meta.ID == "" {
		meta.ID = NewID()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now().UTC()
	}
	meta = Describe(meta, result)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}
	return f.Close()
}

func writeStates(path string, result *dynamo.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "y"}); err != nil {
		return err
	}
	for i := range result.Values {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'g', -1, 64),
			strconv.FormatFloat(result.Values[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// List returns all readable runs, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", metaPath, err)
	}

	return &meta, nil
}

// LoadStates reads the time grid and solution sequence of a run.
func (s *Store) LoadStates(runID string) ([]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, statesFile)
	file, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 2

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	values := make([]float64, 0, len(records)-1)

	for i, record := range records[1:] {
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: row %d time: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("storage: row %d value: %w", i+1, err)
		}
		times = append(times, t)
		values = append(values, y)
	}

	return times, values, nil
}

// LoadResult reassembles a stored run as a result.
func (s *Store) LoadResult(runID string) (*RunMetadata, *dynamo.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	times, values, err := s.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, &dynamo.Result{Times: times, Values: values, Evaluations: meta.Evaluations}, nil
}
