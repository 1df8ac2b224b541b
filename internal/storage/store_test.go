package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/eulercauchy/internal/dynamo"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		Times:       []float64{0, 0.1, 0.2, 0.30000000000000004},
		Values:      []float64{1, 1.1, 1.2100000000000002, 1.3310000000000004},
		Evaluations: 3,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Model:   "growth",
		Params:  map[string]float64{"k": 1},
		Problem: dynamo.Problem{T0: 0, H: 0.1, TFinal: 0.3, Y0: 1},
	}

	runID, err := st.Save(meta, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Model != "growth" {
		t.Errorf("expected model 'growth', got '%s'", loaded.Model)
	}
	if loaded.Problem.H != 0.1 {
		t.Errorf("expected h 0.1, got %v", loaded.Problem.H)
	}
	if loaded.Points != 4 || loaded.Evaluations != 3 {
		t.Errorf("expected 4 points and 3 evaluations, got %d and %d", loaded.Points, loaded.Evaluations)
	}
	if loaded.Final != 1.3310000000000004 {
		t.Errorf("unexpected final %v", loaded.Final)
	}

	times, values, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	want := testResult()
	for i := range want.Values {
		if times[i] != want.Times[i] || values[i] != want.Values[i] {
			t.Errorf("row %d: got (%v, %v), want (%v, %v)", i, times[i], values[i], want.Times[i], want.Values[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second, err := st.Save(RunMetadata{Model: "decay", Timestamp: base.Add(time.Minute)}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	first, err := st.Save(RunMetadata{Model: "growth", Timestamp: base}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("runs not ordered by timestamp: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Model: "zero"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "states.csv")); os.IsNotExist(err) {
		t.Error("states.csv not created")
	}
}

func TestStoreDiverged(t *testing.T) {
	st := New(t.TempDir())
	result := &dynamo.Result{
		Times:       []float64{0, 1},
		Values:      []float64{1, math.Inf(1)},
		Evaluations: 1,
	}

	runID, err := st.Save(RunMetadata{Model: "growth"}, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !meta.Diverged {
		t.Error("expected diverged flag")
	}

	_, values, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if !math.IsInf(values[1], 1) {
		t.Errorf("expected +Inf round trip, got %v", values[1])
	}
}

func TestStoreErrors(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, _, err := st.LoadStates("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	bad := &dynamo.Result{Times: []float64{0}, Values: []float64{1, 2}}
	if _, err := st.Save(RunMetadata{Model: "growth"}, bad); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := st.Save(RunMetadata{Model: "growth"}, nil); !errors.Is(err, dynamo.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for nil result, got %v", err)
	}
}

func TestLoadResult(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Model: "growth"}, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, result, err := st.LoadResult(runID)
	if err != nil {
		t.Fatalf("load result failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("expected id %s, got %s", runID, meta.ID)
	}
	if len(result.Values) != 4 || result.Evaluations != 3 {
		t.Errorf("unexpected result %+v", result)
	}
}
