package export

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/eulercauchy/internal/dynamo"
	"github.com/san-kum/eulercauchy/internal/storage"
)

func sample() (storage.RunMetadata, *dynamo.Result) {
	meta := storage.RunMetadata{
		ID:      "run1",
		Model:   "zero",
		Problem: dynamo.Problem{T0: 0, H: 0.5, TFinal: 1, Y0: 2},
	}
	result := &dynamo.Result{
		Times:       []float64{0, 0.5, 1},
		Values:      []float64{2, 2, 2},
		Evaluations: 2,
	}
	return meta, result
}

func TestJSON(t *testing.T) {
	meta, result := sample()

	var buf bytes.Buffer
	if err := JSON(&buf, meta, result); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var decoded struct {
		ID     string    `json:"id"`
		Points int       `json:"points"`
		Times  []float64 `json:"times"`
		Values []float64 `json:"values"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	if decoded.ID != "run1" || decoded.Points != 3 {
		t.Errorf("unexpected header %+v", decoded)
	}
	if len(decoded.Values) != 3 || decoded.Values[2] != 2 {
		t.Errorf("unexpected values %v", decoded.Values)
	}
}

func TestJSON_NonFinite(t *testing.T) {
	meta, result := sample()
	result.Values[2] = math.Inf(1)

	var buf bytes.Buffer
	if err := JSON(&buf, meta, result); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	if !strings.Contains(buf.String(), "null") {
		t.Error("expected non-finite value encoded as null")
	}
}

func TestJSONFile(t *testing.T) {
	meta, result := sample()
	path := filepath.Join(t.TempDir(), "run.json")

	if err := JSONFile(path, meta, result); err != nil {
		t.Fatalf("JSONFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"model": "zero"`) {
		t.Errorf("unexpected file content %s", data)
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	_, result := sample()
	result.Values = []float64{1, 2, 4}

	svg := TrajectoryToSVG(result, 200, 100, "#00ff88")
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("malformed svg document")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
}

func TestSVG_TooShort(t *testing.T) {
	result := &dynamo.Result{Times: []float64{0}, Values: []float64{1}}

	var buf bytes.Buffer
	if err := SVG(&buf, result, 100, 100, "#fff"); err == nil {
		t.Error("expected error for single sample")
	}
}
