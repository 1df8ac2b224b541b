package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/san-kum/eulercauchy/internal/dynamo"
	"github.com/san-kum/eulercauchy/internal/storage"
)

type ExportData struct {
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Params      map[string]float64 `json:"params,omitempty"`
	Problem     dynamo.Problem     `json:"problem"`
	Points      int                `json:"points"`
	Evaluations int                `json:"evaluations"`
	Times       []float64          `json:"times"`
	Values      []*float64         `json:"values"`
}

// NewExportData pairs run metadata with its trajectory. Non-finite values
// become null since JSON has no encoding for them.
func NewExportData(meta storage.RunMetadata, result *dynamo.Result) ExportData {
	values := make([]*float64, len(result.Values))
	for i := range result.Values {
		v := result.Values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values[i] = &v
	}

	return ExportData{
		ID:          meta.ID,
		Model:       meta.Model,
		Params:      meta.Params,
		Problem:     meta.Problem,
		Points:      len(result.Values),
		Evaluations: result.Evaluations,
		Times:       result.Times,
		Values:      values,
	}
}

func JSON(w io.Writer, meta storage.RunMetadata, result *dynamo.Result) error {
	if result == nil {
		return fmt.Errorf("%w: nil result", dynamo.ErrInvalidArgument)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}

func JSONFile(path string, meta storage.RunMetadata, result *dynamo.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := JSON(file, meta, result); err != nil {
		return err
	}
	return file.Close()
}
