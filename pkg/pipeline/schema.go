package pipeline

import (
	"fmt"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/dataprep"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/features"
	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/stats"
)

// AgeField is collected by the form but never reaches the model.
const AgeField = "Age"

// Column is one trained feature with the summary used to build its input widget.
type Column struct {
	Raw     string
	Display string
	Min     float64
	Max     float64
	Mean    float64
}

// Schema is the exact feature layout the model was fitted on.
type Schema struct {
	Columns []Column
	mapper  *features.Mapper
}

// MissingFeatureError reports a schema column absent from an input record.
type MissingFeatureError struct {
	Raw     string
	Display string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("pipeline: missing value for feature %q", e.Display)
}

// NewSchema derives the schema and per-column ranges from the feature table.
func NewSchema(ds *dataprep.Dataset) Schema {
	m := features.NewMapper(ds.Features)
	cols := make([]Column, len(ds.Features))
	for j, raw := range ds.Features {
		col := stats.Column(ds.X, j)
		lo, hi := stats.MinMax(col)
		cols[j] = Column{
			Raw:     raw,
			Display: m.DisplayName(raw),
			Min:     lo,
			Max:     hi,
			Mean:    stats.Mean(col),
		}
	}
	return Schema{Columns: cols, mapper: m}
}

// Names returns the raw column names in model order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Raw
	}
	return out
}

// Means returns the column means in model order.
func (s Schema) Means() []float64 {
	out := make([]float64, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Mean
	}
	return out
}

// Mapper returns the friendly-name mapper bound to this schema.
func (s Schema) Mapper() *features.Mapper { return s.mapper }

// Conform reduces a record keyed by display (or raw) names to a feature vector
// in model order. Keys outside the schema, such as Age, are dropped.
func (s Schema) Conform(record map[string]float64) ([]float64, error) {
	byRaw := make(map[string]float64, len(record))
	for k, v := range record {
		if k == AgeField {
			continue
		}
		byRaw[s.mapper.RawName(k)] = v
	}
	out := make([]float64, len(s.Columns))
	for i, c := range s.Columns {
		v, ok := byRaw[c.Raw]
		if !ok {
			return nil, &MissingFeatureError{Raw: c.Raw, Display: c.Display}
		}
		out[i] = v
	}
	return out, nil
}
