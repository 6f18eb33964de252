package dataprep

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/data"
)

// ErrLabelColumnNotFound means neither "diagnosis" nor "class" is present.
var ErrLabelColumnNotFound = errors.New("could not find target column, make sure it is named 'diagnosis' or 'class'")

// LabelValueError reports a label cell that cannot be mapped to 0/1.
type LabelValueError struct {
	Column string
	Row    int // 1-based data row
	Value  string
}

func (e *LabelValueError) Error() string {
	return fmt.Sprintf("dataprep: column %q row %d: label %q is not binary", e.Column, e.Row, e.Value)
}

// DropReason says why a column was left out of the feature table.
type DropReason string

const (
	DropAllMissing DropReason = "all-missing"
	DropNonNumeric DropReason = "non-numeric"
)

// DroppedColumn records a silently dropped feature column.
type DroppedColumn struct {
	Name   string
	Reason DropReason
}

// Dataset is the preprocessed feature table and label vector.
type Dataset struct {
	Features []string    // raw column names in header order
	X        [][]float64 // rows x len(Features), no NaNs
	Y        []int       // 0 benign, 1 malignant
	Label    LabelSchema
	Dropped  []DroppedColumn
	Imputer  *MedianImputer
}

// Preprocess turns a raw table into (X, y).
func Preprocess(t *data.Table) (*Dataset, error) {
	label := DetectLabel(t)
	if label.Kind == LabelUnrecognized {
		return nil, ErrLabelColumnNotFound
	}

	y, err := encodeLabels(t, label)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Label: label, Y: y}
	var cols []int
	for c, name := range t.Header {
		if c == label.Index || name == IDColumn {
			continue
		}
		switch {
		case t.AllMissing(c):
			ds.Dropped = append(ds.Dropped, DroppedColumn{name, DropAllMissing})
		case !t.IsNumeric(c):
			ds.Dropped = append(ds.Dropped, DroppedColumn{name, DropNonNumeric})
		default:
			cols = append(cols, c)
			ds.Features = append(ds.Features, name)
		}
	}
	if len(cols) == 0 {
		return nil, errors.New("dataprep: no numeric feature columns")
	}

	raw := make([][]float64, t.Len())
	for i := range raw {
		raw[i] = make([]float64, len(cols))
	}
	for j, c := range cols {
		for i, v := range t.Floats(c) {
			raw[i][j] = v
		}
	}

	ds.Imputer = NewMedianImputer()
	if ds.X, err = ds.Imputer.FitTransform(raw); err != nil {
		return nil, fmt.Errorf("dataprep: %w", err)
	}
	return ds, nil
}

func encodeLabels(t *data.Table, label LabelSchema) ([]int, error) {
	cells := t.Column(label.Index)
	y := make([]int, len(cells))
	for i, v := range cells {
		var (
			lab int
			ok  bool
		)
		switch label.Kind {
		case LabelDiagnosis:
			lab, ok = diagnosisLabel(v)
		case LabelClass:
			lab, ok = classLabel(v)
		}
		if !ok {
			return nil, &LabelValueError{Column: label.Column, Row: i + 1, Value: v}
		}
		y[i] = lab
	}
	return y, nil
}

func diagnosisLabel(v string) (int, bool) {
	switch v {
	case "M":
		return 1, true
	case "B":
		return 0, true
	}
	return 0, false
}

func classLabel(v string) (int, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	switch f {
	case 0:
		return 0, true
	case 1:
		return 1, true
	}
	return 0, false
}
