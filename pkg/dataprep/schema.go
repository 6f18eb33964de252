package dataprep

import "github.com/deeptiprasadd/Breast-Cancer-Classification/pkg/data"

// Recognized label and identifier column names.
const (
	DiagnosisColumn = "diagnosis"
	ClassColumn     = "class"
	IDColumn        = "id"
)

// LabelKind tags how the label column of a table was recognized.
type LabelKind int

const (
	LabelUnrecognized LabelKind = iota
	LabelDiagnosis              // "diagnosis" with M/B values
	LabelClass                  // "class" already holding 0/1
)

func (k LabelKind) String() string {
	switch k {
	case LabelDiagnosis:
		return "diagnosis"
	case LabelClass:
		return "class"
	default:
		return "unrecognized"
	}
}

// LabelSchema is the result of label detection.
type LabelSchema struct {
	Kind   LabelKind
	Column string
	Index  int
}

// DetectLabel looks for the label column. "diagnosis" wins over "class".
func DetectLabel(t *data.Table) LabelSchema {
	for _, c := range []struct {
		name string
		kind LabelKind
	}{
		{DiagnosisColumn, LabelDiagnosis},
		{ClassColumn, LabelClass},
	} {
		if i := t.Index(c.name); i >= 0 {
			return LabelSchema{Kind: c.kind, Column: c.name, Index: i}
		}
	}
	return LabelSchema{Kind: LabelUnrecognized, Index: -1}
}
