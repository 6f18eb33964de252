// Package features maps raw dataset columns to friendly display names and
// their meaning in a medical context.
package features

// Info describes one dataset feature.
type Info struct {
	Raw         string
	Name        string
	Description string
}

// Catalog is the fixed friendly-name table, in display order.
var Catalog = []Info{
	{"mean_radius", "Average Cell Size", "Average distance from cell nucleus center to its boundary"},
	{"mean_texture", "Tissue Texture", "Variation in gray-scale values in the image"},
	{"mean_symmetry", "Cell Symmetry", "Symmetry of nucleus shape"},
	{"mean_concavity", "Cell Shape Irregularity", "Severity of concave (indented) parts of nucleus"},
}

// Mapper translates between raw column names and display names for one
// trained schema. Only catalog entries present in the schema are mapped.
type Mapper struct {
	toDisplay map[string]string
	toRaw     map[string]string
}

// NewMapper restricts the catalog to the given raw columns.
func NewMapper(columns []string) *Mapper {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	m := &Mapper{toDisplay: map[string]string{}, toRaw: map[string]string{}}
	for _, info := range Catalog {
		if !present[info.Raw] {
			continue
		}
		m.toDisplay[info.Raw] = info.Name
		m.toRaw[info.Name] = info.Raw
	}
	return m
}

// DisplayName returns the friendly name of raw, or raw itself when unmapped.
func (m *Mapper) DisplayName(raw string) string {
	if d, ok := m.toDisplay[raw]; ok {
		return d
	}
	return raw
}

// RawName reverses DisplayName.
func (m *Mapper) RawName(display string) string {
	if r, ok := m.toRaw[display]; ok {
		return r
	}
	return display
}

// DisplayNames maps every column in order.
func (m *Mapper) DisplayNames(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = m.DisplayName(c)
	}
	return out
}
