package charts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBar(t *testing.T) {
	svg, err := Bar("Incidence", "Cases", []string{"Asia", "Europe"}, []float64{60, 85})
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	assert.Contains(t, string(svg), "Incidence")

	_, err = Bar("x", "y", []string{"a"}, []float64{1, 2})
	require.Error(t, err)
}

func TestLine(t *testing.T) {
	svg, err := Line("Cases", "Year", "Millions", []float64{2000, 2005}, []float64{1, 1.3})
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")

	_, err = Line("x", "y", "z", nil, nil)
	require.Error(t, err)
}
