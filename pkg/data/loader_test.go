package data

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadTable(t *testing.T) {
	path := writeCSV(t, "id,diagnosis,radius_mean,note\n1,M,17.5,a\n2,B,,b\n3,B,NA,\n")

	tbl, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"id", "diagnosis", "radius_mean", "note"}, tbl.Header)
	assert.True(t, tbl.Has("diagnosis"))
	assert.Equal(t, -1, tbl.Index("class"))

	radius := tbl.Floats(tbl.Index("radius_mean"))
	assert.Equal(t, 17.5, radius[0])
	assert.True(t, math.IsNaN(radius[1]))
	assert.True(t, math.IsNaN(radius[2]))

	assert.True(t, tbl.IsNumeric(tbl.Index("radius_mean")))
	assert.False(t, tbl.IsNumeric(tbl.Index("note")))
	assert.False(t, tbl.AllMissing(tbl.Index("note")))
}

func TestLoadTableByteOrderMark(t *testing.T) {
	tbl, err := LoadTable(writeCSV(t, "\ufeffid,diagnosis,a\n1,M,2\n2,B,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "diagnosis", "a"}, tbl.Header)
	assert.Equal(t, 0, tbl.Index("id"))

	tbl, err = ReadTable(strings.NewReader("\ufeff\"diagnosis\",a\nM,2\n"))
	require.NoError(t, err)
	assert.True(t, tbl.Has("diagnosis"))
}

func TestLoadTableErrors(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	_, err = LoadTable(writeCSV(t, ""))
	require.ErrorIs(t, err, ErrEmptyTable)

	_, err = LoadTable(writeCSV(t, "a,b\n"))
	require.ErrorIs(t, err, ErrEmptyTable)

	_, err = LoadTable(writeCSV(t, "a,b\n1,2\n3\n"))
	require.ErrorContains(t, err, "row 2")

	_, err = ReadTable(strings.NewReader("a,a\n1,2\n"))
	require.ErrorContains(t, err, "duplicate column")
}

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", " ", "NA", "NaN", "nan", "null", "None"} {
		assert.True(t, IsMissing(v), v)
	}
	assert.False(t, IsMissing("0"))
}

func TestCacheLoadsOnce(t *testing.T) {
	calls := 0
	c := NewCache()
	c.load = func(path string) (*Table, error) {
		calls++
		return NewTable([]string{"a"}, [][]string{{"1"}})
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Load("x.csv")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	first, _ := c.Load("x.csv")
	second, _ := c.Load("x.csv")
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}
