package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"
)

// ErrEmptyTable is returned when a CSV has no header or no data rows.
var ErrEmptyTable = errors.New("data: table has no rows")

// missingTokens are the cell values treated as missing.
var missingTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(cell string) bool {
	_, ok := missingTokens[strings.TrimSpace(cell)]
	return ok
}

// Table is an immutable in-memory CSV: one header and rows of raw cells.
type Table struct {
	Header []string
	Rows   [][]string
	index  map[string]int
}

// NewTable builds a Table, validating that every row matches the header width.
func NewTable(header []string, rows [][]string) (*Table, error) {
	if len(header) == 0 || len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		header[i] = h
		if _, dup := idx[h]; dup {
			return nil, fmt.Errorf("data: duplicate column %q", h)
		}
		idx[h] = i
	}
	for r, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("data: row %d has %d fields, header has %d", r+1, len(row), len(header))
		}
	}
	return &Table{Header: header, Rows: rows, index: idx}, nil
}

// ReadTable parses CSV from r. The first record is the header. A leading UTF-8
// byte order mark is skipped.
func ReadTable(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if c, _, err := br.ReadRune(); err == nil && c != '\ufeff' {
		_ = br.UnreadRune()
	}
	reader := csv.NewReader(br)
	// width is checked by NewTable so the error can name the row
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("data: read header: %w", err)
	}
	header = append([]string(nil), header...)

	var rows [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("data: read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}
	return NewTable(header, rows)
}

// LoadTable reads the CSV file at path.
func LoadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("data: open %s: %w", path, err)
	}
	defer file.Close()

	t, err := ReadTable(file)
	if err != nil {
		return nil, fmt.Errorf("data: load %s: %w", path, err)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Index returns the position of a column, or -1.
func (t *Table) Index(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Column returns the raw cells of column c.
func (t *Table) Column(c int) []string {
	col := make([]string, len(t.Rows))
	for r, row := range t.Rows {
		col[r] = strings.TrimSpace(row[c])
	}
	return col
}

// AllMissing reports whether every cell of column c is missing.
func (t *Table) AllMissing(c int) bool {
	for _, row := range t.Rows {
		if !IsMissing(row[c]) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether every non-missing cell of column c parses as a float.
func (t *Table) IsNumeric(c int) bool {
	for _, row := range t.Rows {
		v := strings.TrimSpace(row[c])
		if IsMissing(v) {
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return false
		}
	}
	return true
}

// Floats returns column c as float64 with missing cells as NaN.
// Unparseable cells are also NaN; call IsNumeric first to rule them out.
func (t *Table) Floats(c int) []float64 {
	out := make([]float64, len(t.Rows))
	for r, row := range t.Rows {
		v := strings.TrimSpace(row[c])
		if IsMissing(v) {
			out[r] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			f = math.NaN()
		}
		out[r] = f
	}
	return out
}

// Cache memoises LoadTable per path for the lifetime of the process.
// A failed load is cached as well; there is no retry.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	load    func(string) (*Table, error)
}

type cacheEntry struct {
	once  sync.Once
	table *Table
	err   error
}

// NewCache returns a Cache backed by LoadTable.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry), load: LoadTable}
}

// Load returns the table at path, reading the file only on first use.
func (c *Cache) Load(path string) (*Table, error) {
	c.mu.Lock()
	e, ok := c.entries[path]
	if !ok {
		e = &cacheEntry{}
		c.entries[path] = e
	}
	c.mu.Unlock()

	e.once.Do(func() { e.table, e.err = c.load(path) })
	return e.table, e.err
}
