package datastore

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// table is a header-indexed CSV table. Lookups by column name degrade to
// "" for unknown columns so schema drift never panics the loader.
type table struct {
	columns map[string]int
	rows    [][]string
}

// readTable reads a CSV file into a header-indexed table. A missing file
// yields an empty table: the warehouse exports are frequently partial and
// absent join tables only mean absent sub-records.
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &table{columns: map[string]int{}}, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows happen in hand-edited exports
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	t := &table{columns: map[string]int{}}
	for i, record := range records {
		if i == 0 {
			for col, name := range record {
				t.columns[normalizeHeader(name)] = col
			}
			continue
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

func normalizeHeader(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
}

// get returns the named column of a row, "" when the column or cell is absent
func (t *table) get(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// index builds a key -> row map over the named column, skipping empty keys
func (t *table) index(column string) map[string][]string {
	out := make(map[string][]string, len(t.rows))
	for _, row := range t.rows {
		key := t.get(row, column)
		if key == "" {
			continue
		}
		out[key] = row
	}
	return out
}
