/*
Package mirna selects a minimal set of microRNAs whose sponge sites, once
built by the sponge package, de-repress translation everywhere except the
target cell type. The selection itself is a classic weighted greedy
set-cover over a (miRNA × cell-type) mean-expression matrix.
*/
package mirna

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// ExpressionMatrix is an immutable miRNA_id -> cell_type -> mean RPM table,
// built once from a CSV and never mutated afterward (spec.md §3).
type ExpressionMatrix struct {
	cellTypes []string
	rows      map[string]map[string]float64
}

// LoadExpressionMatrix parses an expression-matrix CSV: the header row
// gives cell-type names (first column is the miRNA id column and is
// skipped), and each subsequent row is a miRNA id followed by its mean RPM
// in each cell type.
func LoadExpressionMatrix(r io.Reader) (*ExpressionMatrix, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("mirna: reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("mirna: expression matrix header needs at least one cell type column")
	}
	cellTypes := header[1:]

	matrix := &ExpressionMatrix{
		cellTypes: cellTypes,
		rows:      make(map[string]map[string]float64),
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("mirna: reading row: %w", err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("mirna: row %q has %d columns, want %d", record[0], len(record), len(header))
		}
		mirnaID := record[0]
		byCellType := make(map[string]float64, len(cellTypes))
		for i, cellType := range cellTypes {
			value, err := strconv.ParseFloat(record[i+1], 64)
			if err != nil {
				return nil, fmt.Errorf("mirna: row %q, cell type %q: %w", mirnaID, cellType, err)
			}
			byCellType[cellType] = value
		}
		matrix.rows[mirnaID] = byCellType
	}

	return matrix, nil
}

// CellTypes returns the cell-type column names: in CSV order for a matrix
// parsed from CSV, in no defined order for one rebuilt by
// ExpressionStore.Load.
func (m *ExpressionMatrix) CellTypes() []string {
	return append([]string(nil), m.cellTypes...)
}

// MeanRPM returns the mean RPM of mirnaID in cellType, and whether that
// miRNA appears in the matrix at all.
func (m *ExpressionMatrix) MeanRPM(mirnaID, cellType string) (float64, bool) {
	byCellType, ok := m.rows[mirnaID]
	if !ok {
		return 0, false
	}
	value, ok := byCellType[cellType]
	return value, ok
}

// MirnaIDs returns every miRNA id in the matrix, sorted lexicographically
// so downstream iteration (and the set-cover tie-break) is deterministic.
func (m *ExpressionMatrix) MirnaIDs() []string {
	ids := make([]string, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasCellType reports whether cellType is a column of the matrix.
func (m *ExpressionMatrix) HasCellType(cellType string) bool {
	for _, c := range m.cellTypes {
		if c == cellType {
			return true
		}
	}
	return false
}
