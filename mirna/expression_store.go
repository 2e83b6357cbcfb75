package mirna

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// expressionRow is one (miRNA, cell type, mean RPM) triple, the shape the
// sqlite cache stores and reloads.
type expressionRow struct {
	MirnaID  string  `db:"mirna_id"`
	CellType string  `db:"cell_type"`
	MeanRPM  float64 `db:"mean_rpm"`
}

// ExpressionStore wraps a sqlite-backed cache of a parsed ExpressionMatrix,
// so repeated runs against the same CSV skip re-parsing it. This mirrors
// the teacher's synthesis.go use of an in-process sqlite database as a
// scratch table for intermediate results.
type ExpressionStore struct {
	db *sqlx.DB
}

// OpenExpressionStore opens (creating if necessary) a sqlite database at
// path and ensures its schema exists. Pass ":memory:" for a process-local
// cache with no on-disk footprint.
func OpenExpressionStore(path string) (*ExpressionStore, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("mirna: opening expression store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS expression_matrix (
	mirna_id TEXT NOT NULL,
	cell_type TEXT NOT NULL,
	mean_rpm REAL NOT NULL,
	PRIMARY KEY (mirna_id, cell_type)
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("mirna: creating schema: %w", err)
	}
	return &ExpressionStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *ExpressionStore) Close() error {
	return s.db.Close()
}

// Save persists every entry of matrix to the store, replacing any existing
// rows with the same (mirna_id, cell_type) key.
func (s *ExpressionStore) Save(matrix *ExpressionMatrix) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("mirna: beginning transaction: %w", err)
	}
	for mirnaID, byCellType := range matrix.rows {
		for cellType, meanRPM := range byCellType {
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO expression_matrix(mirna_id, cell_type, mean_rpm) VALUES (?, ?, ?)`,
				mirnaID, cellType, meanRPM,
			); err != nil {
				tx.Rollback()
				return fmt.Errorf("mirna: inserting %s/%s: %w", mirnaID, cellType, err)
			}
		}
	}
	return tx.Commit()
}

// Load rebuilds an ExpressionMatrix from the cache. It returns ok=false
// (with a nil error) if the store is empty, so the caller knows to fall
// back to parsing the source CSV.
func (s *ExpressionStore) Load() (matrix *ExpressionMatrix, ok bool, err error) {
	var rows []expressionRow
	if err := s.db.Select(&rows, `SELECT mirna_id, cell_type, mean_rpm FROM expression_matrix`); err != nil {
		return nil, false, fmt.Errorf("mirna: loading cached expression matrix: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	cellTypeSet := make(map[string]bool)
	built := &ExpressionMatrix{rows: make(map[string]map[string]float64)}
	for _, row := range rows {
		if built.rows[row.MirnaID] == nil {
			built.rows[row.MirnaID] = make(map[string]float64)
		}
		built.rows[row.MirnaID][row.CellType] = row.MeanRPM
		cellTypeSet[row.CellType] = true
	}
	for cellType := range cellTypeSet {
		built.cellTypes = append(built.cellTypes, cellType)
	}
	return built, true, nil
}

// LoadOrBuildExpressionMatrix returns the cached matrix at dbPath if
// present, otherwise parses csvPath and populates the cache for next time.
func LoadOrBuildExpressionMatrix(csvPath, dbPath string) (*ExpressionMatrix, error) {
	store, err := OpenExpressionStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	if cached, ok, err := store.Load(); err != nil {
		return nil, err
	} else if ok {
		return cached, nil
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("mirna: opening %s: %w", csvPath, err)
	}
	defer file.Close()

	matrix, err := LoadExpressionMatrix(file)
	if err != nil {
		return nil, err
	}
	if err := store.Save(matrix); err != nil {
		return nil, err
	}
	return matrix, nil
}
