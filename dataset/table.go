package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/edago/pkg/errors"
)

// Table is an in-memory rectangular dataset with named columns in header
// order. Cells are kept as strings; numeric accessors parse on demand.
// A Table is loaded fresh from the extracted file on every invocation and
// never persisted back.
type Table struct {
	source  string
	columns []string
	index   map[string]int
	records [][]string
}

// ReadCSV parses comma-separated values with a header row. The source name
// is only used in error messages.
func ReadCSV(r io.Reader, source string) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewParseError(source, "", 0, "empty input, expected a header row")
	}
	if err != nil {
		return nil, csvParseError(source, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; dup {
			return nil, errors.NewParseError(source, name, 1, "duplicate column name")
		}
		index[name] = i
	}

	var records [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvParseError(source, err)
		}
		records = append(records, record)
	}

	return &Table{
		source:  source,
		columns: header,
		index:   index,
		records: records,
	}, nil
}

// ReadCSVFile parses the CSV file at path.
func ReadCSVFile(path string) (*Table, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.NewFilesystemError("open", path, err)
	}
	defer in.Close()
	return ReadCSV(in, path)
}

func csvParseError(source string, err error) error {
	if perr, ok := err.(*csv.ParseError); ok {
		return errors.NewParseError(source, "", perr.Line, perr.Err.Error())
	}
	return errors.NewParseError(source, "", 0, err.Error())
}

// Source returns the name the table was parsed from.
func (t *Table) Source() string {
	return t.source
}

// Columns returns the column names in header order.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// NumRows returns the number of data rows, excluding the header.
func (t *Table) NumRows() int {
	return len(t.records)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a named column parsed as float64. Empty cells become NaN;
// any other unparsable cell is a parse error.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, errors.NewParseError(t.source, name, 0, "no such column")
	}

	values := make([]float64, len(t.records))
	for i, record := range t.records {
		cell := record[col]
		if cell == "" {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.NewParseError(t.source, name, i+2, "not a number: "+strconv.Quote(cell))
		}
		values[i] = v
	}
	return values, nil
}

// StrColumn returns a named column as raw strings, for categorical data.
func (t *Table) StrColumn(name string) ([]string, error) {
	col, ok := t.index[name]
	if !ok {
		return nil, errors.NewParseError(t.source, name, 0, "no such column")
	}

	values := make([]string, len(t.records))
	for i, record := range t.records {
		values[i] = record[col]
	}
	return values, nil
}

// ToMatrix assembles the named numeric columns into a dense row-major
// matrix for gonum consumers, in the order given.
func (t *Table) ToMatrix(cols ...string) (*mat.Dense, error) {
	if len(cols) == 0 {
		return nil, errors.NewValueError("Table.ToMatrix", "no columns given")
	}
	if len(t.records) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Table.ToMatrix")
	}

	m := mat.NewDense(len(t.records), len(cols), nil)
	for j, name := range cols {
		values, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// AddRatio derives a new column as the row-wise quotient of two existing
// numeric columns. Recomputing the ratio from the same base columns yields
// identical values; an existing column with the same name is replaced.
// Division by zero follows float64 semantics (Inf, or NaN for 0/0).
func (t *Table) AddRatio(name, numerator, denominator string) error {
	num, err := t.Column(numerator)
	if err != nil {
		return err
	}
	den, err := t.Column(denominator)
	if err != nil {
		return err
	}

	col, exists := t.index[name]
	if !exists {
		col = len(t.columns)
		t.columns = append(t.columns, name)
		t.index[name] = col
		for i := range t.records {
			t.records[i] = append(t.records[i], "")
		}
	}

	for i := range t.records {
		t.records[i][col] = strconv.FormatFloat(num[i]/den[i], 'g', -1, 64)
	}
	return nil
}

// Head returns a new table holding the first n rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.records) {
		n = len(t.records)
	}
	head := &Table{
		source:  t.source,
		columns: t.Columns(),
		index:   make(map[string]int, len(t.index)),
		records: make([][]string, n),
	}
	for name, col := range t.index {
		head.index[name] = col
	}
	for i := 0; i < n; i++ {
		record := make([]string, len(t.records[i]))
		copy(record, t.records[i])
		head.records[i] = record
	}
	return head
}

// DropRowsWithMissing removes rows that have an empty cell in any of the
// named columns and reports the removal through the warning system. The
// housing dataset has missing total_bedrooms values, so EDA sessions call
// this before assembling matrices.
func (t *Table) DropRowsWithMissing(cols ...string) error {
	colIdx := make([]int, 0, len(cols))
	for _, name := range cols {
		col, ok := t.index[name]
		if !ok {
			return errors.NewParseError(t.source, name, 0, "no such column")
		}
		colIdx = append(colIdx, col)
	}

	total := len(t.records)
	kept := t.records[:0]
	for _, record := range t.records {
		missing := false
		for _, col := range colIdx {
			if record[col] == "" {
				missing = true
				break
			}
		}
		if !missing {
			kept = append(kept, record)
		}
	}

	if dropped := total - len(kept); dropped > 0 {
		name := cols[0]
		if len(cols) > 1 {
			name = "multiple columns"
		}
		errors.Warn(errors.NewMissingValueWarning(name, dropped, total))
	}
	t.records = kept
	return nil
}
