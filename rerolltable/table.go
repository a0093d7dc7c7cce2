// Package rerolltable keeps the per-attempt reroll results of every
// weapon+element pair in one CSV table and answers route queries against it.
//
// Row keys are attempt counts, columns are "{weapon}_{element}" identifiers and
// each cell holds the skills of that attempt joined with "+". Rows at or below
// a column's confirmed count describe save-locked game state; callers pass that
// watermark to Update so those rows are never rewritten.
//
// A Table is not safe for concurrent use. Load, Update and Save are expected to
// run from a single session; concurrent writers to the same file lose updates.
package rerolltable

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"
)

// RowKeyHeader labels the reserved first column.
const RowKeyHeader = "回数"

const utf8BOM = "\ufeff"

var ErrNegativeWatermark = errors.New("confirmed count must not be negative")

// Table is the in-memory reroll table bound to one CSV file.
type Table struct {
	path    string
	order   ColumnOrder
	columns []string
	rows    map[int]map[string]string
}

// New returns an empty table for path. Nothing is read until Load.
func New(path string, order ColumnOrder) *Table {
	return &Table{
		path:  path,
		order: order,
		rows:  make(map[int]map[string]string),
	}
}

// Open is New followed by Load.
func Open(path string, order ColumnOrder) (*Table, error) {
	t := New(path, order)
	if err := t.Load(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) Path() string { return t.path }

// Load replaces the in-memory table with the file contents. A missing file
// leaves the table empty. Rows whose key is not a positive integer are skipped,
// columns with an empty header are dropped, and a repeated key replaces the
// earlier row as a whole.
func (t *Table) Load() error {
	t.columns = nil
	t.rows = make(map[int]map[string]string)

	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("path", t.path).Msg("<RerollTable> existing table not found, starting fresh")
			return nil
		}
		return errors.Wrapf(err, "open table %s", t.path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		log.Warn().Str("path", t.path).Msg("<RerollTable> empty table file")
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "read table header %s", t.path)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	// 第 0 列固定为回数；重复列名只保留一列，空列名整列跳过
	columns := make([]string, len(header))
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if name == "" {
			log.Warn().Str("path", t.path).Int("column", i).Msg("<RerollTable> skipping column with empty header")
			continue
		}
		columns[i] = name
		t.addColumn(name)
	}

	line := 1
	for {
		record, err := r.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("<RerollTable> skipping unreadable row")
			continue
		}
		if len(record) == 0 || (len(record) == 1 && record[0] == "") {
			continue
		}

		count, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil || count <= 0 {
			log.Warn().Int("line", line).Strs("row", record).Msg("<RerollTable> skipping invalid row (invalid count)")
			continue
		}

		// 回数重复时后出现的行整行覆盖
		if _, dup := t.rows[count]; dup {
			log.Warn().Int("line", line).Int("count", count).Msg("<RerollTable> duplicate count, later row replaces earlier one")
			delete(t.rows, count)
		}
		row := t.row(count)
		for i := 1; i < len(record) && i < len(columns); i++ {
			if record[i] == "" || columns[i] == "" {
				continue
			}
			row[columns[i]] = record[i]
		}
	}

	log.Info().Str("path", t.path).Int("rows", len(t.rows)).Int("columns", len(t.columns)).Msg("<RerollTable> loaded table")
	return nil
}

// Update writes one session's results into the weapon+element column,
// starting at row confirmed+1, then saves the whole table. Existing cells in
// those rows are overwritten; rows at or below confirmed are not touched.
// An empty result clears its cell.
func (t *Table) Update(weapon, element string, results []string, confirmed int) error {
	if confirmed < 0 {
		return errors.WithDetailf(ErrNegativeWatermark, "got %d", confirmed)
	}
	column := ColumnName(weapon, element)
	if t.addColumn(column) {
		log.Info().Str("column", column).Msg("<RerollTable> added new column")
	}

	start := confirmed + 1
	for i, skills := range results {
		row := t.row(start + i)
		if skills == "" {
			delete(row, column)
			continue
		}
		row[column] = skills
	}
	log.Info().Str("column", column).Int("from", start).Int("count", len(results)).Msg("<RerollTable> updated rows")

	return t.Save()
}

// Save rewrites the whole file: header first, then every row in ascending
// order. Data columns are reordered by the table's ColumnOrder.
func (t *Table) Save() error {
	t.order.Sort(t.columns)

	if dir := filepath.Dir(t.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Error().Err(err).Str("path", t.path).Msg("<RerollTable> failed to save table")
			return errors.Wrapf(err, "create table dir %s", dir)
		}
	}

	if err := t.write(); err != nil {
		log.Error().Err(err).Str("path", t.path).Msg("<RerollTable> failed to save table")
		return err
	}
	log.Info().Str("path", t.path).Int("rows", len(t.rows)).Msg("<RerollTable> table saved")
	return nil
}

func (t *Table) write() error {
	f, err := os.Create(t.path)
	if err != nil {
		return errors.Wrapf(err, "create table %s", t.path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header()); err != nil {
		return errors.Wrap(err, "write header")
	}
	record := make([]string, len(t.columns)+1)
	for _, count := range t.Rows() {
		row := t.rows[count]
		record[0] = strconv.Itoa(count)
		for i, c := range t.columns {
			record[i+1] = row[c]
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", count)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrap(err, "flush table")
	}
	return errors.Wrap(f.Close(), "close table")
}

// Header is the CSV header: the row key label, then the data columns.
func (t *Table) Header() []string {
	return append([]string{RowKeyHeader}, t.columns...)
}

// Columns returns the data column identifiers in their current order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Rows returns every row key in ascending order.
func (t *Table) Rows() []int {
	keys := make([]int, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Cell returns the raw skills stored at row/column.
func (t *Table) Cell(row int, column string) (string, bool) {
	v, ok := t.rows[row][column]
	return v, ok
}

// Column returns the non-empty cells of one weapon+element column keyed by row.
func (t *Table) Column(weapon, element string) map[int]string {
	column := ColumnName(weapon, element)
	out := make(map[int]string)
	for count, row := range t.rows {
		if v, ok := row[column]; ok {
			out[count] = v
		}
	}
	return out
}

func (t *Table) addColumn(column string) bool {
	for _, c := range t.columns {
		if c == column {
			return false
		}
	}
	t.columns = append(t.columns, column)
	return true
}

func (t *Table) row(count int) map[string]string {
	row, ok := t.rows[count]
	if !ok {
		row = make(map[string]string)
		t.rows[count] = row
	}
	return row
}
