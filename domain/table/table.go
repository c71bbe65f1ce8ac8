package table

import (
	"fmt"
	"strings"

	lo "github.com/samber/lo"
)

// Table is an in-memory spreadsheet: an ordered header and rows of nullable cells.
// A nil cell is a missing value. Tables are treated as immutable; every
// operation below returns a new Table.
type Table struct {
	Name    string // source name used in diagnostics (usually the file name)
	Columns []string
	Rows    [][]*string
}

// Str returns a cell holding s.
func Str(s string) *string { return &s }

// New builds a table from plain string rows where "" is a missing value.
func New(name string, columns []string, rows ...[]string) *Table {
	t := &Table{Name: name, Columns: append([]string{}, columns...)}
	for _, r := range rows {
		row := make([]*string, len(columns))
		for i := 0; i < len(columns) && i < len(r); i++ {
			if r[i] != "" {
				row[i] = Str(r[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	return lo.IndexOf(t.Columns, name)
}

// Require fails with a diagnostic naming the source and the first missing column.
func (t *Table) Require(columns ...string) error {
	for _, col := range columns {
		if t.Index(col) < 0 {
			return fmt.Errorf("%s: missing column %q", t.Name, col)
		}
	}
	return nil
}

// Value returns the cell at row i in column name, nil when the column is absent.
func (t *Table) Value(i int, name string) *string {
	j := t.Index(name)
	if j < 0 || i < 0 || i >= len(t.Rows) || j >= len(t.Rows[i]) {
		return nil
	}
	return t.Rows[i][j]
}

func (t *Table) clone() *Table {
	out := &Table{Name: t.Name, Columns: append([]string{}, t.Columns...), Rows: make([][]*string, len(t.Rows))}
	for i, r := range t.Rows {
		row := make([]*string, len(t.Columns))
		copy(row, r)
		out.Rows[i] = row
	}
	return out
}

// NormalizeKey renames the identifier column from to the shared name to and
// upper-cases every non-null value so joins are case-insensitive.
func NormalizeKey(t *Table, from, to string) (*Table, error) {
	if err := t.Require(from); err != nil {
		return nil, err
	}
	if from != to && t.Index(to) >= 0 {
		return nil, fmt.Errorf("%s: cannot rename %q to %q: column already exists", t.Name, from, to)
	}
	out := t.clone()
	j := out.Index(from)
	out.Columns[j] = to
	for _, row := range out.Rows {
		if row[j] != nil {
			row[j] = Str(strings.ToUpper(*row[j]))
		}
	}
	return out, nil
}

// JoinedName is the name a right-hand column takes after LeftJoin(left, right, key).
func JoinedName(left, right *Table, key, column string) string {
	if column == key || left.Index(column) < 0 {
		return column
	}
	return column + " (" + right.Name + ")"
}

// LeftJoin keeps every row of left. A left row matching k rows of right is
// emitted k times; an unmatched row gets null right-hand cells. Null keys
// never match. Right columns that collide with left columns are suffixed
// with the right table's name.
func LeftJoin(left, right *Table, key string) (*Table, error) {
	if err := left.Require(key); err != nil {
		return nil, err
	}
	if err := right.Require(key); err != nil {
		return nil, err
	}
	lk, rk := left.Index(key), right.Index(key)

	rightCols := make([]int, 0, len(right.Columns))
	out := &Table{Name: left.Name, Columns: append([]string{}, left.Columns...)}
	for j, c := range right.Columns {
		if j == rk {
			continue
		}
		rightCols = append(rightCols, j)
		out.Columns = append(out.Columns, JoinedName(left, right, key, c))
	}

	byKey := map[string][]int{}
	for i, r := range right.Rows {
		if r[rk] == nil {
			continue
		}
		byKey[*r[rk]] = append(byKey[*r[rk]], i)
	}

	emit := func(l []*string, r []*string) {
		row := make([]*string, 0, len(out.Columns))
		row = append(row, l...)
		for len(row) < len(left.Columns) {
			row = append(row, nil)
		}
		for _, j := range rightCols {
			if r == nil || j >= len(r) {
				row = append(row, nil)
				continue
			}
			row = append(row, r[j])
		}
		out.Rows = append(out.Rows, row)
	}

	for _, l := range left.Rows {
		var matches []int
		if l[lk] != nil {
			matches = byKey[*l[lk]]
		}
		if len(matches) == 0 {
			emit(l, nil)
			continue
		}
		for _, i := range matches {
			emit(l, right.Rows[i])
		}
	}
	return out, nil
}

// Rename applies old -> new column renames. A missing old column is fatal, as
// is a target that would duplicate a column the renames leave in place.
func Rename(t *Table, renames map[string]string) (*Table, error) {
	out := t.clone()
	targets := make(map[string]string, len(renames))
	for from, to := range renames {
		j := t.Index(from)
		if j < 0 {
			return nil, fmt.Errorf("%s: missing column %q", t.Name, from)
		}
		if _, moved := renames[to]; t.Index(to) >= 0 && !moved {
			return nil, fmt.Errorf("%s: cannot rename %q to %q: column already exists", t.Name, from, to)
		}
		if prev, ok := targets[to]; ok {
			return nil, fmt.Errorf("%s: cannot rename both %q and %q to %q", t.Name, prev, from, to)
		}
		targets[to] = from
		out.Columns[j] = to
	}
	return out, nil
}

// Fill is a single gap-filling rule.
type Fill struct {
	Column   string
	Sentinel string
}

// FillMissing replaces null cells of the listed columns with their sentinel.
// Columns absent from the table are appended and filled entirely.
// Other columns are left untouched.
func FillMissing(t *Table, fills ...Fill) *Table {
	out := t.clone()
	for _, f := range fills {
		j := out.Index(f.Column)
		if j < 0 {
			out.Columns = append(out.Columns, f.Column)
			for i := range out.Rows {
				out.Rows[i] = append(out.Rows[i], nil)
			}
			j = len(out.Columns) - 1
		}
		for _, row := range out.Rows {
			if row[j] == nil {
				row[j] = Str(f.Sentinel)
			}
		}
	}
	return out
}
