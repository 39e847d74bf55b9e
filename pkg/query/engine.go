package query

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/codec"
	"github.com/ssargent/sifdb/pkg/store"
)

// SelectEngine executes selects by scanning a table through the store's
// projected decode path: only the columns a select touches (requested or
// filtered on) are materialized, everything else is skipped at the byte
// level.
type SelectEngine struct {
	store  *store.TableStore
	logger *zap.Logger
}

// NewSelectEngine creates a select engine over a table store.
func NewSelectEngine(s *store.TableStore, logger *zap.Logger) *SelectEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectEngine{store: s, logger: logger}
}

// Execute runs a select and returns a streaming iterator over its rows.
// The context is checked between rows, so long scans cancel promptly.
func (e *SelectEngine) Execute(ctx context.Context, sel Select) (RowIterator, error) {
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("invalid select: %w", err)
	}

	table, err := e.store.Table(sel.Table)
	if err != nil {
		return nil, err
	}

	// The scan must materialize the requested columns plus any filtered
	// columns that are not already requested.
	columns := sel.Columns
	if columns == nil {
		for _, col := range table.Columns() {
			if col == nil || col == codec.Dropped {
				continue
			}
			columns = append(columns, col.Name())
		}
	}
	scanColumns := append([]string(nil), columns...)
	slots := make(map[string]int, len(columns))
	for i, name := range columns {
		slots[name] = i
	}
	for _, f := range sel.Filters {
		if _, ok := slots[f.Field]; !ok {
			slots[f.Field] = len(scanColumns)
			scanColumns = append(scanColumns, f.Field)
		}
	}

	iter, err := e.store.Scan(sel.Table, scanColumns)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("select started",
		zap.String("table", sel.Table),
		zap.Strings("columns", columns),
		zap.Int("filters", len(sel.Filters)))

	return &selectIterator{
		ctx:     ctx,
		sel:     sel,
		iter:    iter,
		columns: columns,
		slots:   slots,
	}, nil
}

// selectIterator filters and shapes scan records into result rows.
type selectIterator struct {
	ctx     context.Context
	sel     Select
	iter    store.RecordIterator
	columns []string
	slots   map[string]int

	row     Row
	emitted int
	err     error
}

func (it *selectIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.sel.Limit > 0 && it.emitted >= it.sel.Limit {
		return false
	}
	for it.iter.Next() {
		if err := it.ctx.Err(); err != nil {
			it.err = err
			return false
		}
		record := it.iter.Record()
		match, err := it.matches(record)
		if err != nil {
			it.err = err
			return false
		}
		if !match {
			continue
		}
		row := make(Row, len(it.columns))
		for _, name := range it.columns {
			row[name] = record[it.slots[name]]
		}
		it.row = row
		it.emitted++
		return true
	}
	it.err = it.iter.Err()
	return false
}

func (it *selectIterator) matches(record []any) (bool, error) {
	for _, f := range it.sel.Filters {
		value := record[it.slots[f.Field]]
		ok, err := compare(value, f.Operator, f.Value)
		if err != nil {
			return false, fmt.Errorf("filter on %q: %w", f.Field, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (it *selectIterator) Row() Row   { return it.row }
func (it *selectIterator) Err() error { return it.err }

func (it *selectIterator) Close() error {
	return it.iter.Close()
}

// compare evaluates one filter condition. NULL columns match nothing
// except "!=", mirroring SQL's treatment of missing values loosely
// enough for a scan filter.
func compare(value any, op string, target any) (bool, error) {
	if value == nil {
		return op == "!=", nil
	}

	switch v := value.(type) {
	case bool:
		t, ok := target.(bool)
		if !ok {
			return false, fmt.Errorf("cannot compare bool with %T", target)
		}
		switch op {
		case "=":
			return v == t, nil
		case "!=":
			return v != t, nil
		}
		return false, fmt.Errorf("operator %s not valid for bool", op)
	case string:
		t, ok := target.(string)
		if !ok {
			return false, fmt.Errorf("cannot compare string with %T", target)
		}
		return ordered(strings.Compare(v, t), op)
	case int32:
		return compareNumeric(float64(v), op, target)
	case int64:
		return compareNumeric(float64(v), op, target)
	case float32:
		return compareNumeric(float64(v), op, target)
	case float64:
		return compareNumeric(v, op, target)
	default:
		return false, fmt.Errorf("cannot filter on %T column", value)
	}
}

func compareNumeric(v float64, op string, target any) (bool, error) {
	var t float64
	switch x := target.(type) {
	case int:
		t = float64(x)
	case int32:
		t = float64(x)
	case int64:
		t = float64(x)
	case float32:
		t = float64(x)
	case float64:
		t = x
	default:
		return false, fmt.Errorf("cannot compare number with %T", target)
	}
	switch {
	case v < t:
		return ordered(-1, op)
	case v > t:
		return ordered(1, op)
	default:
		return ordered(0, op)
	}
}

func ordered(cmp int, op string) (bool, error) {
	switch op {
	case "=":
		return cmp == 0, nil
	case "!=":
		return cmp != 0, nil
	case "<":
		return cmp < 0, nil
	case "<=":
		return cmp <= 0, nil
	case ">":
		return cmp > 0, nil
	case ">=":
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unsupported operator: %s", op)
	}
}
