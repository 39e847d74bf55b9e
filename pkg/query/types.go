package query

import (
	"context"
	"fmt"
)

// FieldQuery represents a single field-based filter condition
type FieldQuery struct {
	Field    string // Column name to filter on (e.g., "age", "name")
	Operator string // Comparison operator: "=", "!=", ">", "<", ">=", "<="
	Value    any    // Value to compare against
}

// Validate checks if the query is properly formed
func (q *FieldQuery) Validate() error {
	if q.Field == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if q.Operator == "" {
		return fmt.Errorf("operator cannot be empty")
	}
	validOps := map[string]bool{
		"=": true, "!=": true, ">": true, "<": true, ">=": true, "<=": true,
	}
	if !validOps[q.Operator] {
		return fmt.Errorf("invalid operator: %s", q.Operator)
	}
	return nil
}

// Select describes a projected, filtered read over one table.
type Select struct {
	Table   string       // Table to read
	Columns []string     // Columns to return; nil means all columns
	Filters []FieldQuery // Conditions ANDed together; may reference unprojected columns
	Limit   int          // Maximum rows to return; 0 means unlimited
}

// Validate checks the select and all of its filters.
func (s *Select) Validate() error {
	if s.Table == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if s.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	for i := range s.Filters {
		if err := s.Filters[i].Validate(); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}
	return nil
}

// Row is one result of a select: the requested columns by name.
type Row map[string]any

// RowIterator provides streaming access to select results. Row is valid
// until the next call to Next; Err reports the first failure.
type RowIterator interface {
	Next() bool
	Row() Row
	Err() error
	Close() error
}

// Engine executes selects against a table store.
type Engine interface {
	Execute(ctx context.Context, sel Select) (RowIterator, error)
}
