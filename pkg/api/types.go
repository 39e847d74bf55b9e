package api

import (
	"github.com/ssargent/sifdb/pkg/query"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// InsertRequest carries one record as named fields
type InsertRequest struct {
	Fields map[string]any `json:"fields"`
}

// LookupRequest identifies one record by its key columns
type LookupRequest struct {
	Key map[string]any `json:"key"`
}

// QueryRequest describes a projected, filtered read over a table
type QueryRequest struct {
	Columns []string      `json:"columns,omitempty"`
	Filters []FilterParam `json:"filters,omitempty"`
	Limit   int           `json:"limit,omitempty"`
}

// FilterParam is one filter condition of a query request
type FilterParam struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// Select converts the request into the query engine's form.
func (qr *QueryRequest) Select(table string) query.Select {
	filters := make([]query.FieldQuery, len(qr.Filters))
	for i, f := range qr.Filters {
		filters[i] = query.FieldQuery{Field: f.Field, Operator: f.Operator, Value: f.Value}
	}
	return query.Select{
		Table:   table,
		Columns: qr.Columns,
		Filters: filters,
		Limit:   qr.Limit,
	}
}

// TableInfo describes one registered table in list responses
type TableInfo struct {
	Name          string       `json:"name"`
	TableID       int64        `json:"table_id"`
	SchemaVersion int          `json:"schema_version"`
	Columns       []ColumnInfo `json:"columns"`
}

// ColumnInfo describes one column of a table
type ColumnInfo struct {
	Name    string `json:"name,omitempty"`
	Type    string `json:"type,omitempty"`
	Key     bool   `json:"key,omitempty"`
	Index   int    `json:"index"`
	Dropped bool   `json:"dropped,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	APIKey string
}
