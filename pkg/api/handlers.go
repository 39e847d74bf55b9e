package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/codec"
	"github.com/ssargent/sifdb/pkg/query"
	"github.com/ssargent/sifdb/pkg/store"
)

// Server holds the API server state
type Server struct {
	store   *store.TableStore
	engine  *query.SelectEngine
	config  ServerConfig
	metrics *Metrics
	logger  *zap.Logger
}

// NewServer creates a new API server
func NewServer(s *store.TableStore, engine *query.SelectEngine, config ServerConfig, metrics *Metrics, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:   s,
		engine:  engine,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListTables returns every registered table and its schema
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	tables := s.store.Tables()
	infos := make([]TableInfo, 0, len(tables))
	for _, t := range tables {
		info := TableInfo{
			Name:          t.Name(),
			TableID:       t.TableID(),
			SchemaVersion: t.SchemaVersion(),
		}
		for i, col := range t.Columns() {
			if col == nil || col == codec.Dropped {
				info.Columns = append(info.Columns, ColumnInfo{Index: i, Dropped: true})
				continue
			}
			info.Columns = append(info.Columns, ColumnInfo{
				Name:  col.Name(),
				Type:  col.Kind().String(),
				Key:   col.IsKey(),
				Index: col.Index(),
			})
		}
		infos = append(infos, info)
	}
	sendSuccess(w, infos)
}

// handleInsert stores one record in a table
func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := chi.URLParam(r, "table")

	var req InsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	if len(req.Fields) == 0 {
		sendError(w, "Record fields are required", http.StatusBadRequest)
		return
	}

	err := s.store.PutFields(table, req.Fields)
	if s.metrics != nil {
		s.metrics.RecordOperation("insert", table, err, time.Since(start))
	}
	if err != nil {
		s.sendStoreError(w, table, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Record stored successfully"})
}

// handleLookup fetches one record by its key columns
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := chi.URLParam(r, "table")

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	if len(req.Key) == 0 {
		sendError(w, "Key columns are required", http.StatusBadRequest)
		return
	}

	record, err := s.lookup(table, req.Key)
	if s.metrics != nil {
		s.metrics.RecordOperation("get", table, err, time.Since(start))
	}
	if err != nil {
		s.sendStoreError(w, table, err)
		return
	}
	sendSuccess(w, record)
}

func (s *Server) lookup(table string, key map[string]any) (map[string]any, error) {
	t, err := s.store.Table(table)
	if err != nil {
		return nil, err
	}
	keyRecord, err := codec.RecordFromMap(t.Columns(), key)
	if err != nil {
		return nil, fmt.Errorf("build key for %q: %w", table, err)
	}
	record, err := s.store.Get(table, keyRecord)
	if err != nil {
		return nil, err
	}
	return codec.RecordToMap(t.Columns(), record), nil
}

// handleDelete removes one record by its key columns
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := chi.URLParam(r, "table")

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	err := s.remove(table, req.Key)
	if s.metrics != nil {
		s.metrics.RecordOperation("delete", table, err, time.Since(start))
	}
	if err != nil {
		s.sendStoreError(w, table, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Record deleted successfully"})
}

func (s *Server) remove(table string, key map[string]any) error {
	t, err := s.store.Table(table)
	if err != nil {
		return err
	}
	keyRecord, err := codec.RecordFromMap(t.Columns(), key)
	if err != nil {
		return fmt.Errorf("build key for %q: %w", table, err)
	}
	return s.store.Delete(table, keyRecord)
}

// handleScan streams a table's records, optionally projected by the
// columns query parameter and bounded by limit
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := chi.URLParam(r, "table")

	sel := query.Select{Table: table}
	if raw := r.URL.Query().Get("columns"); raw != "" {
		sel.Columns = strings.Split(raw, ",")
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			sendError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		sel.Limit = limit
	}

	rows, err := s.runSelect(r, sel)
	if s.metrics != nil {
		s.metrics.RecordOperation("scan", table, err, time.Since(start))
	}
	if err != nil {
		s.sendStoreError(w, table, err)
		return
	}
	sendSuccess(w, rows)
}

// handleQuery runs a filtered, projected select posted as JSON
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	table := chi.URLParam(r, "table")

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}

	rows, err := s.runSelect(r, req.Select(table))
	if s.metrics != nil {
		s.metrics.RecordOperation("query", table, err, time.Since(start))
	}
	if err != nil {
		s.sendStoreError(w, table, err)
		return
	}
	sendSuccess(w, rows)
}

func (s *Server) runSelect(r *http.Request, sel query.Select) ([]query.Row, error) {
	iter, err := s.engine.Execute(r.Context(), sel)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	rows := make([]query.Row, 0)
	for iter.Next() {
		rows = append(rows, iter.Row())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// handleStats reports per-table record counts
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats()
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to collect stats: %v", err), http.StatusInternalServerError)
		return
	}
	if s.metrics != nil {
		s.metrics.UpdateTableStats(stats)
	}
	sendSuccess(w, stats)
}

// sendStoreError maps store and codec errors to HTTP status codes
func (s *Server) sendStoreError(w http.ResponseWriter, table string, err error) {
	switch {
	case errors.Is(err, store.ErrTableNotFound):
		sendError(w, fmt.Sprintf("Table %q not found", table), http.StatusNotFound)
	case errors.Is(err, store.ErrKeyNotFound):
		sendError(w, "Record not found", http.StatusNotFound)
	case errors.Is(err, codec.ErrRejected):
		s.logger.Warn("record rejected", zap.String("table", table), zap.Error(err))
		sendError(w, fmt.Sprintf("Record rejected: %v", err), http.StatusConflict)
	default:
		s.logger.Error("request failed", zap.String("table", table), zap.Error(err))
		sendError(w, err.Error(), http.StatusBadRequest)
	}
}
