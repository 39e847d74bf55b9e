package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
	"go.uber.org/zap"

	"github.com/ssargent/sifdb/pkg/codec"
)

// TableStore hosts schema-bound tables on a single pebble database. Keys
// written through it are self-describing: namespace, table id, key
// columns, reserved tail, codec version. All tables share the keyspace
// and are separated by their table id prefix.
type TableStore struct {
	db     *pebble.DB
	logger *zap.Logger

	mutex  sync.RWMutex
	tables map[string]*Table
	isOpen bool
}

// Open opens or creates a table store at path.
func Open(path string, logger *zap.Logger) (*TableStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble at %s: %w", path, err)
	}
	logger.Info("table store opened", zap.String("path", path))
	return &TableStore{
		db:     db,
		logger: logger,
		tables: make(map[string]*Table),
		isOpen: true,
	}, nil
}

// CreateTable registers a table. Re-registering an existing name fails
// unless the new config carries a higher schema version, which replaces
// the binding so newer rows decode while older rows stay readable.
func (s *TableStore) CreateTable(cfg TableConfig) (*Table, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil, ErrStoreClosed
	}
	if existing, ok := s.tables[cfg.Name]; ok {
		if cfg.SchemaVersion <= existing.cfg.SchemaVersion {
			return nil, ErrTableExists
		}
		if cfg.TableID != existing.cfg.TableID {
			return nil, fmt.Errorf("table %q: schema bump cannot change table id %d to %d",
				cfg.Name, existing.cfg.TableID, cfg.TableID)
		}
	}
	for _, t := range s.tables {
		if t.cfg.TableID == cfg.TableID && t.cfg.Name != cfg.Name {
			return nil, fmt.Errorf("table id %d already used by %q", cfg.TableID, t.cfg.Name)
		}
	}

	table, err := newTable(cfg)
	if err != nil {
		return nil, err
	}
	s.tables[cfg.Name] = table
	s.logger.Info("table registered",
		zap.String("table", cfg.Name),
		zap.Int64("table_id", cfg.TableID),
		zap.Int("schema_version", cfg.SchemaVersion))
	return table, nil
}

// Table looks up a registered table by name.
func (s *TableStore) Table(name string) (*Table, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if !s.isOpen {
		return nil, ErrStoreClosed
	}
	table, ok := s.tables[name]
	if !ok {
		return nil, ErrTableNotFound
	}
	return table, nil
}

// Tables returns the registered tables.
func (s *TableStore) Tables() []*Table {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		out = append(out, t)
	}
	return out
}

// Put encodes and stores a record. The record layout is the table
// encoder's: one entry per schema slot at the column's output index.
func (s *TableStore) Put(table string, record []any) error {
	t, err := s.Table(table)
	if err != nil {
		return err
	}
	key, value, err := t.encoder.Encode(record)
	if err != nil {
		return fmt.Errorf("encode record for %q: %w", table, err)
	}
	if err := s.db.Set(key, value, pebble.Sync); err != nil {
		return fmt.Errorf("write record for %q: %w", table, err)
	}
	s.logger.Debug("record stored",
		zap.String("table", table),
		zap.Int("key_bytes", len(key)),
		zap.Int("value_bytes", len(value)))
	return nil
}

// PutFields is Put for loosely typed input such as decoded JSON.
func (s *TableStore) PutFields(table string, fields map[string]any) error {
	t, err := s.Table(table)
	if err != nil {
		return err
	}
	record, err := codec.RecordFromMap(t.cfg.Columns, fields)
	if err != nil {
		return fmt.Errorf("build record for %q: %w", table, err)
	}
	return s.Put(table, record)
}

// Get fetches and decodes the record whose key columns match keyRecord.
// keyRecord uses the same layout as Put; value columns may be nil.
func (s *TableStore) Get(table string, keyRecord []any) ([]any, error) {
	t, err := s.Table(table)
	if err != nil {
		return nil, err
	}
	key, err := t.encoder.EncodeKey(keyRecord)
	if err != nil {
		return nil, fmt.Errorf("encode key for %q: %w", table, err)
	}

	value, closer, err := s.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read record for %q: %w", table, err)
	}
	defer closer.Close()

	record, err := t.decoder.Decode(key, value)
	if err != nil {
		return nil, fmt.Errorf("decode record for %q: %w", table, err)
	}
	return record, nil
}

// Delete removes the record whose key columns match keyRecord. Deleting
// an absent key is not an error.
func (s *TableStore) Delete(table string, keyRecord []any) error {
	t, err := s.Table(table)
	if err != nil {
		return err
	}
	key, err := t.encoder.EncodeKey(keyRecord)
	if err != nil {
		return fmt.Errorf("encode key for %q: %w", table, err)
	}
	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("delete record for %q: %w", table, err)
	}
	return nil
}

// Scan iterates a table's records in key order. columns selects a
// projection by column name; nil scans full records. The caller must
// Close the iterator.
func (s *TableStore) Scan(table string, columns []string) (RecordIterator, error) {
	t, err := s.Table(table)
	if err != nil {
		return nil, err
	}

	var positions []int
	if columns != nil {
		positions, err = t.ColumnPositions(columns)
		if err != nil {
			return nil, err
		}
	}

	prefix := t.encoder.KeyPrefix()
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("open iterator for %q: %w", table, err)
	}
	iter.First()
	return &tableIterator{table: t, iter: iter, positions: positions}, nil
}

// Stats reports per-table record counts by scanning key prefixes.
func (s *TableStore) Stats() (map[string]int, error) {
	s.mutex.RLock()
	tables := make([]*Table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, t)
	}
	s.mutex.RUnlock()

	stats := make(map[string]int, len(tables))
	for _, t := range tables {
		prefix := t.encoder.KeyPrefix()
		iter, err := s.db.NewIter(&pebble.IterOptions{
			LowerBound: prefix,
			UpperBound: prefixUpperBound(prefix),
		})
		if err != nil {
			return nil, err
		}
		n := 0
		for iter.First(); iter.Valid(); iter.Next() {
			n++
		}
		if err := iter.Close(); err != nil {
			return nil, err
		}
		stats[t.cfg.Name] = n
	}
	return stats, nil
}

// Close closes the underlying database. The store is unusable afterwards.
func (s *TableStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil
	}
	s.isOpen = false
	s.logger.Info("table store closed")
	return s.db.Close()
}

// prefixUpperBound returns the smallest key greater than every key with
// the given prefix.
func prefixUpperBound(prefix []byte) []byte {
	upper := append([]byte(nil), prefix...)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] != 0xFF {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil // prefix is all 0xFF, no upper bound
}

// tableIterator adapts a pebble iterator to RecordIterator, decoding
// each row through the table's codec.
type tableIterator struct {
	table     *Table
	iter      *pebble.Iterator
	positions []int

	record  []any
	key     []byte
	err     error
	started bool
}

func (it *tableIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if it.started {
		it.iter.Next()
	}
	it.started = true
	if !it.iter.Valid() {
		it.err = it.iter.Error()
		return false
	}

	key := it.iter.Key()
	value, err := it.iter.ValueAndErr()
	if err != nil {
		it.err = err
		return false
	}

	var record []any
	if it.positions != nil {
		record, err = it.table.decoder.DecodeColumns(key, value, it.positions)
	} else {
		record, err = it.table.decoder.Decode(key, value)
	}
	if err != nil {
		it.err = fmt.Errorf("decode record in %q: %w", it.table.cfg.Name, err)
		return false
	}

	it.key = append(it.key[:0], key...)
	it.record = record
	return true
}

func (it *tableIterator) Record() []any { return it.record }
func (it *tableIterator) Key() []byte   { return it.key }
func (it *tableIterator) Err() error    { return it.err }

func (it *tableIterator) Close() error {
	return it.iter.Close()
}
