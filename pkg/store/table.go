package store

import (
	"fmt"

	"github.com/ssargent/sifdb/pkg/codec"
)

// Table binds a table's configuration to its encoder and decoder. Tables
// are immutable once registered; schema evolution replaces the Table via
// TableStore.CreateTable with a bumped schema version.
type Table struct {
	cfg       TableConfig
	encoder   *codec.RecordEncoder
	decoder   *codec.RecordDecoder
	positions map[string]int // column name to schema-list position
}

func newTable(cfg TableConfig) (*Table, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("table name is required")
	}
	encoder, err := codec.NewRecordEncoder(cfg.SchemaVersion, cfg.Columns, cfg.TableID)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", cfg.Name, err)
	}
	decoder, err := codec.NewRecordDecoder(cfg.SchemaVersion, cfg.Columns, cfg.TableID)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", cfg.Name, err)
	}

	positions := make(map[string]int, len(cfg.Columns))
	for pos, col := range cfg.Columns {
		if col == nil || col == codec.Dropped {
			continue
		}
		if _, dup := positions[col.Name()]; dup {
			return nil, fmt.Errorf("table %q: duplicate column %q", cfg.Name, col.Name())
		}
		positions[col.Name()] = pos
	}

	return &Table{
		cfg:       cfg,
		encoder:   encoder,
		decoder:   decoder,
		positions: positions,
	}, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.cfg.Name }

// TableID returns the id embedded in every key of this table.
func (t *Table) TableID() int64 { return t.cfg.TableID }

// SchemaVersion returns the table's current schema generation.
func (t *Table) SchemaVersion() int { return t.cfg.SchemaVersion }

// Columns returns the table's schema list.
func (t *Table) Columns() []codec.ColumnSchema { return t.cfg.Columns }

// Encoder returns the table's record encoder.
func (t *Table) Encoder() *codec.RecordEncoder { return t.encoder }

// Decoder returns the table's record decoder.
func (t *Table) Decoder() *codec.RecordDecoder { return t.decoder }

// ColumnPositions resolves column names to their schema-list positions,
// the form RecordDecoder.DecodeColumns consumes.
func (t *Table) ColumnPositions(names []string) ([]int, error) {
	positions := make([]int, len(names))
	for i, name := range names {
		pos, ok := t.positions[name]
		if !ok {
			return nil, fmt.Errorf("table %q has no column %q", t.cfg.Name, name)
		}
		positions[i] = pos
	}
	return positions, nil
}
