package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/sifdb/pkg/codec"
	"github.com/ssargent/sifdb/pkg/store"
)

func seedUsers(t *testing.T) *store.TableStore {
	t.Helper()
	s, err := store.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	_, err = s.CreateTable(store.TableConfig{
		Name:          "users",
		TableID:       1,
		SchemaVersion: 1,
		Columns: []codec.ColumnSchema{
			codec.MustColumn(codec.Int64, "id", 0, true),
			codec.MustColumn(codec.String, "name", 1, false),
			codec.MustColumn(codec.Int32, "age", 2, false),
			codec.MustColumn(codec.Float64, "score", 3, false),
		},
	})
	require.NoError(t, err)

	rows := []struct {
		id    int64
		name  string
		age   int32
		score float64
	}{
		{1, "alice", 30, 9.5},
		{2, "bob", 25, 7.0},
		{3, "carol", 35, 8.25},
		{4, "dave", 25, 3.5},
	}
	for _, r := range rows {
		require.NoError(t, s.Put("users", []any{r.id, r.name, r.age, r.score}))
	}
	return s
}

func collectRows(t *testing.T, iter RowIterator) []Row {
	t.Helper()
	defer iter.Close()
	var rows []Row
	for iter.Next() {
		rows = append(rows, iter.Row())
	}
	require.NoError(t, iter.Err())
	return rows
}

func TestSelectEngine_AllColumns(t *testing.T) {
	engine := NewSelectEngine(seedUsers(t), nil)

	iter, err := engine.Execute(context.Background(), Select{Table: "users"})
	require.NoError(t, err)

	rows := collectRows(t, iter)
	require.Len(t, rows, 4)
	assert.Equal(t, Row{"id": int64(1), "name": "alice", "age": int32(30), "score": 9.5}, rows[0])
}

func TestSelectEngine_Projection(t *testing.T) {
	engine := NewSelectEngine(seedUsers(t), nil)

	iter, err := engine.Execute(context.Background(), Select{
		Table:   "users",
		Columns: []string{"name", "score"},
	})
	require.NoError(t, err)

	rows := collectRows(t, iter)
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Len(t, row, 2)
		assert.Contains(t, row, "name")
		assert.Contains(t, row, "score")
	}
}

func TestSelectEngine_Filters(t *testing.T) {
	engine := NewSelectEngine(seedUsers(t), nil)

	tests := []struct {
		name    string
		filters []FieldQuery
		want    []string
	}{
		{
			"equality",
			[]FieldQuery{{Field: "age", Operator: "=", Value: 25}},
			[]string{"bob", "dave"},
		},
		{
			"inequality",
			[]FieldQuery{{Field: "age", Operator: "!=", Value: 25}},
			[]string{"alice", "carol"},
		},
		{
			"range",
			[]FieldQuery{{Field: "score", Operator: ">=", Value: 7.0}},
			[]string{"alice", "bob", "carol"},
		},
		{
			"string compare",
			[]FieldQuery{{Field: "name", Operator: ">", Value: "bob"}},
			[]string{"carol", "dave"},
		},
		{
			"conjunction",
			[]FieldQuery{
				{Field: "age", Operator: "=", Value: 25},
				{Field: "score", Operator: ">", Value: 5.0},
			},
			[]string{"bob"},
		},
		{
			"no matches",
			[]FieldQuery{{Field: "age", Operator: ">", Value: 100}},
			nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			iter, err := engine.Execute(context.Background(), Select{
				Table:   "users",
				Columns: []string{"name"},
				Filters: tc.filters,
			})
			require.NoError(t, err)

			var names []string
			for _, row := range collectRows(t, iter) {
				names = append(names, row["name"].(string))
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

// Filtered columns outside the projection still drive filtering but do
// not leak into result rows.
func TestSelectEngine_FilterOnUnprojectedColumn(t *testing.T) {
	engine := NewSelectEngine(seedUsers(t), nil)

	iter, err := engine.Execute(context.Background(), Select{
		Table:   "users",
		Columns: []string{"id"},
		Filters: []FieldQuery{{Field: "age", Operator: "<", Value: 30}},
	})
	require.NoError(t, err)

	rows := collectRows(t, iter)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Len(t, row, 1)
		assert.NotContains(t, row, "age")
	}
}

func TestSelectEngine_Limit(t *testing.T) {
	engine := NewSelectEngine(seedUsers(t), nil)

	iter, err := engine.Execute(context.Background(), Select{
		Table: "users",
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, collectRows(t, iter), 2)
}

func TestSelectEngine_Errors(t *testing.T) {
	engine := NewSelectEngine(seedUsers(t), nil)
	ctx := context.Background()

	_, err := engine.Execute(ctx, Select{Table: "missing"})
	assert.ErrorIs(t, err, store.ErrTableNotFound)

	_, err = engine.Execute(ctx, Select{Table: "users", Columns: []string{"ghost"}})
	assert.Error(t, err)

	_, err = engine.Execute(ctx, Select{
		Table:   "users",
		Filters: []FieldQuery{{Field: "age", Operator: "~", Value: 1}},
	})
	assert.Error(t, err)

	// A type-mismatched filter surfaces through the iterator.
	iter, err := engine.Execute(ctx, Select{
		Table:   "users",
		Filters: []FieldQuery{{Field: "name", Operator: "=", Value: 42}},
	})
	require.NoError(t, err)
	defer iter.Close()
	assert.False(t, iter.Next())
	assert.Error(t, iter.Err())
}

func TestSelectEngine_ContextCancellation(t *testing.T) {
	engine := NewSelectEngine(seedUsers(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iter, err := engine.Execute(ctx, Select{Table: "users"})
	require.NoError(t, err)
	defer iter.Close()

	assert.False(t, iter.Next())
	assert.ErrorIs(t, iter.Err(), context.Canceled)
}
