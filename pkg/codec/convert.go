package codec

import (
	"fmt"
	"math"
)

// RecordFromMap builds a record slice from named fields, coercing loosely
// typed input (JSON decoding, CLI arguments) to each column's physical
// type. Missing or nil fields become NULL for value columns and are an
// error for key columns.
func RecordFromMap(schemas []ColumnSchema, fields map[string]any) ([]any, error) {
	record := make([]any, len(schemas))
	for _, col := range schemas {
		if isDropped(col) {
			continue
		}
		v, ok := fields[col.Name()]
		if !ok || v == nil {
			if col.IsKey() {
				return nil, fmt.Errorf("missing key column %q", col.Name())
			}
			continue
		}
		cv, err := coerce(col.Kind(), v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name(), err)
		}
		record[col.Index()] = cv
	}
	return record, nil
}

// RecordToMap converts a decoded record to named fields. Tombstone slots
// are omitted; NULL columns appear with a nil value.
func RecordToMap(schemas []ColumnSchema, record []any) map[string]any {
	out := make(map[string]any, len(record))
	for _, col := range schemas {
		if isDropped(col) {
			continue
		}
		out[col.Name()] = record[col.Index()]
	}
	return out
}

func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case Int32:
		if n, ok := asInt64(v); ok && n >= math.MinInt32 && n <= math.MaxInt32 {
			return int32(n), nil
		}
	case Int64:
		if n, ok := asInt64(v); ok {
			return n, nil
		}
	case Float32:
		if f, ok := asFloat64(v); ok {
			return float32(f), nil
		}
	case Float64:
		if f, ok := asFloat64(v); ok {
			return f, nil
		}
	case String:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case BoolList:
		if s, ok := coerceSlice(v, func(e any) (bool, bool) { b, ok := e.(bool); return b, ok }); ok {
			return s, nil
		}
	case Int32List:
		if s, ok := coerceSlice(v, asInt32); ok {
			return s, nil
		}
	case Float32List:
		if s, ok := coerceSlice(v, asFloat32); ok {
			return s, nil
		}
	case Int64List:
		if s, ok := coerceSlice(v, asInt64); ok {
			return s, nil
		}
	case Float64List:
		if s, ok := coerceSlice(v, asFloat64); ok {
			return s, nil
		}
	case StringList:
		if s, ok := coerceSlice(v, func(e any) (string, bool) { t, ok := e.(string); return t, ok }); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as %s", v, kind)
}

// asInt64 accepts the integer shapes JSON and Go literals produce.
// float64 is accepted only when it carries an integral value, since JSON
// numbers always arrive as float64.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if x == math.Trunc(x) && x >= math.MinInt64 && x <= math.MaxInt64 {
			return int64(x), true
		}
	}
	return 0, false
}

func asInt32(v any) (int32, bool) {
	n, ok := asInt64(v)
	if !ok || n < math.MinInt32 || n > math.MaxInt32 {
		return 0, false
	}
	return int32(n), true
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func asFloat32(v any) (float32, bool) {
	f, ok := asFloat64(v)
	return float32(f), ok
}

func coerceSlice[E any](v any, elem func(any) (E, bool)) ([]E, bool) {
	switch s := v.(type) {
	case []E:
		return s, true
	case []any:
		out := make([]E, len(s))
		for i, e := range s {
			ev, ok := elem(e)
			if !ok {
				return nil, false
			}
			out[i] = ev
		}
		return out, true
	}
	return nil, false
}
