package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   FieldQuery
		wantErr bool
	}{
		{"valid equality", FieldQuery{Field: "age", Operator: "=", Value: 30}, false},
		{"valid inequality", FieldQuery{Field: "age", Operator: "!=", Value: 30}, false},
		{"valid range", FieldQuery{Field: "score", Operator: ">=", Value: 1.5}, false},
		{"empty field", FieldQuery{Operator: "=", Value: 1}, true},
		{"empty operator", FieldQuery{Field: "age", Value: 1}, true},
		{"bad operator", FieldQuery{Field: "age", Operator: "~", Value: 1}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.query.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSelect_Validate(t *testing.T) {
	valid := Select{
		Table:   "users",
		Columns: []string{"name"},
		Filters: []FieldQuery{{Field: "age", Operator: ">", Value: 18}},
	}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Select{}).Validate())
	assert.Error(t, (&Select{Table: "users", Limit: -1}).Validate())

	badFilter := Select{
		Table:   "users",
		Filters: []FieldQuery{{Field: "", Operator: "=", Value: 1}},
	}
	assert.Error(t, badFilter.Validate())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		op     string
		target any
		want   bool
	}{
		{"int64 equal", int64(5), "=", 5, true},
		{"int64 less", int64(3), "<", int64(5), true},
		{"int32 vs float target", int32(3), ">=", 2.5, true},
		{"float not equal", 1.5, "!=", 2.5, true},
		{"string order", "apple", "<", "banana", true},
		{"string equal", "x", "=", "x", true},
		{"bool equal", true, "=", true, true},
		{"bool not equal", true, "!=", false, true},
		{"null matches nothing", nil, "=", 1, false},
		{"null is not equal", nil, "!=", 1, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := compare(tc.value, tc.op, tc.target)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	// Type mismatches and unordered operators are errors, not false.
	_, err := compare("abc", "=", 5)
	assert.Error(t, err)
	_, err = compare(true, "<", false)
	assert.Error(t, err)
	_, err = compare([]int32{1}, "=", []int32{1})
	assert.Error(t, err)
}
