package codec

import (
	"fmt"
	"sort"
)

// colRequest pairs a requested schema-list position with the output slot
// the caller wants its value in.
type colRequest struct {
	schemaPos int
	outSlot   int
}

// newProjection builds the sorted plan for a projected decode: one
// request per entry of columns, sorted ascending by schema position so a
// single forward pass over the schema list can serve them in wire order.
// Requested positions must be distinct and in range; output slots follow
// the caller's ordering and are not constrained.
//
// Tombstone slots count toward schema positions here, so a projection
// written against the full schema list stays valid after columns are
// dropped.
func newProjection(columns []int, schemaLen int) ([]colRequest, error) {
	plan := make([]colRequest, len(columns))
	for i, pos := range columns {
		if pos < 0 || pos >= schemaLen {
			return nil, fmt.Errorf("%w: position %d out of range [0,%d)", ErrInvalidProjection, pos, schemaLen)
		}
		plan[i] = colRequest{schemaPos: pos, outSlot: i}
	}
	sort.Slice(plan, func(i, j int) bool { return plan[i].schemaPos < plan[j].schemaPos })
	for i := 1; i < len(plan); i++ {
		if plan[i].schemaPos == plan[i-1].schemaPos {
			return nil, fmt.Errorf("%w: position %d requested twice", ErrInvalidProjection, plan[i].schemaPos)
		}
	}
	return plan, nil
}
