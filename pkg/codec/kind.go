package codec

import "fmt"

// Kind is the physical type of a column's bytes. The ordinal values are
// part of the storage contract: they index the decode and encode dispatch
// tables and must never be reordered.
type Kind uint8

const (
	Bool Kind = iota
	Int32
	Float32
	Int64
	Float64
	String
	BoolList
	Int32List
	Float32List
	Int64List
	Float64List
	StringList

	numKinds
)

var kindNames = [numKinds]string{
	Bool:        "bool",
	Int32:       "int32",
	Float32:     "float32",
	Int64:       "int64",
	Float64:     "float64",
	String:      "string",
	BoolList:    "list<bool>",
	Int32List:   "list<int32>",
	Float32List: "list<float32>",
	Int64List:   "list<int64>",
	Float64List: "list<float64>",
	StringList:  "list<string>",
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

func (k Kind) valid() bool {
	return k < numKinds
}

// ParseKind resolves a type name such as "int64" or "list<string>" to its
// Kind. Used when building schemas from configuration.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown column type %q", name)
}
