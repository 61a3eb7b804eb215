package decode

import "github.com/microsoft/linuxtracepoints-go/eventheadertypes"

// ItemMetadata describes the shape of the field the enumerator is currently
// positioned on: its wire encoding, its semantic format, its provider tag,
// and (for arrays) its element size and count.
type ItemMetadata struct {
	Encoding eventheadertypes.FieldEncoding
	Format   eventheadertypes.FieldFormat
	Tag      uint16

	// IsArray is true at ArrayBegin/ArrayEnd of both CArray and VArray
	// fields. It is false for the individual element Values of an array.
	IsArray bool

	// ElementSize is the fixed size in bytes of one array element, or the
	// size of the scalar value itself for a non-array fixed-size field. It
	// is 0 for variable-length elements (strings, binary) and for structs.
	ElementSize int

	// ElementCount is the total number of elements in the array at
	// ArrayBegin/ArrayEnd, and 1 everywhere else, including each element
	// Value within an array (use ArrayIndex to locate the element).
	ElementCount int

	// ArrayIndex is the 0-based position of the current element within its
	// array. 0 for a non-array field.
	ArrayIndex int
}

// ItemInfo is the enumerator's current item: its field name and decoded
// metadata, plus the raw bytes backing its value. Value is empty for
// StructBegin/StructEnd and for ArrayBegin/ArrayEnd of a struct array; for
// ArrayBegin of a fixed-element array it is the entire backing array so
// callers can bulk-read it without iterating element by element.
type ItemInfo struct {
	NameBytes []byte
	Metadata  ItemMetadata
	Value     []byte
}
