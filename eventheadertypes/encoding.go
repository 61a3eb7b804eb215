package eventheadertypes

// FieldEncoding is the base storage shape of a field descriptor's encoding
// byte: a 5-bit base value plus three flag bits layered on top (chain,
// constant-length array, variable-length array).
type FieldEncoding uint8

const (
	// FieldEncodingValueMask isolates the base encoding from the flag bits.
	FieldEncodingValueMask FieldEncoding = 0x1F

	// FieldEncodingCArrayFlag marks a constant-length array: the element
	// count is a 16-bit value stored in the metadata, immediately after the
	// encoding/format/tag bytes.
	FieldEncodingCArrayFlag FieldEncoding = 0x20

	// FieldEncodingVArrayFlag marks a variable-length array: the element
	// count is a 16-bit value stored inline at the start of the field's
	// payload. CArrayFlag and VArrayFlag are mutually exclusive; both set
	// is NotSupported.
	FieldEncodingVArrayFlag FieldEncoding = 0x40

	// FieldEncodingChainFlag indicates a format byte follows the encoding
	// byte in the metadata. When clear, format defaults to
	// FieldFormatDefault and tag defaults to 0.
	FieldEncodingChainFlag FieldEncoding = 0x80

	FieldEncodingArrayFlags = FieldEncodingCArrayFlag | FieldEncodingVArrayFlag
)

// Base encoding values (FieldEncodingValueMask bits).
const (
	FieldEncodingInvalid FieldEncoding = 0

	// FieldEncodingStruct has no payload bytes of its own; the format
	// byte's low 7 bits give the number of following field descriptors
	// that belong to this struct (minimum 1).
	FieldEncodingStruct FieldEncoding = 1

	// Fixed-size scalar encodings; the number is the element size in bytes.
	FieldEncodingValue8   FieldEncoding = 2
	FieldEncodingValue16  FieldEncoding = 3
	FieldEncodingValue32  FieldEncoding = 4
	FieldEncodingValue64  FieldEncoding = 5
	FieldEncodingValue128 FieldEncoding = 6

	// NUL-terminated string encodings; the number is the code unit size.
	FieldEncodingZStringChar8  FieldEncoding = 7
	FieldEncodingZStringChar16 FieldEncoding = 8
	FieldEncodingZStringChar32 FieldEncoding = 9

	// Length-prefixed string encodings: a 16-bit count of code units
	// immediately precedes the data.
	FieldEncodingStringLength16Char8  FieldEncoding = 10
	FieldEncodingStringLength16Char16 FieldEncoding = 11
	FieldEncodingStringLength16Char32 FieldEncoding = 12

	// FieldEncodingBinaryLength16Char8 is length-prefixed opaque bytes (no
	// semantic string interpretation unless the format says otherwise).
	FieldEncodingBinaryLength16Char8 FieldEncoding = 13
)

// Value returns e with the chain and array flags masked off.
func (e FieldEncoding) Value() FieldEncoding {
	return e & FieldEncodingValueMask
}

// Chained reports whether a format byte follows this encoding byte.
func (e FieldEncoding) Chained() bool {
	return e&FieldEncodingChainFlag != 0
}

// IsCArray reports whether this field is a constant-length array.
func (e FieldEncoding) IsCArray() bool {
	return e&FieldEncodingCArrayFlag != 0
}

// IsVArray reports whether this field is a variable-length array.
func (e FieldEncoding) IsVArray() bool {
	return e&FieldEncodingVArrayFlag != 0
}

// IsArray reports whether this field is an array of either shape.
func (e FieldEncoding) IsArray() bool {
	return e&FieldEncodingArrayFlags != 0
}

// ElementSize returns the fixed size in bytes of one element of this base
// encoding, or 0 if the encoding has no fixed element size (structs and all
// string/binary encodings are variable length).
func (e FieldEncoding) ElementSize() int {
	switch e.Value() {
	case FieldEncodingValue8:
		return 1
	case FieldEncodingValue16:
		return 2
	case FieldEncodingValue32:
		return 4
	case FieldEncodingValue64:
		return 8
	case FieldEncodingValue128:
		return 16
	default:
		return 0
	}
}

func (e FieldEncoding) String() string {
	names := [...]string{
		"Invalid", "Struct", "Value8", "Value16", "Value32", "Value64",
		"Value128", "ZStringChar8", "ZStringChar16", "ZStringChar32",
		"StringLength16Char8", "StringLength16Char16", "StringLength16Char32",
		"BinaryLength16Char8",
	}
	v := e.Value()
	s := "FieldEncoding(" + itoa(uint64(v)) + ")"
	if int(v) < len(names) {
		s = names[v]
	}
	if e.IsCArray() {
		s += "|CArray"
	}
	if e.IsVArray() {
		s += "|VArray"
	}
	if e.Chained() {
		s += "|Chain"
	}
	return s
}
