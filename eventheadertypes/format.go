package eventheadertypes

// FieldFormat is the semantic interpretation layered on top of a field's
// FieldEncoding: a 7-bit format value plus a chain flag meaning "a 16-bit
// tag follows this format byte in the metadata."
type FieldFormat uint8

const (
	// FieldFormatChainFlag indicates a 16-bit tag follows the format byte.
	// When clear, tag defaults to 0.
	FieldFormatChainFlag FieldFormat = 0x80

	// FieldFormatValueMask isolates the format from the chain flag.
	FieldFormatValueMask FieldFormat = 0x7F
)

const (
	// FieldFormatDefault means "use the natural rendering for the field's
	// encoding" (e.g. an unsigned decimal for Value8/16/32/64, raw bytes
	// for BinaryLength16Char8).
	FieldFormatDefault FieldFormat = 0

	FieldFormatUnsignedInt FieldFormat = 1
	FieldFormatSignedInt   FieldFormat = 2
	FieldFormatHexInt      FieldFormat = 3
	FieldFormatErrno       FieldFormat = 4
	FieldFormatPid         FieldFormat = 5
	FieldFormatTime        FieldFormat = 6
	FieldFormatBoolean     FieldFormat = 7
	FieldFormatFloat       FieldFormat = 8
	FieldFormatUuid        FieldFormat = 9
	FieldFormatPort        FieldFormat = 10
	FieldFormatIPv4        FieldFormat = 11
	FieldFormatIPv6        FieldFormat = 12

	// String formats. StringLatin1 through StringJson apply on top of a
	// ZString*/StringLength16* encoding to say how to decode the code
	// units into characters.
	FieldFormatStringLatin1 FieldFormat = 13
	FieldFormatStringUtf    FieldFormat = 14
	FieldFormatStringUtfBom FieldFormat = 15
	FieldFormatStringXml    FieldFormat = 16
	FieldFormatStringJson   FieldFormat = 17

	// FieldFormatHexBytes renders a fixed-size or binary field as a hex
	// dump instead of interpreting it as a number or string.
	FieldFormatHexBytes FieldFormat = 18
)

// Value returns f with the chain flag masked off.
func (f FieldFormat) Value() FieldFormat {
	return f & FieldFormatValueMask
}

// Chained reports whether a 16-bit tag follows this format byte.
func (f FieldFormat) Chained() bool {
	return f&FieldFormatChainFlag != 0
}

// IsStringFormat reports whether f selects one of the character-set
// decodings used for ZString*/StringLength16* encodings.
func (f FieldFormat) IsStringFormat() bool {
	switch f.Value() {
	case FieldFormatStringLatin1, FieldFormatStringUtf, FieldFormatStringUtfBom,
		FieldFormatStringXml, FieldFormatStringJson:
		return true
	default:
		return false
	}
}

func (f FieldFormat) String() string {
	names := map[FieldFormat]string{
		FieldFormatDefault:      "Default",
		FieldFormatUnsignedInt:  "UnsignedInt",
		FieldFormatSignedInt:    "SignedInt",
		FieldFormatHexInt:       "HexInt",
		FieldFormatErrno:        "Errno",
		FieldFormatPid:          "Pid",
		FieldFormatTime:         "Time",
		FieldFormatBoolean:      "Boolean",
		FieldFormatFloat:        "Float",
		FieldFormatUuid:         "Uuid",
		FieldFormatPort:         "Port",
		FieldFormatIPv4:         "IPv4",
		FieldFormatIPv6:         "IPv6",
		FieldFormatStringLatin1: "StringLatin1",
		FieldFormatStringUtf:    "StringUtf",
		FieldFormatStringUtfBom: "StringUtfBom",
		FieldFormatStringXml:    "StringXml",
		FieldFormatStringJson:   "StringJson",
		FieldFormatHexBytes:     "HexBytes",
	}
	v := f.Value()
	s, ok := names[v]
	if !ok {
		s = "FieldFormat(" + itoa(uint64(v)) + ")"
	}
	if f.Chained() {
		s += "|Chain"
	}
	return s
}
