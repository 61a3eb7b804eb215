// Package eventheadertypes defines the on-the-wire structures and small
// byte-sized enums that make up the EventHeader event format: the fixed
// 8-byte EventHeader, the chainable 4-byte extension block header, and the
// encoding/format/flag bytes used by the metadata block. Nothing in this
// package does I/O; it only describes layout.
package eventheadertypes

// EventHeader is the fixed 8-byte prefix of every EventHeader event.
//
// If Flags has the Extension bit set, the header is followed by one or more
// EventHeaderExtension blocks; otherwise it is followed immediately by the
// event payload. All multi-byte fields elsewhere in the event (extension
// payloads, metadata, field values) use the byte order indicated by the
// LittleEndian bit of Flags.
type EventHeader struct {
	Flags   HeaderFlags
	Version uint8
	Id      uint16
	Tag     uint16
	Opcode  Opcode
	Level   Level
}

// HeaderSize is the fixed wire size of an EventHeader: 8 bytes.
const HeaderSize = 8

// HeaderFlags describes pointer size, byte order, and whether extension
// blocks follow the EventHeader. Any bit outside HeaderFlagsAllValid
// (Pointer64|LittleEndian|Extension) is reserved; a decoder seeing one set must reject the event as
// NotSupported.
type HeaderFlags uint8

const (
	// HeaderFlagPointer64 indicates the producing process used 64-bit
	// pointers. The decoder does not currently use this bit; it is carried
	// for forward compatibility with pointer-sized field formats.
	HeaderFlagPointer64 HeaderFlags = 1 << 0

	// HeaderFlagLittleEndian indicates the event's multi-byte fields (the
	// EventHeader's own Id/Tag, every extension, and the payload) are
	// little-endian. When clear, they are big-endian.
	HeaderFlagLittleEndian HeaderFlags = 1 << 1

	// HeaderFlagExtension indicates one or more EventHeaderExtension blocks
	// immediately follow the EventHeader.
	HeaderFlagExtension HeaderFlags = 1 << 2

	// HeaderFlagsAllValid is the set of flag bits this decoder understands.
	// Any other bit set makes the event NotSupported.
	HeaderFlagsAllValid = HeaderFlagPointer64 | HeaderFlagLittleEndian | HeaderFlagExtension

	// HeaderFlagsDefault is the little-endian flag set for an event with no
	// extensions. It does not include HeaderFlagPointer64 on any platform.
	HeaderFlagsDefault = HeaderFlagLittleEndian

	// HeaderFlagsDefaultWithExtension is HeaderFlagsDefault with the
	// Extension bit set, for producers emitting at least one extension
	// block.
	HeaderFlagsDefaultWithExtension = HeaderFlagsDefault | HeaderFlagExtension
)

// Valid reports whether f contains only recognized bits.
func (f HeaderFlags) Valid() bool {
	return f&^HeaderFlagsAllValid == 0
}

func (f HeaderFlags) String() string {
	if f == 0 {
		return "0"
	}
	s := ""
	add := func(bit HeaderFlags, name string) {
		if f&bit != 0 {
			if s != "" {
				s += "|"
			}
			s += name
		}
	}
	add(HeaderFlagPointer64, "Pointer64")
	add(HeaderFlagLittleEndian, "LittleEndian")
	add(HeaderFlagExtension, "Extension")
	if rest := f &^ HeaderFlagsAllValid; rest != 0 {
		if s != "" {
			s += "|"
		}
		s += "Unknown"
	}
	return s
}

// Opcode gives special semantics to an event: start/stop of a causally
// related activity, or plain informational.
type Opcode uint8

const (
	OpcodeInfo          Opcode = 0
	OpcodeActivityStart Opcode = 1
	OpcodeActivityStop  Opcode = 2
	// Other values are reserved for future well-known opcodes; the decoder
	// treats them as opaque informational data, not an error.
)

func (o Opcode) String() string {
	switch o {
	case OpcodeInfo:
		return "Info"
	case OpcodeActivityStart:
		return "ActivityStart"
	case OpcodeActivityStop:
		return "ActivityStop"
	default:
		return "Opcode(" + itoa(uint64(o)) + ")"
	}
}

// Level is an event's severity, 1 (critical) through 5 (verbose). 0 is
// invalid and never appears in a well-formed header, though the decoder does
// not itself reject it (the kernel/producer side is responsible for that).
type Level uint8

const (
	LevelInvalid       Level = 0
	LevelCritical      Level = 1
	LevelError         Level = 2
	LevelWarning       Level = 3
	LevelInformation   Level = 4
	LevelVerbose       Level = 5
)

func (l Level) String() string {
	switch l {
	case LevelInvalid:
		return "Invalid"
	case LevelCritical:
		return "Critical"
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	case LevelInformation:
		return "Information"
	case LevelVerbose:
		return "Verbose"
	default:
		return "Level(" + itoa(uint64(l)) + ")"
	}
}

// itoa is a tiny unsigned-to-decimal helper so these String() methods don't
// need to import strconv just to render an unrecognized small value.
func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
