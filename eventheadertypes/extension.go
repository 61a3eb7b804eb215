package eventheadertypes

// EventHeaderExtension is the 4-byte header of a chainable extension block.
// It is followed immediately (no padding) by Size bytes of extension
// payload, and then, if Kind has the chain flag set, by another
// EventHeaderExtension block; otherwise by the event payload.
type EventHeaderExtension struct {
	Size uint16
	Kind ExtensionKind
}

// ExtensionHeaderSize is the fixed wire size of an EventHeaderExtension: 4
// bytes (Size uint16 + Kind uint16).
const ExtensionHeaderSize = 4

// ExtensionKind identifies the contents of an extension block's payload.
// The high bit (ExtensionKindChainFlag) is not part of the kind value; it
// indicates whether another extension block follows this one.
type ExtensionKind uint16

const (
	// ExtensionKindChainFlag, when set in the wire Kind value, means
	// another extension block immediately follows this one's payload.
	ExtensionKindChainFlag ExtensionKind = 0x8000

	// ExtensionKindValueMask isolates the kind from the chain flag.
	ExtensionKindValueMask ExtensionKind = 0x7FFF

	// ExtensionKindInvalid is not a valid extension kind.
	ExtensionKindInvalid ExtensionKind = 0

	// ExtensionKindMetadata identifies the event's self-description: event
	// name followed by field descriptors. At most one per event; required
	// for decoding.
	ExtensionKindMetadata ExtensionKind = 1

	// ExtensionKindActivityId identifies a 16- or 32-byte block holding the
	// event's activity id, optionally followed by a related (parent)
	// activity id. At most one per event.
	ExtensionKindActivityId ExtensionKind = 2
)

// Value returns the kind with the chain flag masked off.
func (k ExtensionKind) Value() ExtensionKind {
	return k & ExtensionKindValueMask
}

// Chained reports whether another extension block follows this one.
func (k ExtensionKind) Chained() bool {
	return k&ExtensionKindChainFlag != 0
}

func (k ExtensionKind) String() string {
	suffix := ""
	if k.Chained() {
		suffix = "|Chain"
	}
	switch k.Value() {
	case ExtensionKindInvalid:
		return "Invalid" + suffix
	case ExtensionKindMetadata:
		return "Metadata" + suffix
	case ExtensionKindActivityId:
		return "ActivityId" + suffix
	default:
		return "ExtensionKind(" + itoa(uint64(k.Value())) + ")" + suffix
	}
}

// ActivityIdSize and ActivityIdAndRelatedSize are the only two valid payload
// sizes for an ActivityId extension block: the activity id alone, or the
// activity id followed by the related (parent) activity id.
const (
	ActivityIdSize           = 16
	ActivityIdAndRelatedSize = 32
)
