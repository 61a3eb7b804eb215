package decode

import "github.com/microsoft/linuxtracepoints-go/eventheadertypes"

// EventInfo is the set of event-level attributes exposed by an Enumerator
// once validation succeeds: everything a caller needs before (or instead
// of) walking the field list. All slices borrow the original tracepoint
// name / event bytes passed to Enumerate; they are valid only as long as
// those inputs are.
type EventInfo struct {
	// Provider and Options come from parsing the tracepoint name
	// ("Provider_LxxKyyOptions"); Keyword is the 64-bit mask parsed from
	// the name, since the EventHeader itself does not carry it.
	Provider string
	Options  string
	Keyword  uint64

	// NameBytes is the event name from the Metadata extension (NUL not
	// included).
	NameBytes []byte

	Level   eventheadertypes.Level
	Opcode  eventheadertypes.Opcode
	Tag     uint16
	Id      uint16
	Version uint8

	// ActivityId and RelatedActivityId are 16 bytes each, or nil if the
	// event had no ActivityId extension / no related id within it.
	ActivityId        []byte
	RelatedActivityId []byte

	// BigEndian and Pointer64 report the header flags the source event
	// advertised; the decoder itself always reads according to BigEndian,
	// it never byte-swaps payload bytes to host order.
	BigEndian bool
	Pointer64 bool
}
