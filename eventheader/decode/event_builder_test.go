package decode

import (
	"encoding/binary"

	"github.com/microsoft/linuxtracepoints-go/eventheadertypes"
)

// eventBuilder assembles raw EventHeader event bytes for tests: an 8-byte
// header, an optional ActivityId extension (chained to what follows), a
// Metadata extension holding the event name and field descriptors, and the
// payload bytes. It always uses little-endian byte order, matching
// HeaderFlagsDefaultWithExtension.
type eventBuilder struct {
	header     eventheadertypes.EventHeader
	metadata   []byte
	payload    []byte
	activityId []byte
}

func newEventBuilder(eventName string) *eventBuilder {
	b := &eventBuilder{
		header: eventheadertypes.EventHeader{
			Flags:   eventheadertypes.HeaderFlagsDefaultWithExtension,
			Version: 0,
			Opcode:  eventheadertypes.OpcodeInfo,
			Level:   eventheadertypes.LevelVerbose,
		},
	}
	b.metadata = append([]byte(eventName), 0)
	return b
}

// field appends one field descriptor (name, encoding, format with no tag)
// to the metadata block; it does not touch the payload.
func (b *eventBuilder) field(name string, encoding eventheadertypes.FieldEncoding, format eventheadertypes.FieldFormat) *eventBuilder {
	b.metadata = append(b.metadata, []byte(name)...)
	b.metadata = append(b.metadata, 0)
	if format != eventheadertypes.FieldFormatDefault {
		b.metadata = append(b.metadata, byte(encoding|eventheadertypes.FieldEncodingChainFlag), byte(format))
	} else {
		b.metadata = append(b.metadata, byte(encoding))
	}
	return b
}

// carrayField appends a constant-length array field descriptor, with the
// element count stored in the metadata immediately after the type bytes.
func (b *eventBuilder) carrayField(name string, encoding eventheadertypes.FieldEncoding, format eventheadertypes.FieldFormat, count uint16) *eventBuilder {
	b.field(name, encoding|eventheadertypes.FieldEncodingCArrayFlag, format)
	var countBytes [2]byte
	binary.LittleEndian.PutUint16(countBytes[:], count)
	b.metadata = append(b.metadata, countBytes[:]...)
	return b
}

// varrayField appends a variable-length array field descriptor; the element
// count is read from the payload at decode time, so callers must prefix the
// elements with a u16 count themselves.
func (b *eventBuilder) varrayField(name string, encoding eventheadertypes.FieldEncoding, format eventheadertypes.FieldFormat) *eventBuilder {
	return b.field(name, encoding|eventheadertypes.FieldEncodingVArrayFlag, format)
}

// activity sets the event's ActivityId extension payload: 16 bytes (activity
// id only) or 32 bytes (activity id + related id).
func (b *eventBuilder) activity(id []byte) *eventBuilder {
	b.activityId = id
	return b
}

// structField appends a struct field descriptor whose format byte carries
// the child field count.
func (b *eventBuilder) structField(name string, childCount int) *eventBuilder {
	b.metadata = append(b.metadata, []byte(name)...)
	b.metadata = append(b.metadata, 0)
	b.metadata = append(b.metadata, byte(eventheadertypes.FieldEncodingStruct|eventheadertypes.FieldEncodingChainFlag), byte(childCount))
	return b
}

func (b *eventBuilder) u8(v uint8) *eventBuilder {
	b.payload = append(b.payload, v)
	return b
}

func (b *eventBuilder) u16(v uint16) *eventBuilder {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	b.payload = append(b.payload, buf[:]...)
	return b
}

func (b *eventBuilder) u32(v uint32) *eventBuilder {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	b.payload = append(b.payload, buf[:]...)
	return b
}

func (b *eventBuilder) u64(v uint64) *eventBuilder {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	b.payload = append(b.payload, buf[:]...)
	return b
}

func (b *eventBuilder) zstring(s string) *eventBuilder {
	b.payload = append(b.payload, []byte(s)...)
	b.payload = append(b.payload, 0)
	return b
}

// build assembles the full event byte slice: header | metadata-extension | payload.
func (b *eventBuilder) build() []byte {
	var out []byte

	out = append(out, byte(b.header.Flags), b.header.Version)
	var idTag [4]byte
	binary.LittleEndian.PutUint16(idTag[0:2], b.header.Id)
	binary.LittleEndian.PutUint16(idTag[2:4], b.header.Tag)
	out = append(out, idTag[:]...)
	out = append(out, byte(b.header.Opcode), byte(b.header.Level))

	var extHeader [4]byte
	if len(b.activityId) > 0 {
		binary.LittleEndian.PutUint16(extHeader[0:2], uint16(len(b.activityId)))
		binary.LittleEndian.PutUint16(extHeader[2:4], uint16(eventheadertypes.ExtensionKindActivityId|eventheadertypes.ExtensionKindChainFlag))
		out = append(out, extHeader[:]...)
		out = append(out, b.activityId...)
	}

	binary.LittleEndian.PutUint16(extHeader[0:2], uint16(len(b.metadata)))
	binary.LittleEndian.PutUint16(extHeader[2:4], uint16(eventheadertypes.ExtensionKindMetadata))
	out = append(out, extHeader[:]...)
	out = append(out, b.metadata...)

	out = append(out, b.payload...)
	return out
}

// tracepointName returns a well-formed "Provider_LxxKyyOptions" name whose
// level matches b.header.Level, for passing to DecoderContext.Enumerate.
func (b *eventBuilder) tracepointName(provider string, keyword uint64) string {
	return provider + "_L" + hexByte(uint8(b.header.Level)) + "K" + hexU64(keyword)
}

func hexByte(v uint8) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[v>>4], digits[v&0xF]})
}

func hexU64(v uint64) string {
	if v == 0 {
		return "0"
	}
	const digits = "0123456789abcdef"
	var buf [16]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	return string(buf[i:])
}
