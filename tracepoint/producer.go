package tracepoint

import (
	"encoding/binary"

	"github.com/microsoft/linuxtracepoints-go/eventheadertypes"
)

// prologueMaxSize bounds the synthesized prologue: 4-byte write_index + the
// 8-byte EventHeader + an optional ActivityId extension (4-byte header +
// up to 32 bytes) + a Metadata extension header (4 bytes; the metadata
// bytes themselves are a separate data block, not part of the prologue).
const prologueMaxSize = 4 + eventheadertypes.HeaderSize +
	(eventheadertypes.ExtensionHeaderSize + eventheadertypes.ActivityIdAndRelatedSize) +
	eventheadertypes.ExtensionHeaderSize

// Emit synthesizes the EventHeader prologue (spec.md §4.4's "Emit path")
// and performs one vectored write: write_index | EventHeader |
// [ActivityId extension] | [Metadata extension header] | metadataBytes |
// fieldBlocks... . header.Flags' Extension bit is set automatically iff at
// least one extension block is present; the chain flag is set on every
// extension block except the last.
//
// activityId is 0, 16, or 32 bytes (16 = activity id only, 32 = activity
// id followed by related/parent activity id); any other length is a
// caller error. metadataBytes may be nil only if the event truly carries
// no Metadata extension (never the case for a well-formed EventHeader
// event, since the decoder requires one), in which case header.Flags must
// not have been set expecting one.
//
// Returns 0 on success, EINVAL for a bad activityId length, EBADF if ts is
// disabled/unregistered, or a syscall errno.
func Emit(ts *TracepointState, header eventheadertypes.EventHeader, activityId []byte, metadataBytes []byte, fieldBlocks [][]byte) int32 {
	prologue, data, err := buildPrologue(header, activityId, metadataBytes, fieldBlocks)
	if err != 0 {
		return err
	}
	return ts.WriteWithHeaders(data, prologue)
}

// buildPrologue does the pure, allocation-only half of Emit: validating
// activityId's length and assembling the prologue bytes and data-block
// list. Split out from Emit so the wire layout can be tested without a
// kernel or TracepointState.
func buildPrologue(header eventheadertypes.EventHeader, activityId []byte, metadataBytes []byte, fieldBlocks [][]byte) (prologue []byte, data [][]byte, errno int32) {
	hasActivity := len(activityId) > 0
	hasMetadata := metadataBytes != nil

	if hasActivity && len(activityId) != eventheadertypes.ActivityIdSize && len(activityId) != eventheadertypes.ActivityIdAndRelatedSize {
		return nil, nil, errEINVAL
	}

	if hasActivity {
		header.Flags |= eventheadertypes.HeaderFlagExtension
	}
	if hasMetadata {
		header.Flags |= eventheadertypes.HeaderFlagExtension
	}

	prologue = make([]byte, 4, prologueMaxSize)
	// prologue[0:4] (write_index) is filled in by WriteWithHeaders.

	prologue = append(prologue, byte(header.Flags), header.Version)
	prologue = appendU16(prologue, header.Id, header.Flags)
	prologue = appendU16(prologue, header.Tag, header.Flags)
	prologue = append(prologue, byte(header.Opcode), byte(header.Level))

	if hasActivity {
		kind := eventheadertypes.ExtensionKindActivityId
		if hasMetadata {
			kind |= eventheadertypes.ExtensionKindChainFlag
		}
		prologue = appendU16(prologue, uint16(len(activityId)), header.Flags)
		prologue = appendU16(prologue, uint16(kind), header.Flags)
		prologue = append(prologue, activityId...)
	}

	if hasMetadata {
		prologue = appendU16(prologue, uint16(len(metadataBytes)), header.Flags)
		prologue = appendU16(prologue, uint16(eventheadertypes.ExtensionKindMetadata), header.Flags)
	}

	data = make([][]byte, 0, 2+len(fieldBlocks))
	data = append(data, nil) // reserved for WriteWithHeaders' write_index overwrite
	if hasMetadata {
		data = append(data, metadataBytes)
	}
	data = append(data, fieldBlocks...)

	return prologue, data, 0
}

func appendU16(buf []byte, v uint16, flags eventheadertypes.HeaderFlags) []byte {
	var b [2]byte
	if flags&eventheadertypes.HeaderFlagLittleEndian != 0 {
		binary.LittleEndian.PutUint16(b[:], v)
	} else {
		binary.BigEndian.PutUint16(b[:], v)
	}
	return append(buf, b[:]...)
}
