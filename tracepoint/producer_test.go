package tracepoint

import (
	"bytes"
	"testing"

	"github.com/microsoft/linuxtracepoints-go/eventheadertypes"
)

func baseHeader(littleEndian bool) eventheadertypes.EventHeader {
	flags := eventheadertypes.HeaderFlagsDefault
	if !littleEndian {
		flags &^= eventheadertypes.HeaderFlagLittleEndian
	}
	return eventheadertypes.EventHeader{
		Flags:   flags,
		Version: 0,
		Id:      0x1234,
		Tag:     0xABCD,
		Opcode:  eventheadertypes.OpcodeInfo,
		Level:   eventheadertypes.LevelVerbose,
	}
}

func TestBuildPrologueNoExtensions(t *testing.T) {
	h := baseHeader(true)
	prologue, data, errno := buildPrologue(h, nil, nil, nil)
	if errno != 0 {
		t.Fatalf("buildPrologue errno = %d, want 0", errno)
	}
	if prologue[4]&byte(eventheadertypes.HeaderFlagExtension) != 0 {
		t.Fatal("Extension flag set with no activityId/metadata")
	}
	want := []byte{
		0, 0, 0, 0, // write_index placeholder
		byte(h.Flags), h.Version,
		0x34, 0x12, // Id, little-endian
		0xCD, 0xAB, // Tag, little-endian
		byte(h.Opcode), byte(h.Level),
	}
	if !bytes.Equal(prologue, want) {
		t.Fatalf("prologue = % x, want % x", prologue, want)
	}
	if len(data) != 1 || data[0] != nil {
		t.Fatalf("data = %v, want a single nil reserved slot", data)
	}
}

func TestBuildPrologueMetadataOnly(t *testing.T) {
	h := baseHeader(true)
	meta := []byte("MyEvent\x00")
	prologue, data, errno := buildPrologue(h, nil, meta, nil)
	if errno != 0 {
		t.Fatalf("errno = %d", errno)
	}
	if prologue[4]&byte(eventheadertypes.HeaderFlagExtension) == 0 {
		t.Fatal("Extension flag not set with metadata present")
	}
	// After the 8-byte EventHeader, expect the Metadata extension header:
	// size (u16) | kind (u16), kind has no chain bit since it's the only block.
	extOff := 4 + eventheadertypes.HeaderSize
	gotSize := uint16(prologue[extOff]) | uint16(prologue[extOff+1])<<8
	gotKind := uint16(prologue[extOff+2]) | uint16(prologue[extOff+3])<<8
	if int(gotSize) != len(meta) {
		t.Fatalf("metadata extension size = %d, want %d", gotSize, len(meta))
	}
	if gotKind != uint16(eventheadertypes.ExtensionKindMetadata) {
		t.Fatalf("metadata extension kind = %#x, want %#x (no chain flag)", gotKind, eventheadertypes.ExtensionKindMetadata)
	}
	if len(data) != 2 || !bytes.Equal(data[1], meta) {
		t.Fatalf("data = %v, want [nil, meta]", data)
	}
}

func TestBuildPrologueActivityIdAndMetadataOrderingAndChainFlag(t *testing.T) {
	h := baseHeader(true)
	activityId := bytes.Repeat([]byte{0xAA}, eventheadertypes.ActivityIdSize)
	meta := []byte("MyEvent\x00")

	prologue, data, errno := buildPrologue(h, activityId, meta, nil)
	if errno != 0 {
		t.Fatalf("errno = %d", errno)
	}

	// Activity-id extension must come first, right after the EventHeader.
	extOff := 4 + eventheadertypes.HeaderSize
	gotSize := uint16(prologue[extOff]) | uint16(prologue[extOff+1])<<8
	gotKind := uint16(prologue[extOff+2]) | uint16(prologue[extOff+3])<<8
	if int(gotSize) != len(activityId) {
		t.Fatalf("activity-id extension size = %d, want %d", gotSize, len(activityId))
	}
	wantKind := uint16(eventheadertypes.ExtensionKindActivityId) | uint16(eventheadertypes.ExtensionKindChainFlag)
	if gotKind != wantKind {
		t.Fatalf("activity-id extension kind = %#x, want %#x (chain flag set, not last)", gotKind, wantKind)
	}

	activityOff := extOff + eventheadertypes.ExtensionHeaderSize
	if !bytes.Equal(prologue[activityOff:activityOff+len(activityId)], activityId) {
		t.Fatal("activity id bytes not found immediately after its extension header")
	}

	// Metadata extension follows, and as the last block must not have the
	// chain flag set.
	metaExtOff := activityOff + len(activityId)
	gotMetaKind := uint16(prologue[metaExtOff+2]) | uint16(prologue[metaExtOff+3])<<8
	if gotMetaKind != uint16(eventheadertypes.ExtensionKindMetadata) {
		t.Fatalf("metadata extension kind = %#x, want %#x (no chain flag, last block)", gotMetaKind, eventheadertypes.ExtensionKindMetadata)
	}

	if len(data) != 2 || !bytes.Equal(data[1], meta) {
		t.Fatalf("data = %v, want [nil, meta]", data)
	}
}

func TestBuildPrologueActivityIdAndRelated(t *testing.T) {
	h := baseHeader(true)
	activityId := bytes.Repeat([]byte{0xBB}, eventheadertypes.ActivityIdAndRelatedSize)
	_, _, errno := buildPrologue(h, activityId, nil, nil)
	if errno != 0 {
		t.Fatalf("errno = %d, want 0 for a valid 32-byte activity+related id", errno)
	}
}

func TestBuildPrologueInvalidActivityIdLength(t *testing.T) {
	h := baseHeader(true)
	for _, n := range []int{1, 8, 15, 17, 31, 33} {
		_, _, errno := buildPrologue(h, make([]byte, n), nil, nil)
		if errno != errEINVAL {
			t.Fatalf("activityId length %d: errno = %d, want EINVAL(%d)", n, errno, errEINVAL)
		}
	}
}

func TestBuildPrologueFieldBlocksAppended(t *testing.T) {
	h := baseHeader(true)
	f1 := []byte{1, 2, 3}
	f2 := []byte{4, 5}
	_, data, errno := buildPrologue(h, nil, []byte("x\x00"), [][]byte{f1, f2})
	if errno != 0 {
		t.Fatalf("errno = %d", errno)
	}
	if len(data) != 4 || !bytes.Equal(data[2], f1) || !bytes.Equal(data[3], f2) {
		t.Fatalf("data = %v, want [nil, metadata, f1, f2]", data)
	}
}

func TestBuildPrologueBigEndian(t *testing.T) {
	h := baseHeader(false)
	prologue, _, errno := buildPrologue(h, nil, nil, nil)
	if errno != 0 {
		t.Fatalf("errno = %d", errno)
	}
	if prologue[6] != 0x12 || prologue[7] != 0x34 {
		t.Fatalf("Id bytes = % x, want big-endian 12 34", prologue[6:8])
	}
	if prologue[8] != 0xAB || prologue[9] != 0xCD {
		t.Fatalf("Tag bytes = % x, want big-endian ab cd", prologue[8:10])
	}
}
