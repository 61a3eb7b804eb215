package decode

import (
	"strings"
	"testing"

	"github.com/microsoft/linuxtracepoints-go/eventheadertypes"
)

// TestWritePortIsAlwaysBigEndian exercises spec.md §4.5's "port (big-endian
// u16)" rule: the two payload bytes of a Port-formatted Value16 field must
// render as network byte order even when the event itself is little-endian,
// unlike every other Value16 format which follows the source endianness.
func TestWritePortIsAlwaysBigEndian(t *testing.T) {
	b := newEventBuilder("PortEvent")
	b.field("port", eventheadertypes.FieldEncodingValue16, eventheadertypes.FieldFormatPort)
	b.payload = append(b.payload, 0x1F, 0x90) // wire bytes for port 8080, big-endian

	var ctx DecoderContext
	e, err := ctx.Enumerate(b.tracepointName("PortProvider", 0), b.build())
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	if !e.MoveNext() || e.State() != StateValue {
		t.Fatalf("MoveNext: state=%v err=%v", e.State(), e.LastError())
	}

	var sb strings.Builder
	if err := WriteItemValueText(&sb, e.Reader(), DefaultConvertOptions, e.ItemInfo()); err != nil {
		t.Fatalf("WriteItemValueText: %v", err)
	}
	if sb.String() != "8080" {
		t.Errorf("port text = %q, want %q (0x1F90 read big-endian)", sb.String(), "8080")
	}

	var jb strings.Builder
	jw := NewJsonWriter(&jb, DefaultConvertOptions, false)
	if err := WriteItemValueJSON(jw, e.Reader(), e.ItemInfo()); err != nil {
		t.Fatalf("WriteItemValueJSON: %v", err)
	}
	if jb.String() != "8080" {
		t.Errorf("port json = %q, want %q", jb.String(), "8080")
	}
}

// TestWriteErrnoKnownAndUnknown covers both halves of WriteErrno's table
// lookup.
func TestWriteErrnoKnownAndUnknown(t *testing.T) {
	b := newEventBuilder("ErrnoEvent")
	b.field("e1", eventheadertypes.FieldEncodingValue32, eventheadertypes.FieldFormatErrno)
	b.u32(2) // ENOENT
	b.field("e2", eventheadertypes.FieldEncodingValue32, eventheadertypes.FieldFormatErrno)
	b.u32(9999) // out of table range

	var ctx DecoderContext
	e, err := ctx.Enumerate(b.tracepointName("ErrnoProvider", 0), b.build())
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	if !e.MoveNext() {
		t.Fatalf("MoveNext (e1): %v", e.LastError())
	}
	var sb1 strings.Builder
	if err := WriteItemValueText(&sb1, e.Reader(), DefaultConvertOptions, e.ItemInfo()); err != nil {
		t.Fatalf("WriteItemValueText (e1): %v", err)
	}
	if !strings.Contains(sb1.String(), "ENOENT") {
		t.Errorf("known errno text = %q, want it to contain ENOENT", sb1.String())
	}

	if !e.MoveNext() {
		t.Fatalf("MoveNext (e2): %v", e.LastError())
	}
	var sb2 strings.Builder
	if err := WriteItemValueText(&sb2, e.Reader(), DefaultConvertOptions, e.ItemInfo()); err != nil {
		t.Fatalf("WriteItemValueText (e2): %v", err)
	}
	if sb2.String() != "ERRNO(9999)" {
		t.Errorf("unknown errno text = %q, want %q", sb2.String(), "ERRNO(9999)")
	}
}
