// Package decode implements the EventHeader streaming decoder: a reusable
// DecoderContext that validates an event's header and metadata, then
// iterates the payload as a flat sequence of position events. It also holds
// the text/JSON formatters that render a decoded item or an entire event.
package decode

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// ByteReader is a value-typed, endian-aware cursor helper. It carries a
// single bit (the source event's byte order) so call sites don't need to
// rethread an endian flag through every read; it performs no I/O and holds
// no buffer of its own; every method takes the bytes to read directly.
//
// Callers are responsible for checking that enough bytes remain before
// calling any Read method; like perffile's bufDecoder, ByteReader assumes
// sufficient length and will panic (via a slice out-of-range) rather than
// return an error on a short read.
type ByteReader struct {
	bigEndian bool
}

// NewByteReader returns a ByteReader for an event whose HeaderFlags indicate
// the given byte order.
func NewByteReader(bigEndian bool) ByteReader {
	return ByteReader{bigEndian: bigEndian}
}

// ByteSwapNeeded reports whether the reader's source order differs from the
// host's native order, i.e. whether a caller reading raw bytes directly
// (bypassing ByteReader) would need to swap them.
func (r ByteReader) ByteSwapNeeded() bool {
	return r.bigEndian != isHostBigEndian
}

// BigEndian reports the source byte order this reader was constructed with.
func (r ByteReader) BigEndian() bool {
	return r.bigEndian
}

func (r ByteReader) order() binary.ByteOrder {
	if r.bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (r ByteReader) U16(b []byte) uint16 { return r.order().Uint16(b) }
func (r ByteReader) U32(b []byte) uint32 { return r.order().Uint32(b) }
func (r ByteReader) U64(b []byte) uint64 { return r.order().Uint64(b) }

func (r ByteReader) I16(b []byte) int16 { return int16(r.U16(b)) }
func (r ByteReader) I32(b []byte) int32 { return int32(r.U32(b)) }
func (r ByteReader) I64(b []byte) int64 { return int64(r.U64(b)) }

func (r ByteReader) F32(b []byte) float32 {
	return math.Float32frombits(r.U32(b))
}

func (r ByteReader) F64(b []byte) float64 {
	return math.Float64frombits(r.U64(b))
}

var isHostBigEndian = func() bool {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	return b[0] == 0
}()
