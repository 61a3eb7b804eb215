package decode

import "unicode/utf8"

// WriteLatin1 writes a Latin-1 (ISO-8859-1) encoded byte string to filter:
// bytes 0x00-0x7F pass through as ASCII, bytes 0x80-0xFF become the
// matching Unicode code point U+0080-U+00FF.
func WriteLatin1(bytes []byte, filter Filter) error {
	n := len(bytes)
	written := 0
	for pos := 0; pos < n; pos++ {
		if bytes[pos] <= 0x7F {
			continue
		}
		if written < pos {
			if _, err := filter.Write(bytes[written:pos]); err != nil {
				return err
			}
		}
		if err := filter.WriteRune(rune(bytes[pos])); err != nil {
			return err
		}
		written = pos + 1
	}
	if written < n {
		_, err := filter.Write(bytes[written:])
		return err
	}
	return nil
}

// WriteUTF8WithLatin1Fallback writes a byte string to filter assuming UTF-8
// encoding; any byte sequence that is not valid UTF-8 is instead treated as
// a single Latin-1 byte and emitted as that code point. This never fails to
// make forward progress and never rejects input, matching event/field name
// decoding's best-effort posture for malformed metadata.
func WriteUTF8WithLatin1Fallback(bytes []byte, filter Filter) error {
	n := len(bytes)
	written := 0
	pos := 0
	for pos < n {
		b0 := bytes[pos]
		switch {
		case b0 <= 0x7F:
			pos++
			continue

		case b0 <= 0xBF:
			// Invalid lead byte; fall through to Latin-1.

		case b0 <= 0xDF:
			if n-pos >= 2 {
				b1 := bytes[pos+1]
				if b1&0xC0 == 0x80 {
					ch := rune(b0&0x1F)<<6 | rune(b1&0x3F)
					if ch >= 0x80 {
						pos += 2
						continue
					}
				}
			}

		case b0 <= 0xEF:
			if n-pos >= 3 {
				b1, b2 := bytes[pos+1], bytes[pos+2]
				if b1&0xC0 == 0x80 && b2&0xC0 == 0x80 {
					ch := rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F)
					if ch >= 0x800 && !(ch >= 0xD800 && ch <= 0xDFFF) {
						pos += 3
						continue
					}
				}
			}

		case b0 <= 0xF4:
			if n-pos >= 4 {
				b1, b2, b3 := bytes[pos+1], bytes[pos+2], bytes[pos+3]
				if b1&0xC0 == 0x80 && b2&0xC0 == 0x80 && b3&0xC0 == 0x80 {
					ch := rune(b0&0x07)<<18 | rune(b1&0x3F)<<12 | rune(b2&0x3F)<<6 | rune(b3&0x3F)
					if ch >= 0x10000 && ch <= 0x10FFFF {
						pos += 4
						continue
					}
				}
			}
		}

		if written < pos {
			if _, err := filter.Write(bytes[written:pos]); err != nil {
				return err
			}
		}
		if err := filter.WriteRune(rune(b0)); err != nil {
			return err
		}
		written = pos + 1
		pos = written
	}

	if written < n {
		_, err := filter.Write(bytes[written:])
		return err
	}
	return nil
}

func decodeUTF16Unit(bytes []byte, bigEndian bool) uint16 {
	if bigEndian {
		return uint16(bytes[0])<<8 | uint16(bytes[1])
	}
	return uint16(bytes[1])<<8 | uint16(bytes[0])
}

func writeUTF16(bytes []byte, bigEndian bool, filter Filter) error {
	n := len(bytes)
	pos := 0
	for n-pos >= 2 {
		high := decodeUTF16Unit(bytes[pos:pos+2], bigEndian)
		pos += 2

		if high <= 0x7F {
			if err := filter.WriteASCII(byte(high)); err != nil {
				return err
			}
			continue
		}

		var ch rune
		switch {
		case high < 0xD800 || high > 0xDFFF:
			ch = rune(high)
		case high >= 0xDC00 || n-pos < 2:
			ch = utf8.RuneError
		default:
			low := decodeUTF16Unit(bytes[pos:pos+2], bigEndian)
			if low < 0xDC00 || low > 0xDFFF {
				ch = utf8.RuneError
			} else {
				pos += 2
				ch = rune((uint32(high)-0xD800)<<10|(uint32(low)-0xDC00)) + 0x10000
			}
		}

		if err := filter.WriteRune(ch); err != nil {
			return err
		}
	}
	return nil
}

// WriteUTF16BE writes a big-endian UTF-16 encoded byte string to filter,
// replacing unpaired surrogates with U+FFFD.
func WriteUTF16BE(bytes []byte, filter Filter) error { return writeUTF16(bytes, true, filter) }

// WriteUTF16LE writes a little-endian UTF-16 encoded byte string to filter,
// replacing unpaired surrogates with U+FFFD.
func WriteUTF16LE(bytes []byte, filter Filter) error { return writeUTF16(bytes, false, filter) }

func writeUTF32(bytes []byte, bigEndian bool, filter Filter) error {
	n := len(bytes)
	pos := 0
	for n-pos >= 4 {
		var ch32 uint32
		if bigEndian {
			ch32 = uint32(bytes[pos])<<24 | uint32(bytes[pos+1])<<16 | uint32(bytes[pos+2])<<8 | uint32(bytes[pos+3])
		} else {
			ch32 = uint32(bytes[pos+3])<<24 | uint32(bytes[pos+2])<<16 | uint32(bytes[pos+1])<<8 | uint32(bytes[pos])
		}
		pos += 4

		if ch32 < 0x80 {
			if err := filter.WriteASCII(byte(ch32)); err != nil {
				return err
			}
			continue
		}

		ch := rune(ch32)
		if ch32 > utf8.MaxRune || (ch >= 0xD800 && ch <= 0xDFFF) {
			ch = utf8.RuneError
		}
		if err := filter.WriteRune(ch); err != nil {
			return err
		}
	}
	return nil
}

// WriteUTF32BE writes a big-endian UTF-32 encoded byte string to filter,
// replacing out-of-range code points with U+FFFD.
func WriteUTF32BE(bytes []byte, filter Filter) error { return writeUTF32(bytes, true, filter) }

// WriteUTF32LE writes a little-endian UTF-32 encoded byte string to filter,
// replacing out-of-range code points with U+FFFD.
func WriteUTF32LE(bytes []byte, filter Filter) error { return writeUTF32(bytes, false, filter) }

// stripBOMUTF8, stripBOMUTF16 and stripBOMUTF32 remove a leading
// byte-order-mark from bytes for FieldFormatStringUtfBom fields. Only a BOM
// that matches the field's code unit width (and, for UTF-16/UTF-32, the
// event's byte order) is removed; the BOM does not select the encoding, and
// a BOM of another width or byte order is left in place and decoded as text.
func stripBOMUTF8(bytes []byte) []byte {
	if len(bytes) >= 3 && bytes[0] == 0xEF && bytes[1] == 0xBB && bytes[2] == 0xBF {
		return bytes[3:]
	}
	return bytes
}

func stripBOMUTF16(bytes []byte, bigEndian bool) []byte {
	if len(bytes) < 2 {
		return bytes
	}
	if bigEndian && bytes[0] == 0xFE && bytes[1] == 0xFF {
		return bytes[2:]
	}
	if !bigEndian && bytes[0] == 0xFF && bytes[1] == 0xFE {
		return bytes[2:]
	}
	return bytes
}

func stripBOMUTF32(bytes []byte, bigEndian bool) []byte {
	if len(bytes) < 4 {
		return bytes
	}
	if bigEndian && bytes[0] == 0 && bytes[1] == 0 && bytes[2] == 0xFE && bytes[3] == 0xFF {
		return bytes[4:]
	}
	if !bigEndian && bytes[0] == 0xFF && bytes[1] == 0xFE && bytes[2] == 0 && bytes[3] == 0 {
		return bytes[4:]
	}
	return bytes
}
