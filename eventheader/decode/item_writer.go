package decode

import (
	"fmt"
	"io"
	"strings"

	"github.com/microsoft/linuxtracepoints-go/eventheadertypes"
)

// charWidth returns the size in bytes of one code unit for a string-typed
// field's encoding, or 0 if encoding is not a string encoding.
func charWidth(encoding eventheadertypes.FieldEncoding) int {
	switch encoding.Value() {
	case eventheadertypes.FieldEncodingZStringChar8, eventheadertypes.FieldEncodingStringLength16Char8:
		return 1
	case eventheadertypes.FieldEncodingZStringChar16, eventheadertypes.FieldEncodingStringLength16Char16:
		return 2
	case eventheadertypes.FieldEncodingZStringChar32, eventheadertypes.FieldEncodingStringLength16Char32:
		return 4
	default:
		return 0
	}
}

// writeStringValue writes a string-typed field's raw bytes to filter,
// decoding per meta.Format/meta's code unit width: Latin-1 for
// StringLatin1, UTF-8-with-fallback for 1-byte code units otherwise, and
// UTF-16/UTF-32 (in the event's byte order) for wider code units. A
// leading byte-order-mark is stripped for StringUtfBom.
func writeStringValue(value []byte, meta ItemMetadata, reader ByteReader, filter Filter) error {
	width := charWidth(meta.Encoding)
	format := meta.Format.Value()

	if format == eventheadertypes.FieldFormatStringUtfBom {
		switch width {
		case 1:
			value = stripBOMUTF8(value)
		case 2:
			value = stripBOMUTF16(value, reader.BigEndian())
		case 4:
			value = stripBOMUTF32(value, reader.BigEndian())
		}
	}

	switch {
	case width == 1 && format == eventheadertypes.FieldFormatStringLatin1:
		return WriteLatin1(value, filter)
	case width == 1:
		return WriteUTF8WithLatin1Fallback(value, filter)
	case width == 2:
		return writeUTF16(value, reader.BigEndian(), filter)
	case width == 4:
		return writeUTF32(value, reader.BigEndian(), filter)
	default:
		return WriteUTF8WithLatin1Fallback(value, filter)
	}
}

// writeScalarText writes a single non-array, non-struct item's value to w
// in plain text, using the field's encoding/format to pick a rendering.
func writeScalarText(w io.Writer, reader ByteReader, options ConvertOptions, meta ItemMetadata, value []byte) error {
	format := meta.Format.Value()

	if width := charWidth(meta.Encoding); width > 0 {
		if format == eventheadertypes.FieldFormatHexBytes {
			return WriteHexBytes(w, value)
		}
		return writeStringValue(value, meta, reader, options.stringFilter(NewWriteFilter(w)))
	}

	if meta.Encoding.Value() == eventheadertypes.FieldEncodingBinaryLength16Char8 || format == eventheadertypes.FieldFormatHexBytes {
		return WriteHexBytes(w, value)
	}

	switch meta.Encoding.Value() {
	case eventheadertypes.FieldEncodingValue8:
		return writeIntText(w, options, format, uint64(value[0]), 1)
	case eventheadertypes.FieldEncodingValue16:
		if format == eventheadertypes.FieldFormatPort {
			_, err := fmt.Fprintf(w, "%d", portBigEndian(value))
			return err
		}
		return writeIntText(w, options, format, uint64(reader.U16(value)), 2)
	case eventheadertypes.FieldEncodingValue32:
		return writeFixed32Text(w, options, format, reader, value)
	case eventheadertypes.FieldEncodingValue64:
		return writeFixed64Text(w, options, format, reader, value)
	case eventheadertypes.FieldEncodingValue128:
		return writeFixed128Text(w, format, value)
	default:
		return fmt.Errorf("eventheader: unsupported scalar encoding %v", meta.Encoding)
	}
}

// portBigEndian reads a FieldFormatPort value's two bytes in network
// (big-endian) order regardless of the event's own source endianness:
// spec.md's format taxonomy defines port as "big-endian u16" unconditionally.
func portBigEndian(value []byte) uint16 {
	return uint16(value[0])<<8 | uint16(value[1])
}

func signExtend(value uint64, width int) int64 {
	switch width {
	case 1:
		return int64(int8(value))
	case 2:
		return int64(int16(value))
	case 4:
		return int64(int32(value))
	default:
		return int64(value)
	}
}

func writeIntText(w io.Writer, options ConvertOptions, format eventheadertypes.FieldFormat, value uint64, width int) error {
	switch format {
	case eventheadertypes.FieldFormatSignedInt:
		_, err := fmt.Fprintf(w, "%d", signExtend(value, width))
		return err
	case eventheadertypes.FieldFormatHexInt:
		_, err := fmt.Fprintf(w, "0x%X", value)
		return err
	case eventheadertypes.FieldFormatBoolean:
		return WriteBool(w, options, uint32(value))
	default:
		_, err := fmt.Fprintf(w, "%d", value)
		return err
	}
}

func writeFixed32Text(w io.Writer, options ConvertOptions, format eventheadertypes.FieldFormat, reader ByteReader, value []byte) error {
	u := reader.U32(value)
	switch format {
	case eventheadertypes.FieldFormatSignedInt:
		_, err := fmt.Fprintf(w, "%d", int32(u))
		return err
	case eventheadertypes.FieldFormatHexInt:
		return WriteHex32(w, u)
	case eventheadertypes.FieldFormatBoolean:
		return WriteBool(w, options, u)
	case eventheadertypes.FieldFormatErrno:
		return WriteErrno(w, options, u)
	case eventheadertypes.FieldFormatTime:
		return WriteTime64(w, options, int64(int32(u)))
	case eventheadertypes.FieldFormatFloat:
		return WriteFloat32(w, options, reader.F32(value))
	case eventheadertypes.FieldFormatIPv4:
		return WriteIPv4(w, [4]byte{value[0], value[1], value[2], value[3]})
	default:
		_, err := fmt.Fprintf(w, "%d", u)
		return err
	}
}

func writeFixed64Text(w io.Writer, options ConvertOptions, format eventheadertypes.FieldFormat, reader ByteReader, value []byte) error {
	u := reader.U64(value)
	switch format {
	case eventheadertypes.FieldFormatSignedInt:
		_, err := fmt.Fprintf(w, "%d", int64(u))
		return err
	case eventheadertypes.FieldFormatHexInt:
		return WriteHex64(w, u)
	case eventheadertypes.FieldFormatTime:
		return WriteTime64(w, options, int64(u))
	case eventheadertypes.FieldFormatFloat:
		return WriteFloat64(w, options, reader.F64(value))
	default:
		_, err := fmt.Fprintf(w, "%d", u)
		return err
	}
}

func writeFixed128Text(w io.Writer, format eventheadertypes.FieldFormat, value []byte) error {
	switch format {
	case eventheadertypes.FieldFormatUuid:
		return WriteUUID(w, value)
	case eventheadertypes.FieldFormatIPv6:
		var ip [16]byte
		copy(ip[:], value)
		return WriteIPv6(w, ip)
	default:
		return WriteHexBytes(w, value)
	}
}

// WriteItemValueText writes item's current scalar value to w in plain text.
// item must be positioned at a Value (not a Struct/Array boundary).
func WriteItemValueText(w io.Writer, reader ByteReader, options ConvertOptions, item ItemInfo) error {
	return writeScalarText(w, reader, options, item.Metadata, item.Value)
}

// WriteArrayValuesText writes every element of a fixed-element array item
// (as returned by Enumerator.ItemInfo at ArrayBegin) to w, separated by a
// comma and, if OptionSpace is set, a space.
func WriteArrayValuesText(w io.Writer, reader ByteReader, options ConvertOptions, item ItemInfo) error {
	meta := item.Metadata
	size := meta.ElementSize
	if size == 0 {
		return fmt.Errorf("eventheader: array element has no fixed size")
	}
	sep := ","
	if options.has(OptionSpace) {
		sep = ", "
	}
	for i := 0; i < meta.ElementCount; i++ {
		if i > 0 {
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}
		elem := item.Value[i*size : (i+1)*size]
		if err := writeScalarText(w, reader, options, meta, elem); err != nil {
			return err
		}
	}
	return nil
}

// writeScalarJSON writes a single non-array, non-struct item's value via
// jw, including the leading comma/space if one is pending from a previous
// value at the same level.
func writeScalarJSON(jw *JsonWriter, reader ByteReader, meta ItemMetadata, value []byte) error {
	if err := jw.BeginValue(); err != nil {
		return err
	}

	w := jw.w
	options := jw.options
	format := meta.Format.Value()

	if width := charWidth(meta.Encoding); width > 0 {
		if format == eventheadertypes.FieldFormatHexBytes {
			if _, err := io.WriteString(w, `"`); err != nil {
				return err
			}
			if err := WriteHexBytes(w, value); err != nil {
				return err
			}
			_, err := io.WriteString(w, `"`)
			return err
		}
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
		if err := writeStringValue(value, meta, reader, NewJSONEscapeFilter(NewWriteFilter(w))); err != nil {
			return err
		}
		_, err := io.WriteString(w, `"`)
		return err
	}

	if meta.Encoding.Value() == eventheadertypes.FieldEncodingBinaryLength16Char8 || format == eventheadertypes.FieldFormatHexBytes {
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
		if err := WriteHexBytes(w, value); err != nil {
			return err
		}
		_, err := io.WriteString(w, `"`)
		return err
	}

	switch meta.Encoding.Value() {
	case eventheadertypes.FieldEncodingValue8:
		return writeIntJSON(w, options, format, uint64(value[0]), 1)
	case eventheadertypes.FieldEncodingValue16:
		if format == eventheadertypes.FieldFormatPort {
			_, err := fmt.Fprintf(w, "%d", portBigEndian(value))
			return err
		}
		return writeIntJSON(w, options, format, uint64(reader.U16(value)), 2)
	case eventheadertypes.FieldEncodingValue32:
		return writeFixed32JSON(w, options, format, reader, value)
	case eventheadertypes.FieldEncodingValue64:
		return writeFixed64JSON(w, options, format, reader, value)
	case eventheadertypes.FieldEncodingValue128:
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
		if err := writeFixed128Text(w, format, value); err != nil {
			return err
		}
		_, err := io.WriteString(w, `"`)
		return err
	default:
		return fmt.Errorf("eventheader: unsupported scalar encoding %v", meta.Encoding)
	}
}

func writeIntJSON(w io.Writer, options ConvertOptions, format eventheadertypes.FieldFormat, value uint64, width int) error {
	switch format {
	case eventheadertypes.FieldFormatSignedInt:
		_, err := fmt.Fprintf(w, "%d", signExtend(value, width))
		return err
	case eventheadertypes.FieldFormatHexInt:
		return WriteJSONHex32(w, options, uint32(value))
	case eventheadertypes.FieldFormatBoolean:
		return WriteJSONBool(w, options, uint32(value))
	default:
		_, err := fmt.Fprintf(w, "%d", value)
		return err
	}
}

func writeFixed32JSON(w io.Writer, options ConvertOptions, format eventheadertypes.FieldFormat, reader ByteReader, value []byte) error {
	u := reader.U32(value)
	switch format {
	case eventheadertypes.FieldFormatSignedInt:
		_, err := fmt.Fprintf(w, "%d", int32(u))
		return err
	case eventheadertypes.FieldFormatHexInt:
		return WriteJSONHex32(w, options, u)
	case eventheadertypes.FieldFormatBoolean:
		return WriteJSONBool(w, options, u)
	case eventheadertypes.FieldFormatErrno:
		return WriteJSONErrno(w, options, u)
	case eventheadertypes.FieldFormatTime:
		return WriteJSONTime64(w, options, int64(int32(u)))
	case eventheadertypes.FieldFormatFloat:
		return WriteJSONFloat32(w, options, reader.F32(value))
	case eventheadertypes.FieldFormatIPv4:
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
		if err := WriteIPv4(w, [4]byte{value[0], value[1], value[2], value[3]}); err != nil {
			return err
		}
		_, err := io.WriteString(w, `"`)
		return err
	default:
		_, err := fmt.Fprintf(w, "%d", u)
		return err
	}
}

func writeFixed64JSON(w io.Writer, options ConvertOptions, format eventheadertypes.FieldFormat, reader ByteReader, value []byte) error {
	u := reader.U64(value)
	switch format {
	case eventheadertypes.FieldFormatSignedInt:
		_, err := fmt.Fprintf(w, "%d", int64(u))
		return err
	case eventheadertypes.FieldFormatHexInt:
		return WriteJSONHex64(w, options, u)
	case eventheadertypes.FieldFormatTime:
		return WriteJSONTime64(w, options, int64(u))
	case eventheadertypes.FieldFormatFloat:
		return WriteJSONFloat64(w, options, reader.F64(value))
	default:
		_, err := fmt.Fprintf(w, "%d", u)
		return err
	}
}

// WriteItemValueJSON writes item's current scalar value as a JSON member
// value, including the leading comma/space if one is pending (so it can
// follow a WritePropertyName/WritePropertyNameTagged call or a previous
// unnamed array element directly).
func WriteItemValueJSON(jw *JsonWriter, reader ByteReader, item ItemInfo) error {
	return writeScalarJSON(jw, reader, item.Metadata, item.Value)
}

// WriteArrayValuesJSON writes every element of a fixed-element array item
// as a JSON array, including the surrounding brackets.
func WriteArrayValuesJSON(jw *JsonWriter, reader ByteReader, item ItemInfo) error {
	meta := item.Metadata
	size := meta.ElementSize
	if size == 0 {
		return fmt.Errorf("eventheader: array element has no fixed size")
	}
	if err := jw.WriteArrayBegin(); err != nil {
		return err
	}
	for i := 0; i < meta.ElementCount; i++ {
		elem := item.Value[i*size : (i+1)*size]
		if err := writeScalarJSON(jw, reader, meta, elem); err != nil {
			return err
		}
	}
	return jw.WriteArrayEnd()
}

// fieldNameString decodes a field's raw metadata name bytes the same way
// event/provider names are decoded: UTF-8 with a Latin-1 fallback for
// malformed sequences.
func fieldNameString(nameBytes []byte) string {
	var sb strings.Builder
	_ = WriteUTF8WithLatin1Fallback(nameBytes, NewWriteFilter(&sb))
	return sb.String()
}
