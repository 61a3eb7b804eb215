package eventheadertypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeaderFlagsValid(t *testing.T) {
	cases := []struct {
		f    HeaderFlags
		want bool
	}{
		{HeaderFlagsDefault, true},
		{HeaderFlagsDefaultWithExtension, true},
		{HeaderFlagPointer64 | HeaderFlagLittleEndian | HeaderFlagExtension, true},
		{0, true},
		{1 << 3, false},
		{0xF8, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.f.Valid(), "HeaderFlags(%#x)", c.f)
	}
}

func TestHeaderFlagsString(t *testing.T) {
	assert.Equal(t, "0", HeaderFlags(0).String())
	assert.Equal(t, "LittleEndian|Extension", HeaderFlagsDefaultWithExtension.String())
	assert.Equal(t, "LittleEndian|Unknown", (HeaderFlags(0x10) | HeaderFlagLittleEndian).String())
}

func TestOpcodeString(t *testing.T) {
	cases := map[Opcode]string{
		OpcodeInfo:          "Info",
		OpcodeActivityStart: "ActivityStart",
		OpcodeActivityStop:  "ActivityStop",
		Opcode(99):          "Opcode(99)",
	}
	for o, want := range cases {
		assert.Equal(t, want, o.String())
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelInvalid:     "Invalid",
		LevelCritical:    "Critical",
		LevelError:       "Error",
		LevelWarning:     "Warning",
		LevelInformation: "Information",
		LevelVerbose:     "Verbose",
		Level(200):       "Level(200)",
	}
	for l, want := range cases {
		assert.Equal(t, want, l.String())
	}
}

func TestFieldEncodingFlagsAndValue(t *testing.T) {
	e := FieldEncodingValue32 | FieldEncodingCArrayFlag | FieldEncodingChainFlag
	assert.True(t, e.IsCArray())
	assert.False(t, e.IsVArray())
	assert.True(t, e.IsArray())
	assert.True(t, e.Chained())
	assert.Equal(t, FieldEncodingValue32, e.Value())
}

func TestFieldEncodingElementSize(t *testing.T) {
	cases := map[FieldEncoding]int{
		FieldEncodingValue8:              1,
		FieldEncodingValue16:             2,
		FieldEncodingValue32:             4,
		FieldEncodingValue64:             8,
		FieldEncodingValue128:            16,
		FieldEncodingStruct:              0,
		FieldEncodingZStringChar8:        0,
		FieldEncodingBinaryLength16Char8: 0,
	}
	for enc, want := range cases {
		assert.Equal(t, want, enc.ElementSize(), "%v", enc)
	}
}

func TestFieldEncodingString(t *testing.T) {
	assert.Equal(t, "Value8|CArray", (FieldEncodingValue8 | FieldEncodingCArrayFlag).String())
	assert.Equal(t, "Value16|VArray|Chain", (FieldEncodingValue16 | FieldEncodingVArrayFlag | FieldEncodingChainFlag).String())
}

func TestFieldFormatValueAndChained(t *testing.T) {
	f := FieldFormatHexInt | FieldFormatChainFlag
	assert.True(t, f.Chained())
	assert.Equal(t, FieldFormatHexInt, f.Value())
}

func TestFieldFormatIsStringFormat(t *testing.T) {
	stringFormats := []FieldFormat{
		FieldFormatStringLatin1, FieldFormatStringUtf, FieldFormatStringUtfBom,
		FieldFormatStringXml, FieldFormatStringJson,
	}
	for _, f := range stringFormats {
		assert.True(t, f.IsStringFormat(), "%v", f)
	}
	nonString := []FieldFormat{FieldFormatDefault, FieldFormatUnsignedInt, FieldFormatHexBytes, FieldFormatUuid}
	for _, f := range nonString {
		assert.False(t, f.IsStringFormat(), "%v", f)
	}
}

func TestFieldFormatString(t *testing.T) {
	assert.Equal(t, "Boolean", FieldFormatBoolean.String())
	assert.Equal(t, "Float|Chain", (FieldFormatFloat | FieldFormatChainFlag).String())
	assert.Equal(t, "FieldFormat(120)", FieldFormat(120).String())
}

func TestExtensionKindValueAndChained(t *testing.T) {
	k := ExtensionKindMetadata | ExtensionKindChainFlag
	assert.True(t, k.Chained())
	assert.Equal(t, ExtensionKindMetadata, k.Value())
}

func TestExtensionKindString(t *testing.T) {
	assert.Equal(t, "ActivityId", ExtensionKindActivityId.String())
	assert.Equal(t, "Metadata|Chain", (ExtensionKindMetadata | ExtensionKindChainFlag).String())
	assert.Equal(t, "ExtensionKind(42)", ExtensionKind(42).String())
}
