package eventheader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameCharsValidUTF8RoundTrip(t *testing.T) {
	const s = "hello éè 中文 \U0001F600"
	nc := NewNameChars([]byte(s))
	assert.Equal(t, s, nc.String())
}

func TestNameCharsNextIteratesRunes(t *testing.T) {
	nc := NewNameChars([]byte("abé"))
	var got []rune
	for {
		r, ok := nc.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	assert.Equal(t, []rune{'a', 'b', 'é'}, got)
}

func TestNameCharsLatin1Fallback(t *testing.T) {
	// 0xFF is not a valid UTF-8 lead byte; it must be emitted as U+00FF.
	nc := NewNameChars([]byte{'a', 0xFF, 'b'})
	assert.Equal(t, "aÿb", nc.String())
}

func TestNameCharsStrayContinuationByte(t *testing.T) {
	// 0x80 is a continuation byte with no lead byte before it.
	nc := NewNameChars([]byte{0x80})
	r, ok := nc.Next()
	require.True(t, ok)
	assert.Equal(t, rune(0x80), r)
}

func TestNameCharsRejectsOverlongEncoding(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL; must fall back byte-by-byte.
	nc := NewNameChars([]byte{0xC0, 0x80})
	r1, ok1 := nc.Next()
	r2, ok2 := nc.Next()
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, rune(0xC0), r1)
	assert.Equal(t, rune(0x80), r2)
	_, ok := nc.Next()
	assert.False(t, ok, "expected exhaustion after two bytes")
}

func TestNameCharsRejectsSurrogate(t *testing.T) {
	// ED A0 80 would decode to U+D800, a surrogate; 3-byte sequences must
	// reject it and fall back to Latin-1 byte-by-byte.
	nc := NewNameChars([]byte{0xED, 0xA0, 0x80})
	var got []rune
	for {
		r, ok := nc.Next()
		if !ok {
			break
		}
		got = append(got, r)
	}
	assert.Len(t, got, 3, "no surrogate acceptance")
}

func TestNameCharsTruncatedMultibyteSequence(t *testing.T) {
	// A 3-byte lead with only one continuation byte available must fall
	// back rather than reading out of bounds.
	nc := NewNameChars([]byte{0xE4, 0xB8})
	r1, ok1 := nc.Next()
	require.True(t, ok1)
	assert.Equal(t, rune(0xE4), r1)
	r2, ok2 := nc.Next()
	require.True(t, ok2)
	assert.Equal(t, rune(0xB8), r2)
}

func TestNameCharsEmpty(t *testing.T) {
	nc := NewNameChars(nil)
	_, ok := nc.Next()
	assert.False(t, ok)
	assert.Empty(t, nc.String())
}

func TestNameCharsRestartable(t *testing.T) {
	original := []byte("abc")
	nc := NewNameChars(original)
	nc.Next()
	nc.Next()
	nc.Next()
	_, ok := nc.Next()
	require.False(t, ok, "expected exhaustion")
	// The original backing slice must be untouched; a fresh NameChars over
	// it should iterate from the start again.
	nc2 := NewNameChars(original)
	assert.Equal(t, "abc", nc2.String())
}
