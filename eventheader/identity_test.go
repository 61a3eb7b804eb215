package eventheader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTracepointNameBasic(t *testing.T) {
	id, err := ParseTracepointName("TestProvider2_L5K0Gmygroup")
	require.NoError(t, err)
	assert.Equal(t, "TestProvider2", id.Provider)
	assert.EqualValues(t, 5, id.Level)
	assert.EqualValues(t, 0, id.Keyword)
	assert.Equal(t, "Gmygroup", id.Options)

	group, ok := id.Group()
	require.True(t, ok)
	assert.Equal(t, "mygroup", group)
}

func TestParseTracepointNameKeywordAndMultipleOptions(t *testing.T) {
	id, err := ParseTracepointName("Prov_LffK123abcGfooSbar")
	require.NoError(t, err)
	assert.EqualValues(t, 0xff, id.Level)
	assert.EqualValues(t, 0x123abc, id.Keyword)

	g, ok := id.Group()
	require.True(t, ok)
	assert.Equal(t, "foo", g)

	s, ok := id.Option('S')
	require.True(t, ok)
	assert.Equal(t, "bar", s)
}

func TestParseTracepointNameUsesLastUnderscore(t *testing.T) {
	id, err := ParseTracepointName("My_Provider_L1K1")
	require.NoError(t, err)
	assert.Equal(t, "My_Provider", id.Provider)
}

func TestParseTracepointNameErrors(t *testing.T) {
	cases := []string{
		"NoUnderscoreHere",
		"Provider_K1L1",    // wrong order
		"Provider_L1",      // missing K
		"Provider_LK1",     // empty level hex
		"Provider_L1K",     // empty keyword hex
		"Provider_L1K1Lx",  // 'L' is not a valid option introducer
		"Provider_L1K1Kx",  // 'K' is not a valid option introducer
		"Provider_L1K1xyz", // lowercase option introducer
	}
	for _, name := range cases {
		_, err := ParseTracepointName(name)
		assert.Errorf(t, err, "ParseTracepointName(%q)", name)
	}
}

func TestParseTracepointNameTooLong(t *testing.T) {
	long := make([]byte, MaxNameSize)
	for i := range long {
		long[i] = 'a'
	}
	_, err := ParseTracepointName(string(long))
	assert.Error(t, err)
}

func TestOptionNotPresent(t *testing.T) {
	id, err := ParseTracepointName("Prov_L1K1")
	require.NoError(t, err)
	_, ok := id.Group()
	assert.False(t, ok)
}
