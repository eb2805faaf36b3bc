package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	c, err := Lookup("")
	require.NoError(t, err)
	assert.Equal(t, Default, c.Name())

	c, err = Lookup("Latin1")
	require.NoError(t, err)
	assert.Equal(t, "latin1", c.Name())

	_, err = Lookup("klingon")
	assert.ErrorIs(t, err, ErrUnknownCharset)
}

func TestCodec_RoundTrip(t *testing.T) {
	c, err := Lookup("cp1252")
	require.NoError(t, err)

	raw, err := c.Encode("café €5")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9, ' ', 0x80, '5', 0}, raw)

	s, err := c.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "café €5", s)
}

func TestCodec_UTF8Passthrough(t *testing.T) {
	c, err := Lookup("utf-8")
	require.NoError(t, err)

	raw, err := c.Encode("héllo")
	require.NoError(t, err)
	assert.Equal(t, append([]byte("héllo"), 0), raw)

	s, err := c.Decode([]byte("héllo"))
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
}

func TestCodec_ReplacesUnsupported(t *testing.T) {
	c, err := Lookup("iso-8859-1")
	require.NoError(t, err)

	raw, err := c.Encode("a☃b")
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 0x1A, 'b', 0}, raw)
}
