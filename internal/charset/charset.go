// Package charset converts between the handheld character set and UTF-8.
package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Default is the character set assumed when a pilot carries none.
const Default = "windows-1252"

// ErrUnknownCharset is returned for a name no encoding is registered under.
var ErrUnknownCharset = errors.New("unknown charset")

// Codec converts text of one handheld character set.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// Lookup returns the codec registered under name. An empty name selects
// Default; "utf-8" yields a codec passing bytes through.
func Lookup(name string) (*Codec, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "":
		key = Default
	case "utf-8", "utf8":
		return &Codec{name: "utf-8"}, nil
	}

	var enc encoding.Encoding
	switch key {
	case "windows-1252", "cp1252", "palm":
		enc = charmap.Windows1252
	case "iso-8859-1", "latin1":
		enc = charmap.ISO8859_1
	default:
		var err error
		enc, err = ianaindex.IANA.Encoding(key)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
		}
	}
	return &Codec{name: key, enc: enc}, nil
}

// Name returns the normalized charset name.
func (c *Codec) Name() string { return c.name }

// Decode converts handheld text to UTF-8. A trailing NUL terminator is
// dropped.
func (c *Codec) Decode(b []byte) (string, error) {
	if i := len(b); i > 0 && b[i-1] == 0 {
		b = b[:i-1]
	}
	if c.enc == nil {
		return string(b), nil
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", c.name, err)
	}
	return string(out), nil
}

// Encode converts UTF-8 text to a NUL terminated handheld string. Runes the
// charset cannot represent are replaced.
func (c *Codec) Encode(s string) ([]byte, error) {
	var out []byte
	if c.enc == nil {
		out = []byte(s)
	} else {
		var err error
		out, err = encoding.ReplaceUnsupported(c.enc.NewEncoder()).Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", c.name, err)
		}
	}
	return append(out, 0), nil
}
