// Package textout turns the raw output bytes of a program into text. The
// interpreter only ever stores bytes; choosing how to read them is left to
// whoever displays them.
package textout

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var ErrUnknownEncoding = errors.New("unknown output encoding")

type Decoder interface {
	Decode(out []byte) string
}

// charmapDecoder decodes the whole output at once, so a multi-byte UTF-8
// sequence reads as one character once all of its bytes have been output.
// Every invalid byte becomes its own U+FFFD.
type charmapDecoder struct {
	enc encoding.Encoding
}

func (d charmapDecoder) Decode(out []byte) string {
	s, err := d.enc.NewDecoder().Bytes(out)
	if err != nil {
		// the decoders replace rather than fail
		return string(out)
	}
	return string(s)
}

func Names() []string {
	return []string{"utf-8", "latin1", "cp437"}
}

func New(name string) (Decoder, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return charmapDecoder{enc: unicode.UTF8}, nil
	case "latin1", "iso-8859-1":
		return charmapDecoder{enc: charmap.ISO8859_1}, nil
	case "cp437", "ibm437":
		return charmapDecoder{enc: charmap.CodePage437}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}
