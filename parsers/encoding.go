package parsers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Supported input encodings
const (
	EncodingUTF8        = "utf-8"
	EncodingUTF16       = "utf-16"
	EncodingWindows1252 = "windows-1252"
)

// SupportedEncodings lists the encoding names accepted in configuration
var SupportedEncodings = []string{EncodingUTF8, EncodingUTF16, EncodingWindows1252}

// ErrUnsupportedEncoding is returned for an unknown encoding name
var ErrUnsupportedEncoding = errors.New("unsupported input encoding")

// Encoding is the decode policy applied to an input stream before splitting it
// into lines. Malformed byte sequences become U+FFFD instead of failing the read.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

// NewEncoding returns the decode policy registered under name
func NewEncoding(name string) (Encoding, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", EncodingUTF8, "utf8":
		return Encoding{name: EncodingUTF8, enc: unicode.UTF8}, nil
	case EncodingUTF16, "utf16", "utf-16le":
		// wevtutil and PowerShell redirection write little-endian with a BOM;
		// an explicit BOM still overrides the default byte order.
		return Encoding{name: EncodingUTF16, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}, nil
	case EncodingWindows1252, "cp1252":
		return Encoding{name: EncodingWindows1252, enc: charmap.Windows1252}, nil
	default:
		return Encoding{}, fmt.Errorf("%w: %s (supported encodings: %s)",
			ErrUnsupportedEncoding, name, strings.Join(SupportedEncodings, ", "))
	}
}

// Name returns the canonical encoding name
func (e Encoding) Name() string {
	if e.name == "" {
		return EncodingUTF8
	}
	return e.name
}

// NewReader wraps r so that reads yield UTF-8 text
func (e Encoding) NewReader(r io.Reader) io.Reader {
	enc := e.enc
	if enc == nil {
		enc = unicode.UTF8
	}
	return transform.NewReader(r, enc.NewDecoder())
}
