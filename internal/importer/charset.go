package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// legacyCharsets maps chardet names to decoders. Anything else falls back to
// Windows-1252.
var legacyCharsets = map[string]encoding.Encoding{
	"ISO-8859-1":   charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"ISO-8859-9":   charmap.ISO8859_9,
}

// utf8Reader decodes r to UTF-8 and reports the charset it settled on.
// A BOM wins, then valid UTF-8, then chardet's best guess, then Windows-1252.
func utf8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peeking input: %w", err)
	}

	if err != io.EOF {
		head = trimPartialRune(head)
	}

	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
		return br, "UTF-8", nil
	case bytes.HasPrefix(head, bomUTF16LE):
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), "UTF-16LE", nil
	case bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), "UTF-16BE", nil
	case utf8.Valid(head):
		return br, "UTF-8", nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if result.Charset == "UTF-8" {
			return br, result.Charset, nil
		}

		if enc, ok := legacyCharsets[result.Charset]; ok {
			return transform.NewReader(br, enc.NewDecoder()), result.Charset, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), "windows-1252", nil
}

// trimPartialRune drops a multi-byte sequence cut short at the end of b.
func trimPartialRune(b []byte) []byte {
	for i := 1; i < utf8.UTFMax && i <= len(b); i++ {
		if !utf8.RuneStart(b[len(b)-i]) {
			continue
		}

		if !utf8.FullRune(b[len(b)-i:]) {
			return b[:len(b)-i]
		}

		break
	}

	return b
}
