package exfatdirent

import (
	"golang.org/x/text/encoding/unicode"
)

var nameDecoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()

// decodeNameFragment decodes a 30-byte FileName entry's 15 packed UTF-16LE
// code units into a Go string fragment.
func decodeNameFragment(raw [30]byte) string {
	out, err := nameDecoder.Bytes(raw[:])
	if err != nil {
		return string(out)
	}
	return string(out)
}
