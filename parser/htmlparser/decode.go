package htmlparser

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const byteOrderMark = "\uFEFF"

// decode turns the raw body into UTF-8 text. A declared UTF-8 charset is
// used as-is when the bytes are valid; every other case, including other
// declared charsets, is decoded lossily so that a document is never
// rejected for its encoding.
func decode(body []byte, charset string) string {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "utf-8", "utf8":
		if utf8.Valid(body) {
			return strings.TrimPrefix(string(body), byteOrderMark)
		}
	}
	return decodeLossy(body)
}

// decodeLossy strips a leading BOM and replaces invalid sequences with
// U+FFFD.
func decodeLossy(body []byte) string {
	out, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), body)
	if err != nil {
		return strings.ToValidUTF8(strings.TrimPrefix(string(body), byteOrderMark), string(utf8.RuneError))
	}
	return string(out)
}
