package charset

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownEncoding reports an encoding name that no registry recognizes.
var ErrUnknownEncoding = errors.New("unknown encoding")

var nameAliases = map[string]string{
	"cp932":   "shift_jis",
	"cp936":   "gbk",
	"cp949":   "euc-kr",
	"cp950":   "big5",
	"cp65001": "utf-8",
	"utf8":    "utf-8",
	"sjis":    "shift_jis",
}

// Lookup resolves an encoding identifier such as "shift_jis", "utf-8" or
// "windows-1252".
func Lookup(name string) (encoding.Encoding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}
	if alias, ok := nameAliases[key]; ok {
		key = alias
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(key); err == nil && enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Name returns the canonical IANA name of enc, or fallback when the registry
// has no name for it.
func Name(enc encoding.Encoding, fallback string) string {
	if enc == nil {
		return fallback
	}
	if name, err := ianaindex.IANA.Name(enc); err == nil && name != "" {
		return name
	}
	return fallback
}

// ByteOrderMark returns the encoded form of U+FEFF for enc. It fails for
// encodings that cannot represent the mark.
func ByteOrderMark(enc encoding.Encoding) ([]byte, error) {
	out, err := enc.NewEncoder().String("\ufeff")
	if err != nil {
		return nil, fmt.Errorf("encoding has no byte order mark: %w", err)
	}
	return []byte(out), nil
}

var codePages = map[int]encoding.Encoding{
	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1252:  charmap.Windows1252,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10000: charmap.Macintosh,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28591: charmap.ISO8859_1,
	28592: charmap.ISO8859_2,
	28595: charmap.ISO8859_5,
	28597: charmap.ISO8859_7,
	28605: charmap.ISO8859_15,
	50220: japanese.ISO2022JP,
	51932: japanese.EUCJP,
	54936: simplifiedchinese.GB18030,
	65001: unicode.UTF8,
}

// ForCodePage returns the encoding for a Windows code page number.
func ForCodePage(cp int) (encoding.Encoding, bool) {
	enc, ok := codePages[cp]
	return enc, ok
}

// fontCharsets maps RTF \fcharset values to Windows code pages.
var fontCharsets = map[int]int{
	0:   1252,
	2:   1252,
	77:  10000,
	128: 932,
	129: 949,
	134: 936,
	136: 950,
	161: 1253,
	162: 1254,
	163: 1258,
	177: 1255,
	178: 1256,
	186: 1257,
	204: 1251,
	222: 874,
	238: 1250,
	254: 437,
	255: 850,
}

// CodePageForFontCharset maps an RTF font charset to a code page. Charset 1
// (DEFAULT_CHARSET) and unknown values report false so the caller can fall
// back to the document code page.
func CodePageForFontCharset(fcharset int) (int, bool) {
	cp, ok := fontCharsets[fcharset]
	return cp, ok
}
