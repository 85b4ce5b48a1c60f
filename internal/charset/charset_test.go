package charset

import (
	"bytes"
	"errors"
	"testing"

	"golang.org/x/text/encoding/japanese"
)

func TestLookupResolvesCommonNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "shift jis", input: "Shift_JIS", want: "あ"},
		{name: "windows alias", input: "cp932", want: "あ"},
		{name: "whatwg label", input: "windows-31j", want: "あ"},
		{name: "utf8 alias", input: "utf8", want: "é"},
		{name: "latin", input: "windows-1252", want: "é"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := Lookup(tt.input)
			if err != nil {
				t.Fatalf("Lookup(%q) returned error: %v", tt.input, err)
			}
			encoded, err := enc.NewEncoder().String(tt.want)
			if err != nil {
				t.Fatalf("encode %q: %v", tt.want, err)
			}
			decoded, err := enc.NewDecoder().String(encoded)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if decoded != tt.want {
				t.Fatalf("round trip mismatch: got %q want %q", decoded, tt.want)
			}
		})
	}
}

func TestLookupShiftJISBytes(t *testing.T) {
	enc, err := Lookup("shift_jis")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	out, err := enc.NewEncoder().String("あ")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal([]byte(out), []byte{0x82, 0xa0}) {
		t.Fatalf("unexpected bytes % x", out)
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"", "  ", "klingon-8"} {
		if _, err := Lookup(name); !errors.Is(err, ErrUnknownEncoding) {
			t.Fatalf("Lookup(%q) error = %v, want ErrUnknownEncoding", name, err)
		}
	}
}

func TestByteOrderMark(t *testing.T) {
	utf8, err := Lookup("utf-8")
	if err != nil {
		t.Fatal(err)
	}
	bom, err := ByteOrderMark(utf8)
	if err != nil {
		t.Fatalf("ByteOrderMark(utf-8) returned error: %v", err)
	}
	if !bytes.Equal(bom, []byte{0xef, 0xbb, 0xbf}) {
		t.Fatalf("unexpected utf-8 bom % x", bom)
	}
	if _, err := ByteOrderMark(japanese.ShiftJIS); err == nil {
		t.Fatal("expected shift_jis to have no byte order mark")
	}
}

func TestCodePages(t *testing.T) {
	enc, ok := ForCodePage(932)
	if !ok || enc != japanese.ShiftJIS {
		t.Fatalf("ForCodePage(932) = %v, %v", enc, ok)
	}
	if _, ok := ForCodePage(1); ok {
		t.Fatal("expected code page 1 to be unknown")
	}
	if cp, ok := CodePageForFontCharset(128); !ok || cp != 932 {
		t.Fatalf("CodePageForFontCharset(128) = %d, %v", cp, ok)
	}
	if _, ok := CodePageForFontCharset(1); ok {
		t.Fatal("expected DEFAULT_CHARSET to defer to the document code page")
	}
}
