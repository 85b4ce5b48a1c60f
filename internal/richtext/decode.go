package richtext

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"captionexport/internal/charset"
)

// ErrMalformed reports an RTF payload that cannot be tokenized.
var ErrMalformed = errors.New("malformed rich text")

const (
	defaultCodePage = 1252
	maxControlWord  = 32
)

// skippedDestinations never contribute displayed text.
var skippedDestinations = map[string]struct{}{
	"colortbl":           {},
	"colorschememapping": {},
	"datastore":          {},
	"fldinst":            {},
	"footer":             {},
	"footerf":            {},
	"footerl":            {},
	"footerr":            {},
	"footnote":           {},
	"generator":          {},
	"header":             {},
	"headerf":            {},
	"headerl":            {},
	"headerr":            {},
	"info":               {},
	"latentstyles":       {},
	"listoverridetable":  {},
	"listtable":          {},
	"listtext":           {},
	"object":             {},
	"pict":               {},
	"pntext":             {},
	"pntxta":             {},
	"pntxtb":             {},
	"rsidtbl":            {},
	"stylesheet":         {},
	"themedata":          {},
	"xmlnstbl":           {},
}

var wordRunes = map[string]rune{
	"par":       '\n',
	"line":      '\n',
	"sect":      '\n',
	"page":      '\n',
	"row":       '\n',
	"tab":       '\t',
	"cell":      '\t',
	"emdash":    '—',
	"endash":    '–',
	"emspace":   '\u2003',
	"enspace":   '\u2002',
	"qmspace":   '\u2005',
	"bullet":    '•',
	"lquote":    '‘',
	"rquote":    '’',
	"ldblquote": '“',
	"rdblquote": '”',
}

// IsRTF reports whether payload carries an RTF header.
func IsRTF(payload string) bool {
	return strings.HasPrefix(strings.TrimLeft(payload, " \t\r\n"), `{\rtf`)
}

// Decode returns the literal text of payload. Non-RTF input is returned as is.
func Decode(payload string) (string, error) {
	if !IsRTF(payload) {
		return payload, nil
	}
	p := &parser{
		src:          strings.TrimLeft(payload, " \t\r\n"),
		ansiCodePage: defaultCodePage,
		fonts:        make(map[int]int),
		state:        groupState{font: -1, ucSkip: 1},
	}
	if err := p.run(); err != nil {
		return "", err
	}
	return strings.TrimRight(p.out.String(), "\n"), nil
}

type groupState struct {
	skip      bool
	fontTable bool
	font      int
	ucSkip    int
}

type parser struct {
	src string
	pos int

	stack []groupState
	state groupState
	depth int

	out          strings.Builder
	pending      []byte
	pendingCP    int
	skipChars    int
	highSurr     rune
	ansiCodePage int
	defaultFont  int
	fonts        map[int]int
}

func (p *parser) run() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '{':
			p.pos++
			p.flush()
			p.skipChars = 0
			p.stack = append(p.stack, p.state)
			p.depth++
		case '}':
			p.pos++
			p.flush()
			p.skipChars = 0
			if p.depth == 0 {
				return fmt.Errorf("%w: unbalanced closing brace at offset %d", ErrMalformed, p.pos-1)
			}
			p.depth--
			p.state = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
			if p.depth == 0 {
				p.finishSurrogate()
				return nil
			}
		case '\\':
			if err := p.control(); err != nil {
				return err
			}
		case '\r', '\n':
			p.pos++
		default:
			if p.depth == 0 {
				return fmt.Errorf("%w: text outside document group", ErrMalformed)
			}
			r, size := utf8.DecodeRuneInString(p.src[p.pos:])
			p.pos += size
			p.emit(r)
		}
	}
	return fmt.Errorf("%w: unterminated document", ErrMalformed)
}

func (p *parser) control() error {
	p.pos++
	if p.pos >= len(p.src) {
		return fmt.Errorf("%w: dangling backslash", ErrMalformed)
	}
	c := p.src[p.pos]
	if isLetter(c) {
		return p.controlWord()
	}
	p.pos++
	if c == '\'' {
		return p.hexByte()
	}
	if p.consumeFallback() {
		return nil
	}
	switch c {
	case '\\', '{', '}':
		p.emit(rune(c))
	case '~':
		p.emit('\u00a0')
	case '_':
		p.emit('\u2011')
	case '\r', '\n':
		p.emit('\n')
	case '*':
		p.state.skip = true
	}
	return nil
}

func (p *parser) controlWord() error {
	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
		if p.pos-start > maxControlWord {
			return fmt.Errorf("%w: control word too long at offset %d", ErrMalformed, start)
		}
	}
	word := p.src[start:p.pos]

	param, hasParam := 0, false
	negative := false
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		negative = true
		p.pos++
	}
	digits := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		if p.pos-digits >= 10 {
			return fmt.Errorf("%w: numeric parameter too long for \\%s", ErrMalformed, word)
		}
		param = param*10 + int(p.src[p.pos]-'0')
		p.pos++
	}
	if p.pos > digits {
		hasParam = true
		if negative {
			param = -param
		}
	} else if negative {
		return fmt.Errorf("%w: missing parameter after \\%s-", ErrMalformed, word)
	}
	if p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}

	if word == "bin" {
		if !hasParam || param < 0 || p.pos+param > len(p.src) {
			return fmt.Errorf("%w: \\bin length out of range", ErrMalformed)
		}
		p.pos += param
		return nil
	}
	if p.consumeFallback() {
		return nil
	}
	p.word(word, param, hasParam)
	return nil
}

func (p *parser) word(word string, param int, hasParam bool) {
	if _, ok := skippedDestinations[word]; ok {
		p.state.skip = true
		return
	}
	if p.state.fontTable {
		switch word {
		case "f":
			p.state.font = param
		case "fcharset":
			if cp, ok := charset.CodePageForFontCharset(param); ok {
				p.fonts[p.state.font] = cp
			}
		}
		return
	}
	switch word {
	case "fonttbl":
		p.flush()
		p.state.skip = true
		p.state.fontTable = true
	case "ansicpg":
		if hasParam {
			p.ansiCodePage = param
		}
	case "deff":
		p.defaultFont = param
	case "f":
		p.flush()
		p.state.font = param
	case "uc":
		if hasParam && param >= 0 {
			p.state.ucSkip = param
		}
	case "u":
		if hasParam {
			p.unicode(param)
		}
	default:
		if r, ok := wordRunes[word]; ok {
			p.emit(r)
		}
	}
}

func (p *parser) hexByte() error {
	if p.pos+2 > len(p.src) {
		return fmt.Errorf("%w: truncated hex escape", ErrMalformed)
	}
	hi, okHi := hexValue(p.src[p.pos])
	lo, okLo := hexValue(p.src[p.pos+1])
	if !okHi || !okLo {
		return fmt.Errorf("%w: invalid hex escape %q", ErrMalformed, p.src[p.pos:p.pos+2])
	}
	p.pos += 2
	if p.consumeFallback() || p.state.skip {
		return nil
	}
	p.finishSurrogate()
	cp := p.codePage()
	if len(p.pending) > 0 && p.pendingCP != cp {
		p.flush()
	}
	p.pendingCP = cp
	p.pending = append(p.pending, hi<<4|lo)
	return nil
}

func (p *parser) unicode(value int) {
	r := rune(value)
	if r < 0 {
		r += 0x10000
	}
	if !p.state.skip {
		p.flush()
		switch {
		case r >= 0xD800 && r < 0xDC00:
			p.finishSurrogate()
			p.highSurr = r
		case r >= 0xDC00 && r < 0xE000:
			if p.highSurr != 0 {
				p.out.WriteRune(utf16.DecodeRune(p.highSurr, r))
				p.highSurr = 0
			} else {
				p.out.WriteRune(utf8.RuneError)
			}
		default:
			p.emit(r)
		}
	}
	p.skipChars = p.state.ucSkip
}

// consumeFallback swallows one character of a \u fallback run.
func (p *parser) consumeFallback() bool {
	if p.skipChars == 0 {
		return false
	}
	p.skipChars--
	return true
}

func (p *parser) emit(r rune) {
	if p.consumeFallback() || p.state.skip {
		return
	}
	p.flush()
	p.finishSurrogate()
	p.out.WriteRune(r)
}

func (p *parser) finishSurrogate() {
	if p.highSurr != 0 {
		p.out.WriteRune(utf8.RuneError)
		p.highSurr = 0
	}
}

func (p *parser) flush() {
	if len(p.pending) == 0 {
		return
	}
	enc, ok := charset.ForCodePage(p.pendingCP)
	if !ok {
		enc, _ = charset.ForCodePage(defaultCodePage)
	}
	decoded, err := enc.NewDecoder().Bytes(p.pending)
	if err != nil {
		p.out.WriteRune(utf8.RuneError)
	} else {
		p.out.Write(decoded)
	}
	p.pending = p.pending[:0]
}

func (p *parser) codePage() int {
	font := p.state.font
	if font < 0 {
		font = p.defaultFont
	}
	if cp, ok := p.fonts[font]; ok {
		return cp
	}
	return p.ansiCodePage
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
