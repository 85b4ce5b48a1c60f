package report

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/text/encoding"

	"captionexport/internal/captions"
	"captionexport/internal/charset"
	"captionexport/internal/fileutil"
	"captionexport/internal/logging"
	"captionexport/internal/textutil"
	"captionexport/internal/timecode"
)

const (
	// DefaultEncoding is the output encoding when Options.Encoding is empty.
	DefaultEncoding = "shift_jis"
	// CRLF terminates lines unless Options.LineEnding says otherwise.
	CRLF = "\r\n"
	LF   = "\n"

	replacementChar = '?'
	fileMode        = 0o644
)

// Options controls how a report is written.
type Options struct {
	Path       string
	Encoding   string
	LineEnding string
	Timecode   timecode.Formatter
	// Strict fails on characters the encoding cannot represent instead of
	// replacing them with '?'.
	Strict bool
	BOM    bool
	Logger *slog.Logger
}

// Sort returns a copy of records in ascending position order. Records with
// equal positions keep their relative order.
func Sort(records []captions.Record) []captions.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b captions.Record) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return sorted
}

// Line renders one record as "<timecode> <text>".
func Line(tc timecode.Formatter, record captions.Record) string {
	return tc.Render(record.Position) + " " + textutil.FlattenLineBreaks(record.Text)
}

// Lines sorts records and renders each one.
func Lines(records []captions.Record, tc timecode.Formatter) []string {
	sorted := Sort(records)
	lines := make([]string, len(sorted))
	for i, record := range sorted {
		lines[i] = Line(tc, record)
	}
	return lines
}

// Write sorts records and writes the report to opts.Path, returning the
// number of lines written. File system failures are returned as *IOError.
func Write(records []captions.Record, opts Options) (int, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return 0, errors.New("report path is required")
	}
	if err := opts.Timecode.Validate(); err != nil {
		return 0, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	name := opts.Encoding
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}
	enc, err := charset.Lookup(name)
	if err != nil {
		return 0, err
	}
	encName := charset.Name(enc, name)

	lines := Lines(records, opts.Timecode)
	body, replaced, err := encodeLines(enc, encName, lines, lineEnding(opts.LineEnding), opts.Strict)
	if err != nil {
		return 0, err
	}
	if opts.BOM {
		bom, err := charset.ByteOrderMark(enc)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", encName, err)
		}
		body = append(bom, body...)
	}
	if replaced > 0 {
		logger.Warn("characters replaced during encoding",
			logging.String("encoding", encName),
			logging.Int("replaced", replaced),
		)
	}

	unlock, err := fileutil.Lock(opts.Path)
	if err != nil {
		return 0, &IOError{Op: "lock", Path: opts.Path, Err: err}
	}
	err = fileutil.WriteFileAtomic(opts.Path, fileMode, func(w io.Writer) error {
		_, err := w.Write(body)
		return err
	})
	if unlockErr := unlock(); unlockErr != nil {
		logger.Warn("failed to release report lock", logging.String("path", opts.Path), logging.Error(unlockErr))
	}
	if err != nil {
		return 0, &IOError{Op: "write", Path: opts.Path, Err: err}
	}

	logger.Debug("report written",
		logging.String("path", opts.Path),
		logging.String("encoding", encName),
		logging.Int("lines", len(lines)),
		logging.Int("bytes", len(body)),
		logging.Bool("bom", opts.BOM),
		logging.Bool("strict", opts.Strict),
	)
	return len(lines), nil
}

func lineEnding(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lf", LF:
		return LF
	default:
		return CRLF
	}
}

// encodeLines encodes every line plus its terminator in one pass so stateful
// encoders see the whole text. Unrepresentable runes become replacementChar
// unless strict is set.
func encodeLines(enc encoding.Encoding, encName string, lines []string, eol string, strict bool) ([]byte, int, error) {
	var (
		text     strings.Builder
		replaced int
	)
	check := enc.NewEncoder()
	for i, line := range lines {
		if _, err := check.String(line); err != nil {
			fixed, n, ferr := substitute(enc, line, strict)
			if ferr != nil {
				var encErr *EncodeError
				if errors.As(ferr, &encErr) {
					encErr.Line = i + 1
					encErr.Encoding = encName
				}
				return nil, 0, ferr
			}
			line = fixed
			replaced += n
		}
		text.WriteString(line)
		text.WriteString(eol)
	}
	out, err := enc.NewEncoder().Bytes([]byte(text.String()))
	if err != nil {
		return nil, 0, fmt.Errorf("encode %s: %w", encName, err)
	}
	return out, replaced, nil
}

// substitute rebuilds line rune by rune, swapping anything enc cannot encode.
func substitute(enc encoding.Encoding, line string, strict bool) (string, int, error) {
	var (
		b        strings.Builder
		replaced int
	)
	check := enc.NewEncoder()
	for _, r := range line {
		if _, err := check.String(string(r)); err != nil {
			if strict {
				return "", 0, &EncodeError{Rune: r}
			}
			b.WriteRune(replacementChar)
			replaced++
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), replaced, nil
}
