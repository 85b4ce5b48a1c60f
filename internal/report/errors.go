package report

import "fmt"

// IOError reports a failure to create or write the report file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("report %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// EncodeError reports a character the output encoding cannot represent.
// It is only returned in strict mode.
type EncodeError struct {
	Line     int
	Rune     rune
	Encoding string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("line %d: %U %q not representable in %s", e.Line, e.Rune, e.Rune, e.Encoding)
}
