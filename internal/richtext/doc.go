// Package richtext reduces RTF caption payloads to the literal text they
// display.
//
// The decoder is a small single-pass parser over the RTF token grammar:
// groups, control words with optional numeric parameters, control symbols,
// hex byte escapes and \u Unicode escapes with their \uc fallback runs.
// Formatting is dropped, destinations that never render (font and color
// tables, stylesheets, document info, pictures, \* extensions) are skipped,
// and paragraph marks become newlines. Hex byte escapes are decoded through
// the code page of the active font's charset, falling back to the document
// \ansicpg, so double-byte payloads such as Shift-JIS titles come out intact.
//
// Payloads that do not start with "{\rtf" are treated as plain text and
// returned unchanged, which makes Decode idempotent on its own output.
package richtext
