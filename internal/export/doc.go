// Package export runs the caption export pipeline for a loaded document:
// extract captions, pick a timecode formatter, and write the report.
//
// A document without tracks is treated as empty and produces no file. A
// document with tracks but no captions still produces an empty report.
package export
