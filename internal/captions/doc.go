// Package captions finds caption events on a timeline and decodes their text.
//
// The Extractor walks tracks and events in document order and keeps only video
// events whose active take references media with a generator exposing a
// string "Text" parameter. The parameter's rich text is reduced to plain text
// through the richtext package. Every miss along that chain (no take, no
// media, no generator, no parameter, wrong parameter type, undecodable or
// empty payload) skips the event; extraction itself never fails.
//
// Records come back in scan order. Chronological ordering belongs to the
// report package.
package captions
