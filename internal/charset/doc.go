// Package charset resolves text encodings by name, Windows code page, or RTF
// font charset on top of golang.org/x/text.
//
// Names are matched against the IANA registry first and the WHATWG label set
// second, with a short alias table for the Windows "cpNNN" spellings that
// neither registry knows.
package charset
