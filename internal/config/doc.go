// Package config loads, normalizes, and validates captionexport configuration.
//
// It supplies defaults matching the reference deployment (Shift-JIS output,
// CRLF line endings, drop-frame NTSC timecode), expands user paths including
// tilde shortcuts, reads TOML files, and honours the CAPTIONEXPORT_ENCODING
// environment override. Commands should obtain settings through Load so they
// receive canonical lowercase names and clear validation errors.
package config
