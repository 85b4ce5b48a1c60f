// Package timecode renders timeline frame counts as display strings.
//
// Supported formats are SMPTE non-drop (HH:MM:SS:FF), SMPTE drop-frame
// (HH:MM:SS;FF) for the NTSC rates, wall-clock time with milliseconds and the
// bare frame count. Conversions are stateless; a Formatter is a small value
// that can be copied freely.
package timecode
